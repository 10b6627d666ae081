package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when a token is signed or checked without a key.
var ErrEmptySecret = errors.New("auth: empty signing secret")

// Claims holds the typed session payload. The role is informational; callers
// reload it from the users table before making access decisions.
type Claims struct {
	Login string `json:"login"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session token for login. Sessions do not
// expire; they end on logout.
func GenerateToken(secret []byte, login, role string) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	claims := Claims{
		Login: login,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  login,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses and validates a session token.
func ValidateToken(secret []byte, t string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Login == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
