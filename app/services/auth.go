package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/repositories"
	"github.com/shashiranjanraj/cafedesk/pkg/auth"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
)

// AuthService checks credentials and issues session tokens.
type AuthService struct {
	db     *gorm.DB
	audit  *AuditRecorder
	secret []byte
}

func NewAuthService(db *gorm.DB, audit *AuditRecorder, secret []byte) *AuthService {
	return &AuthService{db: db, audit: audit, secret: secret}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnCompare runs one bcrypt comparison against a throwaway hash so an
// unknown login costs as much as a wrong password.
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("cafedesk-unknown-login")
	})
	_ = auth.CheckPassword(dummyHash, password)
}

// Authenticate returns the operator for login/password. A wrong password
// and an unknown login both return ErrAuthenticationFailed.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (Principal, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		burnCompare(password)
		return Principal{}, ErrAuthenticationFailed
	}

	user, err := repositories.NewUserRepository(s.db.WithContext(ctx)).FindByLogin(login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		burnCompare(password)
		return Principal{}, ErrAuthenticationFailed
	}
	if err != nil {
		return Principal{}, persist("auth.lookup", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		logger.WithCtx(ctx).Debug("auth: rejected credentials")
		return Principal{}, ErrAuthenticationFailed
	}
	return Principal{Login: user.Login, Role: user.Role}, nil
}

// Login authenticates and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, login, password string) (Principal, string, error) {
	p, err := s.Authenticate(ctx, login, password)
	if err != nil {
		return Principal{}, "", err
	}
	token, err := auth.GenerateToken(s.secret, p.Login, p.Role)
	if err != nil {
		return Principal{}, "", err
	}
	s.audit.Record(ctx, p.Login, ActionLogin, "Signed in as "+p.Role)
	return p, token, nil
}

// Resume turns a session token back into a principal. The role comes from
// the users table, so role changes apply to open sessions.
func (s *AuthService) Resume(ctx context.Context, token string) (Principal, error) {
	claims, err := auth.ValidateToken(s.secret, token)
	if err != nil {
		return Principal{}, ErrAuthenticationFailed
	}
	user, err := repositories.NewUserRepository(s.db.WithContext(ctx)).FindByLogin(claims.Login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Principal{}, ErrAuthenticationFailed
	}
	if err != nil {
		return Principal{}, persist("auth.resume", err)
	}
	return Principal{Login: user.Login, Role: user.Role}, nil
}
