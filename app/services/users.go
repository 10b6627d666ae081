package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/repositories"
	"github.com/shashiranjanraj/cafedesk/pkg/auth"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/validate"
)

// NewUser is the input of UserService.Create.
type NewUser struct {
	Login    string `json:"login"    validate:"required,alpha_dash,min=2,max=100"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role"     validate:"required,max=50"`
}

// UserService manages operator accounts.
type UserService struct {
	db       *gorm.DB
	audit    *AuditRecorder
	hashCost int
}

func NewUserService(db *gorm.DB, audit *AuditRecorder) *UserService {
	return &UserService{db: db, audit: audit, hashCost: auth.DefaultCost}
}

// WithHashCost returns a copy of s hashing passwords at cost.
func (s *UserService) WithHashCost(cost int) *UserService {
	c := *s
	c.hashCost = cost
	return &c
}

// List returns every account ordered by login.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := repositories.NewUserRepository(s.db.WithContext(ctx)).All()
	if err != nil {
		return nil, persist("users.list", err)
	}
	return users, nil
}

// Create adds an account. Logins are unique.
func (s *UserService) Create(ctx context.Context, caller string, in NewUser) (models.User, error) {
	in.Login = strings.TrimSpace(in.Login)
	in.Role = strings.TrimSpace(in.Role)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, &ValidationError{Fields: errs}
	}

	hash, err := auth.HashPasswordCost(in.Password, s.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("users: hash password: %w", err)
	}

	user := models.User{Login: in.Login, PasswordHash: hash, Role: in.Role}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		taken, err := users.Exists(in.Login)
		if err != nil {
			return err
		}
		if taken {
			return invalid("login", fmt.Sprintf("The login '%s' is already taken.", in.Login))
		}
		if err := users.Create(&user); err != nil {
			return err
		}
		s.audit.RecordTx(ctx, tx, caller, ActionUserCreated, fmt.Sprintf("User '%s' created with role %s", user.Login, user.Role))
		return nil
	})
	if err != nil {
		return models.User{}, persist("users.create", err)
	}

	logger.WithCtx(ctx).Info("user created", "login", user.Login, "role", user.Role)
	return user, nil
}

// SetRole changes the role of login.
func (s *UserService) SetRole(ctx context.Context, caller, login, role string) error {
	role = strings.TrimSpace(role)
	if errs := validate.Struct(struct {
		Role string `json:"role" validate:"required,max=50"`
	}{role}); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}

	return s.update(ctx, caller, login, "users.set_role", func(u *models.User) (string, string) {
		old := u.Role
		u.Role = role
		return ActionUserRoleChanged, fmt.Sprintf("User '%s' role changed from %s to %s", u.Login, old, role)
	})
}

// SetPassword replaces the password of login.
func (s *UserService) SetPassword(ctx context.Context, caller, login, password string) error {
	if errs := validate.Struct(struct {
		Password string `json:"password" validate:"required,min=4"`
	}{password}); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	hash, err := auth.HashPasswordCost(password, s.hashCost)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}

	return s.update(ctx, caller, login, "users.set_password", func(u *models.User) (string, string) {
		u.PasswordHash = hash
		return ActionPasswordChanged, fmt.Sprintf("Password of '%s' changed by %s", u.Login, caller)
	})
}

// Delete removes the account of login. Operators cannot delete themselves,
// and the last Administrator stays.
func (s *UserService) Delete(ctx context.Context, caller, login string) error {
	login = strings.TrimSpace(login)
	if login == caller {
		return invalid("login", "You cannot delete your own account.")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		user, err := users.FindByLogin(login)
		if err != nil {
			return lookup("user", login, "users.delete", err)
		}
		if user.Role == models.RoleAdministrator {
			admins, err := users.CountRole(models.RoleAdministrator)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return invalid("login", fmt.Sprintf("'%s' is the last %s and cannot be deleted.", login, models.RoleAdministrator))
			}
		}
		if _, err := users.Delete(user.ID); err != nil {
			return err
		}
		s.audit.RecordTx(ctx, tx, caller, ActionUserDeleted, fmt.Sprintf("User '%s' (%s) deleted", user.Login, user.Role))
		return nil
	})
	if err != nil {
		return persist("users.delete", err)
	}

	logger.WithCtx(ctx).Info("user deleted", "login", login)
	return nil
}

func (s *UserService) update(ctx context.Context, caller, login, op string, apply func(*models.User) (action, details string)) error {
	login = strings.TrimSpace(login)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		user, err := users.FindByLogin(login)
		if err != nil {
			return lookup("user", login, op, err)
		}
		action, details := apply(&user)
		if err := users.Update(&user); err != nil {
			return err
		}
		s.audit.RecordTx(ctx, tx, caller, action, details)
		return nil
	})
	return persist(op, err)
}
