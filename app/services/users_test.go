package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/pkg/auth"
)

func users(f *fixture) *UserService {
	return NewUserService(f.db, f.audit).WithHashCost(auth.MinCost)
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := users(f).Create(ctx, "admin", NewUser{Login: " anna ", Password: "s3cret", Role: models.RoleCashier})
	require.NoError(t, err)
	assert.Equal(t, "anna", u.Login)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "s3cret"))

	_, err = users(f).Create(ctx, "admin", NewUser{Login: "anna", Password: "other", Role: models.RoleCashier})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "login")

	_, err = users(f).Create(ctx, "admin", NewUser{Login: "bad login!", Password: "x", Role: ""})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "login")
	assert.Contains(t, ve.Fields, "password")
	assert.Contains(t, ve.Fields, "role")

	list, err := users(f).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.EqualValues(t, 1, f.auditCount(t, ActionUserCreated))
}

func TestSetRoleAndPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := users(f).Create(ctx, "admin", NewUser{Login: "boris", Password: "first", Role: models.RoleCashier})
	require.NoError(t, err)

	require.NoError(t, users(f).SetRole(ctx, "admin", "boris", models.RoleAdministrator))
	require.NoError(t, users(f).SetPassword(ctx, "admin", "boris", "second"))

	p, err := NewAuthService(f.db, f.audit, []byte("k")).Authenticate(ctx, "boris", "second")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdministrator, p.Role)

	assert.ErrorIs(t, users(f).SetRole(ctx, "admin", "nobody", "Cashier"), ErrNotFound)
	assert.ErrorIs(t, users(f).SetPassword(ctx, "admin", "boris", "no"), ErrValidation)
	assert.EqualValues(t, 1, f.auditCount(t, ActionUserRoleChanged))
	assert.EqualValues(t, 1, f.auditCount(t, ActionPasswordChanged))
}

func TestDeleteUserEndsTheSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := users(f).Create(ctx, "admin", NewUser{Login: "admin", Password: "admin", Role: models.RoleAdministrator})
	require.NoError(t, err)
	_, err = users(f).Create(ctx, "admin", NewUser{Login: "vera", Password: "pass", Role: models.RoleCashier})
	require.NoError(t, err)

	sessions := NewAuthService(f.db, f.audit, []byte("k"))
	_, token, err := sessions.Login(ctx, "vera", "pass")
	require.NoError(t, err)

	require.NoError(t, users(f).Delete(ctx, "admin", " vera "))

	_, err = sessions.Resume(ctx, token)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.EqualValues(t, 1, f.auditCount(t, ActionUserDeleted))
	assert.ErrorIs(t, users(f).Delete(ctx, "admin", "vera"), ErrNotFound)
}

func TestDeleteUserGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := users(f).Create(ctx, "system", NewUser{Login: "admin", Password: "admin", Role: models.RoleAdministrator})
	require.NoError(t, err)

	var ve *ValidationError
	require.ErrorAs(t, users(f).Delete(ctx, "admin", "admin"), &ve)
	assert.Contains(t, ve.Fields, "login")

	require.ErrorAs(t, users(f).Delete(ctx, "system", "admin"), &ve)
	assert.Contains(t, ve.Fields["login"], "last Administrator")

	_, err = users(f).Create(ctx, "admin", NewUser{Login: "dora", Password: "pass", Role: models.RoleAdministrator})
	require.NoError(t, err)
	require.NoError(t, users(f).Delete(ctx, "dora", "admin"))

	list, err := users(f).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dora", list[0].Login)
	assert.EqualValues(t, 1, f.auditCount(t, ActionUserDeleted))
}
