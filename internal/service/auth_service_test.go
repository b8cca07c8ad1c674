package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 15}
	return NewAuthService(cfg, users, zap.NewNop()), users
}

func TestSignup(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "new@example.com", "hunter2", "customer")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)

	tests := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{name: "missing email", email: "", password: "pw", role: "customer"},
		{name: "missing password", email: "a@example.com", password: "", role: "customer"},
		{name: "bad role", email: "b@example.com", password: "pw", role: "admin"},
		{name: "duplicate email", email: "new@example.com", password: "pw", role: "agent"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.email, tc.password, tc.role)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "got %v", err)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "agent@example.com", "hunter2", "agent")
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(ctx, "agent@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, user.Role)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "agent@example.com", "nope")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "ghost@example.com", "hunter2")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	})
}
