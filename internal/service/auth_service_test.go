package service

import (
	"testing"
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-which-is-long-enough-123"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), nil, cfg)
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(RegisterRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "correct-horse", user.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(RegisterRequest{Email: "ada@example.com", Password: "correct-horse", Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{Email: "ada@example.com", Password: "other", Name: "Imposter"})
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(RegisterRequest{Email: "ada@example.com", Password: "correct-horse", Name: "Ada", Role: model.Teacher})
	require.NoError(t, err)

	resp, err := svc.Login(LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := util.ParseJWT(resp.Token, svc.Config.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(RegisterRequest{Email: "ada@example.com", Password: "correct-horse", Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, util.ErrForbidden)
}
