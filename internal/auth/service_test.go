package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/smoralesdev/cartaqr-backend/pkg/auth"
	"github.com/smoralesdev/cartaqr-backend/pkg/config"
	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/security"
)

type stubUserRepo struct {
	usuario    *models.Usuario
	lastLogins []time.Time
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.Usuario, error) {
	if s.usuario != nil && s.usuario.Email == email {
		clone := *s.usuario
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	s.lastLogins = append(s.lastLogins, at)
	return nil
}

type stubSessionManager struct {
	created []string
	revoked []string
}

func (s *stubSessionManager) Create(_ context.Context, accessID, _ string) error {
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "cartaqr-test",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 120,
	}
}

func newService(t *testing.T, repo *stubUserRepo, sess *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sess,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc
}

func activeUsuario(t *testing.T, password string) *models.Usuario {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	localID := uuid.New()
	return &models.Usuario{
		ID:           uuid.New(),
		LocalID:      &localID,
		Nombre:       "Ana",
		Email:        "ana@example.com",
		PasswordHash: hash,
		Rol:          enums.RolAdmin,
		Activo:       true,
	}
}

func TestLoginMintsScopedToken(t *testing.T) {
	repo := &stubUserRepo{usuario: activeUsuario(t, "secreto-largo")}
	sess := &stubSessionManager{}
	svc := newService(t, repo, sess)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: " Ana@Example.com ", Password: "secreto-largo"})
	require.NoError(t, err)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, repo.usuario.ID, claims.UserID)
	require.NotNil(t, claims.LocalID)
	assert.Equal(t, *repo.usuario.LocalID, *claims.LocalID)
	assert.Equal(t, enums.RolAdmin, claims.Rol)

	// The session is keyed by the token's jti.
	require.Len(t, sess.created, 1)
	assert.Equal(t, claims.ID, sess.created[0])

	assert.Len(t, repo.lastLogins, 1)
	require.NotNil(t, resp.User)
	assert.NotNil(t, resp.User.LastLoginAt)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLoginRejectionsShareOneMessage(t *testing.T) {
	repo := &stubUserRepo{usuario: activeUsuario(t, "secreto-largo")}
	svc := newService(t, repo, &stubSessionManager{})
	ctx := context.Background()

	cases := map[string]LoginRequest{
		"unknown email":  {Email: "nadie@example.com", Password: "secreto-largo"},
		"wrong password": {Email: "ana@example.com", Password: "otra-clave"},
		"empty email":    {Email: "", Password: "secreto-largo"},
		"empty password": {Email: "ana@example.com", Password: ""},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, req)
			requireCode(t, err, pkgerrors.CodeUnauthorized)
			assert.Contains(t, err.Error(), invalidCredentialsMessage)
		})
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	usuario := activeUsuario(t, "secreto-largo")
	usuario.Activo = false
	svc := newService(t, &stubUserRepo{usuario: usuario}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secreto-largo"})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	sess := &stubSessionManager{}
	svc := newService(t, &stubUserRepo{}, sess)

	require.NoError(t, svc.Logout(context.Background(), "access-123"))
	assert.Equal(t, []string{"access-123"}, sess.revoked)

	err := svc.Logout(context.Background(), " ")
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	assert.Equal(t, code, typed.Code())
}
