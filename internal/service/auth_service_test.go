package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/academia-dev/academia-api/internal/models"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
)

type mockUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiry:     24 * time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

func TestAuthServiceRegisterThenLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Maria",
		Email:    "a@x.com",
		Password: "pass123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleInstructor, registered.User.Role)

	logged, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "pass123"})
	require.NoError(t, err)
	require.NotEmpty(t, logged.Token)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	claims, err := svc.ValidateToken(logged.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, models.RoleInstructor, claims.Role)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Maria", Email: "a@x.com", Password: "pass123"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "Outra", Email: "a@x.com", Password: "outra123"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "Usuário já existe", appErr.Message)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Maria", Email: "a@x.com", Password: "pass123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, "Credenciais inválidas", appErr.Message)
}

func TestAuthServiceLoginUnknownEmailSameMessage(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@x.com", Password: "pass123"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, "Credenciais inválidas", appErr.Message)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Maria", Email: "a@x.com", Password: "pass123"})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{Secret: "another-secret", Expiry: 24 * time.Hour, BcryptCost: bcrypt.MinCost})
	_, err = other.ValidateToken(registered.Token)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiry:     -time.Minute,
		BcryptCost: bcrypt.MinCost,
	})

	registered, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Maria", Email: "a@x.com", Password: "pass123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(registered.Token)
	require.Error(t, err)
}

func TestAuthServiceRegisterRejectsUnknownRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Maria", Email: "a@x.com", Password: "pass123", Role: "GERENTE"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
