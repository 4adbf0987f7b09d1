package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/academia-dev/academia-api/internal/models"
	"github.com/academia-dev/academia-api/internal/service"
)

type stubUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return nil
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func setupProtectedRouter(t *testing.T, roles ...models.UserRole) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(newStubUserRepo(), nil, nil, service.AuthConfig{
		Secret:     "test-secret",
		Expiry:     time.Hour,
		BcryptCost: bcrypt.MinCost,
	})

	res, err := auth.Register(context.Background(), models.RegisterRequest{
		Name:     "Instrutor",
		Email:    "instrutor@academia.dev",
		Password: "senha123",
	})
	require.NoError(t, err)

	router := gin.New()
	group := router.Group("/", JWT(auth))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/protegido", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, res.Token
}

func TestJWTMissingHeader(t *testing.T) {
	router, _ := setupProtectedRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protegido", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Token não fornecido", body.Error.Message)
}

func TestJWTMalformedHeader(t *testing.T) {
	router, token := setupProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Token não fornecido", body.Error.Message)
}

func TestJWTInvalidToken(t *testing.T) {
	router, _ := setupProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Token inválido", body.Error.Message)
}

func TestJWTValidTokenPasses(t *testing.T) {
	router, token := setupProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTBearerIsCaseInsensitive(t *testing.T) {
	router, token := setupProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesBlocksOtherRoles(t *testing.T) {
	// Registration defaults to INSTRUTOR, so an ADMIN-only route must refuse.
	router, token := setupProtectedRouter(t, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Acesso negado", body.Error.Message)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	router, token := setupProtectedRouter(t, models.RoleAdmin, models.RoleInstructor)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
