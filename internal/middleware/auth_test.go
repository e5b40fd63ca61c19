package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/tccscheduler/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) addUser(role string) *entity.User {
	user := &entity.User{ID: uuid.New(), Name: "u", Email: uuid.NewString() + "@tcc.local", Role: role}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func signToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(repo *fakeUserRepo, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthMiddleware(repo, testSecret)

	router := gin.New()
	handlers := []gin.HandlerFunc{auth.RequireAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, auth.RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.addUser(entity.RoleStudent)
	router := newAuthRouter(repo)

	expired := signToken(t, user.ID.String(), time.Now().Add(-time.Hour))

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + otherKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(router, tc.header)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAuthSetsUserID(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.addUser(entity.RoleStudent)
	router := newAuthRouter(repo)

	token := signToken(t, user.ID.String(), time.Now().Add(time.Hour))
	rec := doRequest(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), user.ID.String())
}

func TestRequireRoles(t *testing.T) {
	repo := newFakeUserRepo()
	student := repo.addUser(entity.RoleStudent)
	secretariat := repo.addUser(entity.RoleSecretariat)
	router := newAuthRouter(repo, entity.RoleSecretariat)

	studentToken := signToken(t, student.ID.String(), time.Now().Add(time.Hour))
	rec := doRequest(router, "Bearer "+studentToken)
	require.Equal(t, http.StatusForbidden, rec.Code)

	secretariatToken := signToken(t, secretariat.ID.String(), time.Now().Add(time.Hour))
	rec = doRequest(router, "Bearer "+secretariatToken)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	router := newAuthRouter(repo, entity.RoleSecretariat)

	// Valid token for an id with no matching user row.
	token := signToken(t, uuid.NewString(), time.Now().Add(time.Hour))
	rec := doRequest(router, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
