package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/audit"
	"github.com/clinicore/clinic-api/internal/service/user"
	"github.com/clinicore/clinic-api/pkg/idtoken"
	"github.com/clinicore/clinic-api/pkg/session"
)

const (
	testSecret = "identity-secret"
	testCookie = "clinic_session"
)

type fakeStore struct {
	sessions map[string]*session.Session
}

func (f *fakeStore) Create(_ context.Context, s *session.Session, _ time.Duration) error {
	if s.ID == "" {
		s.ID = "sess-test"
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*session.Session, error) {
	return f.sessions[id], nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int64
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *model.UpsertUser) error {
	if _, ok := f.users[u.OpenID]; !ok {
		f.users[u.OpenID] = &model.User{ID: f.nextID, OpenID: u.OpenID, Role: model.UserRoleUser, IsActive: true}
		f.nextID++
	}
	if u.LastSignedIn != nil {
		f.users[u.OpenID].LastSignedIn = *u.LastSignedIn
	}
	return nil
}

func (f *fakeUserRepo) GetByOpenID(_ context.Context, openID string) (*model.User, error) {
	return f.users[openID], nil
}

func (f *fakeUserRepo) GetByID(context.Context, int64) (*model.User, error) { return nil, nil }
func (f *fakeUserRepo) CountActiveSince(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type nopAuditRepo struct{}

func (nopAuditRepo) Create(context.Context, int64, string, string, *int64, json.RawMessage, *string, *string) error {
	return nil
}
func (nopAuditRepo) List(context.Context, *model.AuditFilters) ([]*model.AuditLog, error) {
	return nil, nil
}
func (nopAuditRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func newTestHandler() (*Handler, *fakeStore) {
	store := &fakeStore{sessions: map[string]*session.Session{}}
	users := user.NewService(&fakeUserRepo{users: map[string]*model.User{}, nextID: 1}, audit.NewService(nopAuditRepo{}))
	h := NewHandler(users, store, Config{
		CookieName:     testCookie,
		SessionTTL:     3600,
		IdentitySecret: testSecret,
	})
	return h, store
}

func newTestEngine(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func signIdentity(t *testing.T, openID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &idtoken.Claims{
		OpenID: openID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestCreateSession(t *testing.T) {
	h, store := newTestHandler()
	r := newTestEngine(h)

	body := `{"token":"` + signIdentity(t, "ext-1") + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.sessions, 1)

	var foundCookie bool
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			foundCookie = true
			assert.NotEmpty(t, c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, foundCookie, "session cookie must be set")
}

func TestCreateSessionRejectsBadToken(t *testing.T) {
	h, store := newTestHandler()
	r := newTestEngine(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{"token":"garbage"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.sessions)
}

func TestCreateSessionRequiresToken(t *testing.T) {
	h, _ := newTestHandler()
	r := newTestEngine(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Me is public: without a session it reports null rather than an error.
func TestMeWithoutSession(t *testing.T) {
	h, _ := newTestHandler()
	r := newTestEngine(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data *model.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data)
}

// Logout succeeds with or without a live session.
func TestLogoutIsIdempotent(t *testing.T) {
	h, store := newTestHandler()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionID, "sess-1")
	})
	h.RegisterRoutes(r.Group("/api/v1"))

	store.sessions["sess-1"] = &session.Session{ID: "sess-1", UserID: 1}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.sessions)

	// Second logout with the same (now dead) session still succeeds.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
