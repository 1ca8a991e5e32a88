package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/internal/constants"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
	"github.com/voluntree/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubUserStore serves a single fixed user by id. The auth middleware only
// ever reads; the other store methods are never reached.
type stubUserStore struct {
	user *model.User
}

func (s *stubUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		clone := *s.user
		return &clone, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubUserStore) Create(context.Context, *model.User) error { panic("not used") }
func (s *stubUserStore) GetByUsername(context.Context, string) (*model.User, error) {
	panic("not used")
}
func (s *stubUserStore) GetByEmail(context.Context, string) (*model.User, error) {
	panic("not used")
}
func (s *stubUserStore) GetByUsernameOrEmail(context.Context, string, string) (*model.User, error) {
	panic("not used")
}
func (s *stubUserStore) UpdatePassword(context.Context, uint, string) error { panic("not used") }
func (s *stubUserStore) UpdateRefreshSlot(context.Context, uint, *string, *time.Time) error {
	panic("not used")
}
func (s *stubUserStore) UpdateDetails(context.Context, uint, map[string]interface{}) (*model.User, error) {
	panic("not used")
}
func (s *stubUserStore) UpdateImage(context.Context, uint, string, string) (*model.User, error) {
	panic("not used")
}

func authTestSetup(t *testing.T) (*service.TokenService, *stubUserStore, string) {
	t.Helper()

	tokens, err := service.NewTokenService(config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		AccessExpiry:  time.Minute,
		RefreshSecret: "refresh-secret-for-tests",
		RefreshExpiry: time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}

	user := &model.User{ID: 7, Username: "alice", Email: "alice@example.com"}
	accessToken, err := tokens.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	return tokens, &stubUserStore{user: user}, accessToken
}

func newAuthEngine(tokens *service.TokenService, users *stubUserStore) *gin.Engine {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(tokens, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": AuthenticatedUserID(c)})
	})
	return engine
}

func TestRequireAuthWithBearerHeader(t *testing.T) {
	tokens, users, accessToken := authTestSetup(t)
	engine := newAuthEngine(tokens, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+accessToken)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200 with bearer token, got %d", recorder.Code)
	}
}

func TestRequireAuthWithCookie(t *testing.T) {
	tokens, users, accessToken := authTestSetup(t)
	engine := newAuthEngine(tokens, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieAccessToken, Value: accessToken})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200 with cookie token, got %d", recorder.Code)
	}
}

func TestRequireAuthRejections(t *testing.T) {
	tokens, users, _ := authTestSetup(t)
	engine := newAuthEngine(tokens, users)

	// No credentials at all
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", recorder.Code)
	}

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"garbage")
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", recorder.Code)
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	tokens, users, accessToken := authTestSetup(t)
	users.user = nil // account gone after issuance
	engine := newAuthEngine(tokens, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+accessToken)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted account, got %d", recorder.Code)
	}
}
