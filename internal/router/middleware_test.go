package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/repository"
	"github.com/octaverum/octaverum-api/internal/token"

	"github.com/gin-gonic/gin"
)

type stubUserRepo struct {
	users map[uint]*models.User
}

func (r *stubUserRepo) GetByEmail(string) (*models.User, error)    { return nil, nil }
func (r *stubUserRepo) GetByNickname(string) (*models.User, error) { return nil, nil }
func (r *stubUserRepo) GetByID(id uint) (*models.User, error)      { return r.users[id], nil }
func (r *stubUserRepo) Create(*models.User) error                  { return nil }
func (r *stubUserRepo) Update(*models.User) error                  { return nil }
func (r *stubUserRepo) Delete(uint) error                          { return nil }
func (r *stubUserRepo) List(repository.UserListFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("middleware-test-secret", time.Hour, "octaverum-api")
	if err != nil {
		t.Fatalf("new codec failed: %v", err)
	}
	return codec
}

func envelopeStatusCode(t *testing.T, body []byte) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if strings.TrimSpace(generated) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func buildAuthTestRouter(codec *token.Codec, repo repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(codec, repo), func(c *gin.Context) {
		userID := c.GetUint("user_id")
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "user_id": userID})
	})
	r.GET("/admin/ping", AuthMiddleware(codec, repo), RequireRoles(constants.UserRoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	return r
}

func TestAuthMiddlewareMissingCodec(t *testing.T) {
	r := buildAuthTestRouter(nil, &stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if code := envelopeStatusCode(t, w.Body.Bytes()); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestAuthMiddlewareHeaderValidation(t *testing.T) {
	codec := newTestCodec(t)
	r := buildAuthTestRouter(codec, &stubUserRepo{users: map[uint]*models.User{}})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"no token", "Bearer"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if code := envelopeStatusCode(t, w.Body.Bytes()); code != 401 {
			t.Fatalf("%s: status_code want 401 got %d", tc.name, code)
		}
	}
}

func TestAuthMiddlewareUserStates(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[uint]*models.User{
		1: {Nickname: "aktif", Email: "aktif@example.com", Status: constants.UserStatusActive, Role: constants.UserRoleUser},
		2: {Nickname: "pasif", Email: "pasif@example.com", Status: constants.UserStatusDisabled, Role: constants.UserRoleUser},
	}}
	repo.users[1].ID = 1
	repo.users[2].ID = 2
	r := buildAuthTestRouter(codec, repo)

	issue := func(userID uint) string {
		tokenString, _, err := codec.Issue(userID)
		if err != nil {
			t.Fatalf("issue token failed: %v", err)
		}
		return tokenString
	}

	// 正常用户放行并注入 user_id
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issue(1))
	r.ServeHTTP(w, req)
	var okResp struct {
		StatusCode int  `json:"status_code"`
		UserID     uint `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &okResp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if okResp.StatusCode != 0 || okResp.UserID != 1 {
		t.Fatalf("active user want status_code 0 user_id 1, got %+v", okResp)
	}

	// 禁用用户返回 403
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issue(2))
	r.ServeHTTP(w, req)
	if code := envelopeStatusCode(t, w.Body.Bytes()); code != 403 {
		t.Fatalf("disabled user status_code want 403 got %d", code)
	}

	// 令牌指向的用户不存在返回 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issue(99))
	r.ServeHTTP(w, req)
	if code := envelopeStatusCode(t, w.Body.Bytes()); code != 404 {
		t.Fatalf("missing user status_code want 404 got %d", code)
	}
}

func TestRequireRoles(t *testing.T) {
	codec := newTestCodec(t)
	repo := &stubUserRepo{users: map[uint]*models.User{
		1: {Status: constants.UserStatusActive, Role: constants.UserRoleUser},
		2: {Status: constants.UserStatusActive, Role: constants.UserRoleAdmin},
	}}
	repo.users[1].ID = 1
	repo.users[2].ID = 2
	r := buildAuthTestRouter(codec, repo)

	issue := func(userID uint) string {
		tokenString, _, err := codec.Issue(userID)
		if err != nil {
			t.Fatalf("issue token failed: %v", err)
		}
		return tokenString
	}

	// 普通用户访问管理端返回 403
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issue(1))
	r.ServeHTTP(w, req)
	if code := envelopeStatusCode(t, w.Body.Bytes()); code != 403 {
		t.Fatalf("user role status_code want 403 got %d", code)
	}

	// 管理员放行
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issue(2))
	r.ServeHTTP(w, req)
	if code := envelopeStatusCode(t, w.Body.Bytes()); code != 0 {
		t.Fatalf("admin role status_code want 0 got %d", code)
	}

	// 未经过鉴权中间件时返回 401
	plain := gin.New()
	plain.GET("/admin/only", RequireRoles(constants.UserRoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/only", nil)
	plain.ServeHTTP(w, req)
	if code := envelopeStatusCode(t, w.Body.Bytes()); code != 401 {
		t.Fatalf("no auth state status_code want 401 got %d", code)
	}
}
