package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asanbekov/account-api/internal/token"
	"github.com/asanbekov/account-api/internal/transport/http/handler"
	"github.com/asanbekov/account-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler writes the userID from context so we can
// assert it was set.
func newEngine() *gin.Engine {
	tokens := token.NewManager([]byte(testKey))
	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.GetString("userID"))
	})
	return r
}

func get(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingCookie_AnswersNotAuthorized(t *testing.T) {
	w := get(newEngine(), "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (uniform envelope)", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not Authorized Login Again") {
		t.Errorf("body = %q, want Not Authorized Login Again", w.Body.String())
	}
}

func TestAuth_TamperedToken_AnswersNotAuthorized(t *testing.T) {
	tokens := token.NewManager([]byte(testKey))
	signed, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := get(newEngine(), signed+"x")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not Authorized Login Again") {
		t.Errorf("body = %q, want Not Authorized Login Again", w.Body.String())
	}
}

func TestAuth_WrongKey_AnswersNotAuthorized(t *testing.T) {
	other := token.NewManager([]byte("a-different-secret-with-32-chars!"))
	signed, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := get(newEngine(), signed)

	if !strings.Contains(w.Body.String(), "Not Authorized Login Again") {
		t.Errorf("body = %q, want Not Authorized Login Again", w.Body.String())
	}
}

func TestAuth_ValidToken_PassesAndSetsUserID(t *testing.T) {
	tokens := token.NewManager([]byte(testKey))
	signed, err := tokens.Issue("user-abc")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := get(newEngine(), signed)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "user-abc" {
		t.Errorf("body = %q, want %q", got, "user-abc")
	}
}
