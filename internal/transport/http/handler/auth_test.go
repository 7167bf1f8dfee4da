package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/asanbekov/account-api/internal/domain"
	"github.com/asanbekov/account-api/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
	"log/slog"
	"os"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register      func(ctx context.Context, name, email, password string) (string, error)
	login         func(ctx context.Context, email, password string) (string, error)
	sendVerifyOtp func(ctx context.Context, userID string) error
	verifyAccount func(ctx context.Context, userID, code string) error
	sendResetOtp  func(ctx context.Context, email string) error
	resetPassword func(ctx context.Context, email, code, newPassword string) error
}

func (f *fakeAuthUsecase) Register(ctx context.Context, name, email, password string) (string, error) {
	return f.register(ctx, name, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) SendVerifyOtp(ctx context.Context, userID string) error {
	return f.sendVerifyOtp(ctx, userID)
}

func (f *fakeAuthUsecase) VerifyAccount(ctx context.Context, userID, code string) error {
	return f.verifyAccount(ctx, userID, code)
}

func (f *fakeAuthUsecase) SendResetOtp(ctx context.Context, email string) error {
	return f.sendResetOtp(ctx, email)
}

func (f *fakeAuthUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return f.resetPassword(ctx, email, code, newPassword)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newTestEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cookies := handler.NewSessionCookie(false, 7*24*time.Hour)
	h := handler.NewAuthHandler(uc, cookies, logger)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	r.POST("/api/auth/send-reset-otp", h.SendResetOtp)
	r.POST("/api/auth/reset-password", h.ResetPassword)
	// Stand-in for the session middleware on protected routes.
	withUser := func(c *gin.Context) { c.Set("userID", "user-1") }
	r.POST("/api/auth/send-verify-otp", withUser, h.SendVerifyOtp)
	r.POST("/api/auth/verify-account", withUser, h.VerifyAccount)
	r.GET("/api/auth/is-auth", withUser, h.IsAuthenticated)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return w, env
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == handler.SessionCookieName {
			return c
		}
	}
	return nil
}

// ---- Register ----

func TestRegister_MissingFields_FailsWithMissingDetails(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@x.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (uniform envelope)", w.Code)
	}
	if env.Success || env.Message != "Missing Details" {
		t.Errorf("envelope = %+v, want failure with Missing Details", env)
	}
	if sessionCookie(w) != nil {
		t.Error("no cookie must be set on failure")
	}
}

func TestRegister_DuplicateEmail_FailsWithUserExists(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _, _ string) (string, error) {
			return "", domain.ErrEmailTaken
		},
	}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@x.com","password":"p1"}`)

	if env.Success || env.Message != "User already exists" {
		t.Errorf("envelope = %+v, want failure with User already exists", env)
	}
}

func TestRegister_Success_SetsSessionCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _, _ string) (string, error) {
			return "signed-token", nil
		},
	}
	w, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@x.com","password":"p1"}`)

	if !env.Success {
		t.Fatalf("envelope = %+v, want success", env)
	}

	c := sessionCookie(w)
	if c == nil {
		t.Fatal("session cookie not set")
	}
	if c.Value != "signed-token" {
		t.Errorf("cookie value = %q, want signed token", c.Value)
	}
	if !c.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if c.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("cookie max-age = %d, want 7 days", c.MaxAge)
	}
}

// ---- Login ----

func TestLogin_UnknownEmail_FailsWithInvalidEmail(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", domain.ErrInvalidEmail
		},
	}
	w, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"p1"}`)

	if env.Success || env.Message != "Invalid email" {
		t.Errorf("envelope = %+v, want failure with Invalid email", env)
	}
	if sessionCookie(w) != nil {
		t.Error("no cookie must be set on failed login")
	}
}

func TestLogin_WrongPassword_FailsWithInvalidPassword(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", domain.ErrInvalidPassword
		},
	}
	w, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"bad"}`)

	if env.Success || env.Message != "Invalid password" {
		t.Errorf("envelope = %+v, want failure with Invalid password", env)
	}
	if sessionCookie(w) != nil {
		t.Error("no cookie must be set on failed login")
	}
}

func TestLogin_MissingFields_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com"}`)

	if env.Success || env.Message != "Email and password are required" {
		t.Errorf("envelope = %+v, want failure with required-fields message", env)
	}
}

func TestLogin_Success_SetsSessionCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "signed-token", nil
		},
	}
	w, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"p1"}`)

	if !env.Success {
		t.Fatalf("envelope = %+v, want success", env)
	}
	if c := sessionCookie(w); c == nil || c.Value != "signed-token" {
		t.Errorf("session cookie = %+v, want signed token", c)
	}
}

// ---- Logout ----

func TestLogout_AlwaysClearsCookie(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/logout", "")

	if !env.Success {
		t.Fatalf("envelope = %+v, want success", env)
	}

	c := sessionCookie(w)
	if c == nil {
		t.Fatal("logout did not touch the session cookie")
	}
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("cookie = %+v, want cleared (empty value, negative max-age)", c)
	}
}

// ---- Verify flow ----

func TestSendVerifyOtp_AlreadyVerified_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{
		sendVerifyOtp: func(_ context.Context, _ string) error {
			return domain.ErrAlreadyVerified
		},
	}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/send-verify-otp", "")

	if env.Success || env.Message != "Account Already verified" {
		t.Errorf("envelope = %+v, want Account Already verified", env)
	}
}

func TestVerifyAccount_MissingOtp_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/verify-account", `{}`)

	if env.Success || env.Message != "Missing Details" {
		t.Errorf("envelope = %+v, want Missing Details", env)
	}
}

func TestVerifyAccount_InvalidOtp_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyAccount: func(_ context.Context, _, _ string) error {
			return domain.ErrInvalidOTP
		},
	}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/verify-account",
		`{"otp":"000000"}`)

	if env.Success || env.Message != "Invalid OTP" {
		t.Errorf("envelope = %+v, want Invalid OTP", env)
	}
}

func TestVerifyAccount_ExpiredOtp_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyAccount: func(_ context.Context, _, _ string) error {
			return domain.ErrOTPExpired
		},
	}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/verify-account",
		`{"otp":"123456"}`)

	if env.Success || env.Message != "OTP Expired" {
		t.Errorf("envelope = %+v, want OTP Expired", env)
	}
}

func TestVerifyAccount_Success(t *testing.T) {
	var gotUserID, gotOtp string
	uc := &fakeAuthUsecase{
		verifyAccount: func(_ context.Context, userID, code string) error {
			gotUserID, gotOtp = userID, code
			return nil
		},
	}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/verify-account",
		`{"otp":"123456"}`)

	if !env.Success {
		t.Fatalf("envelope = %+v, want success", env)
	}
	if gotUserID != "user-1" || gotOtp != "123456" {
		t.Errorf("usecase called with (%q, %q), want (user-1, 123456)", gotUserID, gotOtp)
	}
}

func TestIsAuthenticated_Succeeds(t *testing.T) {
	uc := &fakeAuthUsecase{}
	_, env := doJSON(t, newTestEngine(uc), http.MethodGet, "/api/auth/is-auth", "")

	if !env.Success {
		t.Errorf("envelope = %+v, want success", env)
	}
}

// ---- Reset flow ----

func TestSendResetOtp_MissingEmail_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/send-reset-otp", `{}`)

	if env.Success || env.Message != "Email is required" {
		t.Errorf("envelope = %+v, want Email is required", env)
	}
}

func TestSendResetOtp_UnknownUser_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{
		sendResetOtp: func(_ context.Context, _ string) error {
			return domain.ErrUserNotFound
		},
	}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/send-reset-otp",
		`{"email":"a@x.com"}`)

	if env.Success || env.Message != "User not found" {
		t.Errorf("envelope = %+v, want User not found", env)
	}
}

func TestResetPassword_MissingFields_Fails(t *testing.T) {
	uc := &fakeAuthUsecase{}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/reset-password",
		`{"email":"a@x.com","otp":"123456"}`)

	if env.Success || env.Message != "Email, OTP and new Password are required" {
		t.Errorf("envelope = %+v, want required-fields message", env)
	}
}

func TestResetPassword_Success(t *testing.T) {
	uc := &fakeAuthUsecase{
		resetPassword: func(_ context.Context, _, _, _ string) error { return nil },
	}
	_, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/reset-password",
		`{"email":"a@x.com","otp":"123456","newPassword":"p2"}`)

	if !env.Success || env.Message != "Password has been reset successfully" {
		t.Errorf("envelope = %+v, want reset success message", env)
	}
}

func TestUnexpectedError_StillAnswers200(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("db down")
		},
	}
	w, env := doJSON(t, newTestEngine(uc), http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"p1"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if env.Success {
		t.Errorf("envelope = %+v, want failure", env)
	}
}
