package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/asanbekov/account-api/internal/domain"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	SendVerifyOtp(ctx context.Context, userID string) error
	VerifyAccount(ctx context.Context, userID, code string) error
	SendResetOtp(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type AuthHandler struct {
	auth    authUsecaser
	cookies *SessionCookie
	logger  *slog.Logger
}

func NewAuthHandler(auth authUsecaser, cookies *SessionCookie, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		cookies: cookies,
		logger:  logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		fail(c, errMissingDetails)
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			fail(c, errUserExists)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		fail(c, err.Error())
		return
	}

	h.cookies.Set(c, token)
	ok(c, "")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		fail(c, errCredsRequired)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			fail(c, errInvalidEmail)
		case errors.Is(err, domain.ErrInvalidPassword):
			fail(c, errInvalidPassword)
		default:
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			fail(c, err.Error())
		}
		return
	}

	h.cookies.Set(c, token)
	ok(c, "")
}

// POST /api/auth/logout
// Clears the cookie unconditionally; needs no prior authentication.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	ok(c, "Log out")
}

// POST /api/auth/send-verify-otp
func (h *AuthHandler) SendVerifyOtp(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.auth.SendVerifyOtp(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVerified):
			fail(c, errAlreadyVerified)
		case errors.Is(err, domain.ErrUserNotFound):
			fail(c, errUserNotFound)
		default:
			h.logger.ErrorContext(c.Request.Context(), "send verify otp", "error", err)
			fail(c, err.Error())
		}
		return
	}

	ok(c, "Verification OTP sent on Email")
}

type verifyAccountRequest struct {
	Otp string `json:"otp"`
}

// POST /api/auth/verify-account
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	userID := c.GetString("userID")

	var req verifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil || userID == "" || req.Otp == "" {
		fail(c, errMissingDetails)
		return
	}

	if err := h.auth.VerifyAccount(c.Request.Context(), userID, req.Otp); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			fail(c, errUserNotFound)
		case errors.Is(err, domain.ErrInvalidOTP):
			fail(c, errInvalidOtp)
		case errors.Is(err, domain.ErrOTPExpired):
			fail(c, errOtpExpired)
		default:
			h.logger.ErrorContext(c.Request.Context(), "verify account", "error", err)
			fail(c, err.Error())
		}
		return
	}

	ok(c, "Email Verified successfully")
}

// GET /api/auth/is-auth
// The session middleware already validated the token; nothing left to check.
func (h *AuthHandler) IsAuthenticated(c *gin.Context) {
	ok(c, "")
}

type sendResetOtpRequest struct {
	Email string `json:"email"`
}

// POST /api/auth/send-reset-otp
func (h *AuthHandler) SendResetOtp(c *gin.Context) {
	var req sendResetOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, errEmailRequired)
		return
	}

	if err := h.auth.SendResetOtp(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fail(c, errUserNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "send reset otp", "error", err)
		fail(c, err.Error())
		return
	}

	ok(c, "OTP sent on Email")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Otp         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Otp == "" || req.NewPassword == "" {
		fail(c, errResetFieldsMissing)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			fail(c, errUserNotFound)
		case errors.Is(err, domain.ErrInvalidOTP):
			fail(c, errInvalidOtp)
		case errors.Is(err, domain.ErrOTPExpired):
			fail(c, errOtpExpired)
		default:
			h.logger.ErrorContext(c.Request.Context(), "reset password", "error", err)
			fail(c, err.Error())
		}
		return
	}

	ok(c, "Password has been reset successfully")
}
