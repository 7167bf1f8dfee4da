package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/asanbekov/account-api/internal/domain"
	"github.com/asanbekov/account-api/internal/email"
	"github.com/asanbekov/account-api/internal/metrics"
	"github.com/asanbekov/account-api/internal/otp"
	"github.com/asanbekov/account-api/internal/repository"
	"github.com/asanbekov/account-api/internal/token"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10
	otpTTL     = 24 * time.Hour
)

// AuthUsecase drives every identity-state transition: registration, login,
// account verification, and password reset.
type AuthUsecase struct {
	users  repository.UserRepository
	email  email.Sender
	tokens *token.Manager
	logger *slog.Logger
	otpTTL time.Duration
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, tokens *token.Manager, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		email:  emailSender,
		tokens: tokens,
		logger: logger.With("component", "auth_usecase"),
		otpTTL: otpTTL,
	}
}

// Register hashes the password, creates an unverified user, and returns a
// signed session token. The welcome email is best-effort: a send failure is
// logged but does not roll back the account.
func (u *AuthUsecase) Register(ctx context.Context, name, emailAddr, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:     name,
		Email:    emailAddr,
		Password: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	signed, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}

	subject := "Welcome to Ahmad Services"
	body := fmt.Sprintf("Welcome to Ahmad Services website. Your account has been created with email id: %s.", emailAddr)
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "welcome email", "error", err)
	}

	metrics.RegistrationsTotal.Inc()
	return signed, nil
}

// Login verifies the credentials and returns a signed session token.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidEmail
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", domain.ErrInvalidPassword
	}

	signed, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}

	metrics.LoginsTotal.Inc()
	return signed, nil
}

// SendVerifyOtp stores a fresh verification OTP (overwriting any outstanding
// one) and emails it. Fails if the account is already verified.
func (u *AuthUsecase) SendVerifyOtp(ctx context.Context, userID string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.IsAccountVerified {
		return domain.ErrAlreadyVerified
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}

	expireAt := time.Now().Add(u.otpTTL).UnixMilli()
	if err := u.users.SetVerifyOtp(ctx, userID, code, expireAt); err != nil {
		return fmt.Errorf("store verify otp: %w", err)
	}

	subject := "Account Verification OTP"
	body := fmt.Sprintf("Your OTP is %s. Verify your account using this OTP.", code)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("send verify otp: %w", err)
	}

	metrics.OtpEmailsTotal.WithLabelValues("verify").Inc()
	return nil
}

// VerifyAccount checks the submitted OTP against the stored one and, on
// match, marks the account verified and clears the OTP pair.
func (u *AuthUsecase) VerifyAccount(ctx context.Context, userID, code string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.VerifyOtp == "" || user.VerifyOtp != code {
		return domain.ErrInvalidOTP
	}
	if user.VerifyOtpExpireAt < time.Now().UnixMilli() {
		return domain.ErrOTPExpired
	}

	if err := u.users.MarkVerified(ctx, userID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	metrics.VerificationsTotal.Inc()
	return nil
}

// SendResetOtp stores a fresh password-reset OTP and emails it. Public by
// design: the caller is presumably locked out of their account.
func (u *AuthUsecase) SendResetOtp(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}

	expireAt := time.Now().Add(u.otpTTL).UnixMilli()
	if err := u.users.SetResetOtp(ctx, user.ID.Hex(), code, expireAt); err != nil {
		return fmt.Errorf("store reset otp: %w", err)
	}

	subject := "Password Reset OTP"
	body := fmt.Sprintf("Your OTP for resetting password is %s. Use this OTP to proceed with resetting your password.", code)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("send reset otp: %w", err)
	}

	metrics.OtpEmailsTotal.WithLabelValues("reset").Inc()
	return nil
}

// ResetPassword validates the reset OTP, rehashes the new password, and
// clears the OTP pair.
func (u *AuthUsecase) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.ResetOtp == "" || user.ResetOtp != code {
		return domain.ErrInvalidOTP
	}
	if user.ResetOtpExpireAt < time.Now().UnixMilli() {
		return domain.ErrOTPExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := u.users.ResetPassword(ctx, user.ID.Hex(), string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	metrics.PasswordResetsTotal.Inc()
	return nil
}
