package repository

import (
	"context"

	"github.com/asanbekov/account-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	SetVerifyOtp(ctx context.Context, id, otp string, expireAt int64) error
	MarkVerified(ctx context.Context, id string) error
	SetResetOtp(ctx context.Context, id, otp string, expireAt int64) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
	ClearExpiredOtps(ctx context.Context, now int64) (int64, error)
}
