package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/asanbekov/account-api/internal/domain"
	"github.com/asanbekov/account-api/internal/repository"
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// GetData loads the profile of an authenticated user.
func (u *UserUsecase) GetData(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
