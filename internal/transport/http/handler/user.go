package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/asanbekov/account-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	GetData(ctx context.Context, userID string) (*domain.User, error)
}

type UserHandler struct {
	users  userUsecaser
	logger *slog.Logger
}

func NewUserHandler(users userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

type userData struct {
	Name              string `json:"name"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// GET /api/user/data
func (h *UserHandler) GetData(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.users.GetData(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fail(c, errUserNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get user data", "error", err)
		fail(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		UserData: userData{
			Name:              user.Name,
			IsAccountVerified: user.IsAccountVerified,
		},
	})
}
