package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/asanbekov/account-api/internal/token"
	"github.com/asanbekov/account-api/internal/transport/http/handler"
	"github.com/asanbekov/account-api/internal/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, tokens *token.Manager, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true, // session cookie must travel cross-origin
		MaxAge:           12 * time.Hour,
	}))

	authMW := middleware.Auth(tokens)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Account API is running"})
	})

	auth := r.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/send-verify-otp", authMW, authHandler.SendVerifyOtp)
	auth.POST("/verify-account", authMW, authHandler.VerifyAccount)
	auth.GET("/is-auth", authMW, authHandler.IsAuthenticated)
	auth.POST("/send-reset-otp", authHandler.SendResetOtp)
	auth.POST("/reset-password", authHandler.ResetPassword)

	user := r.Group("/api/user")
	user.GET("/data", authMW, userHandler.GetData)

	return r
}
