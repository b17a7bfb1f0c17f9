package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Getinger96/KannMind-Backend/internal/container"
	handlers "github.com/Getinger96/KannMind-Backend/internal/interface/http"
	"github.com/Getinger96/KannMind-Backend/internal/interface/middleware"
	"github.com/Getinger96/KannMind-Backend/pkg/helpers"
)

// AuthModule wires registration, login, session and profile routes.
// Public: POST /api/registration, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/email-check, profile routes
type AuthModule struct {
	Auth *handlers.AuthHandler
	User *handlers.UserHandler
	JWT  *helpers.JWTManager
}

func NewAuthModule(auth *handlers.AuthHandler, user *handlers.UserHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Auth: auth, User: user, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registrationLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/registration", registrationLimiter, m.Auth.Registration)
	rg.POST("/login", loginLimiter, m.Auth.Login)
	rg.POST("/refresh", refreshLimiter, m.Auth.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/logout", m.Auth.Logout)
		auth.GET("/email-check", m.Auth.EmailCheck)
		auth.GET("/profile", m.User.GetProfile)
		auth.PATCH("/profile", m.User.UpdateProfile)
		auth.PATCH("/profile/avatar", m.User.UploadAvatar)
	}
}
