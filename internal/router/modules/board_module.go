package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Getinger96/KannMind-Backend/internal/container"
	handlers "github.com/Getinger96/KannMind-Backend/internal/interface/http"
	"github.com/Getinger96/KannMind-Backend/internal/interface/middleware"
	"github.com/Getinger96/KannMind-Backend/pkg/helpers"
)

// BoardModule wires board CRUD under authentication.
type BoardModule struct {
	Handler *handlers.BoardHandler
	JWT     *helpers.JWTManager
}

func NewBoardModule(h *handlers.BoardHandler, jwt *helpers.JWTManager) *BoardModule {
	return &BoardModule{Handler: h, JWT: jwt}
}

func (m *BoardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/boards")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		auth.GET("/:id", m.Handler.Get)
		auth.PATCH("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
