package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Getinger96/KannMind-Backend/internal/container"
	handlers "github.com/Getinger96/KannMind-Backend/internal/interface/http"
	"github.com/Getinger96/KannMind-Backend/internal/interface/middleware"
	"github.com/Getinger96/KannMind-Backend/pkg/helpers"
)

// TaskModule wires task and comment routes under authentication.
type TaskModule struct {
	Tasks    *handlers.TaskHandler
	Comments *handlers.CommentHandler
	JWT      *helpers.JWTManager
}

func NewTaskModule(tasks *handlers.TaskHandler, comments *handlers.CommentHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Tasks: tasks, Comments: comments, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/tasks")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("", m.Tasks.ListByBoard)
		auth.POST("", m.Tasks.Create)
		auth.GET("/assigned-to-me", m.Tasks.AssignedToMe)
		auth.GET("/reviewing", m.Tasks.Reviewing)
		auth.GET("/search", m.Tasks.Search)
		auth.GET("/:id", m.Tasks.Get)
		auth.PATCH("/:id", m.Tasks.Update)
		auth.DELETE("/:id", m.Tasks.Delete)

		auth.GET("/:id/comments", m.Comments.List)
		auth.POST("/:id/comments", m.Comments.Create)
		auth.DELETE("/:id/comments/:commentId", m.Comments.Delete)
	}
}
