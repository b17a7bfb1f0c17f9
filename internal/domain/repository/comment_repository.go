package repository

import (
	"context"

	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
)

// CommentRepository persists task comments. Create stamps CreatedAt
// server-side at commit time and fills it into the entity.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, taskID, commentID string) (*entity.Comment, error)
	// ListByTask returns comments ordered by creation time.
	ListByTask(ctx context.Context, taskID string) ([]*entity.Comment, error)
	Delete(ctx context.Context, taskID, commentID string) error
}
