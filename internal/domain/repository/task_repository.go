package repository

import (
	"context"

	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
)

// TaskRepository persists tasks and their assignee/reviewer
// associations.
//
// Create and Update run in a single transaction that locks the board
// row, re-validates assignees ∪ reviewers against the board's authority
// set at write time, and replaces the association rows. A violation
// surfaces as ErrAssigneeNotMember (a validation failure, not a server
// fault). Update never touches board_id.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
	ListByBoard(ctx context.Context, boardID string) ([]*entity.Task, error)
	ListAssignedTo(ctx context.Context, userID string) ([]*entity.Task, error)
	ListReviewedBy(ctx context.Context, userID string) ([]*entity.Task, error)
}
