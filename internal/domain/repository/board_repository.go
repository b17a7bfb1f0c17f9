package repository

import (
	"context"

	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
)

// BoardRepository persists boards and their member associations.
//
// Delete performs the full ordered cascade (comments, task assignment
// rows, tasks, member rows, board) inside a single transaction and
// returns ErrNotFound when the board is already gone, so concurrent
// deletes observe "not found" rather than a partial cascade.
type BoardRepository interface {
	Create(ctx context.Context, b *entity.Board) error
	GetByID(ctx context.Context, id string) (*entity.Board, error)
	// ListForUser returns boards the user owns or is a member of,
	// with the aggregate counts used by list views.
	ListForUser(ctx context.Context, userID string) ([]*entity.BoardSummary, error)
	Summary(ctx context.Context, id string) (*entity.BoardSummary, error)
	// Update writes the title and replaces the member set. Member
	// removal leaves existing task assignments untouched.
	Update(ctx context.Context, b *entity.Board) error
	Delete(ctx context.Context, id string) error
}
