package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
	"github.com/Getinger96/KannMind-Backend/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create stamps created_at server-side at insert time. The author's
// display name is resolved in the same statement so the caller can
// render the comment without a second query.
func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO comments (task_id, author_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, author_id, created_at
		)
		SELECT ins.id::text, ins.created_at, u.fullname
		FROM ins JOIN users u ON u.id = ins.author_id
	`, c.TaskID, c.AuthorID, c.Content)
	return row.Scan(&c.ID, &c.CreatedAt, &c.AuthorName)
}

func (r *CommentRepository) GetByID(ctx context.Context, taskID, commentID string) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id::text, c.task_id::text, c.author_id::text, u.fullname, c.content, c.created_at
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.task_id = $2
	`, commentID, taskID)
	if err := row.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.task_id::text, c.author_id::text, u.fullname, c.content, c.created_at
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.task_id = $1
		ORDER BY c.created_at
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Comment{}
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, taskID, commentID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE id = $1 AND task_id = $2
	`, commentID, taskID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
