package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
	"github.com/Getinger96/KannMind-Backend/internal/domain/repository"
)

// BoardRepository persists boards and their membership rows. The schema
// carries no ON DELETE CASCADE; Delete performs the ordered cascade
// itself inside one transaction.
type BoardRepository struct {
	pool *pgxpool.Pool
}

func NewBoardRepository(pool *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{pool: pool}
}

func (r *BoardRepository) Create(ctx context.Context, b *entity.Board) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO boards (title, owner_id)
		VALUES ($1, $2)
		RETURNING id::text, created_at, updated_at
	`, b.Title, b.OwnerID)
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if err := insertMembers(ctx, tx, b.ID, b.MemberIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *BoardRepository) GetByID(ctx context.Context, id string) (*entity.Board, error) {
	b := &entity.Board{}
	row := r.pool.QueryRow(ctx, `
		SELECT b.id::text, b.title, b.owner_id::text, b.created_at, b.updated_at,
		       (SELECT coalesce(array_agg(user_id::text), '{}') FROM board_members WHERE board_id = b.id)
		FROM boards b
		WHERE b.id = $1
	`, id)
	if err := row.Scan(&b.ID, &b.Title, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt, &b.MemberIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

const boardSummarySelect = `
	SELECT b.id::text, b.title, b.owner_id::text, b.created_at, b.updated_at,
	       (SELECT coalesce(array_agg(user_id::text), '{}') FROM board_members WHERE board_id = b.id),
	       (SELECT count(*) FROM board_members WHERE board_id = b.id),
	       (SELECT count(*) FROM tasks WHERE board_id = b.id),
	       (SELECT count(*) FROM tasks WHERE board_id = b.id AND priority = 'HIGH'),
	       (SELECT count(*) FROM tasks WHERE board_id = b.id AND status = 'TO_DO')
	FROM boards b
`

func scanBoardSummary(row pgx.Row) (*entity.BoardSummary, error) {
	s := &entity.BoardSummary{}
	err := row.Scan(&s.ID, &s.Title, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt, &s.MemberIDs,
		&s.MemberCount, &s.TicketCount, &s.HighPriorityCount, &s.TasksToDoCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *BoardRepository) ListForUser(ctx context.Context, userID string) ([]*entity.BoardSummary, error) {
	rows, err := r.pool.Query(ctx, boardSummarySelect+`
		WHERE b.owner_id::text = $1
		   OR EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = b.id AND m.user_id::text = $1)
		ORDER BY b.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.BoardSummary{}
	for rows.Next() {
		s, err := scanBoardSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *BoardRepository) Summary(ctx context.Context, id string) (*entity.BoardSummary, error) {
	s, err := scanBoardSummary(r.pool.QueryRow(ctx, boardSummarySelect+`WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Update rewrites the title and replaces the member rows. Task
// assignments of removed members stay in place on purpose.
func (r *BoardRepository) Update(ctx context.Context, b *entity.Board) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b.UpdatedAt = time.Now()
	res, err := tx.Exec(ctx, `
		UPDATE boards SET title = $1, updated_at = $2 WHERE id = $3
	`, b.Title, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM board_members WHERE board_id = $1`, b.ID); err != nil {
		return err
	}
	if err := insertMembers(ctx, tx, b.ID, b.MemberIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes the board and everything hanging off it: comments of
// its tasks, then assignment rows, then tasks, then member rows, then
// the board row. The initial FOR UPDATE existence check makes a
// concurrent second delete observe not-found instead of a half-applied
// cascade.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists string
	if err := tx.QueryRow(ctx, `SELECT id::text FROM boards WHERE id = $1 FOR UPDATE`, id).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	steps := []string{
		`DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE board_id = $1)`,
		`DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE board_id = $1)`,
		`DELETE FROM task_reviewers WHERE task_id IN (SELECT id FROM tasks WHERE board_id = $1)`,
		`DELETE FROM tasks WHERE board_id = $1`,
		`DELETE FROM board_members WHERE board_id = $1`,
		`DELETE FROM boards WHERE id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertMembers(ctx context.Context, tx pgx.Tx, boardID string, memberIDs []string) error {
	for _, uid := range memberIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO board_members (board_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, boardID, uid); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.BoardRepository = (*BoardRepository)(nil)
