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

// TaskRepository persists tasks and their assignee/reviewer rows. Every
// write locks the board row and re-validates the assignment invariant
// inside the same transaction, so a concurrent membership change cannot
// slip an unauthorized assignee in.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskSelect = `
	SELECT t.id::text, t.board_id::text, t.title, t.description, t.priority, t.status,
	       t.due_date, t.owner_id::text, t.created_at, t.updated_at,
	       (SELECT coalesce(array_agg(user_id::text), '{}') FROM task_assignees WHERE task_id = t.id),
	       (SELECT coalesce(array_agg(user_id::text), '{}') FROM task_reviewers WHERE task_id = t.id)
	FROM tasks t
`

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	err := row.Scan(&t.ID, &t.BoardID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt, &t.AssigneeIDs, &t.ReviewerIDs)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := checkBoardAuthority(ctx, tx, t.BoardID, t.AssigneeIDs, t.ReviewerIDs); err != nil {
		return err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO tasks (board_id, title, description, priority, status, due_date, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at, updated_at
	`, t.BoardID, t.Title, t.Description, t.Priority, t.Status, t.DueDate, t.OwnerID)
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	if err := replaceAssignments(ctx, tx, t.ID, t.AssigneeIDs, t.ReviewerIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update never writes board_id; the board reference is immutable after
// creation.
func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := checkBoardAuthority(ctx, tx, t.BoardID, t.AssigneeIDs, t.ReviewerIDs); err != nil {
		return err
	}

	t.UpdatedAt = time.Now()
	res, err := tx.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, status = $4, due_date = $5, updated_at = $6
		WHERE id = $7
	`, t.Title, t.Description, t.Priority, t.Status, t.DueDate, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	if err := replaceAssignments(ctx, tx, t.ID, t.AssigneeIDs, t.ReviewerIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes the task together with its comments and assignment
// rows in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, q := range []string{
		`DELETE FROM comments WHERE task_id = $1`,
		`DELETE FROM task_assignees WHERE task_id = $1`,
		`DELETE FROM task_reviewers WHERE task_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, taskSelect+`WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) ListByBoard(ctx context.Context, boardID string) ([]*entity.Task, error) {
	return r.list(ctx, taskSelect+`WHERE t.board_id = $1 ORDER BY t.created_at`, boardID)
}

func (r *TaskRepository) ListAssignedTo(ctx context.Context, userID string) ([]*entity.Task, error) {
	return r.list(ctx, taskSelect+`
		WHERE EXISTS (SELECT 1 FROM task_assignees a WHERE a.task_id = t.id AND a.user_id::text = $1)
		ORDER BY t.created_at
	`, userID)
}

func (r *TaskRepository) ListReviewedBy(ctx context.Context, userID string) ([]*entity.Task, error) {
	return r.list(ctx, taskSelect+`
		WHERE EXISTS (SELECT 1 FROM task_reviewers w WHERE w.task_id = t.id AND w.user_id::text = $1)
		ORDER BY t.created_at
	`, userID)
}

func (r *TaskRepository) list(ctx context.Context, query string, arg any) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// checkBoardAuthority locks the board row and verifies that every
// assignee and reviewer holds authority over the board at write time.
func checkBoardAuthority(ctx context.Context, tx pgx.Tx, boardID string, assignees, reviewers []string) error {
	b := &entity.Board{ID: boardID}
	row := tx.QueryRow(ctx, `
		SELECT b.owner_id::text,
		       (SELECT coalesce(array_agg(user_id::text), '{}') FROM board_members WHERE board_id = b.id)
		FROM boards b
		WHERE b.id = $1
		FOR SHARE OF b
	`, boardID)
	if err := row.Scan(&b.OwnerID, &b.MemberIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	for _, uid := range assignees {
		if !b.HasAuthority(uid) {
			return repository.ErrAssigneeNotMember
		}
	}
	for _, uid := range reviewers {
		if !b.HasAuthority(uid) {
			return repository.ErrAssigneeNotMember
		}
	}
	return nil
}

func replaceAssignments(ctx context.Context, tx pgx.Tx, taskID string, assignees, reviewers []string) error {
	for _, q := range []string{
		`DELETE FROM task_assignees WHERE task_id = $1`,
		`DELETE FROM task_reviewers WHERE task_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, taskID); err != nil {
			return err
		}
	}
	for _, uid := range assignees {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, taskID, uid); err != nil {
			return err
		}
	}
	for _, uid := range reviewers {
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_reviewers (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, taskID, uid); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
