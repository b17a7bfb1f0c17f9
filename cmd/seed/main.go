package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/Getinger96/KannMind-Backend/config"
	"github.com/Getinger96/KannMind-Backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	ownerID := seedUser(db, "demo@kannmind.dev", "Demo Owner", "password123")
	memberID := seedUser(db, "member@kannmind.dev", "Demo Member", "password123")

	var boardID string
	err = db.QueryRow(`
		INSERT INTO boards (title, owner_id)
		VALUES ('Sprint 1', $1)
		RETURNING id::text
	`, ownerID).Scan(&boardID)
	if err != nil {
		log.Fatalf("failed to seed board: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO board_members (board_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, boardID, memberID); err != nil {
		log.Fatalf("failed to seed board member: %v", err)
	}

	var taskID string
	err = db.QueryRow(`
		INSERT INTO tasks (board_id, title, description, priority, status, due_date, owner_id)
		VALUES ($1, 'Fix login bug', 'Session cookie is dropped on refresh.', 'HIGH', 'TO_DO', current_date + 7, $2)
		RETURNING id::text
	`, boardID, ownerID).Scan(&taskID)
	if err != nil {
		log.Fatalf("failed to seed task: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
	`, taskID, memberID); err != nil {
		log.Fatalf("failed to seed assignee: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO comments (task_id, author_id, content) VALUES ($1, $2, 'Reproduced on staging.')
	`, taskID, memberID); err != nil {
		log.Fatalf("failed to seed comment: %v", err)
	}

	fmt.Printf("seeded board %s with task %s (owner=%s member=%s)\n", boardID, taskID, ownerID, memberID)
}

func seedUser(db *sql.DB, email, fullname, password string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, fullname, avatar_url)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (email) DO UPDATE SET fullname = EXCLUDED.fullname
		RETURNING id::text
	`, email, hash, fullname).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)
	return id
}
