package entity

import "time"

// Priority levels a task can carry.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority maps a wire value to a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// Status values for a task. There is no enforced transition graph: any
// authorized update may set any status.
type Status string

const (
	StatusToDo       Status = "TO_DO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusFinished   Status = "FINISHED"
)

// ParseStatus maps a wire value to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusToDo, StatusInProgress, StatusInReview, StatusFinished:
		return Status(s), true
	}
	return "", false
}

// Task belongs to exactly one board; BoardID is immutable after creation.
// OwnerID is the creating user. Every assignee and reviewer must hold
// authority over the board at the time they are assigned.
type Task struct {
	ID          string
	BoardID     string
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     time.Time
	OwnerID     string
	AssigneeIDs []string
	ReviewerIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResolveBoardID lets authorization code climb from a task to its board
// without inspecting concrete types.
func (t *Task) ResolveBoardID() string { return t.BoardID }
