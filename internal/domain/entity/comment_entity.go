package entity

import "time"

// Comment is a threaded note on a task. CreatedAt is stamped by the
// store at commit time, never taken from a client.
type Comment struct {
	ID         string
	TaskID     string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}
