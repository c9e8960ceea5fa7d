package model

import "time"

// Comment is one discussion entry on an event. ParentID links a reply to
// the comment it answers; top-level comments leave it empty. Replies is
// assembled at read time and never persisted.
type Comment struct {
	ID        string
	EventID   string
	AuthorID  string
	ParentID  string
	Content   string
	CreatedAt time.Time
	Replies   []Comment
}
