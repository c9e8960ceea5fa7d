package model

import "time"

// Submission is a team's project entry for an event. Title, Description,
// ProjectURL and FilePointer are the mutable content fields covered by
// mementos; everything else is identity or relation and never rolls back.
type Submission struct {
	ID          string
	TeamID      string
	EventID     string
	SubmitterID string
	Title       string
	Description string
	ProjectURL  string
	FilePointer string
	Primary     bool
	SubmittedAt time.Time
}

// SubmissionMemento is an immutable snapshot of a submission's mutable
// content fields. Identity and relations are deliberately excluded.
type SubmissionMemento struct {
	SubmissionID string
	Title        string
	Description  string
	ProjectURL   string
	FilePointer  string
	SavedAt      time.Time
}

// Memento snapshots the submission's mutable fields.
func (s *Submission) Memento(now time.Time) SubmissionMemento {
	return SubmissionMemento{
		SubmissionID: s.ID,
		Title:        s.Title,
		Description:  s.Description,
		ProjectURL:   s.ProjectURL,
		FilePointer:  s.FilePointer,
		SavedAt:      now,
	}
}

// Restore rolls back only the mutable content fields from a memento.
// ID, team, event and submitter linkage stay untouched.
func (s *Submission) Restore(m SubmissionMemento) {
	s.Title = m.Title
	s.Description = m.Description
	s.ProjectURL = m.ProjectURL
	s.FilePointer = m.FilePointer
}
