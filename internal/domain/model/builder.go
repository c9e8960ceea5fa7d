package model

import "time"

// SubmissionBuilder assembles a submission step by step. Team and Title are
// mandatory; Build fails fast with a distinct error when either is missing.
type SubmissionBuilder struct {
	submission Submission
	hasTeam    bool
}

// NewSubmissionBuilder returns an empty builder.
func NewSubmissionBuilder() *SubmissionBuilder {
	return &SubmissionBuilder{}
}

// Team sets the owning team and the event linkage derived from it.
func (b *SubmissionBuilder) Team(t *Team) *SubmissionBuilder {
	if t != nil {
		b.submission.TeamID = t.ID
		b.submission.EventID = t.EventID
		b.hasTeam = true
	}
	return b
}

// Title sets the submission title.
func (b *SubmissionBuilder) Title(title string) *SubmissionBuilder {
	b.submission.Title = title
	return b
}

// Description sets the optional description.
func (b *SubmissionBuilder) Description(desc string) *SubmissionBuilder {
	b.submission.Description = desc
	return b
}

// ProjectURL sets the optional external link.
func (b *SubmissionBuilder) ProjectURL(url string) *SubmissionBuilder {
	b.submission.ProjectURL = url
	return b
}

// FilePointer sets the optional attachment pointer.
func (b *SubmissionBuilder) FilePointer(ptr string) *SubmissionBuilder {
	b.submission.FilePointer = ptr
	return b
}

// Submitter sets the submitting user.
func (b *SubmissionBuilder) Submitter(userID string) *SubmissionBuilder {
	b.submission.SubmitterID = userID
	return b
}

// SubmittedAt stamps the submission time.
func (b *SubmissionBuilder) SubmittedAt(t time.Time) *SubmissionBuilder {
	b.submission.SubmittedAt = t
	return b
}

// Build validates the mandatory fields and returns the submission.
func (b *SubmissionBuilder) Build() (Submission, error) {
	if !b.hasTeam {
		return Submission{}, ErrMissingTeam
	}
	if b.submission.Title == "" {
		return Submission{}, ErrMissingTitle
	}
	return b.submission, nil
}
