package model

// Team groups users within one event. SubmissionID points at the team's
// current submission and is updated on every accepted write or undo.
type Team struct {
	ID           string
	Name         string
	EventID      string
	MemberIDs    []string
	SubmissionID string
}

// Has reports whether userID is a current member of the team.
func (t *Team) Has(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
