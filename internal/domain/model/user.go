package model

// Role identifies what a user does within one event.
type Role string

// Roles a user can hold per event.
const (
	RoleOrganizer   Role = "ORGANIZER"
	RoleJudge       Role = "JUDGE"
	RoleParticipant Role = "PARTICIPANT"
)

// ApprovalStatus tracks whether a participation request was accepted.
type ApprovalStatus string

// Approval states for an observer entry.
const (
	Pending  ApprovalStatus = "PENDING"
	Approved ApprovalStatus = "APPROVED"
	Rejected ApprovalStatus = "REJECTED"
)

// User is a platform account. SMTPPassword is set only for organizers
// who run their events in OrganizerMode.
type User struct {
	ID           string
	Username     string
	Email        string
	SMTPPassword string
}
