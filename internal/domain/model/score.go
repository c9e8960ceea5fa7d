package model

// JudgeScoreRecord is one judge's criteria scores for one submission.
// A judge submitting twice produces two independent records; aggregation
// does not dedupe by judge.
type JudgeScoreRecord struct {
	ID           string
	JudgeID      string
	SubmissionID string
	Innovation   float64
	Impact       float64
	Execution    float64
}

// ObserverEntry is one recipient registered for an event's broadcasts.
// Only Approved entries participate.
type ObserverEntry struct {
	UserID  string
	Address string
	Role    Role
	Status  ApprovalStatus
}
