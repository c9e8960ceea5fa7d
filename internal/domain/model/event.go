// Package model contains domain entities passed between layers.
package model

import "time"

// Phase is the lifecycle phase of an event. Phases only ever advance
// forward: Draft -> Published -> Judging -> Completed.
type Phase int

// Lifecycle phases in transition order.
const (
	Draft Phase = iota
	Published
	Judging
	Completed
)

// String returns the phase name used on the wire and in logs.
func (p Phase) String() string {
	switch p {
	case Draft:
		return "Draft"
	case Published:
		return "Published"
	case Judging:
		return "Judging"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ParsePhase maps a phase name back to its Phase value.
func ParsePhase(s string) (Phase, bool) {
	switch s {
	case "Draft":
		return Draft, true
	case "Published":
		return Published, true
	case "Judging":
		return Judging, true
	case "Completed":
		return Completed, true
	default:
		return Draft, false
	}
}

// ScoringMethod selects the strategy used to combine judging criteria.
type ScoringMethod string

// Supported scoring methods.
const (
	SimpleAverage   ScoringMethod = "SIMPLE_AVERAGE"
	WeightedAverage ScoringMethod = "WEIGHTED_AVERAGE"
)

// MailMode selects the primary delivery mechanism for an event's
// notifications.
type MailMode string

// Supported mail modes.
const (
	MailgunMode   MailMode = "MAILGUN"   // third-party transactional mail API
	OrganizerMode MailMode = "ORGANIZER" // organizer-supplied SMTP credentials
	DisabledMode  MailMode = "DISABLED"  // no-op sink
)

// Event represents one hackathon instance with a lifecycle phase.
// Phase is mutated only through the lifecycle transition function.
type Event struct {
	ID            string
	Title         string
	Description   string
	StartsAt      time.Time
	EndsAt        time.Time
	Phase         Phase
	ScoringMethod ScoringMethod
	MailMode      MailMode
	SlackEnabled  bool
	OrganizerID   string
}
