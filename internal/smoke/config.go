package smoke

import "time"

// Config holds configuration for the end-to-end scenario.
type Config struct {
	BaseURL string        // Base URL of the service
	Teams   int           // Number of teams to create and submit for
	Judges  int           // Number of judges scoring every submission
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Enable verbose logging
}

// leaderboardRow mirrors one ranked scoreboard entry on the wire.
type leaderboardRow struct {
	Rank         int     `json:"rank"`
	SubmissionID string  `json:"submission_id"`
	TeamID       string  `json:"team_id"`
	Title        string  `json:"title"`
	Score        float64 `json:"score"`
}

// Stats holds scenario statistics.
type Stats struct {
	TeamsCreated       int
	SubmissionsCreated int
	ScoresRecorded     int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
