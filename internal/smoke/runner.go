// Package smoke drives a full hackathon lifecycle against a running
// service: event creation, teams, submissions, judging and a leaderboard
// verification pass.
package smoke

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mmanav02/WeHack/pkg/logger"
)

// Run executes the complete lifecycle scenario.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}
	client := &http.Client{Timeout: config.Timeout}
	log := logger.Get()

	log.Info(ctx, "starting lifecycle scenario",
		logger.String("baseURL", config.BaseURL),
		logger.Int("teams", config.Teams),
		logger.Int("judges", config.Judges),
		logger.Int("workers", config.Workers),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create the organizer and the event
	var organizer struct {
		ID string `json:"id"`
	}
	err := postJSON(ctx, client, config.BaseURL+"/users", map[string]any{
		"username": "smoke-organizer",
		"email":    "organizer@example.com",
	}, &organizer)
	if err != nil {
		return fmt.Errorf("organizer creation failed: %w", err)
	}

	var event struct {
		ID string `json:"id"`
	}
	err = postJSON(ctx, client, config.BaseURL+"/events", map[string]any{
		"title":        "Smoke Hackathon",
		"description":  "end to end lifecycle run",
		"organizer_id": organizer.ID,
	}, &event)
	if err != nil {
		return fmt.Errorf("event creation failed: %w", err)
	}

	// Step 3: Publish, then create teams and submissions concurrently
	if err := transition(ctx, client, config.BaseURL, event.ID, "publish"); err != nil {
		return err
	}
	submissionIDs, err := populateTeams(ctx, client, config, event.ID, stats)
	if err != nil {
		return fmt.Errorf("team population failed: %w", err)
	}

	// Step 4: Begin judging and score every submission
	if err := transition(ctx, client, config.BaseURL, event.ID, "begin-judging"); err != nil {
		return err
	}
	if err := scoreSubmissions(ctx, client, config, submissionIDs, stats); err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	// Step 5: Fetch and verify the leaderboard
	var board []leaderboardRow
	if err := getJSON(ctx, client, config.BaseURL+"/events/"+event.ID+"/leaderboard", &board); err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	stats.LeaderboardEntries = len(board)
	if err := verifyBoard(board, config.Teams); err != nil {
		return fmt.Errorf("leaderboard verification failed: %w", err)
	}

	// Step 6: Complete the event
	if err := transition(ctx, client, config.BaseURL, event.ID, "complete"); err != nil {
		return err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "lifecycle scenario passed",
		logger.Int("teams", stats.TeamsCreated),
		logger.Int("submissions", stats.SubmissionsCreated),
		logger.Int("scores", stats.ScoresRecorded),
		logger.Int("board", stats.LeaderboardEntries),
		logger.Duration("duration", stats.Duration),
	)
	return nil
}

func transition(ctx context.Context, client *http.Client, baseURL, eventID, action string) error {
	err := postJSON(ctx, client, baseURL+"/events/"+eventID+"/transition", map[string]any{
		"action": action,
	}, nil)
	if err != nil {
		return fmt.Errorf("transition %q failed: %w", action, err)
	}
	return nil
}

// populateTeams creates one team and one submission per slot, fanning the
// work out over config.Workers goroutines.
func populateTeams(ctx context.Context, client *http.Client, config *Config, eventID string, stats *Stats) ([]string, error) {
	jobs := make(chan int)
	submissionIDs := make([]string, config.Teams)
	errs := make(chan error, config.Teams)

	var wg sync.WaitGroup
	var mu sync.Mutex
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				creator := fmt.Sprintf("user-%d", i)

				var team struct {
					ID string `json:"id"`
				}
				err := postJSON(ctx, client, config.BaseURL+"/events/"+eventID+"/teams", map[string]any{
					"name":       fmt.Sprintf("team-%d", i),
					"creator_id": creator,
				}, &team)
				if err != nil {
					errs <- err
					continue
				}

				var sub struct {
					ID string `json:"id"`
				}
				err = postJSON(ctx, client, config.BaseURL+"/events/"+eventID+"/submissions", map[string]any{
					"team_id":      team.ID,
					"submitter_id": creator,
					"title":        fmt.Sprintf("project-%d", i),
					"description":  "smoke scenario entry",
				}, &sub)
				if err != nil {
					errs <- err
					continue
				}

				submissionIDs[i] = sub.ID
				mu.Lock()
				stats.TeamsCreated++
				stats.SubmissionsCreated++
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < config.Teams; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		return nil, err
	}
	return submissionIDs, nil
}

// scoreSubmissions has every judge score every submission. Criteria are
// derived from the indexes so the expected ordering is deterministic.
func scoreSubmissions(ctx context.Context, client *http.Client, config *Config, submissionIDs []string, stats *Stats) error {
	for j := 0; j < config.Judges; j++ {
		judge := fmt.Sprintf("judge-%d", j)
		for i, subID := range submissionIDs {
			// Later teams score lower, so rank order mirrors creation order.
			value := float64(10*(len(submissionIDs)-i)) / float64(len(submissionIDs))
			err := postJSON(ctx, client, config.BaseURL+"/submissions/"+subID+"/scores", map[string]any{
				"judge_id":   judge,
				"innovation": value,
				"impact":     value,
				"execution":  value,
			}, nil)
			if err != nil {
				return err
			}
			stats.ScoresRecorded++
		}
	}
	return nil
}

// verifyBoard checks the ranked ordering invariants on the scoreboard.
func verifyBoard(board []leaderboardRow, teams int) error {
	if len(board) != teams {
		return fmt.Errorf("expected %d entries, got %d", teams, len(board))
	}
	for i, row := range board {
		if row.Rank != i+1 {
			return fmt.Errorf("entry %d has rank %d", i, row.Rank)
		}
		if i > 0 && board[i-1].Score < row.Score {
			return fmt.Errorf("scores out of order at rank %d", row.Rank)
		}
	}
	return nil
}
