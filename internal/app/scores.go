package service

import (
	"context"
	"sort"

	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/internal/domain/scoring"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// ScoreInput is one judge's criteria scores for one submission.
type ScoreInput struct {
	SubmissionID string
	JudgeID      string
	Innovation   float64
	Impact       float64
	Execution    float64
}

// LeaderboardEntry is one ranked row of an event's scoreboard.
type LeaderboardEntry struct {
	Rank         int
	SubmissionID string
	TeamID       string
	Title        string
	Score        float64
}

// SubmitJudgeScore appends a judge's criteria record. Records accumulate;
// a judge scoring the same submission twice produces two records.
func (s *Service) SubmitJudgeScore(ctx context.Context, in ScoreInput) (model.JudgeScoreRecord, error) {
	for _, v := range []float64{in.Innovation, in.Impact, in.Execution} {
		if v < 0 || v > 10 {
			return model.JudgeScoreRecord{}, ErrScoreOutOfRange
		}
	}

	if _, err := s.submissions.Get(ctx, in.SubmissionID); err != nil {
		return model.JudgeScoreRecord{}, err
	}

	record, err := s.scores.Append(ctx, model.JudgeScoreRecord{
		JudgeID:      in.JudgeID,
		SubmissionID: in.SubmissionID,
		Innovation:   in.Innovation,
		Impact:       in.Impact,
		Execution:    in.Execution,
	})
	if err != nil {
		return model.JudgeScoreRecord{}, err
	}

	metrics.RecordJudgeScore()
	return record, nil
}

// GetFinalScore evaluates all judge records for a submission with the
// event's configured strategy. No records means 0.0, not an error.
func (s *Service) GetFinalScore(ctx context.Context, submissionID string) (float64, error) {
	sub, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		return 0, err
	}

	event, err := s.events.Get(ctx, sub.EventID)
	if err != nil {
		return 0, err
	}

	records, err := s.scores.BySubmission(ctx, submissionID)
	if err != nil {
		return 0, err
	}

	evaluator := scoring.NewEvaluator(s.strategyFor(event.ScoringMethod))
	return evaluator.Evaluate(records), nil
}

// GetLeaderboard ranks an event's submissions by evaluated score. It stays
// empty while the event is Draft or Published; once judging starts it sorts
// by score descending with submission id ascending as the tie-break.
func (s *Service) GetLeaderboard(ctx context.Context, eventID string) ([]LeaderboardEntry, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	metrics.RecordLeaderboardQuery()

	if event.Phase == model.Draft || event.Phase == model.Published {
		return []LeaderboardEntry{}, nil
	}

	subs, err := s.submissions.ByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	evaluator := scoring.NewEvaluator(s.strategyFor(event.ScoringMethod))
	entries := make([]LeaderboardEntry, 0, len(subs))
	for _, sub := range subs {
		records, err := s.scores.BySubmission(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			SubmissionID: sub.ID,
			TeamID:       sub.TeamID,
			Title:        sub.Title,
			Score:        evaluator.Evaluate(records),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].SubmissionID < entries[j].SubmissionID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
