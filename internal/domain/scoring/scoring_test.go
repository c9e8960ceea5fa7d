package scoring_test

import (
	"testing"

	model "github.com/mmanav02/WeHack/internal/domain/model"
	scoring "github.com/mmanav02/WeHack/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func record(innovation, impact, execution float64) model.JudgeScoreRecord {
	return model.JudgeScoreRecord{
		Innovation: innovation,
		Impact:     impact,
		Execution:  execution,
	}
}

func TestSimpleAverage(t *testing.T) {
	Convey("Given the simple average strategy", t, func() {
		s := scoring.SimpleAverageStrategy{}

		Convey("When scoring (90, 80, 70)", func() {
			got := s.Score(scoring.Criteria{Innovation: 90, Impact: 80, Execution: 70})
			So(got, ShouldEqual, 80.0)
		})

		Convey("When all criteria are zero", func() {
			So(s.Score(scoring.Criteria{}), ShouldEqual, 0.0)
		})
	})
}

func TestWeightedAverage(t *testing.T) {
	Convey("Given the default 0.40/0.35/0.25 split", t, func() {
		s := scoring.NewWeightedAverage()

		Convey("When scoring (90, 80, 70)", func() {
			got := s.Score(scoring.Criteria{Innovation: 90, Impact: 80, Execution: 70})
			So(got, ShouldAlmostEqual, 81.5, 1e-9)
		})
	})

	Convey("Given a configured split", t, func() {
		s := scoring.NewWeightedAverage(scoring.WithWeights(0.5, 0.3, 0.2))

		Convey("Then the configured weights apply", func() {
			got := s.Score(scoring.Criteria{Innovation: 100, Impact: 50, Execution: 0})
			So(got, ShouldAlmostEqual, 65.0, 1e-9)
		})
	})

	Convey("Given a split that does not sum to 1", t, func() {
		s := scoring.NewWeightedAverage(scoring.WithWeights(4, 3.5, 2.5))

		Convey("Then the split is normalized", func() {
			got := s.Score(scoring.Criteria{Innovation: 90, Impact: 80, Execution: 70})
			So(got, ShouldAlmostEqual, 81.5, 1e-9)
		})
	})

	Convey("Given a non-positive split", t, func() {
		s := scoring.NewWeightedAverage(scoring.WithWeights(0, 0, 0))

		Convey("Then the default split is kept", func() {
			got := s.Score(scoring.Criteria{Innovation: 90, Impact: 80, Execution: 70})
			So(got, ShouldAlmostEqual, 81.5, 1e-9)
		})
	})
}

func TestForMethod(t *testing.T) {
	Convey("Given the event scoring methods", t, func() {
		So(scoring.ForMethod(model.SimpleAverage).Name(), ShouldEqual, "simple-average")
		So(scoring.ForMethod(model.WeightedAverage).Name(), ShouldEqual, "weighted-average")

		Convey("Then an unknown method falls back to the simple average", func() {
			So(scoring.ForMethod(model.ScoringMethod("MEDIAN")).Name(), ShouldEqual, "simple-average")
		})
	})
}

func TestEvaluator(t *testing.T) {
	Convey("Given an evaluator over the simple average", t, func() {
		e := scoring.NewEvaluator(scoring.SimpleAverageStrategy{})

		Convey("When there are no records", func() {
			So(e.Evaluate(nil), ShouldEqual, 0.0)
			So(e.Evaluate([]model.JudgeScoreRecord{}), ShouldEqual, 0.0)
		})

		Convey("When one judge scored", func() {
			got := e.Evaluate([]model.JudgeScoreRecord{record(90, 80, 70)})
			So(got, ShouldEqual, 80.0)
		})

		Convey("When two judges scored", func() {
			got := e.Evaluate([]model.JudgeScoreRecord{
				record(90, 80, 70), // 80
				record(60, 60, 60), // 60
			})
			So(got, ShouldEqual, 70.0)
		})

		Convey("When the same judge scored twice", func() {
			// accumulate, never dedupe: both records count
			got := e.Evaluate([]model.JudgeScoreRecord{
				{JudgeID: "judge-1", Innovation: 90, Impact: 90, Execution: 90},
				{JudgeID: "judge-1", Innovation: 30, Impact: 30, Execution: 30},
			})
			So(got, ShouldEqual, 60.0)
		})
	})

	Convey("Given an evaluator over the weighted average", t, func() {
		e := scoring.NewEvaluator(scoring.NewWeightedAverage())

		Convey("Then per-judge weighting happens before the mean", func() {
			got := e.Evaluate([]model.JudgeScoreRecord{
				record(90, 80, 70), // 81.5
				record(90, 80, 70), // 81.5
			})
			So(got, ShouldAlmostEqual, 81.5, 1e-9)
		})
	})
}
