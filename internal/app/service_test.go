package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/mmanav02/WeHack/internal/adapters/repository"
	service "github.com/mmanav02/WeHack/internal/app"
	"github.com/mmanav02/WeHack/internal/domain/guard"
	"github.com/mmanav02/WeHack/internal/domain/history"
	"github.com/mmanav02/WeHack/internal/domain/lifecycle"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/internal/domain/validate"
	"github.com/mmanav02/WeHack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// fixture builds a service whose guard clock can be advanced by tests.
type fixture struct {
	svc *service.Service
	now time.Time
}

func newFixture(opts ...service.Option) *fixture {
	f := &fixture{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }
	opts = append(opts,
		service.WithGuard(guard.New(validate.NewChain(), guard.WithClock(clock))),
		service.WithClock(clock),
	)
	f.svc = service.New(opts...)
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fixture) seedEvent(ctx context.Context) model.Event {
	event, err := f.svc.CreateEvent(ctx, model.Event{
		Title:       "Spring Hack",
		OrganizerID: "org-1",
	})
	So(err, ShouldBeNil)
	return event
}

func (f *fixture) seedTeam(ctx context.Context, eventID, name, creator string) model.Team {
	team, err := f.svc.CreateTeam(ctx, eventID, name, creator)
	So(err, ShouldBeNil)
	return team
}

func submissionInput(eventID, teamID, submitter, title string) service.SubmissionInput {
	return service.SubmissionInput{
		EventID:     eventID,
		TeamID:      teamID,
		SubmitterID: submitter,
		Title:       title,
		Description: "a project",
	}
}

func TestService_CreateEvent(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		f := newFixture()

		Convey("When creating an event with no enums set", func() {
			event := f.seedEvent(ctx)

			Convey("Then it starts in Draft with safe defaults", func() {
				So(event.ID, ShouldNotBeEmpty)
				So(event.Phase, ShouldEqual, model.Draft)
				So(event.ScoringMethod, ShouldEqual, model.SimpleAverage)
				So(event.MailMode, ShouldEqual, model.DisabledMode)
			})
		})

		Convey("When creating an event that claims to be Judging already", func() {
			event, err := f.svc.CreateEvent(ctx, model.Event{Title: "x", Phase: model.Judging})
			So(err, ShouldBeNil)

			Convey("Then the phase is forced back to Draft", func() {
				So(event.Phase, ShouldEqual, model.Draft)
			})
		})
	})
}

func TestService_TransitionEvent(t *testing.T) {
	Convey("Given an event in Draft", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)

		Convey("When publishing", func() {
			saved, err := f.svc.TransitionEvent(ctx, event.ID, lifecycle.Publish)

			Convey("Then the event is Published", func() {
				So(err, ShouldBeNil)
				So(saved.Phase, ShouldEqual, model.Published)
			})
		})

		Convey("When skipping straight to judging", func() {
			_, err := f.svc.TransitionEvent(ctx, event.ID, lifecycle.BeginJudging)

			Convey("Then the transition is rejected and the phase unchanged", func() {
				So(errors.Is(err, lifecycle.ErrInvalidTransition), ShouldBeTrue)
				got, gerr := f.svc.GetEvent(ctx, event.ID)
				So(gerr, ShouldBeNil)
				So(got.Phase, ShouldEqual, model.Draft)
			})
		})

		Convey("When repeating the current phase", func() {
			_, err := f.svc.TransitionEvent(ctx, event.ID, lifecycle.Publish)
			So(err, ShouldBeNil)
			_, err = f.svc.TransitionEvent(ctx, event.ID, lifecycle.Publish)

			Convey("Then the no-op is reported, not accepted", func() {
				So(errors.Is(err, lifecycle.ErrAlreadyInPhase), ShouldBeTrue)
			})
		})

		Convey("When transitioning a missing event", func() {
			_, err := f.svc.TransitionEvent(ctx, "ghost", lifecycle.Publish)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Teams(t *testing.T) {
	Convey("Given an event", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)

		Convey("When a user creates a team", func() {
			team := f.seedTeam(ctx, event.ID, "Gophers", "u1")

			Convey("Then they are its first member", func() {
				So(team.ID, ShouldNotBeEmpty)
				So(team.Has("u1"), ShouldBeTrue)
			})

			Convey("And they cannot create a second team in the same event", func() {
				_, err := f.svc.CreateTeam(ctx, event.ID, "Double", "u1")
				So(errors.Is(err, service.ErrAlreadyInTeam), ShouldBeTrue)
			})

			Convey("And a member of another team cannot join", func() {
				f.seedTeam(ctx, event.ID, "Rustaceans", "u2")
				_, err := f.svc.JoinTeam(ctx, team.ID, "u2")
				So(errors.Is(err, service.ErrAlreadyInTeam), ShouldBeTrue)
			})

			Convey("And a fresh user can join", func() {
				joined, err := f.svc.JoinTeam(ctx, team.ID, "u3")
				So(err, ShouldBeNil)
				So(joined.Has("u3"), ShouldBeTrue)
			})

			Convey("And joining twice is idempotent", func() {
				_, err := f.svc.JoinTeam(ctx, team.ID, "u1")
				So(err, ShouldBeNil)
				got, gerr := f.svc.ListTeams(ctx, event.ID)
				So(gerr, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(len(got[0].MemberIDs), ShouldEqual, 1)
			})
		})
	})
}

func TestService_CreateSubmission(t *testing.T) {
	Convey("Given an event with one team", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)
		team := f.seedTeam(ctx, event.ID, "Gophers", "u1")

		Convey("When a member submits a valid project", func() {
			sub, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "Parser"))

			Convey("Then the submission persists and the team points at it", func() {
				So(err, ShouldBeNil)
				So(sub.ID, ShouldNotBeEmpty)
				teams, terr := f.svc.ListTeams(ctx, event.ID)
				So(terr, ShouldBeNil)
				So(teams[0].SubmissionID, ShouldEqual, sub.ID)
			})
		})

		Convey("When a non-member submits", func() {
			_, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "intruder", "Parser"))
			So(errors.Is(err, service.ErrNotTeamMember), ShouldBeTrue)
		})

		Convey("When the claimed event does not match the team", func() {
			other := f.seedEvent(ctx)
			_, err := f.svc.CreateSubmission(ctx, submissionInput(other.ID, team.ID, "u1", "Parser"))
			So(errors.Is(err, service.ErrEventMismatch), ShouldBeTrue)
		})

		Convey("When the title is empty", func() {
			_, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", ""))

			Convey("Then validation rejects it with the failing check", func() {
				So(errors.Is(err, validate.ErrValidationFailed), ShouldBeTrue)
				var verr *validate.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Check, ShouldEqual, "title")
			})
		})

		Convey("When submitting twice inside the cooldown window", func() {
			_, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "v1"))
			So(err, ShouldBeNil)
			f.advance(30 * time.Second)
			_, err = f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "v2"))

			Convey("Then the second write is rate limited", func() {
				So(errors.Is(err, guard.ErrRateLimited), ShouldBeTrue)
			})

			Convey("And it succeeds after the window elapses", func() {
				f.advance(61 * time.Second)
				_, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "v2"))
				So(err, ShouldBeNil)
			})
		})

		Convey("When an attachment is included", func() {
			in := submissionInput(event.ID, team.ID, "u1", "Parser")
			in.File = []byte("report body")
			in.FileName = "report.pdf"
			sub, err := f.svc.CreateSubmission(ctx, in)

			Convey("Then the stored pointer lands on the submission", func() {
				So(err, ShouldBeNil)
				So(sub.FilePointer, ShouldNotBeEmpty)
			})
		})
	})
}

func TestService_EditAndUndo(t *testing.T) {
	Convey("Given a team with one submission", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)
		team := f.seedTeam(ctx, event.ID, "Gophers", "u1")
		sub, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "v1"))
		So(err, ShouldBeNil)

		edit := func(title string) (model.Submission, error) {
			f.advance(61 * time.Second)
			return f.svc.EditSubmission(ctx, service.EditInput{
				SubmissionID: sub.ID,
				EventID:      event.ID,
				SubmitterID:  "u1",
				Title:        title,
				Description:  "a project",
			})
		}

		Convey("When a member edits it", func() {
			saved, err := edit("v2")

			Convey("Then the content is replaced in place", func() {
				So(err, ShouldBeNil)
				So(saved.ID, ShouldEqual, sub.ID)
				So(saved.Title, ShouldEqual, "v2")
			})
		})

		Convey("When a non-member edits it", func() {
			f.advance(61 * time.Second)
			_, err := f.svc.EditSubmission(ctx, service.EditInput{
				SubmissionID: sub.ID,
				EventID:      event.ID,
				SubmitterID:  "intruder",
				Title:        "v2",
				Description:  "a project",
			})
			So(errors.Is(err, service.ErrNotTeamMember), ShouldBeTrue)
		})

		Convey("When the edit claims the wrong event", func() {
			other := f.seedEvent(ctx)
			f.advance(61 * time.Second)
			_, err := f.svc.EditSubmission(ctx, service.EditInput{
				SubmissionID: sub.ID,
				EventID:      other.ID,
				SubmitterID:  "u1",
				Title:        "v2",
				Description:  "a project",
			})
			So(errors.Is(err, service.ErrEventMismatch), ShouldBeTrue)
		})

		Convey("When undoing after two edits", func() {
			_, err := edit("v2")
			So(err, ShouldBeNil)
			_, err = edit("v3")
			So(err, ShouldBeNil)

			// The stack holds v1, v2, v3: the first pop re-applies the
			// current content, the next ones walk backward.
			restored, err := f.svc.UndoSubmission(ctx, team.ID, sub.ID, event.ID)
			So(err, ShouldBeNil)
			So(restored.Title, ShouldEqual, "v3")

			restored, err = f.svc.UndoSubmission(ctx, team.ID, sub.ID, event.ID)
			So(err, ShouldBeNil)
			So(restored.Title, ShouldEqual, "v2")

			restored, err = f.svc.UndoSubmission(ctx, team.ID, sub.ID, event.ID)
			So(err, ShouldBeNil)
			So(restored.Title, ShouldEqual, "v1")

			Convey("Then a further undo reports exhausted history", func() {
				_, err := f.svc.UndoSubmission(ctx, team.ID, sub.ID, event.ID)
				So(errors.Is(err, history.ErrHistoryEmpty), ShouldBeTrue)
			})

			Convey("And identity survives every restore", func() {
				got, gerr := f.svc.GetEvent(ctx, event.ID)
				So(gerr, ShouldBeNil)
				So(got.ID, ShouldEqual, event.ID)
				So(restored.ID, ShouldEqual, sub.ID)
				So(restored.TeamID, ShouldEqual, team.ID)
				So(restored.EventID, ShouldEqual, event.ID)
			})
		})

		Convey("When undoing against the wrong team", func() {
			_, err := f.svc.UndoSubmission(ctx, "other-team", sub.ID, event.ID)
			So(errors.Is(err, service.ErrEventMismatch), ShouldBeTrue)
		})
	})
}

func TestService_SetPrimarySubmission(t *testing.T) {
	Convey("Given a team with two submissions", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)
		team := f.seedTeam(ctx, event.ID, "Gophers", "u1")

		first, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "first"))
		So(err, ShouldBeNil)
		f.advance(61 * time.Second)
		second, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "second"))
		So(err, ShouldBeNil)

		Convey("When a member marks the first primary, then the second", func() {
			_, err := f.svc.SetPrimarySubmission(ctx, first.ID, "u1")
			So(err, ShouldBeNil)
			saved, err := f.svc.SetPrimarySubmission(ctx, second.ID, "u1")
			So(err, ShouldBeNil)
			So(saved.Primary, ShouldBeTrue)

			Convey("Then only one primary remains for the pair", func() {
				got, gerr := f.svc.GetSubmission(ctx, first.ID)
				So(gerr, ShouldBeNil)
				So(got.Primary, ShouldBeFalse)
				got, gerr = f.svc.GetSubmission(ctx, second.ID)
				So(gerr, ShouldBeNil)
				So(got.Primary, ShouldBeTrue)
			})
		})

		Convey("When a non-member tries", func() {
			_, err := f.svc.SetPrimarySubmission(ctx, first.ID, "intruder")
			So(errors.Is(err, service.ErrNotTeamMember), ShouldBeTrue)
		})

		Convey("When judging has started", func() {
			_, err := f.svc.TransitionEvent(ctx, event.ID, lifecycle.Publish)
			So(err, ShouldBeNil)
			_, err = f.svc.TransitionEvent(ctx, event.ID, lifecycle.BeginJudging)
			So(err, ShouldBeNil)

			_, err = f.svc.SetPrimarySubmission(ctx, first.ID, "u1")
			So(errors.Is(err, service.ErrPhaseLocked), ShouldBeTrue)
		})
	})
}

func TestService_Scores(t *testing.T) {
	Convey("Given a submission", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)
		team := f.seedTeam(ctx, event.ID, "Gophers", "u1")
		sub, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "Parser"))
		So(err, ShouldBeNil)

		Convey("When a judge scores it", func() {
			_, err := f.svc.SubmitJudgeScore(ctx, service.ScoreInput{
				SubmissionID: sub.ID, JudgeID: "j1",
				Innovation: 9, Impact: 8, Execution: 7,
			})
			So(err, ShouldBeNil)

			Convey("Then the final score is the simple average", func() {
				score, serr := f.svc.GetFinalScore(ctx, sub.ID)
				So(serr, ShouldBeNil)
				So(score, ShouldAlmostEqual, 8.0)
			})

			Convey("And a second record from the same judge accumulates", func() {
				_, err := f.svc.SubmitJudgeScore(ctx, service.ScoreInput{
					SubmissionID: sub.ID, JudgeID: "j1",
					Innovation: 3, Impact: 2, Execution: 1,
				})
				So(err, ShouldBeNil)
				score, serr := f.svc.GetFinalScore(ctx, sub.ID)
				So(serr, ShouldBeNil)
				So(score, ShouldAlmostEqual, 5.0)
			})
		})

		Convey("When criteria fall outside 0..10", func() {
			_, err := f.svc.SubmitJudgeScore(ctx, service.ScoreInput{
				SubmissionID: sub.ID, JudgeID: "j1",
				Innovation: 11, Impact: 8, Execution: 7,
			})
			So(errors.Is(err, service.ErrScoreOutOfRange), ShouldBeTrue)
		})

		Convey("When the submission is unknown", func() {
			_, err := f.svc.SubmitJudgeScore(ctx, service.ScoreInput{SubmissionID: "ghost", JudgeID: "j1"})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When no records exist", func() {
			score, serr := f.svc.GetFinalScore(ctx, sub.ID)
			So(serr, ShouldBeNil)
			So(score, ShouldEqual, 0.0)
		})
	})
}

func TestService_DeleteEvent(t *testing.T) {
	Convey("Given an event with a team, submission, score, comment and observers", t, func() {
		ctx := context.Background()
		scoreStore := repository.NewMemScoreStore()
		commentStore := repository.NewMemCommentStore()
		f := newFixture(
			service.WithScoreStore(scoreStore),
			service.WithCommentStore(commentStore),
		)
		event := f.seedEvent(ctx)
		team := f.seedTeam(ctx, event.ID, "Gophers", "u1")
		sub, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "Parser"))
		So(err, ShouldBeNil)
		_, err = f.svc.SubmitJudgeScore(ctx, service.ScoreInput{
			SubmissionID: sub.ID, JudgeID: "j1",
			Innovation: 7, Impact: 8, Execution: 9,
		})
		So(err, ShouldBeNil)
		author, err := f.svc.CreateUser(ctx, model.User{Username: "u1", Email: "u1@example.com"})
		So(err, ShouldBeNil)
		_, err = f.svc.AddComment(ctx, service.CommentInput{
			EventID: event.ID, AuthorID: author.ID, Content: "good luck all",
		})
		So(err, ShouldBeNil)
		So(f.svc.RegisterObserver(ctx, event.ID, model.ObserverEntry{
			UserID: "watcher", Address: "w@example.com",
			Role: model.RoleParticipant, Status: model.Approved,
		}), ShouldBeNil)

		Convey("When deleting the event", func() {
			err := f.svc.DeleteEvent(ctx, event.ID)
			So(err, ShouldBeNil)

			Convey("Then the event and its dependents are gone", func() {
				_, gerr := f.svc.GetEvent(ctx, event.ID)
				So(errors.Is(gerr, repository.ErrNotFound), ShouldBeTrue)
				teams, terr := f.svc.ListTeams(ctx, event.ID)
				So(terr, ShouldBeNil)
				So(len(teams), ShouldEqual, 0)
			})

			Convey("Then no judge score records survive the teardown", func() {
				records, rerr := scoreStore.BySubmission(ctx, sub.ID)
				So(rerr, ShouldBeNil)
				So(len(records), ShouldEqual, 0)
			})

			Convey("Then the discussion is gone with the event", func() {
				comments, cerr := commentStore.ByEvent(ctx, event.ID)
				So(cerr, ShouldBeNil)
				So(len(comments), ShouldEqual, 0)
			})
		})

		Convey("When deleting a missing event", func() {
			err := f.svc.DeleteEvent(ctx, "ghost")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

// flakySubmissionStore fails writes on demand while delegating everything
// else to a real store.
type flakySubmissionStore struct {
	repository.SubmissionStore
	fail bool
}

func (s *flakySubmissionStore) Put(ctx context.Context, sub model.Submission) (model.Submission, error) {
	if s.fail {
		return model.Submission{}, errors.New("store unavailable")
	}
	return s.SubmissionStore.Put(ctx, sub)
}

func TestService_SubmissionPersistFailure(t *testing.T) {
	Convey("Given a submission store whose writes fail", t, func() {
		ctx := context.Background()
		store := &flakySubmissionStore{SubmissionStore: repository.NewMemSubmissionStore(), fail: true}
		f := newFixture(service.WithSubmissionStore(store))
		event := f.seedEvent(ctx)
		team := f.seedTeam(ctx, event.ID, "Gophers", "u1")

		Convey("When the persist fails after the guard admitted the write", func() {
			_, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "Parser"))
			So(err, ShouldNotBeNil)

			Convey("Then the cooldown is released and an immediate retry succeeds", func() {
				store.fail = false
				_, err := f.svc.CreateSubmission(ctx, submissionInput(event.ID, team.ID, "u1", "Parser"))
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestService_Observers(t *testing.T) {
	Convey("Given an event", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)

		Convey("When a judge registers", func() {
			err := f.svc.RegisterObserver(ctx, event.ID, model.ObserverEntry{
				UserID: "j1", Address: "j1@example.com", Role: model.RoleJudge,
			})
			So(err, ShouldBeNil)

			Convey("Then they are pending until approved", func() {
				pending, perr := f.svc.PendingJudges(ctx, event.ID)
				So(perr, ShouldBeNil)
				So(len(pending), ShouldEqual, 1)
				So(pending[0].UserID, ShouldEqual, "j1")
			})

			Convey("And approval moves them into the broadcast set", func() {
				So(f.svc.ApproveJudge(ctx, event.ID, "j1"), ShouldBeNil)

				pending, perr := f.svc.PendingJudges(ctx, event.ID)
				So(perr, ShouldBeNil)
				So(len(pending), ShouldEqual, 0)

				report, berr := f.svc.Broadcast(ctx, event.ID, "hello", "world")
				So(berr, ShouldBeNil)
				So(report.Attempted, ShouldEqual, 1)
				So(report.Delivered, ShouldEqual, 1)
			})
		})

		Convey("When approving an unregistered judge", func() {
			err := f.svc.ApproveJudge(ctx, event.ID, "nobody")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When broadcasting on a missing event", func() {
			_, err := f.svc.Broadcast(ctx, "ghost", "s", "b")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
