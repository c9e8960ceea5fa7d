package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/mmanav02/WeHack/internal/adapters/repository"
	service "github.com/mmanav02/WeHack/internal/app"
	"github.com/mmanav02/WeHack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_Comments(t *testing.T) {
	Convey("Given an event and a registered user", t, func() {
		ctx := context.Background()
		f := newFixture()
		event := f.seedEvent(ctx)
		author, err := f.svc.CreateUser(ctx, model.User{Username: "alice", Email: "alice@example.com"})
		So(err, ShouldBeNil)

		Convey("When adding a top-level comment", func() {
			c, err := f.svc.AddComment(ctx, service.CommentInput{
				EventID: event.ID, AuthorID: author.ID, Content: "excited for this one",
			})
			So(err, ShouldBeNil)
			So(c.ID, ShouldNotBeEmpty)
			So(c.ParentID, ShouldBeEmpty)

			Convey("Then it shows up as a top-level entry", func() {
				thread, terr := f.svc.EventComments(ctx, event.ID)
				So(terr, ShouldBeNil)
				So(len(thread), ShouldEqual, 1)
				So(thread[0].Content, ShouldEqual, "excited for this one")
				So(len(thread[0].Replies), ShouldEqual, 0)
			})

			Convey("And replies nest under it to any depth", func() {
				f.advance(time.Second)
				reply, rerr := f.svc.AddComment(ctx, service.CommentInput{
					EventID: event.ID, AuthorID: author.ID,
					ParentID: c.ID, Content: "same here",
				})
				So(rerr, ShouldBeNil)

				f.advance(time.Second)
				_, rerr = f.svc.AddComment(ctx, service.CommentInput{
					EventID: event.ID, AuthorID: author.ID,
					ParentID: reply.ID, Content: "count me in too",
				})
				So(rerr, ShouldBeNil)

				thread, terr := f.svc.EventComments(ctx, event.ID)
				So(terr, ShouldBeNil)
				So(len(thread), ShouldEqual, 1)
				So(len(thread[0].Replies), ShouldEqual, 1)
				So(thread[0].Replies[0].Content, ShouldEqual, "same here")
				So(len(thread[0].Replies[0].Replies), ShouldEqual, 1)
				So(thread[0].Replies[0].Replies[0].Content, ShouldEqual, "count me in too")
			})
		})

		Convey("When the content is blank", func() {
			_, err := f.svc.AddComment(ctx, service.CommentInput{
				EventID: event.ID, AuthorID: author.ID, Content: "   ",
			})
			So(errors.Is(err, model.ErrMissingContent), ShouldBeTrue)
		})

		Convey("When the event is unknown", func() {
			_, err := f.svc.AddComment(ctx, service.CommentInput{
				EventID: "ghost", AuthorID: author.ID, Content: "hello",
			})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the author is unknown", func() {
			_, err := f.svc.AddComment(ctx, service.CommentInput{
				EventID: event.ID, AuthorID: "ghost", Content: "hello",
			})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When replying to a comment from another event", func() {
			other, oerr := f.svc.CreateEvent(ctx, model.Event{Title: "Other Hack", OrganizerID: "org-2"})
			So(oerr, ShouldBeNil)
			stray, serr := f.svc.AddComment(ctx, service.CommentInput{
				EventID: other.ID, AuthorID: author.ID, Content: "wrong room",
			})
			So(serr, ShouldBeNil)

			_, err := f.svc.AddComment(ctx, service.CommentInput{
				EventID: event.ID, AuthorID: author.ID,
				ParentID: stray.ID, Content: "reply",
			})
			So(errors.Is(err, service.ErrEventMismatch), ShouldBeTrue)
		})

		Convey("When listing comments on an unknown event", func() {
			_, err := f.svc.EventComments(ctx, "ghost")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
