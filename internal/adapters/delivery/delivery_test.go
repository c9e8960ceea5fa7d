package delivery_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	delivery "github.com/mmanav02/WeHack/internal/adapters/delivery"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMailgun(t *testing.T) {
	Convey("Given a Mailgun sender against a stub API", t, func() {
		ctx := context.Background()

		var gotPath string
		var gotForm map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = r.ParseForm()
			gotForm = map[string]string{
				"from":       r.PostForm.Get("from"),
				"to":         r.PostForm.Get("to"),
				"subject":    r.PostForm.Get("subject"),
				"h:Reply-To": r.PostForm.Get("h:Reply-To"),
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		m := delivery.NewMailgun("mg.example.com", "key-secret",
			delivery.WithBaseURL(srv.URL),
		)

		Convey("When sending", func() {
			err := m.Send(ctx, "organizer@example.com", "judge@example.com", "Update", "body")
			So(err, ShouldBeNil)

			Convey("Then the messages endpoint got the form", func() {
				So(gotPath, ShouldEqual, "/mg.example.com/messages")
				So(gotForm["to"], ShouldEqual, "judge@example.com")
				So(gotForm["from"], ShouldEqual, "no-reply@mg.example.com")
				So(gotForm["h:Reply-To"], ShouldEqual, "organizer@example.com")
			})
		})

		Convey("When the recipient is empty", func() {
			err := m.Send(ctx, "from", "", "s", "b")
			So(errors.Is(err, delivery.ErrDeliveryFailed), ShouldBeTrue)
		})
	})

	Convey("Given a Mailgun API returning an error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		m := delivery.NewMailgun("mg.example.com", "bad-key", delivery.WithBaseURL(srv.URL))
		err := m.Send(context.Background(), "f", "t@example.com", "s", "b")
		So(errors.Is(err, delivery.ErrDeliveryFailed), ShouldBeTrue)
	})
}

func TestOrganizerSMTP(t *testing.T) {
	Convey("Given an organizer SMTP sender with a stub wire", t, func() {
		ctx := context.Background()

		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte
		stub := func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		}

		s := delivery.NewOrganizerSMTP("organizer@example.com", "app-password",
			delivery.WithSendMail(stub),
		)

		Convey("When sending", func() {
			err := s.Send(ctx, "organizer@example.com", "team@example.com", "Subject", "Body")
			So(err, ShouldBeNil)
			So(gotAddr, ShouldEqual, "smtp.gmail.com:587")
			So(gotFrom, ShouldEqual, "organizer@example.com")
			So(gotTo, ShouldResemble, []string{"team@example.com"})
			So(string(gotMsg), ShouldContainSubstring, "Subject: Subject")
		})

		Convey("When the host is overridden", func() {
			s := delivery.NewOrganizerSMTP("o@example.com", "pw",
				delivery.WithSendMail(stub),
				delivery.WithSMTPHost("mail.example.com", "2525"),
			)
			So(s.Send(ctx, "o@example.com", "t@example.com", "s", "b"), ShouldBeNil)
			So(gotAddr, ShouldEqual, "mail.example.com:2525")
		})
	})

	Convey("Given an organizer without SMTP credentials", t, func() {
		s := delivery.NewOrganizerSMTP("organizer@example.com", "")
		err := s.Send(context.Background(), "f", "t@example.com", "s", "b")
		So(errors.Is(err, delivery.ErrDeliveryFailed), ShouldBeTrue)
		So(errors.Is(err, delivery.ErrNoCredentials), ShouldBeTrue)
	})
}

func TestNoop(t *testing.T) {
	Convey("Given the noop sender", t, func() {
		n := delivery.NewNoop(nil)
		So(n.Kind(), ShouldEqual, "noop")
		So(n.Send(context.Background(), "f", "t", "s", "b"), ShouldBeNil)
	})
}

func TestSlackWebhook(t *testing.T) {
	Convey("Given a Slack webhook sender against a stub", t, func() {
		ctx := context.Background()

		var gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := make([]byte, r.ContentLength)
			_, _ = r.Body.Read(buf)
			gotBody = string(buf)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		s := delivery.NewSlackWebhook(srv.URL)

		Convey("When sending", func() {
			err := s.Send(ctx, "f", "judge@example.com", "Published", "The event is live")
			So(err, ShouldBeNil)
			So(gotBody, ShouldContainSubstring, "Published")
			So(gotBody, ShouldContainSubstring, "judge@example.com")
		})
	})

	Convey("Given an unconfigured webhook", t, func() {
		s := delivery.NewSlackWebhook("")
		err := s.Send(context.Background(), "f", "t", "s", "b")
		So(errors.Is(err, delivery.ErrDeliveryFailed), ShouldBeTrue)
	})

	Convey("Given a webhook returning 500", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		s := delivery.NewSlackWebhook(srv.URL)
		err := s.Send(context.Background(), "f", "t", "s", "b")
		So(errors.Is(err, delivery.ErrDeliveryFailed), ShouldBeTrue)
	})
}
