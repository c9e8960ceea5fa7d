package validate_test

import (
	"errors"
	"testing"

	validate "github.com/mmanav02/WeHack/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChain(t *testing.T) {
	Convey("Given the standard validation chain", t, func() {
		chain := validate.NewChain()

		Convey("When the draft is complete", func() {
			err := chain.Run(validate.Draft{
				Title:       "Weather app",
				Description: "Forecast dashboard",
				FileSize:    512,
			})
			So(err, ShouldBeNil)
		})

		Convey("When the title is blank", func() {
			err := chain.Run(validate.Draft{Title: "   ", Description: "ok"})

			Convey("Then the failure names the title check", func() {
				So(errors.Is(err, validate.ErrValidationFailed), ShouldBeTrue)
				var verr *validate.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Check, ShouldEqual, "title")
			})
		})

		Convey("When the description is blank", func() {
			err := chain.Run(validate.Draft{Title: "ok", Description: ""})

			var verr *validate.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Check, ShouldEqual, "description")
		})

		Convey("When the attachment exceeds the cap", func() {
			err := chain.Run(validate.Draft{
				Title:       "ok",
				Description: "ok",
				FileSize:    2 << 20,
			})

			var verr *validate.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Check, ShouldEqual, "file-size")
		})

		Convey("When the draft has no attachment", func() {
			err := chain.Run(validate.Draft{Title: "ok", Description: "ok"})
			So(err, ShouldBeNil)
		})
	})

	Convey("Given a chain with a custom file size cap", t, func() {
		chain := validate.NewChain(validate.WithMaxFileSize(100))

		Convey("Then the cap applies", func() {
			err := chain.Run(validate.Draft{Title: "t", Description: "d", FileSize: 101})
			So(errors.Is(err, validate.ErrValidationFailed), ShouldBeTrue)

			err = chain.Run(validate.Draft{Title: "t", Description: "d", FileSize: 100})
			So(err, ShouldBeNil)
		})
	})

	Convey("Given a chain with an appended custom check", t, func() {
		chain := validate.NewChain(validate.WithCheck(urlCheck{}))

		Convey("Then built-in checks still run first", func() {
			err := chain.Run(validate.Draft{Title: "", Description: "d"})
			var verr *validate.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Check, ShouldEqual, "title")
		})
	})
}

// urlCheck is a no-op custom check used to exercise WithCheck ordering.
type urlCheck struct{}

func (urlCheck) Name() string                  { return "url" }
func (urlCheck) Validate(validate.Draft) error { return nil }
