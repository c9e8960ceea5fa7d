package history_test

import (
	"fmt"
	"sync"
	"testing"

	history "github.com/mmanav02/WeHack/internal/domain/history"
	model "github.com/mmanav02/WeHack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func memento(title string) model.SubmissionMemento {
	return model.SubmissionMemento{SubmissionID: "sub-1", Title: title}
}

func TestManager(t *testing.T) {
	Convey("Given a history manager", t, func() {
		m := history.NewManager()

		Convey("When popping with no history", func() {
			_, err := m.Pop("team-1")
			So(err, ShouldEqual, history.ErrHistoryEmpty)
		})

		Convey("When pushing and popping", func() {
			m.Push("team-1", memento("v1"))
			m.Push("team-1", memento("v2"))

			top, err := m.Pop("team-1")
			So(err, ShouldBeNil)
			So(top.Title, ShouldEqual, "v2")

			top, err = m.Pop("team-1")
			So(err, ShouldBeNil)
			So(top.Title, ShouldEqual, "v1")

			_, err = m.Pop("team-1")
			So(err, ShouldEqual, history.ErrHistoryEmpty)
		})

		Convey("When peeking", func() {
			m.Push("team-1", memento("v1"))
			top, err := m.Peek("team-1")
			So(err, ShouldBeNil)
			So(top.Title, ShouldEqual, "v1")
			So(m.Depth("team-1"), ShouldEqual, 1)
		})

		Convey("When teams are independent", func() {
			m.Push("team-1", memento("a"))
			m.Push("team-2", memento("b"))

			top, err := m.Pop("team-2")
			So(err, ShouldBeNil)
			So(top.Title, ShouldEqual, "b")
			So(m.Depth("team-1"), ShouldEqual, 1)
		})

		Convey("When clearing a team", func() {
			m.Push("team-1", memento("v1"))
			m.Clear("team-1")
			_, err := m.Pop("team-1")
			So(err, ShouldEqual, history.ErrHistoryEmpty)
		})
	})
}

func TestManagerEviction(t *testing.T) {
	Convey("Given the default capacity of 10", t, func() {
		m := history.NewManager()

		Convey("When 11 versions are pushed", func() {
			for i := 1; i <= 11; i++ {
				m.Push("team-1", memento(fmt.Sprintf("v%d", i)))
			}

			Convey("Then depth never exceeds 10 and the oldest was evicted", func() {
				So(m.Depth("team-1"), ShouldEqual, 10)

				// walk the whole stack back: v11 down to v2, v1 is gone
				for i := 11; i >= 2; i-- {
					top, err := m.Pop("team-1")
					So(err, ShouldBeNil)
					So(top.Title, ShouldEqual, fmt.Sprintf("v%d", i))
				}
				_, err := m.Pop("team-1")
				So(err, ShouldEqual, history.ErrHistoryEmpty)
			})
		})
	})

	Convey("Given a custom capacity", t, func() {
		m := history.NewManager(history.WithCapacity(2))
		m.Push("team-1", memento("v1"))
		m.Push("team-1", memento("v2"))
		m.Push("team-1", memento("v3"))

		So(m.Depth("team-1"), ShouldEqual, 2)
		top, _ := m.Pop("team-1")
		So(top.Title, ShouldEqual, "v3")
		top, _ = m.Pop("team-1")
		So(top.Title, ShouldEqual, "v2")
	})
}

func TestManagerConcurrency(t *testing.T) {
	Convey("Given concurrent pushes across many teams", t, func() {
		m := history.NewManager(history.WithStripeCount(4))

		var wg sync.WaitGroup
		for team := 0; team < 8; team++ {
			teamID := fmt.Sprintf("team-%d", team)
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					m.Push(teamID, memento("v"))
				}
			}()
		}
		wg.Wait()

		Convey("Then every team's stack is capped at capacity", func() {
			for team := 0; team < 8; team++ {
				So(m.Depth(fmt.Sprintf("team-%d", team)), ShouldEqual, 10)
			}
		})
	})
}
