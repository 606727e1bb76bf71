package directory_test

import (
	"context"
	"errors"
	"testing"

	directory "github.com/drillmeet/scoresheet/internal/directory"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDirectory(t *testing.T) {
	Convey("Given a seeded cadet directory", t, func() {
		ctx := context.Background()
		dir := directory.NewInMemoryDirectory(map[string]string{
			"cadet-1": "Jordan Reyes",
		})

		Convey("When a known cadet is resolved", func() {
			name, err := dir.DisplayName(ctx, "cadet-1")

			Convey("Then the display name comes back", func() {
				So(err, ShouldBeNil)
				So(name, ShouldEqual, "Jordan Reyes")
			})
		})

		Convey("When an unknown cadet is resolved", func() {
			_, err := dir.DisplayName(ctx, "cadet-9")

			Convey("Then an unknown-cadet error is returned", func() {
				So(errors.Is(err, directory.ErrUnknownCadet), ShouldBeTrue)
			})
		})

		Convey("When a cadet is added at runtime", func() {
			dir.Add("cadet-2", "Sam Okafor")
			name, err := dir.DisplayName(ctx, "cadet-2")

			Convey("Then the new entry resolves", func() {
				So(err, ShouldBeNil)
				So(name, ShouldEqual, "Sam Okafor")
			})
		})
	})
}
