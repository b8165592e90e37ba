package award_test

import (
	"context"
	"testing"

	award "github.com/Triptiverma003/Ranking-System/internal/domain/award"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRandomDrawer_Draw(t *testing.T) {
	Convey("Given a drawer with the default range", t, func() {
		d := award.NewRandomDrawer(award.WithSeed(42))
		ctx := context.Background()

		Convey("When drawing many awards", func() {
			for i := 0; i < 1000; i++ {
				points, err := d.Draw(ctx)

				So(err, ShouldBeNil)
				So(points, ShouldBeGreaterThanOrEqualTo, award.DefaultMin)
				So(points, ShouldBeLessThanOrEqualTo, award.DefaultMax)
			}
		})
	})

	Convey("Given a drawer with a custom range", t, func() {
		d := award.NewRandomDrawer(award.WithRange(100, 1000), award.WithSeed(7))
		ctx := context.Background()

		Convey("Then draws stay inside the configured bounds", func() {
			for i := 0; i < 1000; i++ {
				points, err := d.Draw(ctx)

				So(err, ShouldBeNil)
				So(points, ShouldBeGreaterThanOrEqualTo, 100)
				So(points, ShouldBeLessThanOrEqualTo, 1000)
			}
		})
	})

	Convey("Given an invalid range option", t, func() {
		d := award.NewRandomDrawer(award.WithRange(10, 5))

		Convey("Then the defaults are kept", func() {
			minPoints, maxPoints := d.Range()
			So(minPoints, ShouldEqual, award.DefaultMin)
			So(maxPoints, ShouldEqual, award.DefaultMax)
		})
	})

	Convey("Given a cancelled context", t, func() {
		d := award.NewRandomDrawer()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then the draw fails", func() {
			_, err := d.Draw(ctx)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFixed_Draw(t *testing.T) {
	Convey("Given a fixed drawer", t, func() {
		d := award.Fixed(7)

		Convey("Then every draw returns the fixed amount", func() {
			for i := 0; i < 10; i++ {
				points, err := d.Draw(context.Background())
				So(err, ShouldBeNil)
				So(points, ShouldEqual, 7)
			}
		})
	})
}
