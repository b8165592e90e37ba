package service_test

import (
	"context"
	"sync"
	"testing"

	repository "github.com/Triptiverma003/Ranking-System/internal/adapters/repository"
	service "github.com/Triptiverma003/Ranking-System/internal/app"
	"github.com/Triptiverma003/Ranking-System/internal/domain/award"
	"github.com/Triptiverma003/Ranking-System/internal/domain/types"
	"github.com/Triptiverma003/Ranking-System/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_Register(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When registering a participant", func() {
			p, err := svc.Register(ctx, "Alice", "")

			Convey("Then the participant starts with zero points", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldNotBeEmpty)
				So(p.Name, ShouldEqual, "Alice")
				So(p.TotalPoints, ShouldEqual, 0)
			})
		})

		Convey("When the name has surrounding whitespace", func() {
			p, err := svc.Register(ctx, "  Bob  ", "")

			Convey("Then the stored name is trimmed", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Bob")
			})
		})

		Convey("When the name is empty after trimming", func() {
			_, err := svc.Register(ctx, "   ", "")

			Convey("Then registration is rejected before any store access", func() {
				So(err, ShouldEqual, service.ErrInvalidName)

				roster, rerr := svc.Roster(ctx)
				So(rerr, ShouldBeNil)
				So(len(roster), ShouldEqual, 0)
			})
		})

		Convey("When registering the same name twice", func() {
			_, err := svc.Register(ctx, "Carol", "")
			So(err, ShouldBeNil)
			_, err = svc.Register(ctx, "Carol", "")

			Convey("Then the second call fails and the roster is unchanged", func() {
				So(err, ShouldWrap, repository.ErrDuplicateName)

				roster, rerr := svc.Roster(ctx)
				So(rerr, ShouldBeNil)
				So(len(roster), ShouldEqual, 1)
			})
		})

		Convey("When registering with an image attribute", func() {
			p, err := svc.Register(ctx, "Dave", "data:image/png;base64,AAAA")

			Convey("Then the image is stored opaquely", func() {
				So(err, ShouldBeNil)
				So(p.Image, ShouldEqual, "data:image/png;base64,AAAA")
			})
		})
	})
}

func TestService_Claim(t *testing.T) {
	Convey("Given a service with a fixed award of 7", t, func() {
		svc := startedService(service.WithDrawer(award.Fixed(7)))
		defer svc.Stop()
		ctx := context.Background()

		p, err := svc.Register(ctx, "Alice", "")
		So(err, ShouldBeNil)

		Convey("When the participant claims", func() {
			res, err := svc.Claim(ctx, p.ID)

			Convey("Then the total and ledger reflect the award", func() {
				So(err, ShouldBeNil)
				So(res.PointsAwarded, ShouldEqual, 7)
				So(res.Participant.TotalPoints, ShouldEqual, 7)

				page, herr := svc.History(ctx, p.ID, types.OrderNewest)
				So(herr, ShouldBeNil)
				So(page.Summary.Count, ShouldEqual, 1)
				So(page.Records[0].Points, ShouldEqual, 7)
				So(page.Records[0].ParticipantID, ShouldEqual, p.ID)
			})

			Convey("And the leaderboard shows the updated total", func() {
				So(err, ShouldBeNil)

				board, lerr := svc.Leaderboard(ctx, 0)
				So(lerr, ShouldBeNil)
				So(len(board), ShouldEqual, 1)
				So(board[0].Rank, ShouldEqual, 1)
				So(board[0].Name, ShouldEqual, "Alice")
				So(board[0].TotalPoints, ShouldEqual, 7)
			})
		})

		Convey("When claiming for an unknown participant", func() {
			_, err := svc.Claim(ctx, "no-such-id")

			Convey("Then it fails and no ledger entry is created", func() {
				So(err, ShouldWrap, repository.ErrNotFound)

				page, herr := svc.History(ctx, "", types.OrderNewest)
				So(herr, ShouldBeNil)
				So(page.Summary.Count, ShouldEqual, 0)
			})
		})

		Convey("When claiming with an empty id", func() {
			_, err := svc.Claim(ctx, " ")

			Convey("Then validation rejects it", func() {
				So(err, ShouldEqual, service.ErrInvalidID)
			})
		})
	})

	Convey("Given a service with the default drawer", t, func() {
		svc := startedService(service.WithAwardRange(1, 10))
		defer svc.Stop()
		ctx := context.Background()

		p, err := svc.Register(ctx, "Alice", "")
		So(err, ShouldBeNil)

		Convey("When claiming repeatedly", func() {
			total := 0
			for i := 0; i < 25; i++ {
				res, err := svc.Claim(ctx, p.ID)
				So(err, ShouldBeNil)
				So(res.PointsAwarded, ShouldBeBetweenOrEqual, 1, 10)
				total += res.PointsAwarded
			}

			Convey("Then the running total equals the ledger sum", func() {
				page, err := svc.History(ctx, p.ID, types.OrderNewest)
				So(err, ShouldBeNil)
				So(page.Summary.Count, ShouldEqual, 25)
				So(page.Summary.TotalPoints, ShouldEqual, total)

				roster, err := svc.Roster(ctx)
				So(err, ShouldBeNil)
				So(roster[0].TotalPoints, ShouldEqual, total)
			})
		})
	})
}

func TestService_ConcurrentClaims(t *testing.T) {
	Convey("Given concurrent claims against one participant", t, func() {
		svc := startedService(service.WithDrawer(award.Fixed(5)))
		defer svc.Stop()
		ctx := context.Background()

		p, err := svc.Register(ctx, "Alice", "")
		So(err, ShouldBeNil)

		const claims = 50

		var wg sync.WaitGroup
		for i := 0; i < claims; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.Claim(ctx, p.ID)
			}()
		}
		wg.Wait()

		Convey("Then no update is lost and the invariant holds", func() {
			page, err := svc.History(ctx, p.ID, types.OrderNewest)
			So(err, ShouldBeNil)
			So(page.Summary.Count, ShouldEqual, claims)

			roster, err := svc.Roster(ctx)
			So(err, ShouldBeNil)
			So(roster[0].TotalPoints, ShouldEqual, claims*5)
			So(roster[0].TotalPoints, ShouldEqual, page.Summary.TotalPoints)
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Given a roster with distinct totals", t, func() {
		svc := startedService(service.WithDrawer(award.Fixed(10)))
		defer svc.Stop()
		ctx := context.Background()

		alice, _ := svc.Register(ctx, "Alice", "")
		bob, _ := svc.Register(ctx, "Bob", "")
		carol, _ := svc.Register(ctx, "Carol", "")

		// Alice 20, Carol 10, Bob 0.
		_, err := svc.Claim(ctx, alice.ID)
		So(err, ShouldBeNil)
		_, err = svc.Claim(ctx, alice.ID)
		So(err, ShouldBeNil)
		_, err = svc.Claim(ctx, carol.ID)
		So(err, ShouldBeNil)

		Convey("When reading the leaderboard", func() {
			board, err := svc.Leaderboard(ctx, 0)

			Convey("Then rows are ordered by total descending with dense ranks", func() {
				So(err, ShouldBeNil)
				So(len(board), ShouldEqual, 3)
				So(board[0].Name, ShouldEqual, "Alice")
				So(board[0].Rank, ShouldEqual, 1)
				So(board[1].Name, ShouldEqual, "Carol")
				So(board[1].Rank, ShouldEqual, 2)
				So(board[2].Name, ShouldEqual, "Bob")
				So(board[2].Rank, ShouldEqual, 3)
				So(board[2].ID, ShouldEqual, bob.ID)
			})
		})

		Convey("When limiting the read", func() {
			board, err := svc.Leaderboard(ctx, 2)

			Convey("Then only the top rows come back", func() {
				So(err, ShouldBeNil)
				So(len(board), ShouldEqual, 2)
				So(board[1].Rank, ShouldEqual, 2)
			})
		})
	})

	Convey("Given tied totals", t, func() {
		svc := startedService(service.WithDrawer(award.Fixed(4)))
		defer svc.Stop()
		ctx := context.Background()

		a, _ := svc.Register(ctx, "Alice", "")
		b, _ := svc.Register(ctx, "Bob", "")
		_, err := svc.Claim(ctx, a.ID)
		So(err, ShouldBeNil)
		_, err = svc.Claim(ctx, b.ID)
		So(err, ShouldBeNil)

		Convey("Then ranks stay a contiguous 1..N sequence", func() {
			board, err := svc.Leaderboard(ctx, 0)
			So(err, ShouldBeNil)
			So(len(board), ShouldEqual, 2)
			So(board[0].Rank, ShouldEqual, 1)
			So(board[1].Rank, ShouldEqual, 2)
		})
	})
}

func TestService_History(t *testing.T) {
	Convey("Given claims for two participants", t, func() {
		svc := startedService(service.WithDrawer(award.Fixed(3)))
		defer svc.Stop()
		ctx := context.Background()

		alice, _ := svc.Register(ctx, "Alice", "")
		bob, _ := svc.Register(ctx, "Bob", "")
		for i := 0; i < 2; i++ {
			_, err := svc.Claim(ctx, alice.ID)
			So(err, ShouldBeNil)
		}
		_, err := svc.Claim(ctx, bob.ID)
		So(err, ShouldBeNil)

		Convey("When reading the unfiltered history", func() {
			page, err := svc.History(ctx, "", types.OrderNewest)

			Convey("Then all entries come back joined with names", func() {
				So(err, ShouldBeNil)
				So(page.Summary.Count, ShouldEqual, 3)
				So(page.Summary.TotalPoints, ShouldEqual, 9)
				So(page.Summary.AveragePoints, ShouldEqual, 3)

				names := map[string]bool{}
				for _, r := range page.Records {
					names[r.ParticipantName] = true
				}
				So(names["Alice"], ShouldBeTrue)
				So(names["Bob"], ShouldBeTrue)
			})
		})

		Convey("When filtering by participant", func() {
			page, err := svc.History(ctx, bob.ID, types.OrderOldest)

			Convey("Then only that participant's entries come back", func() {
				So(err, ShouldBeNil)
				So(page.Summary.Count, ShouldEqual, 1)
				So(page.Records[0].ParticipantName, ShouldEqual, "Bob")
			})
		})

		Convey("When filtering by an unknown participant", func() {
			_, err := svc.History(ctx, "no-such-id", types.OrderNewest)

			Convey("Then the read fails", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When ordering newest-first", func() {
			page, err := svc.History(ctx, "", types.OrderNewest)

			Convey("Then timestamps never ascend", func() {
				So(err, ShouldBeNil)
				for i := 1; i < len(page.Records); i++ {
					So(page.Records[i].Timestamp.After(page.Records[i-1].Timestamp), ShouldBeFalse)
				}
			})
		})
	})

	Convey("Given an empty ledger", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("Then the summary is all zeros, not an error", func() {
			page, err := svc.History(context.Background(), "", types.OrderNewest)
			So(err, ShouldBeNil)
			So(page.Summary.Count, ShouldEqual, 0)
			So(page.Summary.TotalPoints, ShouldEqual, 0)
			So(page.Summary.AveragePoints, ShouldEqual, 0)
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("Then stats report lifecycle and roster size", func() {
			_, err := svc.Register(context.Background(), "Alice", "")
			So(err, ShouldBeNil)

			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["rosterSize"], ShouldEqual, 1)
		})

		Convey("And stopping flips the started flag", func() {
			svc.Stop()
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
		})
	})
}
