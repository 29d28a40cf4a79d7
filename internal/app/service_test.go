package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	service "github.com/okian/lexrec/internal/app"
	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/recommend"
	"github.com/okian/lexrec/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func seed() []model.ContentItem {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	items := []model.ContentItem{
		{ID: "corp-1", Title: "business corporate mergers acquisitions", Summary: "company law securities governance", Category: "Corporate Law", Likes: 3},
		{ID: "fam-1", Title: "Holiday custody schedules", Summary: "Parenting plans", Category: "Family Law", Likes: 8},
		{ID: "emp-1", Title: "Wrongful termination claims", Summary: "Workplace rights", Category: "Employment Law", Views: 30},
	}
	for i := range items {
		items[i].Status = model.StatusActive
		items[i].PublishedAt = base.Add(time.Duration(i) * time.Hour)
	}
	return items
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["source"], ShouldEqual, service.SourceMemory)
			So(stats["defaultLimit"], ShouldEqual, recommend.DefaultLimit)
		})
	})

	Convey("Given a service that is not started", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then every query reports ErrNotStarted", func() {
			_, err := svc.Recommend(ctx, nil, 3, true)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Trending(ctx, 3)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.PracticeAreas(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.ResolvePracticeArea(ctx, "tax")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a memory-backed service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc := service.New(service.WithSeedItems(seed()))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["contentItems"], ShouldEqual, 3)
				So(stats["breakerState"], ShouldEqual, "closed")
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given an unknown content source", t, func() {
		svc := service.New(service.WithContentSource("carrier-pigeon"))

		Convey("Then start fails", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrInvalidSource), ShouldBeTrue)
		})
	})

	Convey("Given a missing seed file", t, func() {
		svc := service.New(service.WithSeedFile(filepath.Join(t.TempDir(), "missing.yaml")))

		Convey("Then start fails", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})

	Convey("Given a sqlite-backed service", t, func() {
		svc := service.New(
			service.WithContentSource(service.SourceSQLite),
			service.WithSQLitePath(filepath.Join(t.TempDir(), "content.db")),
			service.WithSeedItems(seed()),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then trending reads from the database", func() {
			items, err := svc.Trending(context.Background(), 2)
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 2)
			So(items[0].ID, ShouldEqual, "fam-1")
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithSeedItems(seed()),
			service.WithLimits(2, 5),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When recommending for a corporate lawyer", func() {
			user := &model.UserProfile{ID: "u-1", PracticeArea: "Corporate Law", Bio: "mergers acquisitions governance"}
			res, err := svc.Recommend(ctx, user, 0, true)

			Convey("Then similarity picks the matching post", func() {
				So(err, ShouldBeNil)
				So(res.Type, ShouldEqual, recommend.TypeSimilarity)
				So(res.Items[0].ID, ShouldEqual, "corp-1")
			})
		})

		Convey("When recommending for nobody", func() {
			res, err := svc.Recommend(ctx, nil, 3, true)
			So(err, ShouldBeNil)
			So(res.Type, ShouldEqual, recommend.TypeFallback)
			So(res.Message, ShouldEqual, recommend.MessageLoginRequired)
		})

		Convey("When the profile is invalid", func() {
			_, err := svc.Recommend(ctx, &model.UserProfile{YearsOfExperience: -1}, 3, true)
			So(errors.Is(err, model.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When asking for more trending items than allowed", func() {
			items, err := svc.Trending(ctx, 500)
			So(err, ShouldBeNil)
			So(len(items), ShouldBeLessThanOrEqualTo, 5)
			So(items, ShouldHaveLength, 3)
		})

		Convey("When trending uses the default limit", func() {
			items, err := svc.Trending(ctx, 0)
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 2)
		})

		Convey("When listing practice areas", func() {
			areas, err := svc.PracticeAreas(ctx)
			So(err, ShouldBeNil)
			So(len(areas.Standard), ShouldBeGreaterThan, 5)
			So(areas.WithContent, ShouldResemble, []string{"Corporate Law", "Employment Law", "Family Law"})
		})

		Convey("When resolving free text to a practice area", func() {
			res, err := svc.ResolvePracticeArea(ctx, "custody")
			So(err, ShouldBeNil)
			So(res.Matched, ShouldBeTrue)
			So(res.Area.Value, ShouldEqual, "Family Law")
			So(res.HasContent, ShouldBeTrue)

			Convey("And unmatched text resolves to General", func() {
				res, err := svc.ResolvePracticeArea(ctx, "zzzz")
				So(err, ShouldBeNil)
				So(res.Matched, ShouldBeFalse)
				So(res.Area.Value, ShouldEqual, "General")
				So(res.HasContent, ShouldBeFalse)
			})
		})
	})
}
