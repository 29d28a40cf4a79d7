package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

const seedPath = "../../configs/seed.yaml"

func TestRun(t *testing.T) {
	Convey("Given the sample seed", t, func() {
		ctx := context.Background()
		var stdout, stderr bytes.Buffer

		Convey("When recommending for a corporate lawyer", func() {
			err := run(ctx, []string{
				"-seed", seedPath,
				"-practice-area", "Corporate Law",
				"-bio", "I advise boards on mergers, acquisitions and governance",
				"-years", "12",
				"-limit", "2",
			}, &stdout, &stderr)

			Convey("Then similarity results are printed as JSON", func() {
				So(err, ShouldBeNil)
				var res recommend.Result
				So(json.Unmarshal(stdout.Bytes(), &res), ShouldBeNil)
				So(res.Type, ShouldEqual, recommend.TypeSimilarity)
				So(len(res.Items), ShouldBeBetweenOrEqual, 1, 2)
				So(res.Items[0].ID, ShouldEqual, "101")
			})
		})

		Convey("When similarity is disabled", func() {
			err := run(ctx, []string{"-seed", seedPath, "-practice-area", "Family Law", "-no-similarity"}, &stdout, &stderr)

			Convey("Then the practice area tier answers", func() {
				So(err, ShouldBeNil)
				var res recommend.Result
				So(json.Unmarshal(stdout.Bytes(), &res), ShouldBeNil)
				So(res.Type, ShouldEqual, recommend.TypePracticeArea)
				for _, item := range res.Items {
					So(item.Category, ShouldEqual, "Family Law")
				}
			})
		})

		Convey("When the visitor is anonymous", func() {
			err := run(ctx, []string{"-seed", seedPath, "-anonymous"}, &stdout, &stderr)

			Convey("Then the login message is printed", func() {
				So(err, ShouldBeNil)
				So(stdout.String(), ShouldContainSubstring, recommend.MessageLoginRequired)
			})
		})

		Convey("When asking for trending content", func() {
			err := run(ctx, []string{"-seed", seedPath, "-trending", "-limit", "3"}, &stdout, &stderr)

			Convey("Then the most engaged active items come first", func() {
				So(err, ShouldBeNil)
				var items []model.ContentItem
				So(json.Unmarshal(stdout.Bytes(), &items), ShouldBeNil)
				So(items, ShouldHaveLength, 3)
				So(items[0].ID, ShouldEqual, "201")
			})
		})

		Convey("When no seed is given", func() {
			err := run(ctx, nil, &stdout, &stderr)
			So(errors.Is(err, errSeedRequired), ShouldBeTrue)
		})

		Convey("When the seed file is missing", func() {
			err := run(ctx, []string{"-seed", "does-not-exist.yaml"}, &stdout, &stderr)
			So(err, ShouldNotBeNil)
		})
	})
}
