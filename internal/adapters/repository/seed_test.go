package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/lexrec/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadSeedFile(t *testing.T) {
	Convey("Given the sample seed file", t, func() {
		items, err := LoadSeedFile("testdata/seed.yaml")

		Convey("Then every item is decoded", func() {
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 3)
			So(items[0].ID, ShouldEqual, "corp-1")
			So(items[0].TagList(), ShouldResemble, []string{"mergers", "governance"})
			So(items[0].CommentCount, ShouldEqual, 3)
			So(items[0].PublishedAt.Equal(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("Then missing statuses default to active", func() {
			So(items[1].Status, ShouldEqual, model.StatusActive)
			So(items[2].Status, ShouldEqual, "draft")
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := LoadSeedFile("testdata/nope.yaml")
		So(err, ShouldNotBeNil)
	})
}

func TestParseSeed(t *testing.T) {
	Convey("Given malformed seeds", t, func() {
		cases := map[string]string{
			"bad yaml":     "items: [",
			"missing id":   "items:\n  - title: x\n",
			"duplicate id": "items:\n  - id: a\n  - id: a\n",
		}
		for name, doc := range cases {
			Convey("When the seed has "+name, func() {
				_, err := ParseSeed([]byte(doc))
				So(errors.Is(err, ErrSeed), ShouldBeTrue)
			})
		}
	})
}
