package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/lexrec/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestContentItem(t *testing.T) {
	convey.Convey("Given a ContentItem with engagement counters", t, func() {
		item := model.ContentItem{
			ID:           "1",
			Views:        150,
			Likes:        12,
			Shares:       3,
			CommentCount: 5,
			Tags:         "corporate law, mergers ,, acquisitions ",
		}

		convey.Convey("Then the engagement score weights comments, likes, shares and views", func() {
			// 5*3 + 12*2 + 3*2 + 150*0.1
			convey.So(item.EngagementScore(), convey.ShouldAlmostEqual, 60.0, 1e-9)
		})

		convey.Convey("And the tag list is split and trimmed", func() {
			convey.So(item.TagList(), convey.ShouldResemble, []string{"corporate law", "mergers", "acquisitions"})
		})
	})

	convey.Convey("Given a ContentItem with zero values", t, func() {
		item := model.ContentItem{}

		convey.Convey("Then the engagement score is zero", func() {
			convey.So(item.EngagementScore(), convey.ShouldEqual, 0.0)
		})

		convey.Convey("And the tag list is empty but not nil", func() {
			convey.So(item.TagList(), convey.ShouldNotBeNil)
			convey.So(item.TagList(), convey.ShouldBeEmpty)
		})
	})
}

func TestUserProfile_Validate(t *testing.T) {
	convey.Convey("Given user profiles", t, func() {
		convey.Convey("When experience is non-negative", func() {
			convey.So(model.UserProfile{YearsOfExperience: 0}.Validate(), convey.ShouldBeNil)
			convey.So(model.UserProfile{YearsOfExperience: 25}.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When experience is negative", func() {
			err := model.UserProfile{YearsOfExperience: -1}.Validate()
			convey.So(errors.Is(err, model.ErrInvalidProfile), convey.ShouldBeTrue)
		})
	})
}

func TestQuery_Validate(t *testing.T) {
	convey.Convey("Given content queries", t, func() {
		convey.Convey("When every sort key is known", func() {
			for _, k := range []model.SortKey{model.SortRecent, model.SortEngagement, model.SortPopular} {
				convey.So(model.Query{SortBy: k, Limit: 5}.Validate(), convey.ShouldBeNil)
			}
		})

		convey.Convey("When the sort key is unknown", func() {
			err := model.Query{SortBy: "trending"}.Validate()
			convey.So(errors.Is(err, model.ErrInvalidQuery), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "trending")
		})

		convey.Convey("When the limit is negative", func() {
			err := model.Query{SortBy: model.SortRecent, Limit: -1}.Validate()
			convey.So(errors.Is(err, model.ErrInvalidQuery), convey.ShouldBeTrue)
		})
	})
}
