package contentapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/lexrec/internal/adapters/contentapi"
	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const samplePage = `{
  "blog_posts": [
    {"content_id": 17, "title": "Merger checklists", "category": "Corporate Law", "status": "Active",
     "tags": "mergers, governance", "views": 10, "likes": 2, "comment_count": 1,
     "publication_date": "2024-03-01 10:00:00"},
    {"content_id": "abc", "title": "Custody", "category": "Family Law", "status": "Active",
     "created_at": "2024-02-01T08:00:00Z"}
  ],
  "total": 9
}`

func TestClient_Fetch(t *testing.T) {
	Convey("Given a content API server", t, func() {
		var got *http.Request
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			switch r.URL.Query().Get("sort_by") {
			case "engagement", "recent":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(samplePage))
			case "popular":
				_, _ = w.Write([]byte(`{"blog_posts": [`))
			default:
				http.Error(w, "unsupported sort", http.StatusBadRequest)
			}
		}))
		Reset(srv.Close)

		c, err := contentapi.New(srv.URL + "/")
		So(err, ShouldBeNil)

		Convey("When fetching a filtered page", func() {
			ctx := logger.ContextWithRequestID(context.Background(), "req-1")
			page, err := c.Fetch(ctx, model.Query{
				Category: "Corporate Law",
				SortBy:   model.SortEngagement,
				Status:   model.StatusActive,
				Limit:    5,
			})

			Convey("Then the query uses the upstream vocabulary", func() {
				So(err, ShouldBeNil)
				So(got.URL.Path, ShouldEqual, "/api/blog-posts")
				q := got.URL.Query()
				So(q.Get("sort_by"), ShouldEqual, "engagement")
				So(q.Get("limit"), ShouldEqual, "5")
				So(q.Get("status"), ShouldEqual, "Active")
				So(q.Get("practice_area"), ShouldEqual, "Corporate Law")
				So(got.Header.Get("X-Request-ID"), ShouldEqual, "req-1")
			})

			Convey("Then posts are mapped to content items", func() {
				So(page.Total, ShouldEqual, 9)
				So(page.Items, ShouldHaveLength, 2)
				first := page.Items[0]
				So(first.ID, ShouldEqual, "17")
				So(first.Status, ShouldEqual, model.StatusActive)
				So(first.EngagementScore(), ShouldAlmostEqual, 8.0, 1e-9)
				So(first.PublishedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)), ShouldBeTrue)
				So(page.Items[1].ID, ShouldEqual, "abc")
				So(page.Items[1].PublishedAt.Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})

		Convey("When the upstream returns more than the limit", func() {
			page, err := c.Fetch(context.Background(), model.Query{SortBy: model.SortRecent, Limit: 1})
			So(err, ShouldBeNil)
			So(page.Items, ShouldHaveLength, 1)
		})

		Convey("When the upstream rejects the request", func() {
			srvErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusServiceUnavailable)
			}))
			defer srvErr.Close()
			c3, _ := contentapi.New(srvErr.URL)
			_, err := c3.Fetch(context.Background(), model.Query{SortBy: model.SortEngagement})

			Convey("Then ErrUpstream carries the status", func() {
				So(errors.Is(err, contentapi.ErrUpstream), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "503")
				So(err.Error(), ShouldContainSubstring, "boom")
			})
		})

		Convey("When the body is not valid JSON", func() {
			_, err := c.Fetch(context.Background(), model.Query{SortBy: model.SortPopular})
			So(errors.Is(err, contentapi.ErrDecode), ShouldBeTrue)
		})

		Convey("When the query is invalid", func() {
			_, err := c.Fetch(context.Background(), model.Query{SortBy: "hot"})
			So(errors.Is(err, model.ErrInvalidQuery), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := c.Fetch(ctx, model.Query{SortBy: model.SortRecent})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given an upstream with its own status spelling", t, func() {
		var status string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			status = r.URL.Query().Get("status")
			_, _ = w.Write([]byte(`{"blog_posts": [{"content_id": 1, "status": "published"}], "total": 1}`))
		}))
		defer srv.Close()

		c, _ := contentapi.New(srv.URL, contentapi.WithActiveStatus("published"), contentapi.WithTimeout(time.Second))
		page, err := c.Fetch(context.Background(), model.Query{SortBy: model.SortRecent, Status: model.StatusActive})

		So(err, ShouldBeNil)
		So(status, ShouldEqual, "published")
		So(page.Items[0].Status, ShouldEqual, model.StatusActive)
	})

	Convey("Given a bad base url", t, func() {
		_, err := contentapi.New("not a url")
		So(errors.Is(err, contentapi.ErrInvalidBase), ShouldBeTrue)
	})
}
