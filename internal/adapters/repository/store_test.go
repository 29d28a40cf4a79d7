package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/lexrec/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fixtures() []model.ContentItem {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.ContentItem{
		{ID: "a", Category: "Tax Law", Status: model.StatusActive, Views: 100, Likes: 1, PublishedAt: base},
		{ID: "b", Category: "Tax Law", Status: model.StatusActive, Views: 100, Likes: 5, PublishedAt: base.Add(time.Hour)},
		{ID: "c", Category: "Family Law", Status: model.StatusActive, CommentCount: 10, PublishedAt: base.Add(2 * time.Hour)},
		{ID: "d", Category: "Family Law", Status: "draft", Views: 5000, PublishedAt: base.Add(3 * time.Hour)},
		{ID: "e", Category: "Tax Law", Status: model.StatusActive, CommentCount: 10, PublishedAt: base.Add(2 * time.Hour)},
	}
}

func itemIDs(items []model.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// storeContract runs the shared Store behaviour against a freshly opened store.
func storeContract(open func(ctx context.Context) Store) {
	ctx := context.Background()
	s := open(ctx)
	Reset(func() { _ = s.Close() })

	Convey("When counting", func() {
		n, err := s.Count(ctx)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 5)
	})

	Convey("When fetching by engagement", func() {
		page, err := s.Fetch(ctx, model.Query{SortBy: model.SortEngagement, Status: model.StatusActive})
		So(err, ShouldBeNil)

		Convey("Then ties are broken by id", func() {
			// c and e both score 30; a scores 12; b scores 20.
			So(itemIDs(page.Items), ShouldResemble, []string{"c", "e", "b", "a"})
			So(page.Total, ShouldEqual, 4)
		})
	})

	Convey("When fetching by popularity", func() {
		page, err := s.Fetch(ctx, model.Query{SortBy: model.SortPopular})
		So(err, ShouldBeNil)
		So(itemIDs(page.Items), ShouldResemble, []string{"d", "b", "a", "c", "e"})
	})

	Convey("When fetching by recency with a category and limit", func() {
		page, err := s.Fetch(ctx, model.Query{Category: "Tax Law", SortBy: model.SortRecent, Status: model.StatusActive, Limit: 2})
		So(err, ShouldBeNil)

		Convey("Then the newest items come first and Total ignores the limit", func() {
			So(itemIDs(page.Items), ShouldResemble, []string{"e", "b"})
			So(page.Total, ShouldEqual, 3)
			So(page.Items[0].PublishedAt.Equal(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})
	})

	Convey("When the category matches nothing", func() {
		page, err := s.Fetch(ctx, model.Query{Category: "Maritime Law", SortBy: model.SortEngagement})
		So(err, ShouldBeNil)
		So(page.Items, ShouldBeEmpty)
		So(page.Total, ShouldEqual, 0)
	})

	Convey("When the sort key is unknown", func() {
		_, err := s.Fetch(ctx, model.Query{SortBy: "trending"})
		So(errors.Is(err, model.ErrInvalidQuery), ShouldBeTrue)
	})

	Convey("When getting items", func() {
		it, err := s.Get(ctx, "c")
		So(err, ShouldBeNil)
		So(it.CommentCount, ShouldEqual, 10)

		_, err = s.Get(ctx, "zzz")
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})

	Convey("When upserting an existing id", func() {
		updated := fixtures()[0]
		updated.Views = 1
		So(s.Upsert(ctx, updated), ShouldBeNil)

		it, err := s.Get(ctx, "a")
		So(err, ShouldBeNil)
		So(it.Views, ShouldEqual, 1)
		n, _ := s.Count(ctx)
		So(n, ShouldEqual, 5)
	})

	Convey("When upserting an item without id", func() {
		err := s.Upsert(ctx, model.ContentItem{ID: "f"}, model.ContentItem{Title: "no id"})
		So(errors.Is(err, ErrInvalidItem), ShouldBeTrue)

		Convey("Then nothing is written", func() {
			n, _ := s.Count(ctx)
			So(n, ShouldEqual, 5)
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a seeded memory store", t, func() {
		storeContract(func(ctx context.Context) Store {
			s, err := NewMemoryStore(ctx, WithSeed(fixtures()))
			So(err, ShouldBeNil)
			return s
		})
	})
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given a seeded sqlite store", t, func() {
		storeContract(func(ctx context.Context) Store {
			s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "content.db"), WithSeed(fixtures()))
			So(err, ShouldBeNil)
			return s
		})
	})

	Convey("Given an sqlite file reopened after writes", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "content.db")

		s, err := OpenSQLite(ctx, path, WithSeed(fixtures()[:2]))
		So(err, ShouldBeNil)
		So(s.Close(), ShouldBeNil)

		reopened, err := OpenSQLite(ctx, path)
		So(err, ShouldBeNil)
		defer reopened.Close()

		Convey("Then the items persisted", func() {
			n, err := reopened.Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})
	})
}

func TestMemoryStore_Empty(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page, err := s.Fetch(ctx, model.Query{SortBy: model.SortRecent, Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 0 || page.Total != 0 {
		t.Errorf("expected empty page, got %d items (total %d)", len(page.Items), page.Total)
	}
}
