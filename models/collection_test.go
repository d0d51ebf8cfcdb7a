package models

import (
	"reflect"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestFilterPublished(t *testing.T) {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	posts := []Post{
		{Slug: "future", Status: StatusScheduled, ScheduledAt: timePtr(now.Add(time.Hour))},
		{Slug: "live", Status: StatusPublished},
		{Slug: "went-live", Status: StatusScheduled, ScheduledAt: timePtr(now.Add(-time.Hour))},
		{Slug: "draft", Status: StatusDraft},
	}

	got := FilterPublished(posts, now)
	want := []string{"live", "went-live"}
	if len(got) != len(want) {
		t.Fatalf("got %d posts, want %d", len(got), len(want))
	}
	for i, slug := range want {
		if got[i].Slug != slug {
			t.Errorf("posts[%d].Slug = %q, want %q (order must be preserved)", i, got[i].Slug, slug)
		}
	}
}

func TestCollectTags(t *testing.T) {
	posts := []Post{
		{Tags: datatypes.JSONSlice[string]{"a", "c"}},
		{Tags: datatypes.JSONSlice[string]{"b", "a"}},
		{},
	}
	got := CollectTags(posts)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectTags = %v, want %v", got, want)
	}

	if got := CollectTags(nil); len(got) != 0 {
		t.Errorf("CollectTags(nil) = %v, want empty", got)
	}
}

func TestCollectCategories(t *testing.T) {
	works := []Artwork{
		{Category: CategorySketch},
		{Category: CategoryWatercolor},
		{Category: CategorySketch},
		{},
	}
	got := CollectCategories(works)
	want := []string{CategorySketch, CategoryWatercolor}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectCategories = %v, want %v", got, want)
	}
}

// The collection is newest-first, so "previous" points at the older
// neighbour and "next" at the newer one.
func TestAdjacentPosts(t *testing.T) {
	posts := []Post{{Slug: "c"}, {Slug: "b"}, {Slug: "a"}}

	tests := []struct {
		slug         string
		wantPrevious string
		wantNext     string
	}{
		{"c", "b", ""},
		{"b", "a", "c"},
		{"a", "", "b"},
		{"missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			previous, next := AdjacentPosts(posts, tt.slug)
			if got := slugOf(previous); got != tt.wantPrevious {
				t.Errorf("previous = %q, want %q", got, tt.wantPrevious)
			}
			if got := slugOf(next); got != tt.wantNext {
				t.Errorf("next = %q, want %q", got, tt.wantNext)
			}
		})
	}
}

func TestAdjacentArtworks(t *testing.T) {
	works := []Artwork{{Slug: "newest"}, {Slug: "middle"}, {Slug: "oldest"}}

	previous, next := AdjacentArtworks(works, "middle")
	if previous == nil || previous.Slug != "oldest" {
		t.Errorf("previous = %v, want oldest", previous)
	}
	if next == nil || next.Slug != "newest" {
		t.Errorf("next = %v, want newest", next)
	}

	previous, next = AdjacentArtworks(works, "nope")
	if previous != nil || next != nil {
		t.Errorf("unknown slug returned neighbours: %v %v", previous, next)
	}
}

func slugOf(p *Post) string {
	if p == nil {
		return ""
	}
	return p.Slug
}
