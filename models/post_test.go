package models

import (
	"testing"
	"time"

	"github.com/gianghaison/gianghaison.me/utils"
)

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func TestNormalizedLegacySchema(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		post       Post
		wantStatus string
	}{
		{
			name:       "legacy published true maps to published",
			post:       Post{Published: boolPtr(true), CreatedAt: created},
			wantStatus: StatusPublished,
		},
		{
			name:       "legacy published false maps to draft",
			post:       Post{Published: boolPtr(false), CreatedAt: created},
			wantStatus: StatusDraft,
		},
		{
			name:       "no publication fields at all maps to draft",
			post:       Post{CreatedAt: created},
			wantStatus: StatusDraft,
		},
		{
			name:       "status wins over contradicting legacy boolean",
			post:       Post{Status: StatusDraft, Published: boolPtr(true), CreatedAt: created},
			wantStatus: StatusDraft,
		},
		{
			name:       "unknown status falls back to legacy boolean",
			post:       Post{Status: "archived", Published: boolPtr(true), CreatedAt: created},
			wantStatus: StatusPublished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.post.Normalized()
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.Published != nil {
				t.Errorf("Published = %v, want nil after normalization", *got.Published)
			}
			if got.Description != "" {
				t.Errorf("Description = %q, want empty after normalization", got.Description)
			}
		})
	}
}

func TestNormalizedExcerptFallback(t *testing.T) {
	p := Post{Description: "from the old schema"}.Normalized()
	if p.Excerpt != "from the old schema" {
		t.Errorf("Excerpt = %q, want legacy description", p.Excerpt)
	}

	p = Post{Excerpt: "already set", Description: "ignored"}.Normalized()
	if p.Excerpt != "already set" {
		t.Errorf("Excerpt = %q, existing excerpt must win", p.Excerpt)
	}
}

func TestNormalizedDefaults(t *testing.T) {
	p := Post{}.Normalized()
	if p.Author != DefaultAuthor {
		t.Errorf("Author = %q, want %q", p.Author, DefaultAuthor)
	}
	if p.Lang != DefaultLang {
		t.Errorf("Lang = %q, want %q", p.Lang, DefaultLang)
	}

	p = Post{Author: "Guest", Lang: LangEN}.Normalized()
	if p.Author != "Guest" || p.Lang != LangEN {
		t.Errorf("explicit author/lang overwritten: %q %q", p.Author, p.Lang)
	}

	p = Post{Lang: "fr"}.Normalized()
	if p.Lang != DefaultLang {
		t.Errorf("unknown lang %q kept, want default", p.Lang)
	}
}

func TestNormalizedPublishedAtBackfill(t *testing.T) {
	created := time.Date(2023, 6, 10, 8, 30, 0, 0, time.UTC)

	p := Post{Status: StatusPublished, CreatedAt: created}.Normalized()
	if p.PublishedAt == nil || !p.PublishedAt.Equal(created) {
		t.Fatalf("PublishedAt = %v, want backfill from CreatedAt %v", p.PublishedAt, created)
	}

	explicit := created.Add(24 * time.Hour)
	p = Post{Status: StatusPublished, CreatedAt: created, PublishedAt: timePtr(explicit)}.Normalized()
	if !p.PublishedAt.Equal(explicit) {
		t.Errorf("PublishedAt = %v, existing value must be kept", p.PublishedAt)
	}

	p = Post{Status: StatusDraft, CreatedAt: created}.Normalized()
	if p.PublishedAt != nil {
		t.Errorf("draft got PublishedAt %v, want nil", p.PublishedAt)
	}
}

func TestNormalizedIdempotent(t *testing.T) {
	posts := []Post{
		{},
		{Published: boolPtr(true), Description: "old", CreatedAt: time.Now()},
		{Status: StatusScheduled, ScheduledAt: timePtr(time.Now().Add(time.Hour))},
		{Status: StatusPublished, Author: "Guest", Lang: LangEN, Excerpt: "e"},
	}
	for i, p := range posts {
		once := p.Normalized()
		twice := once.Normalized()
		if once.Status != twice.Status || once.Excerpt != twice.Excerpt ||
			once.Author != twice.Author || once.Lang != twice.Lang {
			t.Errorf("post %d: second normalization changed the record: %+v vs %+v", i, once, twice)
		}
		if (once.PublishedAt == nil) != (twice.PublishedAt == nil) {
			t.Errorf("post %d: PublishedAt changed on second pass", i)
		}
	}
}

func TestTransitionStatus(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	firstPublish := now.Add(-48 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name          string
		post          Post
		status        string
		scheduledAt   *time.Time
		wantStamp     *time.Time
		wantClear     bool
		wantErrorKind utils.ErrorKind
	}{
		{
			name:      "first publish stamps publishedAt with now",
			post:      Post{Status: StatusDraft},
			status:    StatusPublished,
			wantStamp: &now,
			wantClear: true,
		},
		{
			name:      "republishing never overwrites publishedAt",
			post:      Post{Status: StatusPublished, PublishedAt: timePtr(firstPublish)},
			status:    StatusPublished,
			wantStamp: nil,
			wantClear: true,
		},
		{
			name:      "publishing a scheduled post clears its scheduled time",
			post:      Post{Status: StatusScheduled, ScheduledAt: timePtr(future)},
			status:    StatusPublished,
			wantStamp: &now,
			wantClear: true,
		},
		{
			name:      "demoting a scheduled post to draft clears its scheduled time",
			post:      Post{Status: StatusScheduled, ScheduledAt: timePtr(future)},
			status:    StatusDraft,
			wantClear: true,
		},
		{
			name:        "scheduling with a time on the request",
			post:        Post{Status: StatusDraft},
			status:      StatusScheduled,
			scheduledAt: timePtr(future),
		},
		{
			name:   "rescheduling keeps the existing time",
			post:   Post{Status: StatusScheduled, ScheduledAt: timePtr(future)},
			status: StatusScheduled,
		},
		{
			name:          "scheduling with no time anywhere is rejected",
			post:          Post{Status: StatusDraft},
			status:        StatusScheduled,
			wantErrorKind: utils.KindMissingRequiredField,
		},
		{
			name:          "unknown status is rejected",
			post:          Post{Status: StatusDraft},
			status:        "archived",
			wantErrorKind: utils.KindInvalidEnumValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := tt.post.TransitionStatus(tt.status, tt.scheduledAt, now)

			if tt.wantErrorKind != "" {
				if !utils.IsKind(err, tt.wantErrorKind) {
					t.Fatalf("error kind = %v (%v), want %v", utils.KindOf(err), err, tt.wantErrorKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("TransitionStatus: %v", err)
			}

			if tr.Status != tt.status {
				t.Errorf("Status = %q, want %q", tr.Status, tt.status)
			}
			if tt.wantStamp == nil {
				if tr.PublishedAt != nil {
					t.Errorf("PublishedAt = %v, want no stamp", tr.PublishedAt)
				}
			} else if tr.PublishedAt == nil || !tr.PublishedAt.Equal(*tt.wantStamp) {
				t.Errorf("PublishedAt = %v, want %v", tr.PublishedAt, *tt.wantStamp)
			}
			if tr.ClearScheduledAt != tt.wantClear {
				t.Errorf("ClearScheduledAt = %v, want %v", tr.ClearScheduledAt, tt.wantClear)
			}
		})
	}
}

func TestVisibleAt(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"published is visible", Post{Status: StatusPublished}, true},
		{"draft is hidden", Post{Status: StatusDraft}, false},
		{"scheduled in the past is visible", Post{Status: StatusScheduled, ScheduledAt: timePtr(now.Add(-time.Hour))}, true},
		{"scheduled exactly now is visible", Post{Status: StatusScheduled, ScheduledAt: timePtr(now)}, true},
		{"scheduled in the future is hidden", Post{Status: StatusScheduled, ScheduledAt: timePtr(now.Add(time.Hour))}, false},
		{"scheduled without a time is hidden", Post{Status: StatusScheduled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.VisibleAt(now); got != tt.want {
				t.Errorf("VisibleAt = %v, want %v", got, tt.want)
			}
		})
	}
}
