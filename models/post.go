package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gianghaison/gianghaison.me/utils"
)

// Post publication states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// Content languages.
const (
	LangEN = "en"
	LangVI = "vi"
)

// DefaultAuthor is stamped on posts whose author field is absent.
const DefaultAuthor = "Giang Hai Son"

// DefaultLang is used when a post carries no language or an unknown code.
const DefaultLang = LangVI

// Post is a blog entry. Records written under the legacy schema carry the
// Published boolean and a Description field instead of Status and Excerpt;
// Normalized reconciles both generations into one canonical shape.
type Post struct {
	ID      uint                        `gorm:"primaryKey" json:"id"`
	Slug    string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title   string                      `gorm:"size:255;not null" json:"title"`
	Content string                      `gorm:"type:mediumtext" json:"content"`
	Excerpt string                      `gorm:"size:512" json:"excerpt"`
	Tags    datatypes.JSONSlice[string] `json:"tags"`
	Author  string                      `gorm:"size:128" json:"author"`
	Lang    string                      `gorm:"size:8" json:"lang"`
	Status  string                      `gorm:"size:16;index" json:"status"`

	// Legacy schema fields. Status wins over Published when both are present.
	Published   *bool  `json:"published,omitempty"`
	Description string `gorm:"size:512" json:"description,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ScheduledAt *time.Time `gorm:"index" json:"scheduledAt,omitempty"`
}

// ValidStatus reports whether s is one of the three publication states.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusScheduled
}

// ValidLang reports whether l is a supported language code.
func ValidLang(l string) bool {
	return l == LangEN || l == LangVI
}

// Normalized reconciles a raw stored record into the canonical shape. It is
// idempotent, absorbs every legacy shape silently, and clears the legacy
// fields so no schema ambiguity remains:
//
//   - Excerpt falls back to the legacy Description when empty.
//   - Status keeps a valid enum value; otherwise the legacy Published boolean
//     maps true->published, false/absent->draft.
//   - Author and Lang receive site defaults when absent or invalid.
//   - PublishedAt is backfilled from CreatedAt (never "now") for published
//     records migrated without one, preserving historical ordering.
func (p Post) Normalized() Post {
	if p.Excerpt == "" && p.Description != "" {
		p.Excerpt = p.Description
	}
	p.Description = ""

	if !ValidStatus(p.Status) {
		if p.Published != nil && *p.Published {
			p.Status = StatusPublished
		} else {
			p.Status = StatusDraft
		}
	}
	p.Published = nil

	if p.Author == "" {
		p.Author = DefaultAuthor
	}
	if !ValidLang(p.Lang) {
		p.Lang = DefaultLang
	}

	if p.Status == StatusPublished && p.PublishedAt == nil {
		created := p.CreatedAt
		p.PublishedAt = &created
	}

	return p
}

// StatusTransition describes the storage-level effects of moving a post into
// a new publication state.
type StatusTransition struct {
	Status string
	// PublishedAt is set when the post goes live for the first time; a post
	// that already carries a publication time keeps it forever.
	PublishedAt *time.Time
	// ClearScheduledAt is set when the post leaves the scheduled state, so a
	// stale scheduled time never survives the transition.
	ClearScheduledAt bool
}

// TransitionStatus validates a requested status change against the current
// record and computes its side effects. The receiver must be normalized.
// scheduledAt is the time supplied alongside the request, if any; entering
// the scheduled state requires one here or already on the record.
func (p Post) TransitionStatus(status string, scheduledAt *time.Time, now time.Time) (StatusTransition, error) {
	if !ValidStatus(status) {
		return StatusTransition{}, utils.NewAppError(utils.KindInvalidEnumValue, "invalid status: "+status)
	}

	tr := StatusTransition{Status: status}

	if status == StatusPublished && p.PublishedAt == nil {
		stamp := now
		tr.PublishedAt = &stamp
	}

	if status == StatusScheduled {
		if scheduledAt == nil && p.ScheduledAt == nil {
			return StatusTransition{}, utils.NewAppError(utils.KindMissingRequiredField, "scheduledAt is required for scheduled posts")
		}
	} else {
		tr.ClearScheduledAt = true
	}

	return tr, nil
}

// VisibleAt is the effective-visibility predicate for public listings: a post
// is visible when published, or scheduled with its scheduled time reached.
// It is evaluated at read time because scheduled posts flip to visible purely
// by the clock, without any stored mutation.
func (p Post) VisibleAt(now time.Time) bool {
	switch p.Status {
	case StatusPublished:
		return true
	case StatusScheduled:
		return p.ScheduledAt != nil && !p.ScheduledAt.After(now)
	default:
		return false
	}
}
