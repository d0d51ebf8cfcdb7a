package models

import (
	"time"

	"gorm.io/datatypes"
)

// Artwork categories. Closed set; creation and update reject anything else.
const (
	CategoryWatercolor = "watercolor"
	CategoryDigital    = "digital"
	CategorySketch     = "sketch"
)

// Artwork is a gallery piece. Artworks are always visible once created;
// there is no draft or publish lifecycle.
type Artwork struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Slug        string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Image       string                      `gorm:"size:1024" json:"image"`
	Medium      string                      `gorm:"size:128" json:"medium"`
	Dimensions  string                      `gorm:"size:64" json:"dimensions"`
	Description string                      `gorm:"size:1024" json:"description,omitempty"`
	Category    string                      `gorm:"size:32;index;not null" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// ValidCategory reports whether c is one of the three gallery categories.
func ValidCategory(c string) bool {
	return c == CategoryWatercolor || c == CategoryDigital || c == CategorySketch
}
