package models

import "time"

// PageView stores the all-time view counter for one path. Counters are bumped
// with an atomic upsert (count = count + 1) so concurrent traffic never loses
// updates to read-modify-write races.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Path      string    `gorm:"size:255;uniqueIndex;not null" json:"path"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	UpdatedAt time.Time `json:"lastUpdated"`
}

// DailyView aggregates views per calendar day (date formatted YYYY-MM-DD).
type DailyView struct {
	ID    uint   `gorm:"primaryKey" json:"-"`
	Date  string `gorm:"size:10;uniqueIndex;not null" json:"date"`
	Views int64  `gorm:"not null;default:0" json:"views"`
}
