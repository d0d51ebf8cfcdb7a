package models

import "time"

// SiteSettings is a singleton record. Readers always see the hardcoded
// defaults with any stored non-empty fields layered on top; partial updates
// merge onto that view rather than replacing it.
type SiteSettings struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	SiteName        string    `gorm:"size:128" json:"siteName"`
	SiteDescription string    `gorm:"size:512" json:"siteDescription"`
	AuthorName      string    `gorm:"size:128" json:"authorName"`
	AuthorEmail     string    `gorm:"size:128" json:"authorEmail"`
	GithubURL       string    `gorm:"size:256" json:"githubUrl"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DefaultSettings returns the hardcoded fallback used when no record exists.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		SiteName:        "gianghaison.me",
		SiteDescription: "Making useful things with code & AI",
		AuthorName:      "Giang Hai Son",
		AuthorEmail:     "hello@gianghaison.me",
		GithubURL:       "https://github.com/gianghaison",
	}
}

// MergedOverDefaults overlays the record's non-empty fields onto the defaults.
func (s SiteSettings) MergedOverDefaults() SiteSettings {
	out := DefaultSettings()
	out.ID = s.ID
	out.UpdatedAt = s.UpdatedAt
	if s.SiteName != "" {
		out.SiteName = s.SiteName
	}
	if s.SiteDescription != "" {
		out.SiteDescription = s.SiteDescription
	}
	if s.AuthorName != "" {
		out.AuthorName = s.AuthorName
	}
	if s.AuthorEmail != "" {
		out.AuthorEmail = s.AuthorEmail
	}
	if s.GithubURL != "" {
		out.GithubURL = s.GithubURL
	}
	return out
}
