package models

import "testing"

func TestMergedOverDefaults(t *testing.T) {
	defaults := DefaultSettings()

	empty := SiteSettings{}.MergedOverDefaults()
	if empty.SiteName != defaults.SiteName || empty.AuthorName != defaults.AuthorName {
		t.Errorf("empty record must surface every default, got %+v", empty)
	}

	partial := SiteSettings{SiteName: "custom name"}.MergedOverDefaults()
	if partial.SiteName != "custom name" {
		t.Errorf("SiteName = %q, stored value must win", partial.SiteName)
	}
	if partial.AuthorEmail != defaults.AuthorEmail {
		t.Errorf("AuthorEmail = %q, unset field must fall back to default", partial.AuthorEmail)
	}
}
