package media

import (
	"regexp"
	"strings"
	"testing"
)

var filenamePattern = regexp.MustCompile(`^([a-z0-9-]+)-(\d{13,})-([a-f0-9]{6})\.webp$`)

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		original string
		wantBase string
	}{
		{"Holiday Photo.JPG", "holiday-photo"},
		{"IMG_2024__final (1).png", "img-2024-final-1"},
		{"....", "upload"},
		{"ảnh.png", "nh"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			got := GenerateFilename(tt.original, "webp")
			m := filenamePattern.FindStringSubmatch(got)
			if m == nil {
				t.Fatalf("GenerateFilename(%q) = %q, want base-millis-token.webp shape", tt.original, got)
			}
			if m[1] != tt.wantBase {
				t.Errorf("base = %q, want %q", m[1], tt.wantBase)
			}
		})
	}
}

func TestGenerateFilenameTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", 120) + ".png"
	got := GenerateFilename(long, "webp")
	base := strings.SplitN(got, "-", 2)[0]
	if len(base) > maxBaseNameLen {
		t.Errorf("base length = %d, want at most %d", len(base), maxBaseNameLen)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", maxBaseNameLen)+"-") {
		t.Errorf("got %q, want truncated base", got)
	}
}

func TestGenerateFilenameUnique(t *testing.T) {
	a := GenerateFilename("photo.png", "webp")
	b := GenerateFilename("photo.png", "webp")
	if a == b {
		t.Errorf("two filenames collided: %q", a)
	}
}
