package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!  Foo--Bar", "hello-world-foo-bar"},
		{"Simple Title", "simple-title"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"UPPER case 123", "upper-case-123"},
		{"---", ""},
		{"", ""},
		{"đã có tiếng Việt", "c-ting-vit"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
