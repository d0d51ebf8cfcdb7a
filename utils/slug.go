package utils

import "strings"

// Slugify derives a URL-safe identifier from a title: lowercase, strip anything
// outside [a-z0-9\s-], collapse whitespace and hyphen runs to single hyphens,
// trim leading/trailing hyphens. An empty title yields an empty slug; callers
// enforcing uniqueness must guard against that themselves.
func Slugify(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '-':
			b.WriteByte('-')
		}
	}

	// Collapse hyphen runs produced by whitespace and stripped characters.
	var out strings.Builder
	out.Grow(b.Len())
	prevHyphen := false
	for _, r := range b.String() {
		if r == '-' {
			if prevHyphen {
				continue
			}
			prevHyphen = true
		} else {
			prevHyphen = false
		}
		out.WriteRune(r)
	}

	return strings.Trim(out.String(), "-")
}
