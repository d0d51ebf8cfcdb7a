package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxBaseNameLen = 50

// GenerateFilename derives a unique storage filename from the uploaded file's
// original name: lowercased, extension stripped, non-alphanumeric runs
// replaced with single hyphens, truncated, then suffixed with a millisecond
// timestamp and a short random token so collisions are practically impossible.
func GenerateFilename(originalName, extension string) string {
	base := strings.ToLower(originalName)
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}

	var b strings.Builder
	b.Grow(len(base))
	prevHyphen := false
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	cleaned := strings.Trim(b.String(), "-")
	if len(cleaned) > maxBaseNameLen {
		cleaned = cleaned[:maxBaseNameLen]
	}
	if cleaned == "" {
		cleaned = "upload"
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s-%d-%s.%s", cleaned, time.Now().UnixMilli(), token, extension)
}
