package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)

// FormatDuration renders a duration in seconds as H:MM:SS, or M:SS when
// the duration is under an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatBytes renders a byte count in human-readable units with up to two
// decimal places, trailing zeros trimmed (1536 -> "1.5 KB", 1048576 -> "1 MB").
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	units := []string{"Bytes", "KB", "MB", "GB"}

	exp := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if exp >= len(units) {
		exp = len(units) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(exp))
	value = math.Round(value*100) / 100

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + units[exp]
}

// SanitizeFilename strips characters unsafe for filesystem use from a video
// title and bounds the result to 100 characters. Only used for
// Content-Disposition headers; cache keys are never derived from titles.
func SanitizeFilename(title string) string {
	clean := unsafeFilenameChars.ReplaceAllString(title, "")
	if len(clean) > 100 {
		clean = clean[:100]
	}
	return clean
}
