package export

import (
	"strings"
	"time"
)

const (
	filenamePrefix   = "PRISM_"
	filenameExt      = ".md"
	filenameMaxRunes = 30

	// FilenameTimeLayout is the timestamp suffix of export file names
	FilenameTimeLayout = "20060102_1504"
)

// SafeFilename derives a file name from the first characters of query.
// Only ASCII letters, digits, space, '-' and '_' survive; anything else
// becomes '_' and spaces become '_'.
func SafeFilename(query string, ts time.Time) string {
	runes := []rune(query)
	if len(runes) > filenameMaxRunes {
		runes = runes[:filenameMaxRunes]
	}

	var sb strings.Builder
	for _, r := range runes {
		if isSafe(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}

	safe := strings.TrimSpace(sb.String())
	safe = strings.ReplaceAll(safe, " ", "_")

	return filenamePrefix + safe + "_" + ts.Format(FilenameTimeLayout) + filenameExt
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '-', r == '_':
		return true
	}
	return false
}
