package extract

import (
	"regexp"
	"strings"
)

// Fields holds the candidate values parsed out of one raw label.
// Empty string means the field could not be determined.
type Fields struct {
	Version      string
	ReleaseDate  string
	HardwareHint string
	Warnings     []string
}

// DefaultHardwareTags are the platform tags recognized out of the box.
// The list is configurable; matching is case-insensitive substring with
// first configured tag winning.
var DefaultHardwareTags = []string{
	"IPC_G0", "IPC_G3", "IPC_G5", "IPC_H5", "IPC_H8",
	"NVR_K51", "NVR_K41", "DVR_GUI", "PTZ_G3", "THERMAL",
}

var dottedNumeric = regexp.MustCompile(`\d+(?:\.\d+){1,3}`)

// Parse extracts version, release date, and hardware hint from label.
// It never fails: absent fields stay empty and date problems are
// surfaced as warnings instead of aborting.
func Parse(label string, hardwareTags []string) Fields {
	if hardwareTags == nil {
		hardwareTags = DefaultHardwareTags
	}
	fields := Fields{
		Version:      extractVersion(label),
		HardwareHint: matchHardware(label, hardwareTags),
	}
	fields.ReleaseDate, fields.Warnings = extractDate(label)
	return fields
}

// extractVersion finds the dotted-numeric version token in label.
// Candidates adjacent to a V prefix win over bare tokens, and the
// leftmost candidate wins within each class. Tokens embedded in longer
// alphanumeric runs (serial numbers, build tags) are rejected.
func extractVersion(label string) string {
	var firstBare string
	for _, loc := range dottedNumeric.FindAllStringIndex(label, -1) {
		start, end := loc[0], loc[1]
		if !boundedBefore(label, start) || !boundedAfter(label, end) {
			continue
		}
		if hasVersionPrefix(label, start) {
			return label[start:end]
		}
		if firstBare == "" {
			firstBare = label[start:end]
		}
	}
	return firstBare
}

func hasVersionPrefix(label string, start int) bool {
	if start == 0 {
		return false
	}
	c := label[start-1]
	if c != 'V' && c != 'v' {
		return false
	}
	if start == 1 {
		return true
	}
	return !isAlphanumeric(label[start-2])
}

// boundedBefore reports whether the character before start separates the
// token from preceding text. A V/v prefix counts as a separator since it
// marks a version rather than extending an identifier.
func boundedBefore(label string, start int) bool {
	if start == 0 {
		return true
	}
	c := label[start-1]
	if c == 'V' || c == 'v' {
		return start == 1 || !isAlphanumeric(label[start-2])
	}
	return !isAlphanumeric(c)
}

func boundedAfter(label string, end int) bool {
	if end >= len(label) {
		return true
	}
	c := label[end]
	if c == '.' {
		// A further digit means the token is a truncated slice of a
		// longer dotted run (a serial, not a version). A trailing
		// extension like ".zip" is fine.
		return end+1 >= len(label) || !isDigit(label[end+1])
	}
	return !isAlphanumeric(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphanumeric(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func matchHardware(label string, tags []string) string {
	upper := strings.ToUpper(label)
	for _, tag := range tags {
		if strings.Contains(upper, strings.ToUpper(tag)) {
			return tag
		}
	}
	return ""
}
