package catalog

import (
	"strconv"
	"strings"
)

// ParseVersion splits a dotted firmware version into integer segments.
// A leading "V"/"v" is stripped; non-numeric segments count as 0 so that a
// malformed version still sorts deterministically instead of failing.
func ParseVersion(version string) []int {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "V")
	version = strings.TrimPrefix(version, "v")
	if version == "" {
		return nil
	}

	parts := strings.Split(version, ".")
	segments := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			n = 0
		}
		segments[i] = n
	}
	return segments
}

// CompareVersions orders firmware versions by numeric segment comparison;
// missing trailing segments compare as 0, so "5.9" equals "5.9.0" and
// "5.9.12" sorts above "5.9.2". Returns -1, 0, or 1.
func CompareVersions(a, b string) int {
	as := ParseVersion(a)
	bs := ParseVersion(b)

	length := len(as)
	if len(bs) > length {
		length = len(bs)
	}
	for i := 0; i < length; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}
