package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrAmbiguousDate marks a date token that parses syntactically but
// does not denote a real calendar date. Callers store a null date and
// surface the warning instead of guessing.
var ErrAmbiguousDate = errors.New("ambiguous release date")

var (
	sixDigitRun  = regexp.MustCompile(`(?:^|[^0-9A-Za-z])(\d{6})(?:[^0-9]|$)`)
	fourDigitRun = regexp.MustCompile(`(?:^|[^0-9A-Za-z])(\d{4})(?:[^0-9A-Za-z]|$)`)
	literalDate  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// extractDate scans label for a YYMMDD run following a separator and
// falls back to a bare 4-digit year when none is found. Impossible
// dates yield an empty result plus a warning.
func extractDate(label string) (string, []string) {
	if m := sixDigitRun.FindStringSubmatch(label); m != nil {
		date, err := parseYYMMDD(m[1])
		if err != nil {
			return "", []string{fmt.Sprintf("date token %q in %q: %v", m[1], label, err)}
		}
		return date, nil
	}
	for _, m := range fourDigitRun.FindAllStringSubmatch(label, -1) {
		year, _ := strconv.Atoi(m[1])
		if year >= 1970 && year <= 2099 {
			return m[1], nil
		}
	}
	return "", nil
}

// parseYYMMDD resolves a two-digit year with the usual epoch pivot:
// years 70-99 map to the 1900s, 00-69 to the 2000s.
func parseYYMMDD(token string) (string, error) {
	yy, _ := strconv.Atoi(token[0:2])
	month, _ := strconv.Atoi(token[2:4])
	day, _ := strconv.Atoi(token[4:6])

	year := 2000 + yy
	if yy >= 70 {
		year = 1900 + yy
	}
	if !validDate(year, month, day) {
		return "", ErrAmbiguousDate
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// NormalizeDate validates a literal YYYY-MM-DD string supplied by the
// portal. Some source rows carry transposed day/month values
// ("2020-25-06"); those fail validation and come back as
// ErrAmbiguousDate rather than being silently reordered.
func NormalizeDate(raw string) (string, error) {
	m := literalDate.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("unrecognized date format %q", raw)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if !validDate(year, month, day) {
		return "", fmt.Errorf("%w: %q", ErrAmbiguousDate, raw)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
