package catalog_test

import (
	"testing"

	"fwarchive/internal/catalog"
)

func TestCompareVersionsNumericSegments(t *testing.T) {
	cases := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"two digit segment beats one digit", "5.9.12", "5.9.2", 1},
		{"equal", "5.7.23", "5.7.23", 0},
		{"missing trailing segment is zero", "5.9", "5.9.0", 0},
		{"shorter version loses to longer nonzero", "5.9", "5.9.1", -1},
		{"v prefix ignored", "V5.7.23", "5.7.23", 0},
		{"major dominates", "10.0", "9.99.99", 1},
		{"malformed segment counts as zero", "5.x.1", "5.0.1", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := catalog.CompareVersions(tc.a, tc.b); got != tc.expected {
				t.Fatalf("CompareVersions(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.expected)
			}
			if got := catalog.CompareVersions(tc.b, tc.a); got != -tc.expected {
				t.Fatalf("CompareVersions(%q, %q) = %d, want %d", tc.b, tc.a, got, -tc.expected)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	got := catalog.ParseVersion("V5.7.23")
	want := []int{5, 7, 23}
	if len(got) != len(want) {
		t.Fatalf("ParseVersion returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParseVersion returned %v, want %v", got, want)
		}
	}
}

func TestDetectBeta(t *testing.T) {
	if !catalog.DetectBeta("5.7.23-beta", "") {
		t.Fatal("expected beta marker in version to be detected")
	}
	if !catalog.DetectBeta("5.7.23", "Release Candidate, see RC notes") {
		t.Fatal("expected rc marker in notes to be detected")
	}
	if catalog.DetectBeta("5.7.23", "Bug fixes") {
		t.Fatal("expected stable firmware to not be flagged")
	}
}
