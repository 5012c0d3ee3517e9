package extract_test

import (
	"errors"
	"testing"

	"fwarchive/internal/extract"
)

func TestParseFirmwareFilename(t *testing.T) {
	fields := extract.Parse("Firmware__V5.7.23_241211_S3000620671.zip", nil)
	if fields.Version != "5.7.23" {
		t.Fatalf("Version = %q, want %q", fields.Version, "5.7.23")
	}
	if fields.ReleaseDate != "2024-12-11" {
		t.Fatalf("ReleaseDate = %q, want %q", fields.ReleaseDate, "2024-12-11")
	}
	if len(fields.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", fields.Warnings)
	}
}

func TestParseVersionCandidates(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Firmware__V5.7.23_241211.zip", "5.7.23"},
		{"firmware_v4.1.50_build220613.dav", "4.1.50"},
		{"IPCAM_5.5.800_200304.zip", "5.5.800"},
		// V-prefixed candidate beats an earlier bare token.
		{"pkg_1.2_then_V5.7.23.zip", "5.7.23"},
		// Token embedded in a longer alphanumeric run is not a version.
		{"SN12345.6789X_V5.7.0.zip", "5.7.0"},
		{"no version here", ""},
		{"V5.7.23", "5.7.23"},
	}
	for _, tc := range tests {
		got := extract.Parse(tc.label, nil).Version
		if got != tc.want {
			t.Errorf("Parse(%q).Version = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestParseDateEpochPivot(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"fw_V1.0_241211.zip", "2024-12-11"},
		{"fw_V1.0_000101.zip", "2000-01-01"},
		// Years 70-99 land in the 1900s.
		{"fw_V1.0_991231.zip", "1999-12-31"},
		{"fw_V1.0_700101.zip", "1970-01-01"},
	}
	for _, tc := range tests {
		got := extract.Parse(tc.label, nil).ReleaseDate
		if got != tc.want {
			t.Errorf("Parse(%q).ReleaseDate = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestParseImpossibleDateIsWarnedNotGuessed(t *testing.T) {
	// Month 25 cannot be reordered into a real date without guessing.
	fields := extract.Parse("fw_V1.0_202506x.zip", nil)
	if fields.ReleaseDate != "" {
		t.Fatalf("ReleaseDate = %q, want empty", fields.ReleaseDate)
	}
	if len(fields.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", fields.Warnings)
	}
}

func TestParseModelDigitsAreNotAYear(t *testing.T) {
	// "2043" inside DS-2CD2043G2-I is a model designator, not a year.
	fields := extract.Parse("DS-2CD2043G2-I_Firmware_V5.5.800.zip", nil)
	if fields.ReleaseDate != "" {
		t.Fatalf("ReleaseDate = %q, want empty", fields.ReleaseDate)
	}
	if len(fields.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", fields.Warnings)
	}
	if fields.Version != "5.5.800" {
		t.Fatalf("Version = %q, want %q", fields.Version, "5.5.800")
	}
}

func TestParseFallsBackToBareYear(t *testing.T) {
	fields := extract.Parse("legacy_fw_V2.0_(2019).zip", nil)
	if fields.ReleaseDate != "2019" {
		t.Fatalf("ReleaseDate = %q, want %q", fields.ReleaseDate, "2019")
	}
}

func TestParseHardwareHint(t *testing.T) {
	fields := extract.Parse("IPC_G0 series Firmware_V5.7.23.zip", nil)
	if fields.HardwareHint != "IPC_G0" {
		t.Fatalf("HardwareHint = %q, want %q", fields.HardwareHint, "IPC_G0")
	}
	fields = extract.Parse("Firmware_V5.7.23.zip", nil)
	if fields.HardwareHint != "" {
		t.Fatalf("HardwareHint = %q, want empty", fields.HardwareHint)
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := extract.NormalizeDate("2024-6-2")
	if err != nil {
		t.Fatalf("NormalizeDate failed: %v", err)
	}
	if got != "2024-06-02" {
		t.Fatalf("NormalizeDate = %q, want %q", got, "2024-06-02")
	}

	// Transposed day/month observed in source rows must not be reordered.
	if _, err := extract.NormalizeDate("2020-25-06"); !errors.Is(err, extract.ErrAmbiguousDate) {
		t.Fatalf("expected ErrAmbiguousDate, got %v", err)
	}

	if _, err := extract.NormalizeDate("June 2nd"); err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}
