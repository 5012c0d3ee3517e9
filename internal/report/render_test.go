package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fwarchive/internal/catalog"
	"fwarchive/internal/report"
)

func seededStore(t *testing.T) *catalog.Store {
	t.Helper()
	store := catalog.NewStore()
	store.Put("a", catalog.Entry{
		DeviceID:        100000,
		Model:           "DS-2CD1023G0E-I",
		HardwareVariant: "IPC_G0",
		FirmwareVersion: "5.7.23",
		ReleaseDate:     "2024-12-11",
		DownloadURL:     "https://cdn.example.com/a.zip",
		Changes:         "Fixed RTSP | ONVIF issues",
		Source:          catalog.SourceLive,
	})
	store.Put("b", catalog.Entry{
		DeviceID:        100000,
		Model:           "DS-2CD1023G0E-I",
		HardwareVariant: "IPC_G0",
		FirmwareVersion: "5.8.0",
		DownloadURL:     "https://cdn.example.com/b.zip",
		Notes:           "Beta build",
		IsBeta:          true,
		Source:          catalog.SourceLive,
	})
	store.Commit()
	return store
}

func TestRenderDocumentShape(t *testing.T) {
	content := report.Render(seededStore(t), report.Options{
		Title:       "Firmware Archive",
		GeneratedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{
		"# Firmware Archive",
		"Total firmware packages: 2 across 1 devices.",
		"Last updated: 2026-08-26",
		"## DS-2CD1023G0E-I (Ipc G0)",
		"Device ID: 100000",
		"| Version | Released | Changes | Notes | Download |",
		"| 5.8.0 (beta) |",
		"[download](https://cdn.example.com/a.zip)",
		"Beta firmware listed below is not recommended",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("document missing %q:\n%s", want, content)
		}
	}
}

func TestRenderEscapesPipes(t *testing.T) {
	content := report.Render(seededStore(t), report.Options{})
	if !strings.Contains(content, `Fixed RTSP \| ONVIF issues`) {
		t.Fatalf("pipe not escaped:\n%s", content)
	}
}

func TestRenderOrdersEntriesNewestFirst(t *testing.T) {
	content := report.Render(seededStore(t), report.Options{})
	// Dated 5.7.23 comes above undated 5.8.0 (empty dates sort last).
	first := strings.Index(content, "| 5.7.23 |")
	second := strings.Index(content, "| 5.8.0 (beta) |")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("unexpected row order:\n%s", content)
	}
}

func TestHardwareLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IPC_G0", "Ipc G0"},
		{"UNKNOWN", "unknown hardware"},
		{"", "unknown hardware"},
	}
	for _, tc := range tests {
		if got := report.HardwareLabel(tc.in); got != tc.want {
			t.Errorf("HardwareLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "README.md")
	if err := report.WriteFile(path, seededStore(t), report.Options{Title: "Archive"}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Archive") {
		t.Fatalf("unexpected document start: %q", string(data)[:40])
	}
}
