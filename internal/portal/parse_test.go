package portal_test

import (
	"testing"

	"fwarchive/internal/ingest"
	"fwarchive/internal/portal"
)

const resultsHTML = `
<div class="results-list">
  <div class="main-title">
    <span class="title-text"> DS-2CD1023G0E-I </span>
    <span class="version-text">Firmware__V5.7.23_241211_S3000620671.zip</span>
    <span class="date-text">2024-12-11</span>
    <div class="supported-models">DS-2CD1023G0E-I(UF)</div>
    <div class="update-notes">Fixed RTSP streaming issues</div>
  </div>
  <div class="main-title">
    <span class="title-text">DS-7608NI-K2</span>
    <span class="version-text">NVR_K2_V4.62.210_build231106.zip</span>
  </div>
  <div class="main-title">
    <span class="title-text"></span>
    <span class="version-text"></span>
  </div>
</div>`

func TestParseRows(t *testing.T) {
	rows, err := portal.ParseRows(resultsHTML)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (empty chrome row dropped)", len(rows))
	}

	first := rows[0]
	if first.Model != "DS-2CD1023G0E-I" {
		t.Fatalf("Model = %q", first.Model)
	}
	if first.Label != "Firmware__V5.7.23_241211_S3000620671.zip" {
		t.Fatalf("Label = %q", first.Label)
	}
	if first.ReleaseDateText != "2024-12-11" {
		t.Fatalf("ReleaseDateText = %q", first.ReleaseDateText)
	}
	if first.SupportedModelsText != "DS-2CD1023G0E-I(UF)" {
		t.Fatalf("SupportedModelsText = %q", first.SupportedModelsText)
	}
	if first.Notes != "Fixed RTSP streaming issues" {
		t.Fatalf("Notes = %q", first.Notes)
	}

	second := rows[1]
	if second.ReleaseDateText != "" || second.Notes != "" {
		t.Fatalf("sparse row picked up phantom fields: %+v", second)
	}
}

func TestParseRowSingleFragment(t *testing.T) {
	fragment := `
<div class="main-title">
  <span class="title-text">DS-2DE4225IW-DE</span>
  <span class="version-text">PTZ_V5.7.11_230327.zip</span>
</div>`
	row, err := portal.ParseRow(fragment)
	if err != nil {
		t.Fatalf("ParseRow failed: %v", err)
	}
	if row.Model != "DS-2DE4225IW-DE" {
		t.Fatalf("Model = %q", row.Model)
	}
}

func TestParseRowRejectsMultipleRows(t *testing.T) {
	if _, err := portal.ParseRow(resultsHTML); err == nil {
		t.Fatal("expected error for multi-row fragment")
	}
}

func TestRowRecordShape(t *testing.T) {
	row := portal.Row{
		Model:           "DS-2CD1023G0E-I",
		Label:           "Firmware__V5.7.23_241211.zip",
		ReleaseDateText: "2024-12-11",
		Notes:           "notes",
	}
	record := row.Record("https://cdn.example.com/fw.zip")
	if record.Kind != ingest.KindSearchResult {
		t.Fatalf("Kind = %q", record.Kind)
	}
	if record.URL != "https://cdn.example.com/fw.zip" {
		t.Fatalf("URL = %q", record.URL)
	}
	if record.ModelHint != row.Model || record.Label != row.Label {
		t.Fatalf("record = %+v", record)
	}
	if record.ReleaseDateText != "2024-12-11" {
		t.Fatalf("ReleaseDateText = %q", record.ReleaseDateText)
	}
}
