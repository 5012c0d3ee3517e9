// Package report renders the canonical catalog into a human-readable
// markdown document: one section per (model, hardware variant) group
// with a firmware table sorted newest first.
package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fwarchive/internal/catalog"
	"fwarchive/internal/fileutil"
)

// Options controls document rendering.
type Options struct {
	Title string
	// GeneratedAt stamps the document; the zero value omits the line.
	GeneratedAt time.Time
}

var titleCaser = cases.Title(language.English)

// Render produces the full markdown document for the store contents.
func Render(store *catalog.Store, opts Options) string {
	title := opts.Title
	if title == "" {
		title = "Firmware Archive"
	}
	groups := store.AllGrouped()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Total firmware packages: %d across %d devices.\n", store.Len(), len(groups))
	if !opts.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "\nLast updated: %s\n", opts.GeneratedAt.UTC().Format("2006-01-02"))
	}

	for _, group := range groups {
		b.WriteString("\n")
		writeGroup(&b, group)
	}
	return b.String()
}

// WriteFile renders the document and writes it atomically.
func WriteFile(path string, store *catalog.Store, opts Options) error {
	return fileutil.WriteAtomic(path, []byte(Render(store, opts)), 0o644)
}

func writeGroup(b *strings.Builder, group catalog.Group) {
	fmt.Fprintf(b, "## %s (%s)\n\n", group.Model, HardwareLabel(group.HardwareVariant))
	if len(group.Entries) > 0 {
		fmt.Fprintf(b, "Device ID: %d\n\n", group.Entries[0].DeviceID)
	}
	if groupHasBeta(group) {
		b.WriteString("> Beta firmware listed below is not recommended for production use.\n\n")
	}

	b.WriteString("| Version | Released | Changes | Notes | Download |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, entry := range group.Entries {
		version := escapeCell(entry.FirmwareVersion)
		if entry.IsBeta {
			version += " (beta)"
		}
		released := entry.ReleaseDate
		if released == "" {
			released = "unknown"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | [download](%s) |\n",
			version,
			escapeCell(released),
			escapeCell(entry.Changes),
			escapeCell(entry.Notes),
			entry.DownloadURL)
	}
}

// HardwareLabel turns a platform tag like "IPC_G0" into a display label
// like "Ipc G0". The UNKNOWN sentinel keeps a plain reading.
func HardwareLabel(variant string) string {
	if variant == "" || strings.EqualFold(variant, catalog.UnknownHardware) {
		return "unknown hardware"
	}
	spaced := strings.ReplaceAll(variant, "_", " ")
	return titleCaser.String(strings.ToLower(spaced))
}

// escapeCell keeps free text from breaking the table: pipes are escaped
// and newlines collapse to spaces.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

func groupHasBeta(group catalog.Group) bool {
	for _, entry := range group.Entries {
		if entry.IsBeta {
			return true
		}
	}
	return false
}
