package portal

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fwarchive/internal/ingest"
)

// Selectors for the portal's result markup. The portal is one specific
// website; when its DOM changes these are the only place to update.
const (
	rowSelector             = "div.main-title"
	modelSelector           = ".title-text"
	packageSelector         = ".version-text"
	dateSelector            = ".date-text"
	supportedModelsSelector = ".supported-models"
	notesSelector           = ".update-notes"
)

// Row is the structured content of one portal result row, before the
// download link has been resolved through the agreement modal.
type Row struct {
	Model               string
	Label               string
	ReleaseDateText     string
	SupportedModelsText string
	Notes               string
}

// ParseRows parses the portal's result-list HTML into rows. Rows
// missing a model or a package label are dropped: they are decorative
// list chrome, not results.
func ParseRows(html string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse portal html: %w", err)
	}

	var rows []Row
	doc.Find(rowSelector).Each(func(_ int, sel *goquery.Selection) {
		row := Row{
			Model:               text(sel, modelSelector),
			Label:               text(sel, packageSelector),
			ReleaseDateText:     text(sel, dateSelector),
			SupportedModelsText: text(sel, supportedModelsSelector),
			Notes:               text(sel, notesSelector),
		}
		if row.Model == "" || row.Label == "" {
			return
		}
		rows = append(rows, row)
	})
	return rows, nil
}

// ParseRow parses a single result-row fragment.
func ParseRow(html string) (Row, error) {
	rows, err := ParseRows(html)
	if err != nil {
		return Row{}, err
	}
	if len(rows) != 1 {
		return Row{}, fmt.Errorf("expected one result row, found %d", len(rows))
	}
	return rows[0], nil
}

// Record converts a resolved row into the pipeline's raw record shape.
func (r Row) Record(downloadURL string) ingest.RawRecord {
	return ingest.RawRecord{
		Kind:                ingest.KindSearchResult,
		Label:               r.Label,
		URL:                 downloadURL,
		ModelHint:           r.Model,
		ReleaseDateText:     r.ReleaseDateText,
		SupportedModelsText: r.SupportedModelsText,
		Notes:               r.Notes,
	}
}

func text(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}
