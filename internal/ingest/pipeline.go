package ingest

import (
	"errors"
	"fmt"
	"log/slog"

	"fwarchive/internal/catalog"
	"fwarchive/internal/extract"
	"fwarchive/internal/identity"
	"fwarchive/internal/logging"
	"fwarchive/internal/merge"
)

// Summary reports what one run changed.
type Summary struct {
	New      int      `json:"new"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Total returns the number of records the run accounted for.
func (s Summary) Total() int {
	return s.New + s.Updated + s.Skipped + len(s.Errors)
}

func (s Summary) String() string {
	return fmt.Sprintf("new=%d updated=%d skipped=%d errors=%d", s.New, s.Updated, s.Skipped, len(s.Errors))
}

// Pipeline runs raw records through extraction, identity resolution,
// and merge. It buffers writes in the store's pending set; the caller
// commits on success and discards on failure, so an aborted run leaves
// zero committed changes.
type Pipeline struct {
	store        *catalog.Store
	registry     *identity.Registry
	hardwareTags []string
	logger       *slog.Logger
}

func NewPipeline(store *catalog.Store, registry *identity.Registry, hardwareTags []string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		store:        store,
		registry:     registry,
		hardwareTags: hardwareTags,
		logger:       logger.With(logging.String(logging.FieldComponent, "ingest")),
	}
}

// Run processes records in order. Per-record failures are collected in
// the summary and processing continues; a device id conflict aborts the
// run immediately since continuing would merge two devices' histories.
func (p *Pipeline) Run(records []RawRecord) (Summary, error) {
	var summary Summary
	for _, record := range records {
		outcome, warnings, err := p.process(record)
		summary.Warnings = append(summary.Warnings, warnings...)
		if err != nil {
			if errors.Is(err, identity.ErrStoreConflict) {
				p.store.Discard()
				return summary, err
			}
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", record.Label, err))
			p.logger.Warn("record rejected", logging.String("label", record.Label), logging.Error(err))
			continue
		}
		switch outcome {
		case merge.OutcomeNew:
			summary.New++
		case merge.OutcomeUpdated:
			summary.Updated++
		default:
			summary.Skipped++
		}
		p.logger.Debug("record processed",
			logging.String("label", record.Label),
			logging.String("outcome", string(outcome)))
	}
	p.logger.Info("run complete",
		logging.Int("new", summary.New),
		logging.Int("updated", summary.Updated),
		logging.Int("skipped", summary.Skipped),
		logging.Int("errors", len(summary.Errors)))
	return summary, nil
}

func (p *Pipeline) process(record RawRecord) (merge.Outcome, []string, error) {
	fields := extract.Parse(record.Label, p.hardwareTags)
	warnings := fields.Warnings

	version := record.Version
	if version == "" {
		version = fields.Version
	}

	hardware := record.HardwareHint
	if hardware == "" {
		hardware = fields.HardwareHint
	}
	if hardware == "" {
		hardware = catalog.UnknownHardware
	}

	date, dateWarnings := p.resolveDate(record, fields)
	warnings = append(warnings, dateWarnings...)

	key, err := identity.CanonicalKey(record.ModelHint, hardware, version)
	if err != nil {
		return "", warnings, err
	}

	deviceID := record.DeviceID
	if deviceID > 0 {
		if err := p.registry.Declare(record.ModelHint, hardware, deviceID); err != nil {
			return "", warnings, err
		}
	} else {
		deviceID, err = p.registry.Resolve(record.ModelHint, hardware)
		if err != nil {
			return "", warnings, err
		}
	}

	source := catalog.SourceLive
	if record.Kind == KindManualEntry {
		source = catalog.SourceManual
	}
	entry := catalog.Entry{
		CanonicalKey:        key,
		DeviceID:            deviceID,
		Model:               record.ModelHint,
		HardwareVariant:     hardware,
		FirmwareVersion:     version,
		ReleaseDate:         date,
		DownloadURL:         record.URL,
		SupportedModelsText: record.SupportedModelsText,
		Changes:             record.Changes,
		Notes:               record.Notes,
		IsBeta:              catalog.DetectBeta(version, record.Notes),
		Source:              source,
	}
	return merge.Apply(p.store, entry), warnings, nil
}

// resolveDate prefers the literal date the portal shows for the row
// and falls back to the date parsed out of the filename. An ambiguous
// literal is reported, never guessed.
func (p *Pipeline) resolveDate(record RawRecord, fields extract.Fields) (string, []string) {
	if record.ReleaseDateText == "" {
		return fields.ReleaseDate, nil
	}
	date, err := extract.NormalizeDate(record.ReleaseDateText)
	if err != nil {
		warning := fmt.Sprintf("%s: %v", record.Label, err)
		return fields.ReleaseDate, []string{warning}
	}
	return date, nil
}
