package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fwarchive/internal/ingest"
	"fwarchive/internal/runlog"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var record ingest.RawRecord

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manually curated firmware entry",
		Long: "Add inserts a curator-supplied entry into the manual catalog. " +
			"Manual entries are never overwritten by scrape runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if record.ModelHint == "" {
				return errors.New("--model is required")
			}
			if record.URL == "" {
				return errors.New("--url is required")
			}
			if record.Label == "" {
				record.Label = record.URL
			}
			record.Kind = ingest.KindManualEntry

			lock, err := ctx.acquireRunLock()
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			store, registry, files, registryPath, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			runs, err := runlog.Open(cfg.Paths.DataDir)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer runs.Close()

			runID, err := runs.Begin(cmd.Context(), "add")
			if err != nil {
				return fmt.Errorf("record run start: %w", err)
			}

			pipeline := ingest.NewPipeline(store, registry, cfg.Extract.HardwareTags, logger.With(slogRunID(runID)))
			summary, err := pipeline.Run([]ingest.RawRecord{record})
			if err != nil {
				if failErr := runs.Fail(cmd.Context(), runID, err); failErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "record run failure: %v\n", failErr)
				}
				return err
			}
			if len(summary.Errors) > 0 {
				cause := errors.New(summary.Errors[0])
				store.Discard()
				if failErr := runs.Fail(cmd.Context(), runID, cause); failErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "record run failure: %v\n", failErr)
				}
				return cause
			}

			store.Commit()
			if err := store.Save(files); err != nil {
				return err
			}
			if err := registry.Save(registryPath); err != nil {
				return err
			}
			if err := runs.Complete(cmd.Context(), runID, summary); err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&record.ModelHint, "model", "", "Device model designator (required)")
	flags.StringVar(&record.HardwareHint, "hardware", "", "Hardware platform tag (default UNKNOWN)")
	flags.StringVar(&record.Version, "version", "", "Firmware version (extracted from label when empty)")
	flags.StringVar(&record.URL, "url", "", "Download URL (required)")
	flags.StringVar(&record.Label, "label", "", "Raw package label or filename (defaults to the URL)")
	flags.StringVar(&record.ReleaseDateText, "date", "", "Release date as YYYY-MM-DD")
	flags.StringVar(&record.SupportedModelsText, "supported-models", "", "Supported models label, preserved verbatim")
	flags.StringVar(&record.Changes, "changes", "", "Changelog text")
	flags.StringVar(&record.Notes, "notes", "", "Curator notes")
	flags.IntVar(&record.DeviceID, "device-id", 0, "Pin a curated device id (0 = auto)")
	return cmd
}
