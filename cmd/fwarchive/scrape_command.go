package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fwarchive/internal/ingest"
	"fwarchive/internal/logging"
	"fwarchive/internal/notifications"
	"fwarchive/internal/portal"
	"fwarchive/internal/report"
	"fwarchive/internal/runlog"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var dryRun bool
	var skipReport bool

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Crawl the vendor portal and merge new firmware metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if limit > 0 {
				cfg.Portal.RecordLimit = limit
			}

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

			runID, err := runs.Begin(cmd.Context(), "scrape")
			if err != nil {
				return fmt.Errorf("record run start: %w", err)
			}
			runLogger := logger.With(slogRunID(runID))
			notifier := notifications.NewService(cfg)
			started := time.Now()

			crawler := portal.New(cfg.Portal, runLogger)
			if err := crawler.Start(); err != nil {
				return failRun(cmd, runs, notifier, runID, "scrape", err)
			}
			defer func() { _ = crawler.Close() }()

			records, err := crawler.Collect(cmd.Context())
			if err != nil {
				return failRun(cmd, runs, notifier, runID, "scrape", err)
			}

			pipeline := ingest.NewPipeline(store, registry, cfg.Extract.HardwareTags, runLogger)
			summary, err := pipeline.Run(records)
			if err != nil {
				// The pipeline already discarded pending writes.
				return failRun(cmd, runs, notifier, runID, "scrape", err)
			}

			if dryRun {
				store.Discard()
				fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %s (nothing committed)\n", summary)
				return runs.Complete(cmd.Context(), runID, summary)
			}

			store.Commit()
			if err := store.Save(files); err != nil {
				return failRun(cmd, runs, notifier, runID, "scrape", err)
			}
			if err := registry.Save(registryPath); err != nil {
				return failRun(cmd, runs, notifier, runID, "scrape", err)
			}
			if err := runs.Complete(cmd.Context(), runID, summary); err != nil {
				return err
			}

			if !skipReport {
				opts := report.Options{Title: cfg.Report.Title, GeneratedAt: time.Now()}
				if err := report.WriteFile(cfg.ReportPath(), store, opts); err != nil {
					return err
				}
			}

			if err := notifier.NotifyRunCompleted(cmd.Context(), "scrape", summary, time.Since(started)); err != nil {
				runLogger.Warn("notification failed", "error", err)
			}

			runLogger.Info("scrape run completed",
				logging.Duration("duration", time.Since(started)),
				logging.Int("new", summary.New),
				logging.Int("updated", summary.Updated))
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many records (0 = configured limit)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pipeline without committing changes")
	cmd.Flags().BoolVar(&skipReport, "no-report", false, "Skip regenerating the report document")
	return cmd
}
