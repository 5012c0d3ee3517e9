package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fwarchive/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the catalog into a markdown document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, _, _, _, err := ctx.openCatalog()
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" {
				target = cfg.ReportPath()
			}
			opts := report.Options{Title: cfg.Report.Title, GeneratedAt: time.Now()}
			if err := report.WriteFile(target, store, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", store.Len(), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default from config)")
	return cmd
}
