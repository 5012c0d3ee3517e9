package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"fwarchive/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := openRunlog(ctx)
			if err != nil {
				return err
			}
			defer runs.Close()

			recent, err := runs.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recent) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(recent))
			for _, run := range recent {
				detail := run.Detail
				if detail == "" && run.Status == runlog.StatusCompleted {
					detail = fmt.Sprintf("new=%d updated=%d skipped=%d errors=%d",
						run.New, run.Updated, run.Skipped, run.ErrorCount)
				}
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Kind,
					run.Status,
					formatRunDuration(run),
					detail,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Started", "Kind", "Status", "Duration", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show")
	cmd.AddCommand(newRunsShowCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := openRunlog(ctx)
			if err != nil {
				return err
			}
			defer runs.Close()

			run, err := runs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := [][]string{
				{"ID", run.ID},
				{"Kind", run.Kind},
				{"Status", run.Status},
				{"Started", run.StartedAt.Local().Format("2006-01-02 15:04:05")},
				{"Duration", formatRunDuration(run)},
				{"New", strconv.Itoa(run.New)},
				{"Updated", strconv.Itoa(run.Updated)},
				{"Skipped", strconv.Itoa(run.Skipped)},
				{"Errors", strconv.Itoa(run.ErrorCount)},
				{"Detail", run.Detail},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			for _, errText := range run.Errors {
				fmt.Fprintf(out, "error: %s\n", errText)
			}
			for _, warning := range run.Warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			return nil
		},
	}
}

func openRunlog(ctx *commandContext) (*runlog.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	runs, err := runlog.Open(cfg.Paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	return runs, nil
}

func formatRunDuration(run runlog.Run) string {
	if d := run.Duration(); d > 0 {
		return d.Round(10 * time.Millisecond).String()
	}
	return ""
}
