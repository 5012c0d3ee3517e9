package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"fwarchive/internal/ingest"
	"fwarchive/internal/logging"
	"fwarchive/internal/notifications"
	"fwarchive/internal/runlog"
)

func slogRunID(runID string) logging.Attr {
	return logging.String(logging.FieldRunID, runID)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printSummary renders the run summary as a table on a terminal and as
// a single parseable line otherwise.
func printSummary(cmd *cobra.Command, summary ingest.Summary) {
	out := cmd.OutOrStdout()
	if !stdoutIsTerminal() {
		fmt.Fprintln(out, summary)
		return
	}
	rows := [][]string{{
		strconv.Itoa(summary.New),
		strconv.Itoa(summary.Updated),
		strconv.Itoa(summary.Skipped),
		strconv.Itoa(len(summary.Errors)),
	}}
	fmt.Fprintln(out, renderTable(
		[]string{"New", "Updated", "Skipped", "Errors"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	))
	for _, errText := range summary.Errors {
		fmt.Fprintf(out, "error: %s\n", errText)
	}
	for _, warning := range summary.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
}

// failRun records and reports a failed run, then passes the cause back
// to Cobra.
func failRun(cmd *cobra.Command, runs *runlog.Store, notifier notifications.Service, runID, kind string, cause error) error {
	if err := runs.Fail(cmd.Context(), runID, cause); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "record run failure: %v\n", err)
	}
	if err := notifier.NotifyRunFailed(cmd.Context(), kind, cause); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "send failure notification: %v\n", err)
	}
	return cause
}
