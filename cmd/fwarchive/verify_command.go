package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"fwarchive/internal/catalog"
	"fwarchive/internal/linkcheck"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var failOnBroken bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Probe every stored download link and report dead ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, _, _, _, err := ctx.openCatalog()
			if err != nil {
				return err
			}

			snapshot := store.Snapshot()
			entries := make([]catalog.Entry, 0, len(snapshot))
			for _, entry := range snapshot {
				entries = append(entries, entry)
			}
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].CanonicalKey < entries[j].CanonicalKey
			})

			checker := linkcheck.NewChecker(
				time.Duration(cfg.LinkCheck.RequestTimeout)*time.Second,
				cfg.LinkCheck.RetryCount,
			)
			results := checker.CheckEntries(cmd.Context(), entries)
			broken := linkcheck.Broken(results)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked %d links: %d live, %d broken\n",
				len(results), len(results)-len(broken), len(broken))

			if len(broken) > 0 {
				rows := make([][]string, 0, len(broken))
				for _, result := range broken {
					rows = append(rows, []string{
						result.CanonicalKey,
						fmt.Sprintf("%d", result.StatusCode),
						result.Detail,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Entry", "Status", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
				if failOnBroken {
					return fmt.Errorf("%d broken download links", len(broken))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnBroken, "fail", false, "Exit non-zero when broken links are found")
	return cmd
}
