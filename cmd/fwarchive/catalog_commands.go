package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fwarchive/internal/catalog"
	"fwarchive/internal/report"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the stored firmware catalog",
	}
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List devices with their firmware counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, _, _, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			groups := store.AllGrouped()
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty. Run `fwarchive scrape` first.")
				return nil
			}

			rows := make([][]string, 0, len(groups))
			for _, group := range groups {
				latest := ""
				if len(group.Entries) > 0 {
					latest = group.Entries[0].FirmwareVersion
				}
				rows = append(rows, []string{
					group.Model,
					report.HardwareLabel(group.HardwareVariant),
					strconv.Itoa(group.Entries[0].DeviceID),
					strconv.Itoa(len(group.Entries)),
					latest,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Model", "Hardware", "Device ID", "Packages", "Latest"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <model>",
		Short: "Show every firmware package stored for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, _, _, err := ctx.openCatalog()
			if err != nil {
				return err
			}

			model := strings.ToLower(strings.TrimSpace(args[0]))
			var matched []catalog.Group
			for _, group := range store.AllGrouped() {
				if strings.Contains(strings.ToLower(group.Model), model) {
					matched = append(matched, group)
				}
			}
			if len(matched) == 0 {
				return fmt.Errorf("no catalog entries match model %q", args[0])
			}

			out := cmd.OutOrStdout()
			for _, group := range matched {
				fmt.Fprintf(out, "%s (%s), device id %d\n",
					group.Model, report.HardwareLabel(group.HardwareVariant), group.Entries[0].DeviceID)
				rows := make([][]string, 0, len(group.Entries))
				for _, entry := range group.Entries {
					version := entry.FirmwareVersion
					if entry.IsBeta {
						version += " (beta)"
					}
					rows = append(rows, []string{
						version,
						entry.ReleaseDate,
						string(entry.Source),
						entry.DownloadURL,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Version", "Released", "Source", "Download"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}
}
