package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/output"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
)

func yearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "year [date...]",
		Short: "Show the roadmap year windows and the year each date falls in",
		Example: `  roadmap year --start 2025-03-13
  roadmap year --start 2025-03-13 2026-03-12 2028-03-13`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startStr, _ := cmd.Flags().GetString("start")
			start, err := dateutil.Parse(startStr)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				writeWindows(out, start)
				return nil
			}

			windows := calculation.RoadmapWindows(start)
			for _, arg := range args {
				d, err := dateutil.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", arg, err)
				}
				fy := calculation.ResolveFinancialYear(d, start)
				if !fy.Valid() {
					fmt.Fprintf(out, "%s is outside the roadmap\n", dateutil.Format(d))
					continue
				}
				w := windows[fy]
				fmt.Fprintf(out, "%s falls in %s (%s to %s)\n",
					dateutil.Format(d), fy, dateutil.Format(w.Start), dateutil.Format(w.End))
			}
			return nil
		},
	}
	cmd.Flags().String("start", "", "Roadmap start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func writeWindows(out io.Writer, start time.Time) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tSTART\tEND")
	for _, w := range calculation.RoadmapWindows(start) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", calculation.FinancialYear(w.Index), dateutil.Format(w.Start), dateutil.Format(w.End))
	}
	_ = tw.Flush()
}

func allocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate [input-file]",
		Short: "Show how one intervention's costs fall across the roadmap years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			id, _ := cmd.Flags().GetInt("id")
			iv, ok := cfg.Interventions.Find(id)
			if !ok {
				return fmt.Errorf("intervention %d: %w", id, domain.ErrInterventionNotFound)
			}

			years := newEngine(settings).Allocate(iv, cfg.Roadmap.StartDate)
			windows := calculation.RoadmapWindows(cfg.Roadmap.StartDate)
			writeAllocation(cmd.OutOrStdout(), iv, windows, years)
			return nil
		},
	}
	cmd.Flags().Int("id", 0, "Intervention id")
	_ = cmd.MarkFlagRequired("id")
	addRoadmapFlags(cmd)
	return cmd
}

func writeAllocation(out io.Writer, iv domain.Intervention, windows [calculation.RoadmapYears]domain.YearWindow, years [calculation.RoadmapYears]domain.YearlyCostBreakdown) {
	fmt.Fprintf(out, "%s (id %d)\n", iv.Name, iv.ID)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tIMPLEMENTATION\tPEPM\tFIXED ANNUAL\tONE-TIME\tTOTAL\t")

	total := decimal.Zero
	for k, y := range years {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\t%s\t\n",
			calculation.FinancialYear(k), windows[k].Label(),
			output.FormatCurrency(y.ImplementationCost),
			output.FormatCurrency(y.PEPMCost),
			output.FormatCurrency(y.FixedAnnualCost),
			output.FormatCurrency(y.OneTimeFixedFee),
			output.FormatCurrency(y.Total))
		total = total.Add(y.Total)
	}
	fmt.Fprintf(tw, "Total\t\t\t\t\t%s\t\n", output.FormatCurrency(total))
	_ = tw.Flush()
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the benefit catalog, or build a roadmap from selected entries",
		Example: `  roadmap catalog
  roadmap catalog --select 1,3 --start 2025-03-13 > roadmap.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			selectStr, _ := cmd.Flags().GetString("select")
			out := cmd.OutOrStdout()

			if selectStr == "" {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
				for _, e := range domain.Catalog() {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", e.ID, e.Name, e.Description)
				}
				return tw.Flush()
			}

			ids, err := parseIDList(selectStr)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if _, ok := domain.LookupCatalogEntry(id); !ok {
					return fmt.Errorf("catalog entry %d does not exist", id)
				}
			}

			startStr, _ := cmd.Flags().GetString("start")
			start, err := dateutil.Parse(startStr)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			budget := config.DefaultYearlyBudget
			if b, _ := cmd.Flags().GetString("budget"); b != "" {
				if budget, err = decimal.NewFromString(b); err != nil {
					return fmt.Errorf("invalid --budget %q: %w", b, err)
				}
			}

			cfg := &domain.Configuration{
				Roadmap:       domain.Roadmap{StartDate: start, YearlyBudget: budget},
				Interventions: domain.NewSelection(ids...).Interventions(start),
			}
			data, err := config.NewInputParser().Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().String("select", "", "Comma-separated catalog ids to turn into a roadmap")
	cmd.Flags().String("start", "", "Roadmap start date for the selection (YYYY-MM-DD)")
	cmd.Flags().String("budget", "", "Yearly budget for the selection")
	return cmd
}

func parseIDList(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no catalog ids given")
	}
	return ids, nil
}
