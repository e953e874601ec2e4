package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/output"
)

var hundred = decimal.NewFromInt(100)

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Estimate how likely the roadmap is to stay within budget",
		Long: `Run Monte Carlo simulations in which every intervention's PEPM rate and
eligible headcount drift around their planned values and its timeline slips
by up to --max-slip months. Reports how often each year fits its budget and
the spread of simulated spend.

Examples:
  roadmap simulate roadmap.yaml
  roadmap simulate roadmap.yaml --runs 5000 --pepm-sd 0.2 --seed 42
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			mcCfg := calculation.DefaultMonteCarloConfig()
			mcCfg.NumSimulations, _ = cmd.Flags().GetInt("runs")
			mcCfg.MaxSlipMonths, _ = cmd.Flags().GetInt("max-slip")
			if cmd.Flags().Changed("seed") {
				mcCfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			pepmSD, _ := cmd.Flags().GetFloat64("pepm-sd")
			headcountSD, _ := cmd.Flags().GetFloat64("headcount-sd")
			if pepmSD < 0 || headcountSD < 0 {
				return fmt.Errorf("standard deviations cannot be negative")
			}
			mcCfg.PEPMVariability = decimal.NewFromFloat(pepmSD)
			mcCfg.HeadcountVariability = decimal.NewFromFloat(headcountSD)

			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
			}

			began := time.Now()
			result, err := calculation.NewMonteCarloEngine(cfg, newEngine(settings), mcCfg).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if outputFormat == "json" {
				keep, _ := cmd.Flags().GetBool("include-runs")
				if !keep {
					result.Simulations = nil
				}
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			writeSimulation(out, result)
			fmt.Fprintf(out, "\n%d simulations in %v (seed %d)\n", result.NumSimulations, time.Since(began).Round(time.Millisecond), result.Seed)
			return nil
		},
	}

	cmd.Flags().Int("runs", 1000, "Number of simulations")
	cmd.Flags().Int64("seed", 0, "Random seed (defaults to the current time)")
	cmd.Flags().Float64("pepm-sd", 0.10, "Standard deviation of the PEPM rate multiplier")
	cmd.Flags().Float64("headcount-sd", 0.05, "Standard deviation of the headcount multiplier")
	cmd.Flags().Int("max-slip", 3, "Maximum timeline slip in months")
	cmd.Flags().Bool("include-runs", false, "Include every simulation in JSON output")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	addRoadmapFlags(cmd)
	return cmd
}

func writeSimulation(out io.Writer, result *calculation.MonteCarloResult) {
	fmt.Fprintf(out, "BUDGET RISK SIMULATION\n")
	fmt.Fprintf(out, "Every year within budget: %s of runs\n", output.FormatPercentage(result.FitRate.Mul(hundred)))
	fmt.Fprintf(out, "Median total cost:        %s\n\n", output.FormatCurrency(result.MedianTotalCost))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tFITS\tP10\tP50\tP90\t")
	for k := 0; k < calculation.RoadmapYears; k++ {
		p := result.PercentileRanges.YearSpend[k]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			calculation.FinancialYear(k),
			output.FormatPercentage(result.YearFitRates[k].Mul(hundred)),
			output.FormatCurrency(p["10th"]),
			output.FormatCurrency(p["50th"]),
			output.FormatCurrency(p["90th"]))
	}
	p := result.PercentileRanges.TotalCost
	fmt.Fprintf(tw, "Total\t\t%s\t%s\t%s\t\n",
		output.FormatCurrency(p["10th"]),
		output.FormatCurrency(p["50th"]),
		output.FormatCurrency(p["90th"]))
	_ = tw.Flush()
}
