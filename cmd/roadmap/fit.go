package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/roadmap/internal/breakeven"
)

func fitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit [input-file]",
		Short: "Find the break-even value that keeps every year within budget",
		Long: `Solve for one roadmap parameter at the point where every financial
year still fits its budget.

Targets:
  headcount  largest eligible headcount for --id
  pepm       largest PEPM rate for --id
  delay      smallest delay in months for --id (0 delays every intervention)
  budget     smallest single yearly budget for the whole roadmap
  all        every target above for --id

Examples:
  roadmap fit roadmap.yaml --target budget
  roadmap fit roadmap.yaml --id 2 --target headcount --max 20000
  roadmap fit roadmap.yaml --id 1 --target delay --budget 130000
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			id, _ := cmd.Flags().GetInt("id")
			targetStr, _ := cmd.Flags().GetString("target")
			target := breakeven.OptimizationTarget(strings.ToLower(targetStr))

			constraints := breakeven.DefaultConstraints(id)
			if err := applyFitBounds(cmd, target, &constraints); err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
			}

			solver := breakeven.NewDefaultSolver(newEngine(settings))

			if target == breakeven.OptimizeAll {
				md, err := solver.OptimizeMultiDimensional(cmd.Context(), cfg, constraints)
				if err != nil {
					return fmt.Errorf("break-even search failed: %w", err)
				}
				if outputFormat == "json" {
					formatted, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(md)
					if err != nil {
						return fmt.Errorf("failed to format JSON: %w", err)
					}
					fmt.Fprintln(out, formatted)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiDimensional(md))
				return nil
			}

			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				Config:      cfg,
				Target:      target,
				Constraints: constraints,
			})
			if err != nil {
				return fmt.Errorf("break-even search failed: %w", err)
			}
			if outputFormat == "json" {
				formatted, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, formatted)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}

	cmd.Flags().Int("id", 0, "Intervention to solve for")
	cmd.Flags().String("target", string(breakeven.OptimizeBudget), "Parameter to solve for (headcount, pepm, delay, budget, all)")
	cmd.Flags().String("min", "", "Lower search bound for headcount or pepm")
	cmd.Flags().String("max", "", "Upper search bound (headcount, pepm or delay months)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	addRoadmapFlags(cmd)
	return cmd
}

// applyFitBounds narrows the default constraints with --min and --max
func applyFitBounds(cmd *cobra.Command, target breakeven.OptimizationTarget, c *breakeven.Constraints) error {
	for _, name := range []string{"min", "max"} {
		raw, _ := cmd.Flags().GetString(name)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid --%s %q: %w", name, raw, err)
		}

		switch target {
		case breakeven.OptimizeHeadcount:
			n := int(value.IntPart())
			if name == "min" {
				c.MinHeadcount = &n
			} else {
				c.MaxHeadcount = &n
			}
		case breakeven.OptimizePEPM:
			if name == "min" {
				c.MinPEPM = &value
			} else {
				c.MaxPEPM = &value
			}
		case breakeven.OptimizeDelay:
			if name == "min" {
				return fmt.Errorf("--min is not supported for the delay target")
			}
			n := int(value.IntPart())
			c.MaxDelayMonths = &n
		default:
			return fmt.Errorf("--%s is not supported for the %s target", name, target)
		}
	}
	return c.Validate()
}
