package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/roadmap/internal/compare"
	"github.com/rgehrsitz/roadmap/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a roadmap against what-if variants",
		Long: `Compare the roadmap as configured against alternative roadmaps.

Variants come from built-in templates (--with) or from ad-hoc transform
specs (--transform). Each --transform flag is one variant; join several
specs with ';' to combine them.

Examples:
  roadmap compare roadmap.yaml --with delay_3mo,budget_cut_10pct
  roadmap compare roadmap.yaml --transform "shift_all:months=6;set_budget:amount=400000"
  roadmap compare roadmap.yaml --with delay_6mo --format csv
  roadmap compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(out, templateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			templatesStr, _ := cmd.Flags().GetString("with")
			templates := lo.Compact(lo.Map(strings.Split(templatesStr, ","), func(s string, _ int) string {
				return strings.TrimSpace(s)
			}))
			transforms, _ := cmd.Flags().GetStringArray("transform")
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required (use --list-templates to see available templates)")
			}
			baseName, _ := cmd.Flags().GetString("base")

			compareEngine := compare.NewCompareEngine(newEngine(settings))
			compSet, err := compareEngine.Compare(cmd.Context(), cfg, compare.CompareOptions{
				BaseName:   baseName,
				Templates:  templates,
				Transforms: transforms,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = args[0]

			outputFormat, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(outputFormat) {
			case "csv":
				formatted, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, formatted)
			case "json":
				formatted, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprint(out, formatted)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().String("base", compare.DefaultBaseName, "Label for the roadmap as configured")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Ad-hoc variant as ';'-separated transform specs (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available roadmap templates")
	addRoadmapFlags(cmd)
	return cmd
}

func templateHelp(registry *transform.TemplateRegistry) string {
	var b strings.Builder
	b.WriteString("Available roadmap templates:\n\n")
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		fmt.Fprintf(&b, "  %-20s %s\n", t.Name, t.Description)
	}
	b.WriteString("\nAvailable transforms for --transform:\n\n")
	for _, name := range transform.NewTransformRegistry().List() {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	return b.String()
}

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one roadmap parameter and show where the budget breaks",
		Long: `Evaluate the roadmap across a range of one parameter.

A sweep is written name:key=value,... with keys id, min, max and steps.
Parameters: pepm and headcount (need id), delay (id 0 shifts every
intervention) and budget.

Examples:
  roadmap sensitivity roadmap.yaml --sweep "pepm:id=2,min=0,max=100"
  roadmap sensitivity roadmap.yaml --sweep "budget:min=100000,max=600000,steps=6" --format json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			spec, _ := cmd.Flags().GetString("sweep")
			param, err := compare.ParseSensitivitySpec(spec)
			if err != nil {
				return fmt.Errorf("invalid --sweep: %w", err)
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
			}

			analysis, err := compare.NewCompareEngine(newEngine(settings)).AnalyzeSensitivity(cmd.Context(), cfg, param)
			if err != nil {
				return fmt.Errorf("sensitivity analysis failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if outputFormat == "json" {
				formatted, err := (&compare.JSONFormatter{Pretty: true}).FormatSensitivity(analysis)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, formatted)
				return nil
			}
			fmt.Fprint(out, (&compare.TableFormatter{}).FormatSensitivity(analysis))
			return nil
		},
	}

	cmd.Flags().String("sweep", "", "Parameter sweep, e.g. pepm:id=2,min=0,max=100,steps=5")
	_ = cmd.MarkFlagRequired("sweep")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	addRoadmapFlags(cmd)
	return cmd
}
