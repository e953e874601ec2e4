package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/output"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings is shared by every subcommand; flags bound below override env and defaults
var settings = config.NewViper()

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "roadmap %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = newRootCmd()

// newRootCmd builds the full command tree; every call yields fresh flag state
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "roadmap",
		Short: "Benefit intervention roadmap planner",
		Long: `Plans benefit interventions over a three financial year roadmap.

Costs are allocated to each year by calendar overlap and compared
against the yearly budget.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")
	_ = settings.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(exampleCmd())
	root.AddCommand(versionCmd())
	root.AddCommand(yearCmd())
	root.AddCommand(allocateCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(sensitivityCmd())
	root.AddCommand(fitCmd())
	root.AddCommand(simulateCmd())
	root.AddCommand(serveCmd())
	return root
}

// newEngine returns a calculation engine honoring the shared debug setting
func newEngine(v *viper.Viper) *calculation.Engine {
	engine := calculation.NewEngine()
	if size := v.GetInt("cache_size"); size > 0 {
		engine = calculation.NewCachedEngine(size)
	}
	if v.GetBool("debug") {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

// loadConfiguration parses path and applies the --start and --budget overrides
func loadConfiguration(cmd *cobra.Command, path string) (*domain.Configuration, error) {
	lenient, _ := cmd.Flags().GetBool("lenient")
	parser := &config.InputParser{Lenient: lenient}

	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	if start, _ := cmd.Flags().GetString("start"); start != "" {
		t, err := dateutil.Parse(start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start: %w", err)
		}
		cfg.Roadmap.StartDate = t
	}
	if budget, _ := cmd.Flags().GetString("budget"); budget != "" {
		amount, err := decimal.NewFromString(budget)
		if err != nil {
			return nil, fmt.Errorf("invalid --budget %q: %w", budget, err)
		}
		cfg.Roadmap.YearlyBudget = amount
		cfg.Roadmap.YearBudgets = nil
	}

	// overrides must obey the same rules as the file
	if !lenient {
		if err := parser.ValidateConfiguration(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func addRoadmapFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "Override the roadmap start date (YYYY-MM-DD)")
	cmd.Flags().String("budget", "", "Override the yearly budget")
	cmd.Flags().Bool("lenient", false, "Skip input validation")
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Allocate intervention costs across the three roadmap years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			report, err := newEngine(settings).Evaluate(cfg)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			if expand, _ := cmd.Flags().GetBool("expand"); expand && outputFormat == "console" {
				outputFormat = "console-expanded"
			}
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown output format: %s (valid: %s)", outputFormat, strings.Join(output.FormatNames(), ", "))
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, report, fileExtension(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, json, html)")
	cmd.Flags().BoolP("expand", "e", false, "Show the cost components of every intervention")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	addRoadmapFlags(cmd)
	return cmd
}

func fileExtension(format string) string {
	switch format {
	case "csv", "json", "html":
		return format
	default:
		return "txt"
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a roadmap file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Roadmap file %s is valid (%d interventions)\n", inputFile, len(cfg.Interventions))
			return nil
		},
	}
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example roadmap file",
		Long:  "Writes the example roadmap to the given file, or to stdout when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg := parser.CreateExampleConfiguration()

			if len(args) == 1 {
				if err := parser.SaveConfiguration(cfg, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Example roadmap written to %s\n", args[0])
				return nil
			}

			data, err := parser.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
