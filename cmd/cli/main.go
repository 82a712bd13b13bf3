package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/salesbook-io/salesbook/pkg/config"
	"github.com/salesbook-io/salesbook/pkg/csv"
	"github.com/salesbook-io/salesbook/pkg/models"
	"github.com/salesbook-io/salesbook/pkg/parser"
	"github.com/salesbook-io/salesbook/pkg/plan"
	"github.com/salesbook-io/salesbook/pkg/report"
	"github.com/salesbook-io/salesbook/pkg/service"
)

var (
	cliFilters filters
	cfgFile    string
	debugDump  bool
)

var rootCmd = &cobra.Command{
	Use:   "salesbook-cli",
	Short: "Sales report command-line interface",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [flags] <input_file>",
	Short: "Aggregate a sales file at a reference date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		if _, err := config.Build(cfgFile, cmd.Flags()); err != nil {
			return err
		}

		date, _ := cmd.Flags().GetString("date")
		if !report.ValidReferenceDate(date) {
			return fmt.Errorf("reference date must be YYYY-MM-DD, got %q", date)
		}

		records, err := readRecords(logger, args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			logger.Warn("no valid sale records in input", "file", args[0])
		}

		res := report.Aggregate(cliFilters.apply(records), date)
		if debugDump {
			pp.Println(res)
		}
		fmt.Print(report.Render(res, date))
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input_path>",
	Short: "Re-export sales files as canonical CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		if _, err := config.Build(cfgFile, cmd.Flags()); err != nil {
			return err
		}

		matches, err := filepath.Glob(args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", args[0])
		}

		for _, match := range matches {
			records, err := readRecords(logger, match)
			if err != nil {
				logger.Warn("failed to process file", "error", err, "file", match)
				continue
			}
			fmt.Print(string(csv.Create(records, cliFilters.toFilterFunc())))
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [flags] <plan_file>",
	Short: "Run a YAML plan of report jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Plan for %s\n", args[0])
		p.Print()

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			return nil
		}
		return service.NewProcessor(cfg, logger).RunPlan(p)
	},
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "salesbook-cli",
		Level:           log.DebugLevel,
	})
}

func readRecords(logger *log.Logger, path string) ([]*models.SaleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return parser.New(logger).ProcessBytes(data, filepath.Base(path))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")

	// Filter flags (global)
	rootCmd.PersistentFlags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	rootCmd.PersistentFlags().StringVar(&cliFilters.salesperson, "salesperson", "", "Filter by salesperson (case insensitive)")

	reportCmd.Flags().String("date", "", "Reference date (YYYY-MM-DD)")
	reportCmd.Flags().BoolVar(&debugDump, "debug", false, "Dump the raw aggregate before rendering")
	planCmd.Flags().Bool("dry-run", false, "Preview the plan without running it")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
