package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ynabsync/ynabsync/pkg/config"
	"github.com/ynabsync/ynabsync/pkg/executors"
	"github.com/ynabsync/ynabsync/pkg/models"
	"github.com/ynabsync/ynabsync/pkg/server"
	"github.com/ynabsync/ynabsync/pkg/ynab"
)

var (
	cliFilters filters
	cfgFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ynabsync",
	Short: "Push bank statement exports to YNAB and reconcile the result",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync <manifest>",
	Short: "Push the manifest's statements to YNAB and report mismatches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exec, manifest, err := buildExecutor(cmd, args[0])
		if err != nil {
			return err
		}
		return exec.Sync(manifest)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <manifest>",
	Short: "Preview what a sync would change (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exec, manifest, err := buildExecutor(cmd, args[0])
		if err != nil {
			return err
		}
		return exec.Plan(manifest)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input_path>",
	Short: "Convert bank statements to a Date,Payee,Memo,Amount CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		processor := NewFileProcessor(logger, &cliFilters)
		return processor.Process(args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement processing HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		port, _ := cmd.Flags().GetString("port")
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		logger.Info("starting server", "addr", addr)
		return server.New(logger).Start(addr)
	},
}

func newLogger() *log.Logger {
	options := log.Options{
		ReportTimestamp: true,
		Prefix:          "ynabsync",
	}
	if verbose {
		options.Level = log.DebugLevel
		options.ReportCaller = true
	}
	return log.NewWithOptions(os.Stderr, options)
}

// buildExecutor wires config, token, YNAB client and manifest for the
// sync and plan commands.
func buildExecutor(cmd *cobra.Command, manifestPath string) (*executors.Executor, *models.Manifest, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	token, err := cfg.Token()
	if err != nil {
		return nil, nil, err
	}

	manifest, err := models.FromFile(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger()
	exec := executors.New(logger, cfg, ynab.New(token))
	return exec, manifest, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	convertCmd.Flags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	convertCmd.Flags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	convertCmd.Flags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	convertCmd.Flags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	convertCmd.Flags().StringVar(&cliFilters.payee, "payee", "", "Filter by payee (case insensitive)")

	serveCmd.Flags().String("port", "3000", "Server port")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
