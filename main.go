package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/sadopc/pomodoro/internal/config"
	"github.com/sadopc/pomodoro/internal/logging"
)

var version = semver.Version{Minor: 1, Build: semver.Commit()}

var (
	dbPath   string
	logLevel string

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "pomodoro",
		Short:             "Pomodoro timer with session tracking",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides POMODORO_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides POMODORO_LOG_LEVEL)")

	greetCmd := &cobra.Command{
		Use:   "greet NAME",
		Short: "Print a greeting",
		Args:  cobra.ExactArgs(1),
		RunE:  runGreet,
	}

	invokeCmd := &cobra.Command{
		Use:   "invoke NAME [JSON]",
		Short: "Run a named command with JSON arguments and print its JSON result",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runInvoke,
	}

	// db command group
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}
	dbMigrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE:  runDBMigrate,
	}
	dbStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the schema version and applied migrations",
		RunE:  runDBStatus,
	}
	dbCmd.AddCommand(dbMigrateCmd, dbStatusCmd)

	exportCmd := &cobra.Command{
		Use:       "export csv|json PATH",
		Short:     "Export recorded sessions",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"csv", "json"},
		RunE:      runExport,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}

	rootCmd.AddCommand(greetCmd, invokeCmd, dbCmd, exportCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and opens the log file.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		if cfg.LogLevel, err = config.ParseLevel(logLevel); err != nil {
			return err
		}
	}

	logger, logCloser, err = logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Debug("command", "name", cmd.CommandPath(), "version", version.String())
	return nil
}
