// ABOUTME: Root Cobra command for pitchside CLI.
// ABOUTME: Loads config, builds the logger, and runs the pipeline via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/config"
	"github.com/harperreed/pitchside/internal/logger"
	"github.com/harperreed/pitchside/internal/pipeline"
	"github.com/harperreed/pitchside/internal/storage"
)

var (
	cfgFile     string
	dataDirFlag string
	logLevel    string

	cfg    *config.Config
	log    *logger.Logger
	result *pipeline.Result
)

var rootCmd = &cobra.Command{
	Use:   "pitchside",
	Short: "Athlete performance data pipeline",
	Long: `Pitchside turns a team's flat performance exports into dashboard-ready tables.

WHAT IT BUILDS:

  players           Profile, age, country flag, season stats
  last_matches      Last 5 matches: opponent, score, result, minutes, goals
  load              TRIMP, acute/chronic load, ACWR and risk zone per session
  recovery_daily    Daily subjective, sleep, soreness composites
  recovery_heatmap  Monthly calendar of the emboss baseline score
  recovery_weekly   Weekly means of six recovery composites
  recovery_summary  Last 7 days, weighted by completeness

QUICK START:

  $ pitchside build --data-dir ./data       # Load CSVs, run the pipeline
  $ pitchside players                       # List players
  $ pitchside load 7 --season 2024/2025     # Training load for player 7
  $ pitchside recovery 7                    # Last 7 days of recovery
  $ pitchside export json -o tables.json    # Export every table

SERVING:

  $ pitchside serve                         # HTTP JSON API for the dashboard
  $ pitchside mcp                           # MCP server over stdio

CONFIGURATION:

  Settings are read from ~/.config/pitchside/config.yaml (or --config) and
  PITCHSIDE_* environment variables, e.g. PITCHSIDE_DATA_DIR,
  PITCHSIDE_REFERENCE_DATE, PITCHSIDE_LOG_LEVEL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip pipeline init for commands that don't need it
		if skipsPipeline(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		log, err = logger.New(cfg.GetLogMode(), cfg.GetLogLevel())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		result, err = runPipeline(cmd, cfg, log)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			log.Sync()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func skipsPipeline(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "completion"
}

func runPipeline(cmd *cobra.Command, cfg *config.Config, log *logger.Logger) (*pipeline.Result, error) {
	sources, err := cfg.GetSources()
	if err != nil {
		return nil, fmt.Errorf("invalid sources: %w", err)
	}
	opts, err := cfg.PipelineOptions(time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ctx := cmd.Context()
	tables, err := storage.NewLoader(cfg.GetDataDir(), sources, log).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	res, err := pipeline.New(opts, log).Run(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}
	return res, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/pitchside/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDirFlag, "data-dir", "d", "", "directory holding the input CSV files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}
