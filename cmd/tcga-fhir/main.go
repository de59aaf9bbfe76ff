package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/config"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/convert"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/blobstore"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/telemetry"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/tsv"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tcga-fhir",
		Short: "Convert TCGA clinical exports into FHIR transaction bundles",
		Long: "Without --research-study-id the ResearchStudy is written as study.json.\n" +
			"Submit it, then run again with the id it was created under to write one\n" +
			"bundle per subject.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, nil)
		},
	}
	addOutputFlags(root)
	addInputFlags(root)

	root.AddCommand(studyCmd())
	root.AddCommand(convertCmd())
	return root
}

func studyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Write the ResearchStudy bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, func(cfg *config.Config) error {
				cfg.ResearchStudyID = ""
				return nil
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write one transaction bundle per input row",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, func(cfg *config.Config) error {
				if cfg.StudyMode() {
					return fmt.Errorf("convert requires --research-study-id or RESEARCH_STUDY_ID")
				}
				return nil
			})
		},
	}
	addOutputFlags(cmd)
	addInputFlags(cmd)
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "output directory for the fs driver (env OUTPUT_DIR)")
	cmd.Flags().String("driver", "", "output driver: fs, memory, s3 or postgres (env OUTPUT_DRIVER)")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "tab-separated clinical export (env INPUT_PATH)")
	cmd.Flags().String("research-study-id", "", "id of the submitted ResearchStudy (env RESEARCH_STUDY_ID)")
	cmd.Flags().String("on-error", "", "row error policy: abort or skip (env ROW_ERROR_POLICY)")
}

// applyFlags overrides environment settings with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	overrides := map[string]*string{
		"input":             &cfg.InputPath,
		"research-study-id": &cfg.ResearchStudyID,
		"on-error":          &cfg.RowErrorPolicy,
		"out":               &cfg.OutputDir,
		"driver":            &cfg.OutputDriver,
	}
	for name, dst := range overrides {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		*dst = f.Value.String()
	}
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func execute(cmd *cobra.Command, adjust func(*config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if adjust != nil {
		if err := adjust(cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("conversion failed")
		return err
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// run performs one conversion with a validated configuration.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (convert.Summary, error) {
	store, closeStore, err := blobstore.Open(ctx, cfg.Blobstore())
	if err != nil {
		return convert.Summary{}, fmt.Errorf("open output: %w", err)
	}
	defer closeStore()
	logger.Info().Str("driver", string(store.Driver())).Msg("output opened")

	metrics := telemetry.NewMetrics()
	driver := convert.NewDriver(convert.Options{
		StudyID: cfg.ResearchStudyID,
		OnError: convert.ErrorPolicy(cfg.RowErrorPolicy),
		Logger:  logger,
		Metrics: metrics,
	})

	var src convert.RowSource
	if driver.Mode() == convert.ModeBundles {
		f, err := tsv.Open(cfg.InputPath)
		if err != nil {
			return convert.Summary{}, err
		}
		defer f.Close()
		src = f
		logger.Info().Str("input", cfg.InputPath).Str("study_id", cfg.ResearchStudyID).Msg("converting rows")
	}

	summary, runErr := driver.Run(ctx, src, convert.NewStoreSink(store))

	if cfg.MetricsFile != "" {
		if err := metrics.WriteFile(cfg.MetricsFile); err != nil {
			logger.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		}
	}
	return summary, runErr
}

func printSummary(w io.Writer, s convert.Summary) {
	if s.Mode == convert.ModeStudy {
		fmt.Fprintf(w, "wrote %s\nresearch study id: %s\n", convert.StudyKey, s.StudyID)
		return
	}
	fmt.Fprintf(w, "rows: %d, bundles: %d, skipped: %d\n", s.Rows, s.Bundles, s.Skipped)
}
