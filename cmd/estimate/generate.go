package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/config"
	"github.com/straye-as/estimate-api/internal/estimate"
	"github.com/straye-as/estimate-api/internal/generation"
	"github.com/straye-as/estimate-api/internal/llm"
	"github.com/straye-as/estimate-api/internal/location"
	"github.com/straye-as/estimate-api/internal/logger"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the full estimate pipeline against the configured model",
		Long: "Prices the job, looks up its location and asks the configured model for the " +
			"scope of work, assumptions, exclusions, bill of materials and permit guidance. " +
			"Model settings come from the same LLM_* environment as the API server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInputs(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			log, err := logger.NewCLILogger(root.verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			client, err := llm.New(ctx, llm.Config{
				Provider: cfg.LLM.Provider,
				BaseURL:  cfg.LLM.BaseURL,
				APIKey:   cfg.LLM.APIKey,
				Model:    cfg.LLM.Model,
				Timeout:  cfg.LLM.TimeoutDuration(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize llm client: %w", err)
			}

			resolver := location.NewZippopotamResolver(location.Config{
				BaseURL: cfg.Location.BaseURL,
				Timeout: cfg.Location.TimeoutDuration(),
			}, log)
			generator := generation.NewGenerator(client, log, generation.WithJSONMode(cfg.LLM.JSONMode))
			assembler := estimate.NewAssembler(resolver, generator, log)

			out, err := assembler.BuildOutput(ctx, in)
			if err != nil {
				log.Debug("generation failed", zap.Error(err))
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "inputs file (.json or .yaml, - for stdin)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall time limit (0 for none)")
	return cmd
}
