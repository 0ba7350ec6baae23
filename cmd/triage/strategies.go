package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Triage/internal/api"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the scoring strategies and their weights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		engine := scoring.NewEngine(cfg.ScoringWeights(), newLogger(cfg.Logging, cmd.ErrOrStderr()))
		svc := api.NewService(engine, nil, nil, cfg.Scoring.DefaultStrategy, nil)
		renderStrategies(cmd.OutOrStdout(), svc.Strategies())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
