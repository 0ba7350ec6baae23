package main

import (
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Triage/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "triage",
	Short:         "Rank task batches by urgency, importance, effort and dependency impact",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to config file")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
