package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Triage/internal/api"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Rank a batch of tasks read from a JSON or YAML file",
	Long: `Rank a batch of tasks. The file holds either a list of tasks or an object
with a "tasks" list and optional "strategy" and "weights". Files ending in
.yaml or .yml are read as YAML, anything else as JSON. Use "-" or omit the
argument to read JSON from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("strategy", "s", "", "scoring strategy (overrides the file and config)")
	analyzeCmd.Flags().Bool("json", false, "print the raw JSON response")
	analyzeCmd.Flags().Bool("factors", false, "include the per-factor breakdown")
	rootCmd.AddCommand(analyzeCmd)
}

// batchFile is the on-disk form of an analysis request.
type batchFile struct {
	Tasks          []scoring.TaskInput `json:"tasks" yaml:"tasks"`
	Strategy       string              `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Weights        *scoring.WeightSet  `json:"weights,omitempty" yaml:"weights,omitempty"`
	IncludeFactors bool                `json:"include_factors,omitempty" yaml:"include_factors,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg.Logging, os.Stderr)

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	req, err := readBatch(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		req.Strategy = s
	}
	if f, _ := cmd.Flags().GetBool("factors"); f {
		req.IncludeFactors = true
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var runs store.Store
	if cfg.Database.URL != "" {
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Warn("run history unavailable", "error", err)
		} else if err := db.EnsureSchema(ctx); err != nil {
			logger.Warn("run history unavailable", "error", err)
			db.Close()
		} else {
			runs = db
			defer db.Close()
		}
	}

	engine := scoring.NewEngine(cfg.ScoringWeights(), logger)
	svc := api.NewService(engine, runs, nil, cfg.Scoring.DefaultStrategy, logger)

	result, err := svc.Analyze(ctx, scoring.AnalyzeRequest{
		Tasks:          req.Tasks,
		Strategy:       req.Strategy,
		Weights:        req.Weights,
		IncludeFactors: req.IncludeFactors,
	}, api.RunMeta{Source: store.SourceCLI})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(api.AnalyzeResponse{Tasks: result.Tasks})
	}

	renderRanking(out, result)
	if len(result.PhantomDependencies) > 0 {
		logger.Debug("unknown dependency ids", "ids", result.PhantomDependencies)
	}
	return nil
}

// readBatch loads a batch from path, or from stdin when path is "-".
func readBatch(path string, stdin io.Reader) (*api.AnalyzeRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var batch batchFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAMLBatch(data, &batch)
	default:
		err = decodeJSONBatch(data, &batch)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &api.AnalyzeRequest{
		Tasks:          batch.Tasks,
		Strategy:       batch.Strategy,
		Weights:        batch.Weights,
		IncludeFactors: batch.IncludeFactors,
	}, nil
}

func decodeJSONBatch(data []byte, batch *batchFile) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &batch.Tasks)
	}
	return json.Unmarshal(trimmed, batch)
}

func decodeYAMLBatch(data []byte, batch *batchFile) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		return node.Content[0].Decode(&batch.Tasks)
	}
	return node.Decode(batch)
}
