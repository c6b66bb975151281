// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmatch/internal/config"
	"github.com/katalvlaran/lvmatch/internal/costfile"
	"github.com/katalvlaran/lvmatch/internal/logging"
	"github.com/katalvlaran/lvmatch/internal/telemetry"
	"github.com/katalvlaran/lvmatch/matching"
)

type solveFlags struct {
	input      string
	output     string
	format     string
	minimize   bool
	metricsOut string
}

func newSolveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve an assignment problem from a cost-matrix file",
		Example: `  lvmatch solve -i costs.yaml
  lvmatch solve -i costs.json --minimize --format json -o result.json
  cat costs.yaml | lvmatch solve --metrics-out -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			return runSolve(cmd, cfg, f)
		},
	}
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", "cost-matrix file (YAML or JSON), - for stdin")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "report file (default stdout)")
	cmd.Flags().StringVar(&f.format, "format", "", "report format: text, json, yaml")
	cmd.Flags().BoolVar(&f.minimize, "minimize", false, "find the minimum-cost assignment")
	cmd.Flags().StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics to this file, - for stderr")

	return cmd
}

// loadConfig layers explicitly set flags over the koanf sources.
func loadConfig(cmd *cobra.Command, f solveFlags) (*config.Config, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("format") {
		overrides["output.format"] = f.format
	}
	if flags.Changed("minimize") {
		overrides["objective"] = config.ObjectiveMax
		if f.minimize {
			overrides["objective"] = config.ObjectiveMin
		}
	}
	if flags.Changed("metrics-out") {
		overrides["metrics.enabled"] = true
		if f.metricsOut != "-" {
			overrides["metrics.file"] = f.metricsOut
		}
	}
	if flags.Changed("log-level") {
		lvl, _ := flags.GetString("log-level")
		overrides["log.level"] = lvl
	}
	path, _ := flags.GetString("config")

	return config.NewLoader(config.WithFile(path), config.WithOverrides(overrides)).Load()
}

func runSolve(cmd *cobra.Command, cfg *config.Config, f solveFlags) error {
	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer log.Close()

	var doc *costfile.Document
	if f.input == "-" {
		doc, err = costfile.Decode(cmd.InOrStdin())
	} else {
		doc, err = costfile.Load(f.input)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	costs := doc.Costs
	if cfg.Minimize() {
		costs = costfile.Complement(costs)
	}

	opts := logging.Hooks(log.Logger)
	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.New()
		metrics.ObserveInstance(len(costs), len(costs[0]))
		opts = append(opts, metrics.Hooks()...)
	}

	log.Debug("solving", zap.String("input", f.input), zap.Int("rows", len(costs)),
		zap.Int("cols", len(costs[0])), zap.String("objective", cfg.Objective))
	start := time.Now()
	res, err := matching.MaxWeight(costs, opts...)
	elapsed := time.Since(start)
	if metrics != nil {
		metrics.ObserveSolve(elapsed, res.Total, err)
	}
	if err != nil {
		log.Error("solve failed", zap.Error(err))
		return fmt.Errorf("solve: %w", err)
	}

	rep := costfile.NewReport(doc, res, cfg.Objective)
	log.Info("solved",
		zap.Int64("total", rep.Total),
		zap.Int("pairs", len(rep.Assignments)),
		zap.Int("phases", res.Stats.Phases),
		zap.Int("relaxations", res.Stats.Relaxations),
		zap.Duration("elapsed", elapsed),
	)

	if err = writeTo(f.output, cmd.OutOrStdout(), func(w io.Writer) error {
		return costfile.Write(w, rep, cfg.Output.Format)
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if metrics != nil {
		if err = writeTo(cfg.Metrics.File, cmd.ErrOrStderr(), metrics.WriteText); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// writeTo runs write against path, or against fallback when path is empty.
func writeTo(path string, fallback io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(fallback)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
