package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/application/services/compare"
	"github.com/rpk-planning/capsim/pkg/application/services/simulation"
	"github.com/rpk-planning/capsim/pkg/infrastructure/repositories/csv"
	"github.com/rpk-planning/capsim/pkg/infrastructure/repositories/memory"
	"github.com/rpk-planning/capsim/pkg/interfaces/cli/output"
)

// Config holds configuration for the simulate command
type Config struct {
	BaseFile     string
	ScenarioFile string
	CompareWith  string
	WorkingDays  int
	ShiftHours   int
	OutputDir    string
	Format       string
	Verbose      bool
	Help         bool
}

// SimulateCommand evaluates the base dataset under an optional scenario file
// and optionally compares it against a second scenario file.
type SimulateCommand struct {
	config Config
}

// NewSimulateCommand creates a new simulate command with the given configuration
func NewSimulateCommand(config Config) *SimulateCommand {
	return &SimulateCommand{
		config: config,
	}
}

// Execute runs the simulate command
func (c *SimulateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.BaseFile == "" {
		return fmt.Errorf("base dataset file is required (-base)")
	}
	switch c.config.Format {
	case "text", "json", "svg", "html":
	default:
		return fmt.Errorf("unsupported format %q: use text, json, svg or html", c.config.Format)
	}
	if c.config.CompareWith != "" && (c.config.Format == "svg" || c.config.Format == "html") {
		return fmt.Errorf("format %q is not available for comparisons: use text or json", c.config.Format)
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loading base dataset from %s...\n", c.config.BaseFile)
	}

	loader := csv.NewLoader()
	baseRows, err := loader.LoadBaseRows(ctx, c.config.BaseFile)
	if err != nil {
		return fmt.Errorf("error loading base dataset: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Loaded %d rows\n", len(baseRows))
	}

	evaluator := simulation.NewEvaluator(memory.NewBaseSource(baseRows), memory.NewScenarioStore())

	reqA, err := c.buildRequest(c.config.ScenarioFile)
	if err != nil {
		return err
	}

	start := time.Now()
	resultA, err := evaluator.Evaluate(ctx, reqA)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	outputConfig := output.Config{
		Format:      c.config.Format,
		OutputDir:   c.config.OutputDir,
		Verbose:     c.config.Verbose,
		WorkingDays: resultA.Meta.WorkingDays,
	}

	if c.config.CompareWith == "" {
		if c.config.Verbose {
			fmt.Printf("⏱️  Evaluation took %v\n\n", time.Since(start))
		}
		return output.Generate(resultA, outputConfig)
	}

	reqB, err := c.buildRequest(c.config.CompareWith)
	if err != nil {
		return err
	}
	resultB, err := evaluator.Evaluate(ctx, reqB)
	if err != nil {
		return fmt.Errorf("comparison evaluation failed: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("⏱️  Evaluations took %v\n\n", time.Since(start))
	}

	return output.GenerateComparison(compare.Compare(resultA, resultB), outputConfig)
}

// buildRequest assembles an evaluation request from an optional scenario
// JSON file plus the command-line parameters. Flags win over file values.
func (c *SimulateCommand) buildRequest(scenarioFile string) (dto.EvaluationRequest, error) {
	var req dto.EvaluationRequest

	if scenarioFile != "" {
		data, err := os.ReadFile(scenarioFile)
		if err != nil {
			return req, fmt.Errorf("error reading scenario file: %w", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("error parsing scenario file %s: %w", scenarioFile, err)
		}
	}

	if c.config.WorkingDays > 0 {
		days := c.config.WorkingDays
		req.WorkingDays = &days
	}
	if c.config.ShiftHours > 0 {
		hours := c.config.ShiftHours
		req.GlobalShiftHours = &hours
	}
	return req, nil
}

func (c *SimulateCommand) showHelp() {
	fmt.Println(`capsim - manufacturing capacity saturation simulator

Usage:
  capsim -base <base.csv> [options]

Options:
  -base <file>          Base dataset CSV (required)
  -scenario <file>      Scenario JSON with overrides and center configs
  -compare-with <file>  Second scenario JSON; prints the diff instead
  -working-days <n>     Working days per year (default from scenario or 238)
  -shift-hours <n>      Global shift hours: 8, 16 or 24 (default 16)
  -output <dir>         Write JSON results to a directory instead of stdout
  -format <fmt>         Output format: text, json, svg, html (default text)
  -verbose              Enable verbose output
  -help                 Show this message

Scenario file format (all fields optional):
  {
    "working_days": 238,
    "global_shift_hours": 16,
    "center_configs": {"C2": {"shift_hours": 24}},
    "overrides": [
      {"article_id": "A1", "center_id": "C1", "oee": 0.9, "new_center_id": "C2"}
    ]
  }`)
}
