package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rpk-planning/capsim/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		baseFile     = flag.String("base", "", "Path to base dataset CSV file")
		scenarioFile = flag.String("scenario", "", "Path to scenario JSON file")
		compareWith  = flag.String("compare-with", "", "Path to a second scenario JSON file to diff against")
		workingDays  = flag.Int("working-days", 0, "Working days per year (0 = scenario/default)")
		shiftHours   = flag.Int("shift-hours", 0, "Global shift hours: 8, 16 or 24 (0 = scenario/default)")
		outputDir    = flag.String("output", "", "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json, svg, html")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		BaseFile:     *baseFile,
		ScenarioFile: *scenarioFile,
		CompareWith:  *compareWith,
		WorkingDays:  *workingDays,
		ShiftHours:   *shiftHours,
		OutputDir:    *outputDir,
		Format:       *format,
		Verbose:      *verbose,
		Help:         *help,
	}

	// Create and execute command
	cmd := commands.NewSimulateCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
