package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/application/services/capacity"
)

// Config holds configuration for output generation
type Config struct {
	Format      string
	OutputDir   string
	Verbose     bool
	WorkingDays int
}

// Generate renders a simulation result in the configured format
func Generate(result *dto.SimulationResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, "simulation_result.json", config)
	case "svg":
		return generateSVGOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateComparison renders a comparison result in the configured format
func GenerateComparison(result *dto.ComparisonResult, config Config) error {
	switch config.Format {
	case "text":
		return generateComparisonTextOutput(result)
	case "json":
		return generateJSONOutput(result, "comparison_result.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateTextOutput(result *dto.SimulationResult, config Config) error {
	fmt.Printf("📊 Capacity Saturation Summary\n")
	fmt.Printf("==============================\n\n")

	fmt.Printf("Working Days: %d\n", result.Meta.WorkingDays)
	fmt.Printf("Global Shift Hours: %d\n", result.Meta.GlobalShiftHours)
	fmt.Printf("Rows: %d  Centers: %d  Warnings: %d\n\n",
		len(result.Detail), len(result.Summary), len(result.Warnings))

	if len(result.Summary) > 0 {
		fmt.Printf("🏭 Work Centers:\n")
		fmt.Printf("%-12s %-10s %-14s %-14s %-14s %-8s\n",
			"Center", "Articles", "Total Hours", "Man-Hours", "Volume", "Sat %")
		fmt.Printf("%-12s %-10s %-14s %-14s %-14s %-8s\n",
			"------------", "----------", "--------------", "--------------", "--------------", "--------")

		for _, s := range result.Summary {
			fmt.Printf("%-12s %-10d %-14.1f %-14.1f %-14.0f %-8.1f\n",
				s.Center, s.NumArticles, s.TotalHours, s.TotalManHours,
				s.AnnualVolume, s.Saturation*100)
		}
		fmt.Println()

		fte := capacity.FTE(result.Summary, result.Meta.WorkingDays)
		fmt.Printf("👥 FTE (8h reference shift): %.2f\n\n", fte)
	}

	if config.Verbose && len(result.Detail) > 0 {
		fmt.Printf("📋 Detail Rows:\n")
		fmt.Printf("%-12s %-10s %-10s %-12s %-12s %-8s\n",
			"Article", "Center", "Source", "Volume", "Total Hours", "Sat %")
		fmt.Printf("%-12s %-10s %-10s %-12s %-12s %-8s\n",
			"------------", "----------", "----------", "------------", "------------", "--------")

		for _, d := range result.Detail {
			fmt.Printf("%-12s %-10s %-10s %-12.0f %-12.2f %-8.1f\n",
				d.Article, d.Center, d.SourceCenter, d.AnnualVolume,
				d.TotalHours, d.Saturation*100)
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("⚠️  Excluded Rows:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  %s@%s: %s\n", w.Article, w.Center, w.Reason)
		}
		fmt.Println()
	}

	return nil
}

func generateComparisonTextOutput(result *dto.ComparisonResult) error {
	fmt.Printf("🔀 Scenario Comparison\n")
	fmt.Printf("======================\n\n")

	fmt.Printf("Net Impact: avg saturation %+.2f pp, total hours %+.1f\n\n",
		result.NetImpact.AvgSaturationDeltaPct, result.NetImpact.TotalHoursDelta)

	if len(result.TopChanges) > 0 {
		fmt.Printf("🔝 Top Changes:\n")
		for _, d := range result.TopChanges {
			fmt.Printf("  %-12s %+.2f pp (%.1f%% → %.1f%%)\n",
				d.Center, d.DeltaSaturationPct, d.SaturationA*100, d.SaturationB*100)
		}
		fmt.Println()
	}

	changed := 0
	for _, d := range result.PerRow {
		if d.CenterChanged || d.ShiftChanged || d.Added || d.Removed ||
			d.DeltaSaturation != 0 {
			changed++
		}
	}
	fmt.Printf("Rows compared: %d (%d changed)\n", len(result.PerRow), changed)

	for _, d := range result.PerRow {
		switch {
		case d.Added:
			fmt.Printf("  + %s@%s added (saturation %.3f)\n", d.Article, d.SourceCenter, d.DeltaSaturation)
		case d.Removed:
			fmt.Printf("  - %s@%s removed\n", d.Article, d.SourceCenter)
		case d.CenterChanged:
			fmt.Printf("  ~ %s@%s moved %s → %s\n", d.Article, d.SourceCenter, d.CenterA, d.CenterB)
		}
	}

	return nil
}

func generateSVGOutput(result *dto.SimulationResult, config Config) error {
	svg := NewSaturationChart(result.Summary).GenerateSVG(result.Summary)

	filename := "saturation_chart.svg"
	if config.OutputDir != "" {
		filename = filepath.Join(config.OutputDir, filename)
	}

	if err := os.WriteFile(filename, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("failed to write SVG output: %w", err)
	}

	fmt.Printf("📈 Saturation chart saved to: %s\n", filename)
	return nil
}

func generateJSONOutput(v interface{}, filename string, config Config) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}

	if config.OutputDir != "" {
		path := filepath.Join(config.OutputDir, filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		fmt.Printf("📄 Results written to: %s\n", path)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
