package output

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/application/services/capacity"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLReport generates a standalone HTML saturation report
type HTMLReport struct{}

// TemplateData contains all data for rendering the HTML template
type TemplateData struct {
	Result      *dto.SimulationResult
	Chart       template.HTML
	FTE         float64
	DataJSON    template.JS
	GeneratedAt string
}

// NewHTMLReport creates a new HTML report generator
func NewHTMLReport() *HTMLReport {
	return &HTMLReport{}
}

// GenerateHTML renders the simulation result into a self-contained HTML
// document: summary table, detail rows, the saturation chart inlined as SVG
// and the raw result embedded as JSON for further processing.
func (hr *HTMLReport) GenerateHTML(result *dto.SimulationResult, config Config) (string, error) {
	if config.Verbose {
		fmt.Printf("    📊 Rendering report for %d rows across %d centers...\n",
			len(result.Detail), len(result.Summary))
	}

	chart := NewSaturationChart(result.Summary).GenerateSVG(result.Summary)

	jsonData, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result data: %w", err)
	}

	templateData := &TemplateData{
		Result:      result,
		Chart:       template.HTML(chart),
		FTE:         capacity.FTE(result.Summary, result.Meta.WorkingDays),
		DataJSON:    template.JS(jsonData),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
	}

	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// generateHTMLOutput creates the HTML report file
func generateHTMLOutput(result *dto.SimulationResult, config Config) error {
	html, err := NewHTMLReport().GenerateHTML(result, config)
	if err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	filename := "saturation_report.html"
	if config.OutputDir != "" {
		filename = filepath.Join(config.OutputDir, filename)
	}

	if err := os.WriteFile(filename, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	fmt.Printf("🌐 Saturation report saved to: %s\n", filename)
	return nil
}
