package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// SaturationChart renders per-center saturation as an SVG bar chart
type SaturationChart struct {
	Width        int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
}

// ChartBar represents a single center bar in the chart
type ChartBar struct {
	Center     entities.CenterID
	Saturation float64
	X          int
	Y          int
	Width      int
	Color      string
}

// NewSaturationChart creates a chart sized for the given center summaries
func NewSaturationChart(summaries []entities.SummaryMetric) *SaturationChart {
	return &SaturationChart{
		Width:        900,
		MarginLeft:   120,
		MarginTop:    60,
		MarginRight:  80,
		MarginBottom: 50,
		RowHeight:    30,
	}
}

// GenerateSVG creates an SVG representation of the saturation chart. Bars
// are scaled so 100% sits at a fixed gridline; centers past it overflow
// into the red zone.
func (sc *SaturationChart) GenerateSVG(summaries []entities.SummaryMetric) string {
	if len(summaries) == 0 {
		return sc.generateEmptyChart()
	}

	height := sc.MarginTop + len(summaries)*sc.RowHeight + sc.MarginBottom

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, sc.Width, height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.center-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.value-label { font-family: Arial, sans-serif; font-size: 11px; fill: #333; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.limit-line { stroke: #f44336; stroke-width: 1; stroke-dasharray: 4 3; }`)
	svg.WriteString(`.sat-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, sc.Width, height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Work Center Saturation</text>`, sc.Width/2))

	bars := sc.createBars(summaries)
	sc.drawAxis(&svg, height, bars)
	for _, bar := range bars {
		sc.drawBar(&svg, bar)
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

// createBars converts center summaries to chart bars, worst center first
func (sc *SaturationChart) createBars(summaries []entities.SummaryMetric) []ChartBar {
	sorted := make([]entities.SummaryMetric, len(summaries))
	copy(sorted, summaries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Saturation != sorted[j].Saturation {
			return sorted[i].Saturation > sorted[j].Saturation
		}
		return sorted[i].Center < sorted[j].Center
	})

	chartWidth := sc.Width - sc.MarginLeft - sc.MarginRight
	maxSat := 1.0
	for _, s := range sorted {
		if s.Saturation > maxSat {
			maxSat = s.Saturation
		}
	}
	// Leave headroom so the longest bar never touches the right margin.
	scale := float64(chartWidth) / (maxSat * 1.1)

	bars := make([]ChartBar, 0, len(sorted))
	for i, s := range sorted {
		width := int(s.Saturation * scale)
		if width < 2 && s.Saturation > 0 {
			width = 2
		}
		bars = append(bars, ChartBar{
			Center:     s.Center,
			Saturation: s.Saturation,
			X:          sc.MarginLeft,
			Y:          sc.MarginTop + i*sc.RowHeight,
			Width:      width,
			Color:      sc.getBarColor(s.Saturation),
		})
	}
	return bars
}

// drawAxis draws the baseline, the 100% limit line and percentage ticks
func (sc *SaturationChart) drawAxis(svg *strings.Builder, height int, bars []ChartBar) {
	chartBottom := height - sc.MarginBottom

	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		sc.MarginLeft, sc.MarginTop, sc.MarginLeft, chartBottom))

	maxSat := 1.0
	for _, bar := range bars {
		if bar.Saturation > maxSat {
			maxSat = bar.Saturation
		}
	}
	chartWidth := sc.Width - sc.MarginLeft - sc.MarginRight
	scale := float64(chartWidth) / (maxSat * 1.1)

	// Ticks every 25%, plus the dashed 100% limit.
	for pct := 0.25; pct*scale <= float64(chartWidth); pct += 0.25 {
		x := sc.MarginLeft + int(pct*scale)
		class := "grid-line"
		if pct == 1.0 {
			class = "limit-line"
		}
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="%s"/>`,
			x, sc.MarginTop, x, chartBottom, class))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="value-label" text-anchor="middle">%.0f%%</text>`,
			x, chartBottom+15, pct*100))
	}
}

// drawBar draws one center bar with its label and value
func (sc *SaturationChart) drawBar(svg *strings.Builder, bar ChartBar) {
	barHeight := sc.RowHeight - 8
	barY := bar.Y + 4

	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="center-label" text-anchor="end">%s</text>`,
		sc.MarginLeft-10, barY+barHeight/2+4, bar.Center))

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="sat-bar"/>`,
		bar.X, barY, bar.Width, barHeight, bar.Color))

	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="value-label">%.1f%%</text>`,
		bar.X+bar.Width+6, barY+barHeight/2+4, bar.Saturation*100))
}

// getBarColor returns color based on how loaded the center is
func (sc *SaturationChart) getBarColor(saturation float64) string {
	switch {
	case saturation >= 1.0:
		return "#F44336" // Red for overloaded centers
	case saturation >= 0.8:
		return "#FF9800" // Orange for centers near capacity
	default:
		return "#4CAF50" // Green for healthy load
	}
}

// generateEmptyChart creates an empty chart when no centers exist
func (sc *SaturationChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="200" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="200" fill="white"/>
		<text x="%d" y="100" class="title" text-anchor="middle">No Work Centers Found</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, sc.Width, sc.Width, sc.Width/2)
}
