// Package capacity derives per-row and per-center saturation metrics from
// resolved effective rows.
package capacity

import (
	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// ReferenceShiftHours is the fixed shift length used to normalize man-hours
// into headcount, independent of each center's actual shift hours.
const ReferenceShiftHours = 8

// Compute derives detail metrics per row and summary metrics per center.
//
// A row whose inputs make the derivation impossible (non-positive OEE or
// pieces per minute, zero available hours) is excluded from the detail list
// and from every aggregate, and reported as a warning instead of failing the
// whole computation.
func Compute(
	rows []entities.EffectiveRow,
	workingDays int,
) ([]dto.DetailRow, []entities.SummaryMetric, []entities.MetricError) {
	detail := make([]dto.DetailRow, 0, len(rows))
	var warnings []entities.MetricError

	totalVolume := 0.0
	for _, row := range rows {
		metric, err := computeRow(row, workingDays)
		if err != nil {
			warnings = append(warnings, *err)
			continue
		}
		detail = append(detail, dto.DetailRow{EffectiveRow: row, DetailMetric: metric})
		totalVolume += row.AnnualVolume
	}

	// Impact share is normalized over the rows that made it into the
	// result, so the shares of the included rows always sum to 1.
	for i := range detail {
		if totalVolume > 0 {
			detail[i].ImpactShare = detail[i].AnnualVolume / totalVolume
		}
	}

	return detail, summarize(detail, workingDays), warnings
}

func computeRow(row entities.EffectiveRow, workingDays int) (entities.DetailMetric, *entities.MetricError) {
	if row.OEE <= 0 {
		return entities.DetailMetric{}, &entities.MetricError{
			Article: row.Article,
			Center:  row.SourceCenter,
			Reason:  "oee must be positive to derive hours per unit",
		}
	}
	if row.PiecesPerMinute <= 0 {
		return entities.DetailMetric{}, &entities.MetricError{
			Article: row.Article,
			Center:  row.SourceCenter,
			Reason:  "pieces per minute must be positive to derive hours per unit",
		}
	}
	availableHours := float64(row.ShiftHours) * float64(workingDays)
	if availableHours <= 0 {
		return entities.DetailMetric{}, &entities.MetricError{
			Article: row.Article,
			Center:  row.SourceCenter,
			Reason:  "available hours per year must be positive",
		}
	}

	// Hours to produce one unit at the effective output rate.
	hoursPerUnit := 1 / row.PiecesPerMinute / 60 / row.OEE
	// Setup counts once per row as changeover overhead for the horizon.
	totalHours := row.AnnualVolume*hoursPerUnit + row.SetupHours

	return entities.DetailMetric{
		HoursPerUnit: hoursPerUnit,
		TotalHours:   totalHours,
		ManHours:     totalHours * row.PersonnelRatio,
		Saturation:   totalHours / availableHours,
	}, nil
}

// centerAccumulator collects the per-center sums needed for a SummaryMetric.
type centerAccumulator struct {
	center          entities.CenterID
	totalHours      float64
	totalManHours   float64
	annualVolume    float64
	numArticles     int
	firstShiftHours int
	shiftDiverges   bool
	weightedShift   float64 // shift_hours weighted by row hours
}

func summarize(detail []dto.DetailRow, workingDays int) []entities.SummaryMetric {
	accs := make(map[entities.CenterID]*centerAccumulator)
	var order []entities.CenterID

	for _, d := range detail {
		acc, ok := accs[d.Center]
		if !ok {
			acc = &centerAccumulator{center: d.Center, firstShiftHours: d.ShiftHours}
			accs[d.Center] = acc
			order = append(order, d.Center)
		}
		if d.ShiftHours != acc.firstShiftHours {
			acc.shiftDiverges = true
		}
		acc.totalHours += d.TotalHours
		acc.totalManHours += d.ManHours
		acc.annualVolume += d.AnnualVolume
		acc.numArticles++
		acc.weightedShift += float64(d.ShiftHours) * d.TotalHours
	}

	summary := make([]entities.SummaryMetric, 0, len(order))
	for _, center := range order {
		acc := accs[center]
		summary = append(summary, entities.SummaryMetric{
			Center:        acc.center,
			TotalHours:    acc.totalHours,
			TotalManHours: acc.totalManHours,
			Saturation:    acc.saturation(workingDays),
			AnnualVolume:  acc.annualVolume,
			NumArticles:   acc.numArticles,
		})
	}
	return summary
}

// saturation divides the center's required hours by its available hours.
// Rows in a center normally share shift hours; when a row-level override
// makes them diverge, an hours-weighted average keeps the denominator
// honest.
func (acc *centerAccumulator) saturation(workingDays int) float64 {
	shiftHours := float64(acc.firstShiftHours)
	if acc.shiftDiverges && acc.totalHours > 0 {
		shiftHours = acc.weightedShift / acc.totalHours
	}
	available := shiftHours * float64(workingDays)
	if available <= 0 {
		return 0
	}
	return acc.totalHours / available
}

// FTE converts the summed man-hours of the given centers into a headcount
// normalized to the reference 8-hour shift.
func FTE(summary []entities.SummaryMetric, workingDays int) float64 {
	if workingDays <= 0 {
		return 0
	}
	totalManHours := 0.0
	for _, s := range summary {
		totalManHours += s.TotalManHours
	}
	return totalManHours / (float64(workingDays) * ReferenceShiftHours)
}
