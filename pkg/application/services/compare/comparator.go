// Package compare computes the structural diff between two simulation
// results.
package compare

import (
	"math"
	"sort"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// TopChangesLimit caps the ranked list of most-affected centers.
const TopChangesLimit = 3

// Compare aligns two simulation results and produces per-row and per-center
// deltas.
//
// Rows are correlated by (article, source center), never by the possibly
// reassigned center, so a row moved under one result still matches its
// counterpart. Rows or centers present on only one side are flagged added or
// removed with the missing side treated as zero; mismatched sets are data,
// not an error.
func Compare(a, b *dto.SimulationResult) *dto.ComparisonResult {
	perCenter := compareCenters(a.Summary, b.Summary)
	return &dto.ComparisonResult{
		PerRow:     compareRows(a.Detail, b.Detail),
		PerCenter:  perCenter,
		NetImpact:  netImpact(a, b, perCenter),
		TopChanges: topChanges(perCenter),
	}
}

func compareRows(detailA, detailB []dto.DetailRow) []dto.RowDelta {
	byKeyB := make(map[entities.RowKey]dto.DetailRow, len(detailB))
	for _, row := range detailB {
		byKeyB[row.Key()] = row
	}

	deltas := make([]dto.RowDelta, 0, len(detailA))
	seen := make(map[entities.RowKey]bool, len(detailA))

	for _, rowA := range detailA {
		key := rowA.Key()
		seen[key] = true

		rowB, ok := byKeyB[key]
		if !ok {
			deltas = append(deltas, dto.RowDelta{
				Article:           key.Article,
				SourceCenter:      key.Center,
				CenterA:           rowA.Center,
				DeltaOEE:          -rowA.OEE,
				DeltaPPM:          -rowA.PiecesPerMinute,
				DeltaAnnualVolume: -rowA.AnnualVolume,
				DeltaSaturation:   -rowA.Saturation,
				Removed:           true,
			})
			continue
		}

		deltas = append(deltas, dto.RowDelta{
			Article:           key.Article,
			SourceCenter:      key.Center,
			CenterA:           rowA.Center,
			CenterB:           rowB.Center,
			DeltaOEE:          rowB.OEE - rowA.OEE,
			DeltaPPM:          rowB.PiecesPerMinute - rowA.PiecesPerMinute,
			DeltaAnnualVolume: rowB.AnnualVolume - rowA.AnnualVolume,
			DeltaSaturation:   rowB.Saturation - rowA.Saturation,
			CenterChanged:     rowA.Center != rowB.Center,
			ShiftChanged:      rowA.ShiftHours != rowB.ShiftHours,
		})
	}

	for _, rowB := range detailB {
		if seen[rowB.Key()] {
			continue
		}
		deltas = append(deltas, dto.RowDelta{
			Article:           rowB.Article,
			SourceCenter:      rowB.SourceCenter,
			CenterB:           rowB.Center,
			DeltaOEE:          rowB.OEE,
			DeltaPPM:          rowB.PiecesPerMinute,
			DeltaAnnualVolume: rowB.AnnualVolume,
			DeltaSaturation:   rowB.Saturation,
			Added:             true,
		})
	}

	return deltas
}

func compareCenters(summaryA, summaryB []entities.SummaryMetric) []dto.CenterDelta {
	byCenterA := make(map[entities.CenterID]entities.SummaryMetric, len(summaryA))
	for _, s := range summaryA {
		byCenterA[s.Center] = s
	}
	byCenterB := make(map[entities.CenterID]entities.SummaryMetric, len(summaryB))
	for _, s := range summaryB {
		byCenterB[s.Center] = s
	}

	centers := make([]entities.CenterID, 0, len(byCenterA))
	for c := range byCenterA {
		centers = append(centers, c)
	}
	for c := range byCenterB {
		if _, ok := byCenterA[c]; !ok {
			centers = append(centers, c)
		}
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i] < centers[j] })

	deltas := make([]dto.CenterDelta, 0, len(centers))
	for _, center := range centers {
		sa, inA := byCenterA[center]
		sb, inB := byCenterB[center]

		deltas = append(deltas, dto.CenterDelta{
			Center:             center,
			SaturationA:        sa.Saturation,
			SaturationB:        sb.Saturation,
			DeltaSaturationPct: (sb.Saturation - sa.Saturation) * 100,
			AnnualVolumeA:      sa.AnnualVolume,
			AnnualVolumeB:      sb.AnnualVolume,
			Added:              !inA && inB,
			Removed:            inA && !inB,
		})
	}
	return deltas
}

// topChanges ranks centers by absolute saturation movement, largest first,
// ties broken by center id ascending. Unchanged centers never rank.
func topChanges(perCenter []dto.CenterDelta) []dto.CenterDelta {
	changed := make([]dto.CenterDelta, 0, len(perCenter))
	for _, d := range perCenter {
		if d.DeltaSaturationPct != 0 {
			changed = append(changed, d)
		}
	}

	sort.SliceStable(changed, func(i, j int) bool {
		di, dj := math.Abs(changed[i].DeltaSaturationPct), math.Abs(changed[j].DeltaSaturationPct)
		if di != dj {
			return di > dj
		}
		return changed[i].Center < changed[j].Center
	})

	if len(changed) > TopChangesLimit {
		changed = changed[:TopChangesLimit]
	}
	return changed
}

// netImpact is a straight mean of the per-center saturation deltas (not
// weighted by center size) plus the aggregate hours delta.
func netImpact(a, b *dto.SimulationResult, perCenter []dto.CenterDelta) dto.NetImpact {
	sumDeltaPct := 0.0
	for _, d := range perCenter {
		sumDeltaPct += d.DeltaSaturationPct
	}
	avg := 0.0
	if len(perCenter) > 0 {
		avg = sumDeltaPct / float64(len(perCenter))
	}

	hoursA, hoursB := 0.0, 0.0
	for _, s := range a.Summary {
		hoursA += s.TotalHours
	}
	for _, s := range b.Summary {
		hoursB += s.TotalHours
	}

	return dto.NetImpact{
		AvgSaturationDeltaPct: avg,
		TotalHoursDelta:       hoursB - hoursA,
	}
}
