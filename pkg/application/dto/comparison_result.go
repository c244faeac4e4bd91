package dto

import (
	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// RowDelta is the per-row difference between two simulation results,
// correlated by (article, source center) so reassigned rows still match.
// A row present in only one result is flagged Added or Removed; its missing
// side contributes zeros to the delta fields.
type RowDelta struct {
	Article           entities.ArticleID `json:"article_id"`
	SourceCenter      entities.CenterID  `json:"source_center_id"`
	CenterA           entities.CenterID  `json:"center_a,omitempty"`
	CenterB           entities.CenterID  `json:"center_b,omitempty"`
	DeltaOEE          float64            `json:"delta_oee"`
	DeltaPPM          float64            `json:"delta_pieces_per_minute"`
	DeltaAnnualVolume float64            `json:"delta_annual_volume"`
	DeltaSaturation   float64            `json:"delta_saturation"`
	CenterChanged     bool               `json:"center_changed"`
	ShiftChanged      bool               `json:"shift_changed"`
	Added             bool               `json:"added,omitempty"`
	Removed           bool               `json:"removed,omitempty"`
}

// CenterDelta is the per-center difference between two summaries. Centers
// present on only one side are flagged; the missing side counts as zero.
type CenterDelta struct {
	Center             entities.CenterID `json:"center_id"`
	SaturationA        float64           `json:"saturation_a"`
	SaturationB        float64           `json:"saturation_b"`
	DeltaSaturationPct float64           `json:"delta_saturation_pct"`
	AnnualVolumeA      float64           `json:"annual_volume_a"`
	AnnualVolumeB      float64           `json:"annual_volume_b"`
	Added              bool              `json:"added,omitempty"`
	Removed            bool              `json:"removed,omitempty"`
}

// NetImpact summarizes a comparison: a straight (unweighted) mean of the
// per-center saturation deltas and the aggregate hours delta.
type NetImpact struct {
	AvgSaturationDeltaPct float64 `json:"avg_saturation_delta_pct"`
	TotalHoursDelta       float64 `json:"total_hours_delta"`
}

// ComparisonResult is the structural diff between two simulation results.
type ComparisonResult struct {
	PerRow     []RowDelta    `json:"per_row"`
	PerCenter  []CenterDelta `json:"per_center"`
	NetImpact  NetImpact     `json:"net_impact"`
	TopChanges []CenterDelta `json:"top_changes"`
}
