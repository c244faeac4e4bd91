package dto

import (
	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// DetailRow joins an effective row with its derived metrics for output.
type DetailRow struct {
	entities.EffectiveRow
	entities.DetailMetric
}

// Meta echoes the resolved evaluation inputs for downstream display and
// history reconstruction.
type Meta struct {
	WorkingDays      int                                         `json:"working_days"`
	GlobalShiftHours int                                         `json:"global_shift_hours"`
	CenterConfigs    map[entities.CenterID]entities.CenterConfig `json:"center_configs"`
	AppliedOverrides []entities.Override                         `json:"applied_overrides"`
}

// SimulationResult is the ephemeral output of one evaluation.
type SimulationResult struct {
	Detail   []DetailRow              `json:"detail"`
	Summary  []entities.SummaryMetric `json:"summary"`
	Meta     Meta                     `json:"meta"`
	Warnings []entities.MetricError   `json:"warnings,omitempty"`
}

// EvaluationRequest describes one evaluation. ScenarioID selects a stored
// scenario ("base" or empty selects the bare dataset); when Overrides or
// CenterConfigs are supplied inline the request is a preview and the store
// is never touched. WorkingDays and GlobalShiftHours are query-time
// parameters: when nil, the stored scenario's values (or the plant defaults)
// apply.
type EvaluationRequest struct {
	ScenarioID       string                                      `json:"scenario_id,omitempty"`
	WorkingDays      *int                                        `json:"working_days,omitempty"`
	GlobalShiftHours *int                                        `json:"global_shift_hours,omitempty"`
	Overrides        []entities.Override                         `json:"overrides,omitempty"`
	CenterConfigs    map[entities.CenterID]entities.CenterConfig `json:"center_configs,omitempty"`
}

// IsPreview reports whether the request carries inline layers.
func (r EvaluationRequest) IsPreview() bool {
	return len(r.Overrides) > 0 || len(r.CenterConfigs) > 0
}
