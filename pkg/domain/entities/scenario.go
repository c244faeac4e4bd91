package entities

import (
	"fmt"
	"time"
)

// Default evaluation parameters, matching the plant's planning calendar.
const (
	DefaultWorkingDays      = 238
	DefaultGlobalShiftHours = 16
)

// Scenario is a named, persisted what-if plan: a set of center configs and
// row overrides plus the evaluation defaults they were saved with. The engine
// never mutates a stored Scenario; resolution works on read-only copies.
type Scenario struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	Description      string                    `json:"description,omitempty"`
	WorkingDays      int                       `json:"working_days"`
	GlobalShiftHours int                       `json:"global_shift_hours"`
	CenterConfigs    map[CenterID]CenterConfig `json:"center_configs,omitempty"`
	Overrides        []Override                `json:"overrides,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// NewScenario creates a validated Scenario with defaults filled in
func NewScenario(
	name string,
	description string,
	workingDays int,
	globalShiftHours int,
	centerConfigs map[CenterID]CenterConfig,
	overrides []Override,
) (*Scenario, error) {
	if name == "" {
		return nil, NewValidationError("scenario.name", "cannot be empty")
	}
	if workingDays == 0 {
		workingDays = DefaultWorkingDays
	}
	if workingDays < 0 {
		return nil, NewValidationError("scenario.working_days", "cannot be negative, got %d", workingDays)
	}
	if globalShiftHours == 0 {
		globalShiftHours = DefaultGlobalShiftHours
	}
	if !IsValidShiftHours(globalShiftHours) {
		return nil, NewValidationError("scenario.global_shift_hours", "must be one of %v, got %d", ValidShiftHours, globalShiftHours)
	}
	for id, cfg := range centerConfigs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("center config %s: %w", id, err)
		}
	}
	for i, ov := range overrides {
		if err := ov.Validate(); err != nil {
			return nil, fmt.Errorf("override %d: %w", i, err)
		}
	}

	return &Scenario{
		Name:             name,
		Description:      description,
		WorkingDays:      workingDays,
		GlobalShiftHours: globalShiftHours,
		CenterConfigs:    CloneCenterConfigs(centerConfigs),
		Overrides:        CloneOverrides(overrides),
	}, nil
}

// Clone returns a deep copy of the scenario.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.CenterConfigs = CloneCenterConfigs(s.CenterConfigs)
	c.Overrides = CloneOverrides(s.Overrides)
	return &c
}

// ScenarioSummary is the listing view of a stored scenario.
type ScenarioSummary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	WorkingDays      int       `json:"working_days"`
	GlobalShiftHours int       `json:"global_shift_hours"`
	OverrideCount    int       `json:"override_count"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Summary returns the listing view of the scenario.
func (s *Scenario) Summary() ScenarioSummary {
	return ScenarioSummary{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		WorkingDays:      s.WorkingDays,
		GlobalShiftHours: s.GlobalShiftHours,
		OverrideCount:    len(s.Overrides),
		UpdatedAt:        s.UpdatedAt,
	}
}

// HistorySnapshot is an immutable record of the override set in effect when
// a scenario was saved. Snapshots are append-only per scenario and frozen
// even if the scenario's overrides later change.
type HistorySnapshot struct {
	Timestamp        time.Time  `json:"timestamp"`
	Name             string     `json:"name"`
	OverridesApplied []Override `json:"overrides_applied"`
	ChangesCount     int        `json:"changes_count"`
}

// NewHistorySnapshot freezes the given override set into a snapshot.
func NewHistorySnapshot(name string, overrides []Override, at time.Time) HistorySnapshot {
	return HistorySnapshot{
		Timestamp:        at,
		Name:             name,
		OverridesApplied: CloneOverrides(overrides),
		ChangesCount:     len(overrides),
	}
}
