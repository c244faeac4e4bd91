// Package simulation orchestrates override resolution and metric derivation
// for named scenarios and ad-hoc previews, and manages scenario persistence
// with append-only history snapshots.
package simulation

import (
	"context"
	"fmt"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/application/services/capacity"
	"github.com/rpk-planning/capsim/pkg/application/services/resolver"
	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
)

// BaseScenarioID selects the bare dataset with no override layers.
const BaseScenarioID = "base"

// Evaluator runs simulations over the base dataset. It holds no mutable
// state: every evaluation is a pure function of its inputs and safe to run
// concurrently with any other.
type Evaluator struct {
	baseSource repositories.BaseDataSource
	store      repositories.ScenarioStore
}

// NewEvaluator creates an evaluator over the given collaborators
func NewEvaluator(baseSource repositories.BaseDataSource, store repositories.ScenarioStore) *Evaluator {
	return &Evaluator{
		baseSource: baseSource,
		store:      store,
	}
}

// Evaluate resolves the requested layers and derives metrics.
//
// Three request forms are supported: the base dataset (empty or "base"
// scenario id), a stored scenario (layers loaded from the store, query-time
// working days and shift hours winning over the stored ones), and an inline
// preview (layers taken from the request, the store never touched and
// nothing persisted).
func (e *Evaluator) Evaluate(ctx context.Context, req dto.EvaluationRequest) (*dto.SimulationResult, error) {
	if req.GlobalShiftHours != nil && !entities.IsValidShiftHours(*req.GlobalShiftHours) {
		return nil, entities.NewValidationError(
			"global_shift_hours", "must be one of %v, got %d", entities.ValidShiftHours, *req.GlobalShiftHours)
	}
	if req.WorkingDays != nil && *req.WorkingDays < 0 {
		return nil, entities.NewValidationError(
			"working_days", "cannot be negative, got %d", *req.WorkingDays)
	}
	for i, ov := range req.Overrides {
		if err := ov.Validate(); err != nil {
			return nil, fmt.Errorf("override %d: %w", i, err)
		}
	}
	for id, cfg := range req.CenterConfigs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("center config %s: %w", id, err)
		}
	}

	workingDays := entities.DefaultWorkingDays
	shiftHours := entities.DefaultGlobalShiftHours
	var centerConfigs map[entities.CenterID]entities.CenterConfig
	var overrides []entities.Override

	switch {
	case req.IsPreview():
		// Inline draft: layers come straight from the request. Copies are
		// taken so the caller's storage stays untouched for the duration
		// of the evaluation.
		centerConfigs = entities.CloneCenterConfigs(req.CenterConfigs)
		overrides = entities.CloneOverrides(req.Overrides)
	case req.ScenarioID == "" || req.ScenarioID == BaseScenarioID:
		// Bare dataset, no layers.
	default:
		scenario, err := e.store.Get(ctx, req.ScenarioID)
		if err != nil {
			return nil, fmt.Errorf("load scenario %s: %w", req.ScenarioID, err)
		}
		workingDays = scenario.WorkingDays
		shiftHours = scenario.GlobalShiftHours
		centerConfigs = entities.CloneCenterConfigs(scenario.CenterConfigs)
		overrides = entities.CloneOverrides(scenario.Overrides)
	}

	// Query-time parameters win over stored ones for this evaluation only.
	if req.WorkingDays != nil {
		workingDays = *req.WorkingDays
	}
	if req.GlobalShiftHours != nil {
		shiftHours = *req.GlobalShiftHours
	}

	baseRows, err := e.baseSource.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load base dataset: %w", err)
	}

	effective := resolver.Resolve(baseRows, centerConfigs, overrides, shiftHours)
	detail, summary, warnings := capacity.Compute(effective, workingDays)

	return &dto.SimulationResult{
		Detail:   detail,
		Summary:  summary,
		Warnings: warnings,
		Meta: dto.Meta{
			WorkingDays:      workingDays,
			GlobalShiftHours: shiftHours,
			CenterConfigs:    centerConfigs,
			AppliedOverrides: overrides,
		},
	}, nil
}
