package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
)

// ScenarioService manages scenario persistence. Every save or overwrite
// appends an immutable history snapshot carrying exactly the override set in
// effect for that save, so "original vs at-this-point" diffs can be
// reconstructed later.
type ScenarioService struct {
	store repositories.ScenarioStore
	now   func() time.Time
}

// NewScenarioService creates a scenario service over the given store
func NewScenarioService(store repositories.ScenarioStore) *ScenarioService {
	return &ScenarioService{store: store, now: time.Now}
}

// Create validates and persists a new scenario, recording its first history
// snapshot.
func (s *ScenarioService) Create(
	ctx context.Context,
	name, description string,
	workingDays, globalShiftHours int,
	centerConfigs map[entities.CenterID]entities.CenterConfig,
	overrides []entities.Override,
) (*entities.Scenario, error) {
	scenario, err := entities.NewScenario(name, description, workingDays, globalShiftHours, centerConfigs, overrides)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("save scenario %q: %w", name, err)
	}
	if err := s.recordSnapshot(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Replace fully overwrites a stored scenario and records a history snapshot
// of the new override set.
func (s *ScenarioService) Replace(
	ctx context.Context,
	id string,
	name, description string,
	workingDays, globalShiftHours int,
	centerConfigs map[entities.CenterID]entities.CenterConfig,
	overrides []entities.Override,
) (*entities.Scenario, error) {
	scenario, err := entities.NewScenario(name, description, workingDays, globalShiftHours, centerConfigs, overrides)
	if err != nil {
		return nil, err
	}
	scenario.ID = id

	saved, err := s.store.Save(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("replace scenario %s: %w", id, err)
	}
	if err := s.recordSnapshot(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Rename updates a scenario's name and description without touching its
// layers. No history snapshot is recorded since the override set is
// unchanged.
func (s *ScenarioService) Rename(ctx context.Context, id, name, description string) (*entities.Scenario, error) {
	if name == "" {
		return nil, entities.NewValidationError("scenario.name", "cannot be empty")
	}
	scenario, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", id, err)
	}
	scenario.Name = name
	if description != "" {
		scenario.Description = description
	}
	saved, err := s.store.Save(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("rename scenario %s: %w", id, err)
	}
	return saved, nil
}

// Get returns a stored scenario.
func (s *ScenarioService) Get(ctx context.Context, id string) (*entities.Scenario, error) {
	scenario, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", id, err)
	}
	return scenario, nil
}

// List returns summaries of all stored scenarios.
func (s *ScenarioService) List(ctx context.Context) ([]entities.ScenarioSummary, error) {
	return s.store.List(ctx)
}

// Delete removes a scenario and its history.
func (s *ScenarioService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete scenario %s: %w", id, err)
	}
	return nil
}

// History returns a scenario's snapshots, newest first.
func (s *ScenarioService) History(ctx context.Context, id string) ([]entities.HistorySnapshot, error) {
	history, err := s.store.GetHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load history for scenario %s: %w", id, err)
	}
	return history, nil
}

func (s *ScenarioService) recordSnapshot(ctx context.Context, scenario *entities.Scenario) error {
	snapshot := entities.NewHistorySnapshot(scenario.Name, scenario.Overrides, s.now())
	if err := s.store.AppendHistory(ctx, scenario.ID, snapshot); err != nil {
		return fmt.Errorf("record history for scenario %s: %w", scenario.ID, err)
	}
	return nil
}
