// Package postgres persists scenarios in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
)

// ScenarioStore provides Postgres-backed scenario storage. Override layers
// are stored as JSON documents; the store guarantees last-writer-wins on
// overwrite through single-statement updates.
type ScenarioStore struct {
	db *sql.DB
}

// NewScenarioStore creates a scenario store over the given database handle
func NewScenarioStore(db *sql.DB) *ScenarioStore {
	return &ScenarioStore{db: db}
}

// Verify interface compliance
var _ repositories.ScenarioStore = (*ScenarioStore)(nil)

// InitSchema creates the scenario tables if they do not exist
func (s *ScenarioStore) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			working_days INT NOT NULL,
			global_shift_hours INT NOT NULL,
			center_configs JSONB NOT NULL DEFAULT '{}',
			overrides JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS scenario_history (
			id BIGSERIAL PRIMARY KEY,
			scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
			recorded_at TIMESTAMPTZ NOT NULL,
			name TEXT NOT NULL,
			overrides JSONB NOT NULL DEFAULT '[]',
			changes_count INT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create scenario schema: %w", err)
	}
	return nil
}

// Get returns the scenario with the given id
func (s *ScenarioStore) Get(ctx context.Context, id string) (*entities.Scenario, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, working_days, global_shift_hours,
		       center_configs, overrides, created_at, updated_at
		FROM scenarios WHERE id = $1`, id)
	return scanScenario(row, id)
}

// List returns summaries of all scenarios, most recently updated first
func (s *ScenarioStore) List(ctx context.Context) ([]entities.ScenarioSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, working_days, global_shift_hours,
		       jsonb_array_length(overrides), updated_at
		FROM scenarios ORDER BY updated_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var summaries []entities.ScenarioSummary
	for rows.Next() {
		var sum entities.ScenarioSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Description, &sum.WorkingDays,
			&sum.GlobalShiftHours, &sum.OverrideCount, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Save persists the scenario: create when the id is empty, full replace
// otherwise
func (s *ScenarioStore) Save(ctx context.Context, scenario *entities.Scenario) (*entities.Scenario, error) {
	configs, err := json.Marshal(orEmptyConfigs(scenario.CenterConfigs))
	if err != nil {
		return nil, fmt.Errorf("failed to encode center configs: %w", err)
	}
	overrides, err := json.Marshal(orEmptyOverrides(scenario.Overrides))
	if err != nil {
		return nil, fmt.Errorf("failed to encode overrides: %w", err)
	}

	stored := scenario.Clone()
	now := time.Now()
	stored.UpdatedAt = now

	if stored.ID == "" {
		stored.ID = uuid.New().String()
		stored.CreatedAt = now
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO scenarios (id, name, description, working_days, global_shift_hours,
			                       center_configs, overrides, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			stored.ID, stored.Name, stored.Description, stored.WorkingDays,
			stored.GlobalShiftHours, configs, overrides, stored.CreatedAt, stored.UpdatedAt)
		if err != nil {
			return nil, wrapSaveError(err, stored.Name)
		}
		return stored, nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE scenarios
		SET name = $2, description = $3, working_days = $4, global_shift_hours = $5,
		    center_configs = $6, overrides = $7, updated_at = $8
		WHERE id = $1`,
		stored.ID, stored.Name, stored.Description, stored.WorkingDays,
		stored.GlobalShiftHours, configs, overrides, stored.UpdatedAt)
	if err != nil {
		return nil, wrapSaveError(err, stored.Name)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, stored.ID)
	}
	return s.Get(ctx, stored.ID)
}

// Delete removes the scenario; history rows cascade
func (s *ScenarioStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}
	return nil
}

// AppendHistory appends a snapshot to the scenario's log
func (s *ScenarioStore) AppendHistory(ctx context.Context, id string, snapshot entities.HistorySnapshot) error {
	overrides, err := json.Marshal(orEmptyOverrides(snapshot.OverridesApplied))
	if err != nil {
		return fmt.Errorf("failed to encode snapshot overrides: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO scenario_history (scenario_id, recorded_at, name, overrides, changes_count)
		SELECT $1, $2, $3, $4, $5 WHERE EXISTS (SELECT 1 FROM scenarios WHERE id = $1)`,
		id, snapshot.Timestamp, snapshot.Name, overrides, snapshot.ChangesCount)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}
	return nil
}

// GetHistory returns the scenario's snapshots, newest first
func (s *ScenarioStore) GetHistory(ctx context.Context, id string) ([]entities.HistorySnapshot, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM scenarios WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check scenario: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT recorded_at, name, overrides, changes_count
		FROM scenario_history WHERE scenario_id = $1 ORDER BY recorded_at DESC, id DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var history []entities.HistorySnapshot
	for rows.Next() {
		var snap entities.HistorySnapshot
		var overrides []byte
		if err := rows.Scan(&snap.Timestamp, &snap.Name, &overrides, &snap.ChangesCount); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(overrides, &snap.OverridesApplied); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot overrides: %w", err)
		}
		history = append(history, snap)
	}
	return history, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScenario(row rowScanner, id string) (*entities.Scenario, error) {
	var scenario entities.Scenario
	var configs, overrides []byte
	err := row.Scan(&scenario.ID, &scenario.Name, &scenario.Description,
		&scenario.WorkingDays, &scenario.GlobalShiftHours,
		&configs, &overrides, &scenario.CreatedAt, &scenario.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenario: %w", err)
	}
	if err := json.Unmarshal(configs, &scenario.CenterConfigs); err != nil {
		return nil, fmt.Errorf("failed to decode center configs: %w", err)
	}
	if err := json.Unmarshal(overrides, &scenario.Overrides); err != nil {
		return nil, fmt.Errorf("failed to decode overrides: %w", err)
	}
	return &scenario, nil
}

func wrapSaveError(err error, name string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%w: %q", repositories.ErrDuplicateName, name)
	}
	return fmt.Errorf("failed to save scenario: %w", err)
}

func orEmptyConfigs(m map[entities.CenterID]entities.CenterConfig) map[entities.CenterID]entities.CenterConfig {
	if m == nil {
		return map[entities.CenterID]entities.CenterConfig{}
	}
	return m
}

func orEmptyOverrides(o []entities.Override) []entities.Override {
	if o == nil {
		return []entities.Override{}
	}
	return o
}
