package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
)

// ScenarioStore provides in-memory scenario storage. All operations take the
// store lock, so reads are always consistent with the latest completed write.
type ScenarioStore struct {
	mu        sync.RWMutex
	scenarios map[string]*entities.Scenario
	history   map[string][]entities.HistorySnapshot
	now       func() time.Time
}

// NewScenarioStore creates an empty in-memory scenario store
func NewScenarioStore() *ScenarioStore {
	return &ScenarioStore{
		scenarios: make(map[string]*entities.Scenario),
		history:   make(map[string][]entities.HistorySnapshot),
		now:       time.Now,
	}
}

// Verify interface compliance
var _ repositories.ScenarioStore = (*ScenarioStore)(nil)

// Get returns a deep copy of the stored scenario
func (s *ScenarioStore) Get(ctx context.Context, id string) (*entities.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scenario, ok := s.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}
	return scenario.Clone(), nil
}

// List returns summaries of all scenarios, most recently updated first
func (s *ScenarioStore) List(ctx context.Context) ([]entities.ScenarioSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]entities.ScenarioSummary, 0, len(s.scenarios))
	for _, scenario := range s.scenarios {
		summaries = append(summaries, scenario.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// Save persists the scenario: create when the id is empty, full replace
// otherwise. Names must be unique across scenarios.
func (s *ScenarioStore) Save(ctx context.Context, scenario *entities.Scenario) (*entities.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.scenarios {
		if existing.Name == scenario.Name && id != scenario.ID {
			return nil, fmt.Errorf("%w: %q", repositories.ErrDuplicateName, scenario.Name)
		}
	}

	stored := scenario.Clone()
	now := s.now()

	if stored.ID == "" {
		stored.ID = uuid.New().String()
		stored.CreatedAt = now
	} else {
		existing, ok := s.scenarios[stored.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, stored.ID)
		}
		stored.CreatedAt = existing.CreatedAt
	}
	stored.UpdatedAt = now

	s.scenarios[stored.ID] = stored
	return stored.Clone(), nil
}

// Delete removes the scenario and its history log
func (s *ScenarioStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenarios[id]; !ok {
		return fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}
	delete(s.scenarios, id)
	delete(s.history, id)
	return nil
}

// AppendHistory appends a snapshot to the scenario's log
func (s *ScenarioStore) AppendHistory(ctx context.Context, id string, snapshot entities.HistorySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenarios[id]; !ok {
		return fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}
	s.history[id] = append(s.history[id], snapshot)
	return nil
}

// GetHistory returns the scenario's snapshots, newest first
func (s *ScenarioStore) GetHistory(ctx context.Context, id string) ([]entities.HistorySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.scenarios[id]; !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, id)
	}

	log := s.history[id]
	out := make([]entities.HistorySnapshot, len(log))
	for i, snapshot := range log {
		out[len(log)-1-i] = snapshot
	}
	return out, nil
}
