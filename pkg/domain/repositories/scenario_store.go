package repositories

import (
	"context"
	"errors"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// ErrNotFound is returned when a scenario id does not exist in the store.
var ErrNotFound = errors.New("scenario not found")

// ErrDuplicateName is returned when saving a scenario whose name is already
// taken by a different scenario.
var ErrDuplicateName = errors.New("scenario name already exists")

// ScenarioStore persists scenarios and their append-only history logs.
// Implementations must serialize reads consistently with writes
// (last-writer-wins on overwrite, no partial-write visibility).
type ScenarioStore interface {
	// Get returns the scenario with the given id, or ErrNotFound
	Get(ctx context.Context, id string) (*entities.Scenario, error)

	// List returns summaries of all stored scenarios
	List(ctx context.Context) ([]entities.ScenarioSummary, error)

	// Save persists the scenario. An empty id means create: the store
	// assigns an id. A non-empty id means full replace of the stored
	// scenario, or ErrNotFound if it does not exist.
	Save(ctx context.Context, scenario *entities.Scenario) (*entities.Scenario, error)

	// Delete removes the scenario and its history, or returns ErrNotFound
	Delete(ctx context.Context, id string) error

	// AppendHistory appends an immutable snapshot to the scenario's log
	AppendHistory(ctx context.Context, id string, snapshot entities.HistorySnapshot) error

	// GetHistory returns the scenario's snapshots, newest first
	GetHistory(ctx context.Context, id string) ([]entities.HistorySnapshot, error)
}
