package memory

import (
	"context"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
)

// BaseSource serves an in-memory copy of the base dataset
type BaseSource struct {
	rows []entities.BaseRow
}

// NewBaseSource creates a base data source over the given rows
func NewBaseSource(rows []entities.BaseRow) *BaseSource {
	return &BaseSource{rows: rows}
}

// Verify interface compliance
var _ repositories.BaseDataSource = (*BaseSource)(nil)

// Load returns a copy of the base rows so callers can never mutate the
// dataset under a concurrent evaluation.
func (s *BaseSource) Load(ctx context.Context) ([]entities.BaseRow, error) {
	out := make([]entities.BaseRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
