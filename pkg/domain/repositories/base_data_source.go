package repositories

import (
	"context"

	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// BaseDataSource loads the immutable master dataset. The dataset is small
// enough to hold in memory and is assumed stable for the duration of a
// request.
type BaseDataSource interface {
	// Load returns all base production records
	Load(ctx context.Context) ([]entities.BaseRow, error)
}
