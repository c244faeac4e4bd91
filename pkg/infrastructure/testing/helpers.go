package testing

import (
	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/infrastructure/repositories/memory"
)

// BuildPlantTestData builds a small multi-center plant dataset used across
// the test suites. Center C1 carries the reference article A1 (47600 pcs at
// 10 ppm and 0.8 OEE on a 16h shift), C2 and C3 carry the rest.
func BuildPlantTestData() (*memory.BaseSource, *memory.ScenarioStore) {
	rows := []entities.BaseRow{
		{
			Article:         "A1",
			Center:          "C1",
			AnnualVolume:    47600,
			OEE:             0.8,
			PiecesPerMinute: 10,
			ShiftHours:      16,
			SetupHours:      0,
			PersonnelRatio:  1,
		},
		{
			Article:         "A2",
			Center:          "C1",
			AnnualVolume:    12000,
			OEE:             0.75,
			PiecesPerMinute: 4,
			ShiftHours:      16,
			SetupHours:      24,
			PersonnelRatio:  1.5,
		},
		{
			Article:         "A3",
			Center:          "C2",
			AnnualVolume:    90000,
			OEE:             0.9,
			PiecesPerMinute: 22,
			ShiftHours:      24,
			SetupHours:      8,
			PersonnelRatio:  0.5,
		},
		{
			Article:         "A4",
			Center:          "C3",
			AnnualVolume:    3100,
			OEE:             0.6,
			PiecesPerMinute: 1.2,
			ShiftHours:      8,
			SetupHours:      40,
			PersonnelRatio:  2,
		},
	}

	return memory.NewBaseSource(rows), memory.NewScenarioStore()
}

// BuildSimpleTestData creates the minimal single-row dataset for basic tests
func BuildSimpleTestData() (*memory.BaseSource, *memory.ScenarioStore) {
	rows := []entities.BaseRow{
		{
			Article:         "A1",
			Center:          "C1",
			AnnualVolume:    47600,
			OEE:             0.8,
			PiecesPerMinute: 10,
			ShiftHours:      16,
			SetupHours:      0,
			PersonnelRatio:  1,
		},
	}
	return memory.NewBaseSource(rows), memory.NewScenarioStore()
}

// Float returns a pointer to v, for sparse override fields
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for sparse override fields
func Int(v int) *int { return &v }

// Center returns a pointer to a CenterID, for reassignment overrides
func Center(id string) *entities.CenterID {
	c := entities.CenterID(id)
	return &c
}
