package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
	helpers "github.com/rpk-planning/capsim/pkg/infrastructure/testing"
)

func TestEvaluator_BaseScenario(t *testing.T) {
	baseSource, store := helpers.BuildPlantTestData()
	evaluator := NewEvaluator(baseSource, store)

	result, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{ScenarioID: BaseScenarioID})
	require.NoError(t, err)

	require.Len(t, result.Detail, 4)
	require.Empty(t, result.Warnings)
	require.Equal(t, entities.DefaultWorkingDays, result.Meta.WorkingDays)
	require.Equal(t, entities.DefaultGlobalShiftHours, result.Meta.GlobalShiftHours)
	require.Empty(t, result.Meta.AppliedOverrides)

	// The global default replaces every base shift-hours figure.
	for _, d := range result.Detail {
		require.Equal(t, 16, d.ShiftHours)
	}

	// The reference article lands on the expected saturation.
	require.InDelta(t, 0.0260417, result.Detail[0].Saturation, 1e-6)
}

func TestEvaluator_EmptyIDMeansBase(t *testing.T) {
	baseSource, store := helpers.BuildSimpleTestData()
	evaluator := NewEvaluator(baseSource, store)

	result, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{})
	require.NoError(t, err)
	require.Len(t, result.Detail, 1)
}

func TestEvaluator_QueryParamsWin(t *testing.T) {
	baseSource, store := helpers.BuildSimpleTestData()
	evaluator := NewEvaluator(baseSource, store)

	days := 100
	hours := 8
	result, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{
		ScenarioID:       BaseScenarioID,
		WorkingDays:      &days,
		GlobalShiftHours: &hours,
	})
	require.NoError(t, err)

	require.Equal(t, 100, result.Meta.WorkingDays)
	require.Equal(t, 8, result.Meta.GlobalShiftHours)
	require.Equal(t, 8, result.Detail[0].ShiftHours)
}

func TestEvaluator_StoredScenario(t *testing.T) {
	baseSource, store := helpers.BuildSimpleTestData()
	evaluator := NewEvaluator(baseSource, store)
	scenarios := NewScenarioService(store)

	saved, err := scenarios.Create(context.Background(), "double-demand", "", 200, 8, nil,
		[]entities.Override{{Article: "A1", Center: "C1", AnnualVolume: helpers.Float(95200)}})
	require.NoError(t, err)

	result, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{ScenarioID: saved.ID})
	require.NoError(t, err)

	// Stored evaluation defaults apply when the request carries none.
	require.Equal(t, 200, result.Meta.WorkingDays)
	require.Equal(t, 8, result.Meta.GlobalShiftHours)
	require.Equal(t, 95200.0, result.Detail[0].AnnualVolume)
	require.Len(t, result.Meta.AppliedOverrides, 1)

	// Query-time parameters win over the stored ones for this call only.
	days := 238
	result, err = evaluator.Evaluate(context.Background(), dto.EvaluationRequest{
		ScenarioID:  saved.ID,
		WorkingDays: &days,
	})
	require.NoError(t, err)
	require.Equal(t, 238, result.Meta.WorkingDays)
	require.Equal(t, 8, result.Meta.GlobalShiftHours)
}

func TestEvaluator_UnknownScenario(t *testing.T) {
	baseSource, store := helpers.BuildSimpleTestData()
	evaluator := NewEvaluator(baseSource, store)

	_, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{ScenarioID: "missing"})
	require.ErrorIs(t, err, repositories.ErrNotFound)
	require.Contains(t, err.Error(), "missing")
}

func TestEvaluator_PreviewSkipsStore(t *testing.T) {
	baseSource, store := helpers.BuildSimpleTestData()
	evaluator := NewEvaluator(baseSource, store)

	// The scenario id does not exist; a preview must not even look it up.
	result, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{
		ScenarioID: "missing",
		Overrides: []entities.Override{
			{Article: "A1", Center: "C1", OEE: helpers.Float(0.4)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0.4, result.Detail[0].OEE)
	require.Len(t, result.Meta.AppliedOverrides, 1)

	// Nothing was persisted.
	summaries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestEvaluator_ValidationAborts(t *testing.T) {
	baseSource, store := helpers.BuildSimpleTestData()
	evaluator := NewEvaluator(baseSource, store)

	badHours := 11
	_, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{
		ScenarioID:       BaseScenarioID,
		GlobalShiftHours: &badHours,
	})
	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = evaluator.Evaluate(context.Background(), dto.EvaluationRequest{
		Overrides: []entities.Override{{Article: "A1", Center: "C1", ShiftHours: helpers.Int(3)}},
	})
	require.ErrorAs(t, err, &validationErr)

	_, err = evaluator.Evaluate(context.Background(), dto.EvaluationRequest{
		CenterConfigs: map[entities.CenterID]entities.CenterConfig{
			"C1": {PersonnelRatio: helpers.Float(-2)},
		},
	})
	require.ErrorAs(t, err, &validationErr)
}

func TestEvaluator_CopiesRequestLayers(t *testing.T) {
	baseSource, store := helpers.BuildSimpleTestData()
	evaluator := NewEvaluator(baseSource, store)

	overrides := []entities.Override{{Article: "A1", Center: "C1", OEE: helpers.Float(0.5)}}
	result, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{Overrides: overrides})
	require.NoError(t, err)

	// Mutating the caller's slice after the call must not reach the
	// echoed meta.
	*overrides[0].OEE = 0.1
	require.Equal(t, 0.5, *result.Meta.AppliedOverrides[0].OEE)
}

func TestEvaluator_ConcurrentEvaluations(t *testing.T) {
	baseSource, store := helpers.BuildPlantTestData()
	evaluator := NewEvaluator(baseSource, store)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		hours := []int{8, 16, 24}[i%3]
		go func(hours int) {
			_, err := evaluator.Evaluate(context.Background(), dto.EvaluationRequest{
				ScenarioID:       BaseScenarioID,
				GlobalShiftHours: &hours,
			})
			done <- err
		}(hours)
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
