package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/application/services/simulation"
	"github.com/rpk-planning/capsim/pkg/domain/entities"
	testhelpers "github.com/rpk-planning/capsim/pkg/infrastructure/testing"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source, store := testhelpers.BuildPlantTestData()
	evaluator := simulation.NewEvaluator(source, store)
	scenarios := simulation.NewScenarioService(store)
	return NewServer(evaluator, scenarios, nil).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSimulateBase(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/simulate/base", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Detail, 4)
	require.Len(t, result.Summary, 3)
	require.Equal(t, entities.DefaultWorkingDays, result.Meta.WorkingDays)
	require.InDelta(t, 0.026042, result.Detail[0].Saturation, 1e-5)
}

func TestSimulateBase_QueryParams(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/simulate/base?working_days=119&shift_hours=8", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 119, result.Meta.WorkingDays)
	require.Equal(t, 8, result.Meta.GlobalShiftHours)
	require.Equal(t, 8, result.Detail[0].ShiftHours)
}

func TestSimulateBase_BadQueryParam(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/simulate/base?working_days=lots", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/simulate/base?shift_hours=12", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulateUnknownScenario(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/simulate/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreview(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"overrides": []map[string]any{
			{"article_id": "A1", "center_id": "C1", "oee": 0.4},
		},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/simulate/preview", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 0.4, result.Detail[0].OEE)
	require.Len(t, result.Meta.AppliedOverrides, 1)

	// Preview never touches stored scenarios.
	rec = doJSON(t, router, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestScenarioLifecycle(t *testing.T) {
	router := newTestRouter(t)

	create := map[string]any{
		"name":        "double shift",
		"description": "what if C3 runs around the clock",
		"overrides": []map[string]any{
			{"article_id": "A4", "center_id": "C3", "shift_hours": 24},
		},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/scenarios", create)
	require.Equal(t, http.StatusCreated, rec.Code)

	var scenario entities.Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scenario))
	require.NotEmpty(t, scenario.ID)
	require.Equal(t, entities.DefaultWorkingDays, scenario.WorkingDays)

	// The stored overrides apply when simulating by id.
	rec = doJSON(t, router, http.MethodGet, "/api/simulate/"+scenario.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result dto.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	for _, row := range result.Detail {
		if row.Article == "A4" {
			require.Equal(t, 24, row.ShiftHours)
		}
	}

	// Duplicate names are rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/scenarios", create)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Rename, then replace the override set.
	rec = doJSON(t, router, http.MethodPut, "/api/scenarios/"+scenario.ID,
		map[string]any{"name": "triple shift", "description": ""})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/scenarios/%s/full", scenario.ID), map[string]any{
		"name": "triple shift",
		"overrides": []map[string]any{
			{"article_id": "A4", "center_id": "C3", "oee": 0.7},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// History holds the create and replace snapshots, newest first.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/scenarios/%s/history", scenario.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []entities.HistorySnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 2)
	require.Equal(t, "triple shift", history[0].Name)
	require.Equal(t, "double shift", history[1].Name)

	rec = doJSON(t, router, http.MethodDelete, "/api/scenarios/"+scenario.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/simulate/"+scenario.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateScenario_Invalid(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios", map[string]any{
		"name": "bad",
		"overrides": []map[string]any{
			{"article_id": "A1", "center_id": "C1", "oee": 1.5},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompare(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"a": map[string]any{"scenario_id": "base"},
		"b": map[string]any{
			"overrides": []map[string]any{
				{"article_id": "A1", "center_id": "C1", "shift_hours": 8},
			},
		},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.TopChanges)
	require.Equal(t, entities.CenterID("C1"), result.TopChanges[0].Center)
	require.Greater(t, result.NetImpact.AvgSaturationDeltaPct, 0.0)
	require.Equal(t, 0.0, result.NetImpact.TotalHoursDelta)
}

func TestCompare_SelfIsZero(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"a": map[string]any{"scenario_id": "base"},
		"b": map[string]any{"scenario_id": "base"},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Empty(t, result.TopChanges)
	require.Equal(t, 0.0, result.NetImpact.AvgSaturationDeltaPct)
	require.Equal(t, 0.0, result.NetImpact.TotalHoursDelta)
}
