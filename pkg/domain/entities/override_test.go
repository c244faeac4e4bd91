package entities

import (
	"strings"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestOverride_Validation(t *testing.T) {
	newCenter := CenterID("C2")

	testCases := []struct {
		name        string
		override    Override
		expectError string
	}{
		{"valid sparse", Override{Article: "A1", Center: "C1", OEE: floatPtr(0.9)}, ""},
		{"valid reassignment", Override{Article: "A1", Center: "C1", NewCenter: &newCenter}, ""},
		{"empty article", Override{Center: "C1"}, "override.article_id"},
		{"empty center", Override{Article: "A1"}, "override.center_id"},
		{"oee above one", Override{Article: "A1", Center: "C1", OEE: floatPtr(1.5)}, "override.oee"},
		{"negative oee", Override{Article: "A1", Center: "C1", OEE: floatPtr(-0.1)}, "override.oee"},
		{"zero ppm", Override{Article: "A1", Center: "C1", PiecesPerMinute: floatPtr(0)}, "override.pieces_per_minute"},
		{"bad shift hours", Override{Article: "A1", Center: "C1", ShiftHours: intPtr(12)}, "override.shift_hours"},
		{"empty new center", Override{Article: "A1", Center: "C1", NewCenter: new(CenterID)}, "override.new_center_id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.override.Validate()
			if tc.expectError == "" {
				if err != nil {
					t.Fatalf("Expected valid override, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tc.expectError)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestOverride_Clone_IsDeep(t *testing.T) {
	original := Override{Article: "A1", Center: "C1", OEE: floatPtr(0.9), ShiftHours: intPtr(8)}
	clone := original.Clone()

	*clone.OEE = 0.5
	*clone.ShiftHours = 24

	if *original.OEE != 0.9 {
		t.Errorf("Expected original oee to stay 0.9, got %g", *original.OEE)
	}
	if *original.ShiftHours != 8 {
		t.Errorf("Expected original shift hours to stay 8, got %d", *original.ShiftHours)
	}
}

func TestCenterConfig_Validation(t *testing.T) {
	if err := (CenterConfig{ShiftHours: intPtr(24)}).Validate(); err != nil {
		t.Fatalf("Expected valid center config, got %v", err)
	}
	if err := (CenterConfig{ShiftHours: intPtr(10)}).Validate(); err == nil {
		t.Error("Expected invalid shift hours to be rejected")
	}
	if err := (CenterConfig{PersonnelRatio: floatPtr(-1)}).Validate(); err == nil {
		t.Error("Expected negative personnel ratio to be rejected")
	}
}

func TestNewScenario_DefaultsAndValidation(t *testing.T) {
	scenario, err := NewScenario("plan-a", "", 0, 0, nil, nil)
	if err != nil {
		t.Fatalf("Expected scenario creation to succeed: %v", err)
	}
	if scenario.WorkingDays != DefaultWorkingDays {
		t.Errorf("Expected default working days %d, got %d", DefaultWorkingDays, scenario.WorkingDays)
	}
	if scenario.GlobalShiftHours != DefaultGlobalShiftHours {
		t.Errorf("Expected default shift hours %d, got %d", DefaultGlobalShiftHours, scenario.GlobalShiftHours)
	}

	if _, err := NewScenario("", "", 238, 16, nil, nil); err == nil {
		t.Error("Expected empty name to be rejected")
	}
	if _, err := NewScenario("plan-b", "", 238, 11, nil, nil); err == nil {
		t.Error("Expected invalid global shift hours to be rejected")
	}
	if _, err := NewScenario("plan-c", "", 238, 16, nil, []Override{{Article: "A1"}}); err == nil {
		t.Error("Expected invalid override to be rejected")
	}
}

func TestNewScenario_CopiesLayers(t *testing.T) {
	overrides := []Override{{Article: "A1", Center: "C1", OEE: floatPtr(0.9)}}
	scenario, err := NewScenario("plan-a", "", 238, 16, nil, overrides)
	if err != nil {
		t.Fatalf("Expected scenario creation to succeed: %v", err)
	}

	*overrides[0].OEE = 0.1
	if *scenario.Overrides[0].OEE != 0.9 {
		t.Errorf("Expected scenario override oee to stay 0.9, got %g", *scenario.Overrides[0].OEE)
	}
}

func TestHistorySnapshot_IsFrozen(t *testing.T) {
	overrides := []Override{{Article: "A1", Center: "C1", OEE: floatPtr(0.9)}}
	snapshot := NewHistorySnapshot("plan-a", overrides, time.Now())

	// Later edits to the source overrides must not leak into the snapshot.
	*overrides[0].OEE = 0.2
	overrides[0].Article = "A9"

	if snapshot.ChangesCount != 1 {
		t.Errorf("Expected changes count 1, got %d", snapshot.ChangesCount)
	}
	if snapshot.OverridesApplied[0].Article != "A1" {
		t.Errorf("Expected snapshot article A1, got %s", snapshot.OverridesApplied[0].Article)
	}
	if *snapshot.OverridesApplied[0].OEE != 0.9 {
		t.Errorf("Expected snapshot oee 0.9, got %g", *snapshot.OverridesApplied[0].OEE)
	}
}
