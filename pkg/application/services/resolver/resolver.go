// Package resolver merges the base dataset with center-level and row-level
// override layers into effective rows.
//
// Layering is a strict precedence pipeline: global defaults, then the
// center config of the row's current center, then the row override matched
// by (article, original center), with center reassignment applied last.
// Later layers win per field; unset fields never overwrite. The pipeline is
// pure: resolving the same inputs twice yields identical rows.
package resolver

import (
	"github.com/rpk-planning/capsim/pkg/domain/entities"
)

// Resolve produces one effective row per base row. Overrides referencing an
// (article, center) absent from the base dataset are ignored; a center
// config for a center with no rows is a no-op. When multiple overrides
// target the same key, the last one wins outright.
func Resolve(
	baseRows []entities.BaseRow,
	centerConfigs map[entities.CenterID]entities.CenterConfig,
	overrides []entities.Override,
	globalShiftHours int,
) []entities.EffectiveRow {
	// Last entry per key replaces, never accumulates with, earlier ones.
	overrideByKey := make(map[entities.RowKey]entities.Override, len(overrides))
	for _, ov := range overrides {
		overrideByKey[ov.Key()] = ov
	}

	rows := make([]entities.EffectiveRow, 0, len(baseRows))
	for _, base := range baseRows {
		rows = append(rows, resolveRow(base, centerConfigs, overrideByKey, globalShiftHours))
	}
	return rows
}

func resolveRow(
	base entities.BaseRow,
	centerConfigs map[entities.CenterID]entities.CenterConfig,
	overrideByKey map[entities.RowKey]entities.Override,
	globalShiftHours int,
) entities.EffectiveRow {
	// Stage 1: defaults. Shift hours start from the global value, every
	// other field from the base row. A missing personnel ratio means one
	// operator per line.
	row := entities.EffectiveRow{
		Article:         base.Article,
		SourceCenter:    base.Center,
		Center:          base.Center,
		AnnualVolume:    base.AnnualVolume,
		OEE:             base.OEE,
		PiecesPerMinute: base.PiecesPerMinute,
		ShiftHours:      globalShiftHours,
		SetupHours:      base.SetupHours,
		PersonnelRatio:  base.PersonnelRatio,
	}
	if row.PersonnelRatio == 0 {
		row.PersonnelRatio = 1.0
	}

	// Stage 2: center config of the row's current (pre-override) center.
	if cfg, ok := centerConfigs[row.Center]; ok {
		if cfg.ShiftHours != nil {
			row.ShiftHours = *cfg.ShiftHours
		}
		if cfg.PersonnelRatio != nil {
			row.PersonnelRatio = *cfg.PersonnelRatio
		}
	}

	// Stage 3: row override matched by (article, original center).
	ov, ok := overrideByKey[base.Key()]
	if !ok {
		return row
	}
	if ov.OEE != nil {
		row.OEE = *ov.OEE
	}
	if ov.PiecesPerMinute != nil {
		row.PiecesPerMinute = *ov.PiecesPerMinute
	}
	if ov.AnnualVolume != nil {
		row.AnnualVolume = *ov.AnnualVolume
	}
	if ov.ShiftHours != nil {
		row.ShiftHours = *ov.ShiftHours
	}
	if ov.SetupHours != nil {
		row.SetupHours = *ov.SetupHours
	}
	if ov.PersonnelRatio != nil {
		row.PersonnelRatio = *ov.PersonnelRatio
	}

	// Stage 4: reassignment last, so center configs always match against
	// the pre-override center. SourceCenter keeps the original for
	// correlation.
	if ov.NewCenter != nil {
		row.Center = *ov.NewCenter
	}
	return row
}
