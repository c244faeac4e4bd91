package entities

import "fmt"

// ArticleID represents a unique article (part) identifier
type ArticleID string

// CenterID represents a unique work-center identifier
type CenterID string

// RowKey identifies a production record by article and the center it was
// originally assigned to. Reassignment overrides never change a row's key.
type RowKey struct {
	Article ArticleID
	Center  CenterID
}

func (k RowKey) String() string {
	return fmt.Sprintf("%s@%s", k.Article, k.Center)
}

// ValidShiftHours lists the supported hours of operation per working day.
var ValidShiftHours = []int{8, 16, 24}

// IsValidShiftHours reports whether h is a supported shift-hours value.
func IsValidShiftHours(h int) bool {
	for _, v := range ValidShiftHours {
		if h == v {
			return true
		}
	}
	return false
}

// BaseRow is one immutable (article, work-center) production record from the
// master dataset.
type BaseRow struct {
	Article         ArticleID `json:"article_id"`
	Center          CenterID  `json:"center_id"`
	AnnualVolume    float64   `json:"annual_volume"`
	OEE             float64   `json:"oee"`
	PiecesPerMinute float64   `json:"pieces_per_minute"`
	ShiftHours      int       `json:"shift_hours"`
	SetupHours      float64   `json:"setup_hours"`
	PersonnelRatio  float64   `json:"personnel_ratio"`
}

// Key returns the unique (article, center) key of the row.
func (r BaseRow) Key() RowKey {
	return RowKey{Article: r.Article, Center: r.Center}
}

// NewBaseRow creates a validated BaseRow
func NewBaseRow(
	article ArticleID,
	center CenterID,
	annualVolume float64,
	oee float64,
	piecesPerMinute float64,
	shiftHours int,
	setupHours float64,
	personnelRatio float64,
) (*BaseRow, error) {
	if string(article) == "" {
		return nil, fmt.Errorf("article id cannot be empty")
	}
	if string(center) == "" {
		return nil, fmt.Errorf("center id cannot be empty")
	}
	if oee < 0 || oee > 1 {
		return nil, fmt.Errorf("oee must be in [0,1], got %g", oee)
	}
	if piecesPerMinute <= 0 {
		return nil, fmt.Errorf("pieces per minute must be positive, got %g", piecesPerMinute)
	}
	if !IsValidShiftHours(shiftHours) {
		return nil, fmt.Errorf("shift hours must be one of %v, got %d", ValidShiftHours, shiftHours)
	}
	if setupHours < 0 {
		return nil, fmt.Errorf("setup hours cannot be negative, got %g", setupHours)
	}
	if personnelRatio < 0 {
		return nil, fmt.Errorf("personnel ratio cannot be negative, got %g", personnelRatio)
	}

	return &BaseRow{
		Article:         article,
		Center:          center,
		AnnualVolume:    annualVolume,
		OEE:             oee,
		PiecesPerMinute: piecesPerMinute,
		ShiftHours:      shiftHours,
		SetupHours:      setupHours,
		PersonnelRatio:  personnelRatio,
	}, nil
}
