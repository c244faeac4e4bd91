package entities

// EffectiveRow is a fully resolved production record: base values after the
// global default, center-config and row-override layers have been applied.
// SourceCenter keeps the pre-reassignment center so rows moved to another
// center can still be correlated across simulation results.
type EffectiveRow struct {
	Article         ArticleID `json:"article_id"`
	SourceCenter    CenterID  `json:"source_center_id"`
	Center          CenterID  `json:"center_id"`
	AnnualVolume    float64   `json:"annual_volume"`
	OEE             float64   `json:"oee"`
	PiecesPerMinute float64   `json:"pieces_per_minute"`
	ShiftHours      int       `json:"shift_hours"`
	SetupHours      float64   `json:"setup_hours"`
	PersonnelRatio  float64   `json:"personnel_ratio"`
}

// Key returns the correlation key (article, source center). It is stable
// under reassignment.
func (r EffectiveRow) Key() RowKey {
	return RowKey{Article: r.Article, Center: r.SourceCenter}
}

// Reassigned reports whether the row was moved to a different center.
func (r EffectiveRow) Reassigned() bool {
	return r.Center != r.SourceCenter
}
