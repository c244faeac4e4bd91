package entities

// DetailMetric holds the derived capacity figures for one effective row.
// Saturation is a fraction and may exceed 1 when demand outruns capacity.
type DetailMetric struct {
	HoursPerUnit float64 `json:"hours_per_unit_cycle"`
	TotalHours   float64 `json:"total_hours"`
	ManHours     float64 `json:"man_hours"`
	Saturation   float64 `json:"saturation"`
	ImpactShare  float64 `json:"impact_share"`
}

// SummaryMetric aggregates the rows assigned to a single work center.
type SummaryMetric struct {
	Center        CenterID `json:"center_id"`
	TotalHours    float64  `json:"total_hours"`
	TotalManHours float64  `json:"total_man_hours"`
	Saturation    float64  `json:"saturation"`
	AnnualVolume  float64  `json:"annual_volume"`
	NumArticles   int      `json:"num_articles"`
}
