package entities

// Override is a sparse row-level patch keyed by (article, original center).
// Nil fields inherit the center-config or base value. At most one Override
// per key takes effect in a resolution pass; a later entry for the same key
// replaces an earlier one.
type Override struct {
	Article         ArticleID `json:"article_id"`
	Center          CenterID  `json:"center_id"`
	OEE             *float64  `json:"oee,omitempty"`
	PiecesPerMinute *float64  `json:"pieces_per_minute,omitempty"`
	AnnualVolume    *float64  `json:"annual_volume,omitempty"`
	NewCenter       *CenterID `json:"new_center_id,omitempty"`
	ShiftHours      *int      `json:"shift_hours,omitempty"`
	SetupHours      *float64  `json:"setup_hours,omitempty"`
	PersonnelRatio  *float64  `json:"personnel_ratio,omitempty"`
}

// Key returns the (article, original center) key the override targets.
func (o Override) Key() RowKey {
	return RowKey{Article: o.Article, Center: o.Center}
}

// IsEmpty reports whether the override patches nothing.
func (o Override) IsEmpty() bool {
	return o.OEE == nil && o.PiecesPerMinute == nil && o.AnnualVolume == nil &&
		o.NewCenter == nil && o.ShiftHours == nil && o.SetupHours == nil &&
		o.PersonnelRatio == nil
}

// Validate checks the override payload. Set fields must satisfy the same
// constraints as the base row fields they patch.
func (o Override) Validate() error {
	if string(o.Article) == "" {
		return NewValidationError("override.article_id", "cannot be empty")
	}
	if string(o.Center) == "" {
		return NewValidationError("override.center_id", "cannot be empty")
	}
	if o.OEE != nil && (*o.OEE < 0 || *o.OEE > 1) {
		return NewValidationError("override.oee", "must be in [0,1], got %g", *o.OEE)
	}
	if o.PiecesPerMinute != nil && *o.PiecesPerMinute <= 0 {
		return NewValidationError("override.pieces_per_minute", "must be positive, got %g", *o.PiecesPerMinute)
	}
	if o.ShiftHours != nil && !IsValidShiftHours(*o.ShiftHours) {
		return NewValidationError("override.shift_hours", "must be one of %v, got %d", ValidShiftHours, *o.ShiftHours)
	}
	if o.NewCenter != nil && string(*o.NewCenter) == "" {
		return NewValidationError("override.new_center_id", "cannot be empty when set")
	}
	return nil
}

// Clone returns a deep copy of the override.
func (o Override) Clone() Override {
	c := Override{Article: o.Article, Center: o.Center}
	c.OEE = clonePtr(o.OEE)
	c.PiecesPerMinute = clonePtr(o.PiecesPerMinute)
	c.AnnualVolume = clonePtr(o.AnnualVolume)
	c.NewCenter = clonePtr(o.NewCenter)
	c.ShiftHours = clonePtr(o.ShiftHours)
	c.SetupHours = clonePtr(o.SetupHours)
	c.PersonnelRatio = clonePtr(o.PersonnelRatio)
	return c
}

// CloneOverrides deep-copies a slice of overrides.
func CloneOverrides(overrides []Override) []Override {
	if overrides == nil {
		return nil
	}
	out := make([]Override, len(overrides))
	for i, o := range overrides {
		out[i] = o.Clone()
	}
	return out
}

// CenterConfig is a center-scoped patch applied to every row currently
// assigned to the center, before row-level overrides.
type CenterConfig struct {
	ShiftHours     *int     `json:"shift_hours,omitempty"`
	PersonnelRatio *float64 `json:"personnel_ratio,omitempty"`
}

// Validate checks the center config payload shape.
func (c CenterConfig) Validate() error {
	if c.ShiftHours != nil && !IsValidShiftHours(*c.ShiftHours) {
		return NewValidationError("center_config.shift_hours", "must be one of %v, got %d", ValidShiftHours, *c.ShiftHours)
	}
	if c.PersonnelRatio != nil && *c.PersonnelRatio < 0 {
		return NewValidationError("center_config.personnel_ratio", "cannot be negative, got %g", *c.PersonnelRatio)
	}
	return nil
}

// Clone returns a deep copy of the config.
func (c CenterConfig) Clone() CenterConfig {
	return CenterConfig{
		ShiftHours:     clonePtr(c.ShiftHours),
		PersonnelRatio: clonePtr(c.PersonnelRatio),
	}
}

// CloneCenterConfigs deep-copies a center-config map.
func CloneCenterConfigs(configs map[CenterID]CenterConfig) map[CenterID]CenterConfig {
	if configs == nil {
		return nil
	}
	out := make(map[CenterID]CenterConfig, len(configs))
	for id, cfg := range configs {
		out[id] = cfg.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
