package models

// ValuationRequest represents the request body for running a valuation.
// Exactly one of Curve (inline points) or DataSource (live fetch) must be
// provided.
type ValuationRequest struct {
	Curve      []CurvePoint      `json:"curve,omitempty"`
	DataSource *DataSourceConfig `json:"data_source,omitempty"`
	Config     ValuationConfig   `json:"config" binding:"required"`
	Options    ValuationOptions  `json:"options,omitempty"`
}

// CurvePoint is one inline forward-curve entry. Month/Year are optional;
// when absent the label is parsed, and when that fails a default period
// length is assumed.
type CurvePoint struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
	Month int     `json:"month,omitempty"`
	Year  int     `json:"year,omitempty"`

	// PeriodLengthDays overrides the derived day count when > 0.
	PeriodLengthDays int `json:"period_length_days,omitempty"`
}

// DataSourceConfig defines how to fetch market data.
type DataSourceConfig struct {
	Type   string `json:"type"`             // "quotes" (default)
	Months int    `json:"months,omitempty"` // default: 24
}

// ValuationConfig contains the facility configuration.
type ValuationConfig struct {
	FacilityFile string         `json:"facility_file,omitempty"`
	Facility     FacilityConfig `json:"facility,omitempty"`
}

// FacilityConfig defines facility parameters.
type FacilityConfig struct {
	Name              string  `json:"name,omitempty"`
	Capacity          float64 `json:"capacity"`
	MaxInjectionRate  float64 `json:"max_injection_rate"`
	MaxWithdrawalRate float64 `json:"max_withdrawal_rate"`
	InjectionCost     float64 `json:"injection_cost,omitempty"`
	WithdrawalCost    float64 `json:"withdrawal_cost,omitempty"`
	InitialInventory  float64 `json:"initial_inventory,omitempty"`
	DiscountRate      float64 `json:"discount_rate,omitempty"`
}

// ValuationOptions contains optional valuation parameters.
type ValuationOptions struct {
	IncludeTrades bool `json:"include_trades,omitempty"` // default: false
}
