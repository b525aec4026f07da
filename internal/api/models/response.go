package models

// ValuationResponse represents the response from a valuation run.
// Volumes are rounded to whole units and currency to 2 decimal places at
// this boundary; the engine keeps full precision internally.
type ValuationResponse struct {
	Status   string           `json:"status"`
	Summary  ValuationSummary `json:"summary"`
	Schedule []ScheduleRow    `json:"schedule"`
	Trades   []TradeRow       `json:"trades,omitempty"`
}

// ValuationSummary contains aggregated results.
type ValuationSummary struct {
	TotalValue      float64 `json:"total_value"`
	TotalInjection  float64 `json:"total_injection"`
	TotalWithdrawal float64 `json:"total_withdrawal"`
	PeakInventory   float64 `json:"peak_inventory"`
	FinalInventory  float64 `json:"final_inventory"`
	Periods         int     `json:"periods"`
	NumTrades       int     `json:"num_trades"`
}

// ScheduleRow represents one period in the valuation schedule.
type ScheduleRow struct {
	Index           int     `json:"index"`
	Label           string  `json:"label"`
	Price           float64 `json:"price"`
	Action          string  `json:"action"` // "INJECTING", "WITHDRAWING", "IDLE"
	Injection       float64 `json:"injection"`
	Withdrawal      float64 `json:"withdrawal"`
	NetFlow         float64 `json:"net_flow"`
	EndingInventory float64 `json:"ending_inventory"`
}

// TradeRow represents one committed inject/withdraw pair.
type TradeRow struct {
	InjectPeriod   int     `json:"inject_period"`
	WithdrawPeriod int     `json:"withdraw_period"`
	InjectLabel    string  `json:"inject_label"`
	WithdrawLabel  string  `json:"withdraw_label"`
	Volume         float64 `json:"volume"`
	Spread         float64 `json:"spread"`
	Profit         float64 `json:"profit"`
}

// FacilityInfo represents information about a facility preset.
type FacilityInfo struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	File  string        `json:"file"`
	Specs FacilitySpecs `json:"specs"`
}

// FacilitySpecs contains headline facility specifications.
type FacilitySpecs struct {
	Capacity          float64 `json:"capacity"`
	MaxInjectionRate  float64 `json:"max_injection_rate"`
	MaxWithdrawalRate float64 `json:"max_withdrawal_rate"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
