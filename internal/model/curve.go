package model

// ContractQuote is one raw forward-contract quote as received from the
// price source, e.g.:
//
//	{
//	  "contract": "Jan 2026",
//	  "symbol": "NGF26.NYM",
//	  "cmeCode": "NGF26",
//	  "month": 1,
//	  "year": 2026,
//	  "price": 3.42,
//	  ...
//	}
type ContractQuote struct {
	Contract string `json:"contract"`
	Symbol   string `json:"symbol,omitempty"`
	CMECode  string `json:"cmeCode,omitempty"`

	// Month (1..12) and Year identify the delivery month when the source
	// provides them; the normalizer falls back to parsing Contract.
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`

	// Prices in currency per unit volume.
	Price float64 `json:"price"`
	Open  float64 `json:"open,omitempty"`
	High  float64 `json:"high,omitempty"`
	Low   float64 `json:"low,omitempty"`

	Volume     int64  `json:"volume,omitempty"`
	LastUpdate string `json:"lastUpdate,omitempty"`
}

// ForwardPricePoint is one priced period of the normalized forward curve.
// Periods are chronologically ordered; the slice index is the only temporal
// relation the valuation engine uses.
type ForwardPricePoint struct {
	// Label is a display identifier ("Jan 2026"); not used in computation.
	Label string `json:"label"`

	// Price is the forward price for the period.
	Price float64 `json:"price"`

	// PeriodLengthDays scales daily rate limits into a period volume cap.
	PeriodLengthDays int `json:"period_length_days"`
}

// DailyBar is one row of the historical OHLCV series for the continuous
// contract. The engine never consumes these; they exist for charting.
type DailyBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}
