package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"gas-storage-valuation/internal/model"
)

// Month codes used by CME for natural gas futures contracts.
var monthCodes = [13]string{"", "F", "G", "H", "J", "K", "M", "N", "Q", "U", "V", "X", "Z"}

var monthNames = [13]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ContinuousSymbol is the front-month continuous contract used for the
// historical series.
const ContinuousSymbol = "NG=F"

// maxConcurrentFetches bounds the number of in-flight contract requests
// when assembling a forward curve.
const maxConcurrentFetches = 4

// QuoteClient fetches natural gas futures quotes from a Yahoo-style chart
// endpoint. If baseURL is empty it defaults to the public query host.
type QuoteClient struct {
	BaseURL string
	Client  *http.Client
}

func NewQuoteClient(baseURL string) *QuoteClient {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &QuoteClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// QuoteError represents an error from the quote API.
type QuoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *QuoteError) Error() string {
	return e.Message
}

// FetchForwardCurve fetches one quote per future delivery month, starting
// from the current month, and returns them in chronological order.
// Contracts are fetched concurrently; months with no quote are skipped,
// matching the behavior of the upstream curve builders.
func (c *QuoteClient) FetchForwardCurve(ctx context.Context, numMonths int) ([]model.ContractQuote, error) {
	if numMonths <= 0 {
		numMonths = 24
	}

	if cache := GetCache(); cache != nil {
		key := CurveCacheKey(numMonths)
		if cached, found := cache.GetCurve(key); found {
			log.Printf("[QuoteAPI] Cache hit: forward curve with %d contracts (months=%d)", len(cached), numMonths)
			return cached, nil
		}
	}

	start := firstOfCurrentMonth()
	results := make([]*model.ContractQuote, numMonths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i := 0; i < numMonths; i++ {
		i := i
		g.Go(func() error {
			delivery := start.AddDate(0, i, 0)
			q, err := c.fetchContract(gctx, delivery)
			if err != nil {
				// A missing contract quote is not fatal to the curve, but
				// API-level failures (auth, rate limit) are.
				var qe *QuoteError
				if errors.As(err, &qe) && qe.StatusCode >= 400 && qe.StatusCode != http.StatusNotFound {
					return err
				}
				log.Printf("[QuoteAPI] No quote for %s %d: %v", monthNames[delivery.Month()], delivery.Year(), err)
				return nil
			}
			results[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quotes := make([]model.ContractQuote, 0, numMonths)
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	log.Printf("[QuoteAPI] Forward curve assembled: %d of %d contracts quoted", len(quotes), numMonths)

	if cache := GetCache(); cache != nil {
		cache.SetCurve(CurveCacheKey(numMonths), quotes)
	}
	return quotes, nil
}

// FetchHistorical fetches the daily OHLCV series for the continuous
// contract covering roughly the last `days` days.
func (c *QuoteClient) FetchHistorical(ctx context.Context, days int) ([]model.DailyBar, error) {
	if days <= 0 {
		days = 365
	}

	if cache := GetCache(); cache != nil {
		key := HistoricalCacheKey(ContinuousSymbol, days)
		if cached, found := cache.GetBars(key); found {
			log.Printf("[QuoteAPI] Cache hit: historical series with %d bars (days=%d)", len(cached), days)
			return cached, nil
		}
	}

	chart, err := c.fetchChart(ctx, ContinuousSymbol, fmt.Sprintf("%dd", days))
	if err != nil {
		return nil, err
	}

	bars := chartToBars(chart)
	log.Printf("[QuoteAPI] Historical series: %d bars (symbol=%s, days=%d)", len(bars), ContinuousSymbol, days)

	if cache := GetCache(); cache != nil {
		cache.SetBars(HistoricalCacheKey(ContinuousSymbol, days), bars)
	}
	return bars, nil
}

// ContractSymbol builds the quote symbol for a delivery month,
// e.g. January 2026 -> "NGF26.NYM".
func ContractSymbol(year int, month time.Month) string {
	return fmt.Sprintf("NG%s%02d.NYM", monthCodes[month], year%100)
}

func (c *QuoteClient) fetchContract(ctx context.Context, delivery time.Time) (*model.ContractQuote, error) {
	month := delivery.Month()
	year := delivery.Year()
	symbol := ContractSymbol(year, month)

	chart, err := c.fetchChart(ctx, symbol, "5d")
	if err != nil {
		return nil, err
	}

	bars := chartToBars(chart)
	if len(bars) == 0 {
		return nil, fmt.Errorf("no recent bars for %s", symbol)
	}
	last := bars[len(bars)-1]

	return &model.ContractQuote{
		Contract:   fmt.Sprintf("%s %d", monthNames[month], year),
		Symbol:     symbol,
		CMECode:    fmt.Sprintf("NG%s%02d", monthCodes[month], year%100),
		Month:      int(month),
		Year:       year,
		Price:      last.Close,
		Open:       last.Open,
		High:       last.High,
		Low:        last.Low,
		Volume:     last.Volume,
		LastUpdate: last.Date,
	}, nil
}

// chartResponse is the subset of the chart endpoint payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				// Pointer elements: the source reports holidays and other
				// no-trade days as JSON nulls, which must not be mistaken
				// for a zero price.
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *QuoteClient) fetchChart(ctx context.Context, symbol, window string) (*chartResponse, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", c.BaseURL, symbol, window)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gas-storage-valuation/1.0")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[QuoteAPI] Request failed: %v (symbol=%s, duration=%v)", err, symbol, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusNotFound:
		return nil, &QuoteError{
			StatusCode: resp.StatusCode,
			Code:       "CONTRACT_NOT_FOUND",
			Message:    fmt.Sprintf("no such contract: %s", symbol),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		log.Printf("[QuoteAPI] Error: 429 Rate Limit Exceeded - Retry after: %s (symbol=%s)", retryAfter, symbol)
		return nil, &QuoteError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
		}
	default:
		log.Printf("[QuoteAPI] Error: %d %s (symbol=%s)", resp.StatusCode, resp.Status, symbol)
		return nil, &QuoteError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, &QuoteError{
			StatusCode: resp.StatusCode,
			Code:       chart.Chart.Error.Code,
			Message:    chart.Chart.Error.Description,
		}
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}
	return &chart, nil
}

// chartToBars flattens a chart payload into daily bars, skipping days with
// no close (holidays come through as nulls).
func chartToBars(chart *chartResponse) []model.DailyBar {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]model.DailyBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := model.DailyBar{
			Date:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Close: round4(*quote.Close[i]),
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = round4(*quote.Open[i])
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = round4(*quote.High[i])
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = round4(*quote.Low[i])
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func firstOfCurrentMonth() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
