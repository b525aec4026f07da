package data

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartPayload(closes ...float64) string {
	var sb strings.Builder
	sb.WriteString(`{"chart":{"result":[{"timestamp":[`)
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%d", base.AddDate(0, 0, i).Unix())
	}
	sb.WriteString(`],"indicators":{"quote":[{"open":[`)
	writeFloats(&sb, closes)
	sb.WriteString(`],"high":[`)
	writeFloats(&sb, closes)
	sb.WriteString(`],"low":[`)
	writeFloats(&sb, closes)
	sb.WriteString(`],"close":[`)
	writeFloats(&sb, closes)
	sb.WriteString(`],"volume":[`)
	for i := range closes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("1000")
	}
	sb.WriteString(`]}]}}],"error":null}}`)
	return sb.String()
}

// writeFloats renders the series as a JSON array; NaN marks a day the
// source reports as null.
func writeFloats(sb *strings.Builder, xs []float64) {
	for i, x := range xs {
		if i > 0 {
			sb.WriteString(",")
		}
		if math.IsNaN(x) {
			sb.WriteString("null")
			continue
		}
		fmt.Fprintf(sb, "%g", x)
	}
}

func TestContractSymbol(t *testing.T) {
	assert.Equal(t, "NGF26.NYM", ContractSymbol(2026, time.January))
	assert.Equal(t, "NGZ26.NYM", ContractSymbol(2026, time.December))
	assert.Equal(t, "NGU30.NYM", ContractSymbol(2030, time.September))
}

func TestFetchForwardCurve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload(3.05, 3.10))
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL)
	quotes, err := client.FetchForwardCurve(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i, q := range quotes {
		delivery := start.AddDate(0, i, 0)
		assert.Equal(t, ContractSymbol(delivery.Year(), delivery.Month()), q.Symbol)
		assert.Equal(t, int(delivery.Month()), q.Month)
		assert.Equal(t, delivery.Year(), q.Year)
		// The quote price is the last daily close.
		assert.Equal(t, 3.10, q.Price)
	}
}

func TestFetchForwardCurveSkipsMissingContracts(t *testing.T) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	second := start.AddDate(0, 1, 0)
	missing := ContractSymbol(second.Year(), second.Month())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, missing) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, chartPayload(2.95))
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL)
	quotes, err := client.FetchForwardCurve(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.NotEqual(t, missing, q.Symbol)
	}
}

func TestFetchForwardCurveFailsOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL)
	_, err := client.FetchForwardCurve(context.Background(), 2)
	require.Error(t, err)

	var qe *QuoteError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, http.StatusInternalServerError, qe.StatusCode)
	assert.Equal(t, "API_ERROR", qe.Code)
}

func TestFetchHistorical(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ContinuousSymbol)
		assert.Equal(t, "30d", r.URL.Query().Get("range"))
		// Middle day has no close (holiday) and must be dropped.
		fmt.Fprint(w, chartPayload(3.0512, math.NaN(), 3.1))
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL)
	bars, err := client.FetchHistorical(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, "2026-01-05", bars[0].Date)
	assert.Equal(t, 3.0512, bars[0].Close)
	assert.Equal(t, int64(1000), bars[0].Volume)
	assert.Equal(t, "2026-01-07", bars[1].Date)
}

func TestFetchHistoricalKeepsZeroClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A zero price is a real quote, only nulls mark missing days.
		fmt.Fprint(w, chartPayload(0, 3.1))
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL)
	bars, err := client.FetchHistorical(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 0.0, bars[0].Close)
	assert.Equal(t, 3.1, bars[1].Close)
}

func TestFetchHistoricalRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL)
	_, err := client.FetchHistorical(context.Background(), 365)
	require.Error(t, err)

	var qe *QuoteError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, http.StatusTooManyRequests, qe.StatusCode)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", qe.Code)
}
