package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas-storage-valuation/internal/api/models"
)

func valuationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewValuationHandler()
	r.POST("/api/v1/valuation", h.RunValuation)
	r.POST("/api/v1/valuation/export", h.ExportValuationCSV)
	return r
}

func seasonalRequest(includeTrades bool) models.ValuationRequest {
	prices := []float64{2.50, 2.30, 2.20, 2.25, 2.35, 2.45, 2.55, 2.80, 3.20, 3.80, 4.00, 3.60}
	points := make([]models.CurvePoint, len(prices))
	for i, p := range prices {
		points[i] = models.CurvePoint{Label: "P", Price: p, PeriodLengthDays: 30}
	}
	return models.ValuationRequest{
		Curve: points,
		Config: models.ValuationConfig{
			Facility: models.FacilityConfig{
				Capacity:          1_000_000,
				MaxInjectionRate:  10_000,
				MaxWithdrawalRate: 20_000,
				InjectionCost:     0.02,
				WithdrawalCost:    0.01,
				DiscountRate:      0.05,
			},
		},
		Options: models.ValuationOptions{IncludeTrades: includeTrades},
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRunValuation(t *testing.T) {
	r := valuationRouter()
	w := postJSON(t, r, "/api/v1/valuation", seasonalRequest(true))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ValuationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 12, resp.Summary.Periods)
	assert.Greater(t, resp.Summary.TotalValue, 0.0)
	assert.Equal(t, resp.Summary.TotalInjection, resp.Summary.TotalWithdrawal)
	require.Len(t, resp.Schedule, 12)
	assert.NotEmpty(t, resp.Trades)

	// Volumes come back rounded to whole units.
	for _, row := range resp.Schedule {
		assert.Equal(t, row.Injection, float64(int64(row.Injection)))
	}
}

func TestRunValuationExcludesTradesByDefault(t *testing.T) {
	r := valuationRouter()
	w := postJSON(t, r, "/api/v1/valuation", seasonalRequest(false))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"trades"`)
}

func TestRunValuationRejectsInvalidFacility(t *testing.T) {
	req := seasonalRequest(false)
	req.Config.Facility.InitialInventory = 2_000_000 // above capacity

	r := valuationRouter()
	w := postJSON(t, r, "/api/v1/valuation", req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_FACILITY", resp.Error.Code)
}

func TestRunValuationRequiresCurveOrDataSource(t *testing.T) {
	req := seasonalRequest(false)
	req.Curve = nil

	r := valuationRouter()
	w := postJSON(t, r, "/api/v1/valuation", req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CURVE_ERROR", resp.Error.Code)
}

func TestRunValuationRejectsMalformedBody(t *testing.T) {
	r := valuationRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuation", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestExportValuationCSV(t *testing.T) {
	r := valuationRouter()
	w := postJSON(t, r, "/api/v1/valuation/export", seasonalRequest(false))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "storage_schedule.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "period,price,injection,withdrawal,net_flow,ending_inventory", lines[0])
}
