package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"gas-storage-valuation/internal/api/models"
	"gas-storage-valuation/internal/config"
	"gas-storage-valuation/internal/curve"
	"gas-storage-valuation/internal/data"
	"gas-storage-valuation/internal/model"
	"gas-storage-valuation/internal/valuation"
)

// ValuationHandler handles valuation-related requests
type ValuationHandler struct{}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler() *ValuationHandler {
	return &ValuationHandler{}
}

// RunValuation handles POST /api/v1/valuation
func (h *ValuationHandler) RunValuation(c *gin.Context) {
	req, points, facility, ok := h.prepare(c)
	if !ok {
		return
	}

	engine := valuation.New()
	result := engine.Optimize(points, facility)

	c.JSON(http.StatusOK, h.buildResponse(result, req.Options.IncludeTrades))
}

// ExportValuationCSV handles POST /api/v1/valuation/export.
// Same input as RunValuation; responds with the schedule as text/csv.
func (h *ValuationHandler) ExportValuationCSV(c *gin.Context) {
	_, points, facility, ok := h.prepare(c)
	if !ok {
		return
	}

	engine := valuation.New()
	result := engine.Optimize(points, facility)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="storage_schedule.csv"`)
	c.Status(http.StatusOK)
	if err := valuation.WriteScheduleCSV(c.Writer, result); err != nil {
		log.Printf("ValuationHandler: CSV export failed: %v", err)
	}
}

// prepare binds the request, resolves the curve and builds validated
// facility params. On failure it writes the error response and returns
// ok=false.
func (h *ValuationHandler) prepare(c *gin.Context) (models.ValuationRequest, []model.ForwardPricePoint, model.FacilityParams, bool) {
	var req models.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return req, nil, model.FacilityParams{}, false
	}

	points, err := h.resolveCurve(c, req)
	if err != nil {
		var qe *data.QuoteError
		if errors.As(err, &qe) {
			statusCode := http.StatusBadRequest
			if qe.StatusCode == http.StatusTooManyRequests {
				statusCode = http.StatusTooManyRequests
			}
			c.JSON(statusCode, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    qe.Code,
					Message: qe.Message,
					Details: map[string]interface{}{
						"status_code": qe.StatusCode,
					},
				},
			})
			return req, nil, model.FacilityParams{}, false
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CURVE_ERROR",
				Message: err.Error(),
			},
		})
		return req, nil, model.FacilityParams{}, false
	}
	if len(points) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EMPTY_CURVE",
				Message: "forward curve has no priced periods",
			},
		})
		return req, nil, model.FacilityParams{}, false
	}

	facility, err := h.buildFacility(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FACILITY",
				Message: err.Error(),
			},
		})
		return req, nil, model.FacilityParams{}, false
	}

	return req, points, facility, true
}

// resolveCurve turns the request into normalized priced periods: inline
// points when given, otherwise a live fetch.
func (h *ValuationHandler) resolveCurve(c *gin.Context, req models.ValuationRequest) ([]model.ForwardPricePoint, error) {
	if len(req.Curve) > 0 {
		points := make([]model.ForwardPricePoint, len(req.Curve))
		for i, p := range req.Curve {
			days := p.PeriodLengthDays
			if days <= 0 {
				days = curve.PeriodLength(model.ContractQuote{
					Contract: p.Label,
					Month:    p.Month,
					Year:     p.Year,
				})
			}
			points[i] = model.ForwardPricePoint{
				Label:            p.Label,
				Price:            p.Price,
				PeriodLengthDays: days,
			}
		}
		return points, nil
	}

	if req.DataSource == nil {
		return nil, fmt.Errorf("either curve or data_source is required")
	}
	if req.DataSource.Type != "" && req.DataSource.Type != "quotes" {
		return nil, fmt.Errorf("unsupported data source type: %s", req.DataSource.Type)
	}

	client := data.NewQuoteClient("")
	quotes, err := client.FetchForwardCurve(c.Request.Context(), req.DataSource.Months)
	if err != nil {
		return nil, err
	}
	return curve.Normalize(quotes), nil
}

func (h *ValuationHandler) buildFacility(cfg models.ValuationConfig) (model.FacilityParams, error) {
	fc := config.FacilityConfig{
		Name:              cfg.Facility.Name,
		Capacity:          cfg.Facility.Capacity,
		MaxInjectionRate:  cfg.Facility.MaxInjectionRate,
		MaxWithdrawalRate: cfg.Facility.MaxWithdrawalRate,
		InjectionCost:     cfg.Facility.InjectionCost,
		WithdrawalCost:    cfg.Facility.WithdrawalCost,
		InitialInventory:  cfg.Facility.InitialInventory,
		DiscountRate:      cfg.Facility.DiscountRate,
	}

	// If facility_file is set, load it and merge request overrides onto it.
	// facility_file is just the preset name (e.g. "base_case"); files are
	// always looked up in the facility directory.
	if cfg.FacilityFile != "" {
		facilityPath := filepath.Join(GetFacilityDir(), cfg.FacilityFile+".yaml")
		loaded, err := config.LoadFacilityFile(facilityPath)
		if err == nil {
			fc = config.MergeFacility(loaded, fc)
		} else {
			log.Printf("ValuationHandler: Failed to load facility file %s: %v", facilityPath, err)
		}
	}

	params := fc.ToModelParams()
	if _, err := model.NewFacility(params); err != nil {
		return model.FacilityParams{}, err
	}
	return params, nil
}

func (h *ValuationHandler) buildResponse(result *valuation.Result, includeTrades bool) models.ValuationResponse {
	response := models.ValuationResponse{
		Status: "completed",
		Summary: models.ValuationSummary{
			TotalValue:      round2(result.TotalValue),
			TotalInjection:  math.Round(result.TotalInjection),
			TotalWithdrawal: math.Round(result.TotalWithdrawal),
			PeakInventory:   math.Round(result.PeakInventory),
			FinalInventory:  math.Round(result.FinalInventory),
			Periods:         len(result.Schedule),
			NumTrades:       len(result.Trades),
		},
		Schedule: make([]models.ScheduleRow, len(result.Schedule)),
	}

	for i, row := range result.Schedule {
		response.Schedule[i] = models.ScheduleRow{
			Index:           row.Index,
			Label:           row.Label,
			Price:           row.Price,
			Action:          string(row.Action),
			Injection:       math.Round(row.Injection),
			Withdrawal:      math.Round(row.Withdrawal),
			NetFlow:         math.Round(row.NetFlow),
			EndingInventory: math.Round(row.EndingInventory),
		}
	}

	if includeTrades {
		response.Trades = make([]models.TradeRow, len(result.Trades))
		for i, t := range result.Trades {
			response.Trades[i] = models.TradeRow{
				InjectPeriod:   t.InjectPeriod,
				WithdrawPeriod: t.WithdrawPeriod,
				InjectLabel:    t.InjectLabel,
				WithdrawLabel:  t.WithdrawLabel,
				Volume:         math.Round(t.Volume),
				Spread:         t.Spread,
				Profit:         round2(t.Profit),
			}
		}
	}

	return response
}

// GetFacilityDir resolves the facility preset directory.
func GetFacilityDir() string {
	dir := os.Getenv("FACILITY_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "facilities")
		} else {
			dir = "./examples/facilities"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
