package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gas-storage-valuation/internal/api/models"
	"gas-storage-valuation/internal/curve"
	"gas-storage-valuation/internal/data"
)

// CurveHandler serves forward-curve and historical price data.
type CurveHandler struct{}

func NewCurveHandler() *CurveHandler {
	return &CurveHandler{}
}

// GetCurve handles GET /api/v1/curve?months=N
func (h *CurveHandler) GetCurve(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "24"))
	if err != nil || months < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PARAM",
				Message: "months must be a positive integer",
			},
		})
		return
	}

	client := data.NewQuoteClient("")
	quotes, err := client.FetchForwardCurve(c.Request.Context(), months)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"points": curve.Normalize(quotes),
		"count":  len(quotes),
	})
}

// GetHistorical handles GET /api/v1/historical?days=N
func (h *CurveHandler) GetHistorical(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "365"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PARAM",
				Message: "days must be a positive integer",
			},
		})
		return
	}

	client := data.NewQuoteClient("")
	bars, err := client.FetchHistorical(c.Request.Context(), days)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": data.ContinuousSymbol,
		"bars":   bars,
		"count":  len(bars),
	})
}

// writeQuoteError translates price-source failures into the API error
// envelope. The valuation engine never sees these.
func writeQuoteError(c *gin.Context, err error) {
	var qe *data.QuoteError
	if errors.As(err, &qe) {
		statusCode := http.StatusBadGateway
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
		return
	}
	c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "DATA_FETCH_ERROR",
			Message: err.Error(),
		},
	})
}
