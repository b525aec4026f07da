package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gas-storage-valuation/internal/analysis"
	"gas-storage-valuation/internal/api/models"
	"gas-storage-valuation/internal/curve"
	"gas-storage-valuation/internal/data"
)

// AnalysisHandler serves curve-level statistics.
type AnalysisHandler struct{}

func NewAnalysisHandler() *AnalysisHandler {
	return &AnalysisHandler{}
}

// GetPotential handles GET /api/v1/analysis/potential?months=N&discount_rate=R
func (h *AnalysisHandler) GetPotential(c *gin.Context) {
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

	discountRate, err := strconv.ParseFloat(c.DefaultQuery("discount_rate", "0.05"), 64)
	if err != nil || discountRate < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PARAM",
				Message: "discount_rate must be a non-negative number",
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

	points := curve.Normalize(quotes)
	potential := analysis.ComputePotential(points, discountRate)

	c.JSON(http.StatusOK, gin.H{"potential": potential})
}
