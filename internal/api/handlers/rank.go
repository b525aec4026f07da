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

// RankHandler ranks facility presets against the live forward curve.
type RankHandler struct {
	facilities *FacilityHandler
}

func NewRankHandler(facilities *FacilityHandler) *RankHandler {
	return &RankHandler{facilities: facilities}
}

// RankFacilities handles GET /api/v1/rank?months=N
func (h *RankHandler) RankFacilities(c *gin.Context) {
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

	presets, err := h.facilities.LoadAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "FACILITY_DIR_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	if len(presets) == 0 {
		c.JSON(http.StatusOK, gin.H{"rankings": []analysis.RankedFacility{}})
		return
	}

	client := data.NewQuoteClient("")
	quotes, err := client.FetchForwardCurve(c.Request.Context(), months)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	ranked := analysis.RankByValue(curve.Normalize(quotes), presets)
	c.JSON(http.StatusOK, gin.H{"rankings": ranked})
}
