package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"gas-storage-valuation/internal/api/models"
	"gas-storage-valuation/internal/config"
	"gas-storage-valuation/internal/model"
)

// FacilityHandler handles facility preset requests
type FacilityHandler struct {
	facilityDir string
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler() *FacilityHandler {
	dir := GetFacilityDir()
	log.Printf("FacilityHandler: Using facility directory: %s", dir)
	return &FacilityHandler{facilityDir: dir}
}

// GetDir returns the facility directory path (for diagnostics)
func (h *FacilityHandler) GetDir() string {
	return h.facilityDir
}

// ListFacilities handles GET /api/v1/facilities
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	facilities := []models.FacilityInfo{}

	entries, err := os.ReadDir(h.facilityDir)
	if err != nil {
		if os.IsNotExist(err) {
			// No presets installed; empty list, not an error.
			c.JSON(http.StatusOK, gin.H{"facilities": facilities})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "FACILITY_DIR_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		fc, err := config.LoadFacilityFile(filepath.Join(h.facilityDir, e.Name()))
		if err != nil {
			log.Printf("FacilityHandler: Skipping %s: %v", e.Name(), err)
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".yaml")
		name := fc.Name
		if name == "" {
			name = id
		}
		facilities = append(facilities, models.FacilityInfo{
			ID:   id,
			Name: name,
			File: e.Name(),
			Specs: models.FacilitySpecs{
				Capacity:          fc.Capacity,
				MaxInjectionRate:  fc.MaxInjectionRate,
				MaxWithdrawalRate: fc.MaxWithdrawalRate,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// LoadAll returns every valid facility preset keyed by preset ID.
func (h *FacilityHandler) LoadAll() (map[string]model.FacilityParams, error) {
	entries, err := os.ReadDir(h.facilityDir)
	if err != nil {
		return nil, err
	}

	out := make(map[string]model.FacilityParams)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		fc, err := config.LoadFacilityFile(filepath.Join(h.facilityDir, e.Name()))
		if err != nil {
			continue
		}
		params := fc.ToModelParams()
		if _, err := model.NewFacility(params); err != nil {
			log.Printf("FacilityHandler: Preset %s invalid: %v", e.Name(), err)
			continue
		}
		out[strings.TrimSuffix(e.Name(), ".yaml")] = params
	}
	return out, nil
}
