package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gas-storage-valuation/internal/model"
)

// CurveSnapshot is an on-disk forward curve, used for offline runs and as
// the demo/CLI input format.
type CurveSnapshot struct {
	FetchedAt string                `json:"fetched_at"` // ISO 8601 timestamp
	Source    string                `json:"source,omitempty"`
	Quotes    []model.ContractQuote `json:"quotes"`
}

func LoadCurveSnapshot(path string) (*CurveSnapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curve snapshot: %w", err)
	}

	var snap CurveSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse curve snapshot: %w", err)
	}
	return &snap, nil
}

func SaveCurveSnapshot(snap *CurveSnapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if snap.FetchedAt == "" {
		snap.FetchedAt = time.Now().UTC().Format(time.RFC3339)
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal curve snapshot: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write curve snapshot: %w", err)
	}
	return nil
}

// GetDefaultCurvePath returns the default path for the curve snapshot file.
func GetDefaultCurvePath() string {
	if path := os.Getenv("CURVE_FILE"); path != "" {
		return path
	}
	return "./data/curve.json"
}
