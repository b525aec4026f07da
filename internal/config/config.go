package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gas-storage-valuation/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load facility parameters from a separate YAML
	// (e.g. examples/facilities/*.yaml). If both FacilityFile and Facility
	// are provided, Facility overrides FacilityFile.
	FacilityFile string         `yaml:"facility_file"`
	Facility     FacilityConfig `yaml:"facility"`
	Curve        CurveConfig    `yaml:"curve"`
}

type FacilityConfig struct {
	Name              string  `yaml:"name"`
	Capacity          float64 `yaml:"capacity"`
	MaxInjectionRate  float64 `yaml:"max_injection_rate"`
	MaxWithdrawalRate float64 `yaml:"max_withdrawal_rate"`
	InjectionCost     float64 `yaml:"injection_cost"`
	WithdrawalCost    float64 `yaml:"withdrawal_cost"`
	InitialInventory  float64 `yaml:"initial_inventory"`
	DiscountRate      float64 `yaml:"discount_rate"`
}

// CurveConfig controls how many delivery months to request when fetching a
// live forward curve.
type CurveConfig struct {
	Months int `yaml:"months"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.Curve.Months == 0 {
		c.Curve.Months = 24
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If facility_file is set, load it and merge in any explicit overrides
	// from c.Facility.
	if c.FacilityFile != "" {
		facilityPath := c.FacilityFile
		if !filepath.IsAbs(facilityPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, but fall back to the provided path (relative
			// to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), facilityPath)
			if _, err := os.Stat(cand); err == nil {
				facilityPath = cand
			}
		}
		loaded, err := LoadFacilityFile(facilityPath)
		if err != nil {
			return nil, err
		}
		c.Facility = MergeFacility(loaded, c.Facility)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Curve.Months < 0 {
		return errors.New("curve.months must be >= 0")
	}
	// Validate facility params by constructing a model.Facility.
	if _, err := model.NewFacility(c.Facility.ToModelParams()); err != nil {
		return fmt.Errorf("facility config invalid: %w", err)
	}
	return nil
}

func (f FacilityConfig) ToModelParams() model.FacilityParams {
	return model.FacilityParams{
		Capacity:          f.Capacity,
		MaxInjectionRate:  f.MaxInjectionRate,
		MaxWithdrawalRate: f.MaxWithdrawalRate,
		InjectionCost:     f.InjectionCost,
		WithdrawalCost:    f.WithdrawalCost,
		InitialInventory:  f.InitialInventory,
		DiscountRate:      f.DiscountRate,
	}
}

type facilityFileWrapper struct {
	Facility FacilityConfig `yaml:"facility"`
}

// LoadFacilityFile reads a facility preset YAML of the form:
//
//	facility:
//	  name: ...
//	  capacity: ...
func LoadFacilityFile(path string) (FacilityConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FacilityConfig{}, err
	}
	var w facilityFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return FacilityConfig{}, err
	}
	return w.Facility, nil
}

// MergeFacility overlays non-zero fields from override onto base.
// This is used when loading a facility preset and then applying overrides
// from the config file or an API request.
func MergeFacility(base, override FacilityConfig) FacilityConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Capacity != 0 {
		out.Capacity = override.Capacity
	}
	if override.MaxInjectionRate != 0 {
		out.MaxInjectionRate = override.MaxInjectionRate
	}
	if override.MaxWithdrawalRate != 0 {
		out.MaxWithdrawalRate = override.MaxWithdrawalRate
	}
	if override.InjectionCost != 0 {
		out.InjectionCost = override.InjectionCost
	}
	if override.WithdrawalCost != 0 {
		out.WithdrawalCost = override.WithdrawalCost
	}
	if override.InitialInventory != 0 {
		out.InitialInventory = override.InitialInventory
	}
	if override.DiscountRate != 0 {
		out.DiscountRate = override.DiscountRate
	}
	return out
}
