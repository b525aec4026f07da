package model

import "errors"

// FacilityParams defines the physical and economic parameters of a gas
// storage facility.
// Units:
// - Capacity: volume units (e.g. MMBtu)
// - MaxInjectionRate / MaxWithdrawalRate: volume per day
// - InjectionCost / WithdrawalCost: currency per unit volume
// - InitialInventory: volume units, must lie in [0, Capacity]
// - DiscountRate: annualized decimal rate used to present-value cash flows
type FacilityParams struct {
	Capacity          float64
	MaxInjectionRate  float64
	MaxWithdrawalRate float64
	InjectionCost     float64
	WithdrawalCost    float64
	InitialInventory  float64
	DiscountRate      float64
}

// Facility wraps validated parameters. The valuation engine itself trusts
// its inputs; all domain checks happen here, at the boundary.
type Facility struct {
	Params FacilityParams
}

func NewFacility(params FacilityParams) (*Facility, error) {
	f := &Facility{Params: params}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Facility) Validate() error {
	p := f.Params
	if p.Capacity < 0 {
		return errors.New("Capacity must be >= 0")
	}
	if p.MaxInjectionRate <= 0 {
		return errors.New("MaxInjectionRate must be > 0")
	}
	if p.MaxWithdrawalRate <= 0 {
		return errors.New("MaxWithdrawalRate must be > 0")
	}
	if p.InjectionCost < 0 {
		return errors.New("InjectionCost must be >= 0")
	}
	if p.WithdrawalCost < 0 {
		return errors.New("WithdrawalCost must be >= 0")
	}
	if p.InitialInventory < 0 || p.InitialInventory > p.Capacity {
		return errors.New("InitialInventory must satisfy 0 <= InitialInventory <= Capacity")
	}
	if p.DiscountRate < 0 {
		return errors.New("DiscountRate must be >= 0")
	}
	return nil
}

// MaxInjection returns the per-period injection cap for a period of the
// given length in days.
func (p FacilityParams) MaxInjection(periodLengthDays int) float64 {
	return p.MaxInjectionRate * float64(periodLengthDays)
}

// MaxWithdrawal returns the per-period withdrawal cap for a period of the
// given length in days.
func (p FacilityParams) MaxWithdrawal(periodLengthDays int) float64 {
	return p.MaxWithdrawalRate * float64(periodLengthDays)
}
