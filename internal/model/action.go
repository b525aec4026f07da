package model

// Action is a human-friendly operating mode for a schedule period.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionInjecting   Action = "INJECTING"
	ActionIdle        Action = "IDLE"
	ActionWithdrawing Action = "WITHDRAWING"
)

func ActionFromNetFlow(netFlow float64) Action {
	switch {
	case netFlow > 0:
		return ActionInjecting
	case netFlow < 0:
		return ActionWithdrawing
	default:
		return ActionIdle
	}
}
