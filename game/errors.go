package game

import "errors"

// Rule violations returned by Apply. Callers branch with errors.Is; an action
// drawn from LegalActions never produces any of these.
var (
	ErrIllegalPlacement      = errors.New("illegal placement")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrBankDepleted          = errors.New("bank depleted")
	ErrPhaseViolation        = errors.New("action not valid in current phase")
	ErrRuleLimitExceeded     = errors.New("rule limit exceeded")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrCardNotPlayable       = errors.New("card not playable")
)

// ErrCorruptState marks engine-internal faults (broken board invariant, RNG
// desync). Unlike rule violations these should abort the enclosing simulation.
var ErrCorruptState = errors.New("corrupt engine state")
