package protocol

const (
	// Input validation.
	ErrBadRequest  = "E_BAD_REQUEST"
	ErrOutOfBounds = "E_OUT_OF_BOUNDS"
	ErrNotFound    = "E_NOT_FOUND"

	// Occupancy/movement rules.
	ErrBlocked       = "E_BLOCKED"
	ErrNotAdjacent   = "E_NOT_ADJACENT"
	ErrNotMovable    = "E_NOT_MOVABLE"
	ErrNotJumpable   = "E_NOT_JUMPABLE"
	ErrTooHeavy      = "E_TOO_HEAVY"
	ErrInvalidTarget = "E_INVALID_TARGET"

	// Container rules.
	ErrClosed = "E_CLOSED"
	ErrFull   = "E_FULL"

	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:    {},
	ErrOutOfBounds:   {},
	ErrNotFound:      {},
	ErrBlocked:       {},
	ErrNotAdjacent:   {},
	ErrNotMovable:    {},
	ErrNotJumpable:   {},
	ErrTooHeavy:      {},
	ErrInvalidTarget: {},
	ErrClosed:        {},
	ErrFull:          {},
	ErrInternal:      {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
