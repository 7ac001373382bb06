package logic

import (
	"errors"
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/types"
)

var (
	ErrResourceMissing = types.ErrResourceMissing
	ErrBadOpcode       = types.ErrBadOpcode
	ErrStackExhaustion = types.ErrStackExhaustion
	ErrBoundsViolation = types.ErrBoundsViolation
)

// ScriptError locates a failure inside a script.
type ScriptError struct {
	Script int
	IP     int
	Op     uint8
	Err    error

	// Loading is set when the script itself failed to load.
	Loading bool
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("logic %d at %04x (op %02x): %v", e.Script, e.IP, e.Op, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// IsFatal reports whether err must stop the game loop: an exhausted
// call stack, or logic 0 itself failing to load. Resources missing while
// logic 0 runs only abort it.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStackExhaustion) {
		return true
	}
	var se *ScriptError
	return errors.As(err, &se) && se.Script == 0 && se.Loading && errors.Is(err, ErrResourceMissing)
}

func errorCode(err error) uint8 {
	switch {
	case errors.Is(err, ErrBadOpcode):
		return types.ErrorCodeBadOpcode
	case errors.Is(err, ErrBoundsViolation):
		return types.ErrorCodeBounds
	case errors.Is(err, ErrResourceMissing):
		return types.ErrorCodeResource
	}
	return types.ErrorCodeNone
}
