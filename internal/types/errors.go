package types

import "errors"

var (
	// ErrResourceMissing is returned when a resource could not be
	// supplied by the resource provider.
	ErrResourceMissing = errors.New("resource missing")
	// ErrBadOpcode is returned when a script contains an opcode that
	// has no entry in the opcode table of the running version.
	ErrBadOpcode = errors.New("bad opcode")
	// ErrStackExhaustion is returned when nested calls exceed the
	// configured call depth.
	ErrStackExhaustion = errors.New("call stack exhausted")
	// ErrBoundsViolation is returned when a script refers to an
	// object, item, string, message or code offset that does not exist.
	ErrBoundsViolation = errors.New("bounds violation")
)
