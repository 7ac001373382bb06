package types

// Profile describes the opcode set of an interpreter version.
type Profile struct {
	Version Version
	// Actions is the number of action opcodes, opcodes at or above it
	// are rejected.
	Actions int
	// QuitArgs is the operand count of quit.
	QuitArgs int
}

// DefaultProfile is used when no profile is configured for a version.
var DefaultProfile = Profile{Version: V2936, Actions: 0xAF, QuitArgs: 1}

// InventoryRoom is the room number of items carried by ego.
const InventoryRoom = 255

// Error codes written to VarErrorCode when a script is aborted.
const (
	ErrorCodeNone uint8 = iota
	ErrorCodeBadOpcode
	ErrorCodeBounds
	ErrorCodeResource
)
