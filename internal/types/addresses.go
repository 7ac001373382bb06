package types

// Var is the number of one of the 256 byte variables shared by every
// logic script. The low numbers are reserved by the interpreter and
// written to as a side effect of running the game cycle.
type Var = uint8

const (
	// VarRoom holds the number of the current room.
	VarRoom Var = 0
	// VarPreviousRoom holds the number of the room ego came from.
	VarPreviousRoom Var = 1
	// VarEgoBorder holds the edge ego touched this cycle.
	//
	//  0 - none
	//  1 - top edge or horizon
	//  2 - right edge
	//  3 - bottom edge
	//  4 - left edge
	VarEgoBorder Var = 2
	// VarScore holds the current score.
	VarScore Var = 3
	// VarBorderObject holds the number of the object, other than
	// ego, that touched an edge this cycle.
	VarBorderObject Var = 4
	// VarBorderCode holds the edge touched by VarBorderObject,
	// encoded the same way as VarEgoBorder.
	VarBorderCode Var = 5
	// VarEgoDirection mirrors the direction of ego.
	VarEgoDirection Var = 6
	// VarMaxScore holds the maximum score.
	VarMaxScore Var = 7
	// VarFreeMemory is reported as the number of free 256 byte pages.
	VarFreeMemory Var = 8
	// VarWordNotFound holds the 1-based index of the first word of
	// the last sentence that was not found in the dictionary.
	VarWordNotFound Var = 9
	// VarCycleDelay holds the delay between cycles in 1/20 seconds.
	VarCycleDelay Var = 10
	// VarSeconds is the seconds part of the game clock.
	VarSeconds Var = 11
	// VarMinutes is the minutes part of the game clock.
	VarMinutes Var = 12
	// VarHours is the hours part of the game clock.
	VarHours Var = 13
	// VarDays is the days part of the game clock.
	VarDays Var = 14
	// VarJoystickSensitivity is used by the joystick handler.
	VarJoystickSensitivity Var = 15
	// VarEgoView holds the view number assigned to ego.
	VarEgoView Var = 16
	// VarErrorCode holds the code of the last recoverable error.
	VarErrorCode Var = 17
	// VarErrorInfo holds extra information for VarErrorCode.
	VarErrorInfo Var = 18
	// VarKey holds the ASCII code of the last key pressed.
	VarKey Var = 19
	// VarComputer identifies the host machine.
	VarComputer Var = 20
	// VarWindowTimer is the time a message window stays open,
	// in half seconds.
	VarWindowTimer Var = 21
	// VarSoundType identifies the sound hardware.
	VarSoundType Var = 22
	// VarVolume holds the sound volume.
	VarVolume Var = 23
	// VarInputLength holds the maximum length of the input line.
	VarInputLength Var = 24
	// VarSelectedItem holds the inventory item selected on the
	// status screen.
	VarSelectedItem Var = 25
	// VarMonitor identifies the monitor type.
	VarMonitor Var = 26
)

// Flag is the number of one of the 256 boolean flags shared by every
// logic script.
type Flag = uint8

const (
	// FlagEgoOnWater is set while ego stands entirely on water.
	FlagEgoOnWater Flag = 0
	// FlagEgoInvisible is set when every pixel of ego was hidden by
	// higher priority pixels during the last blit.
	FlagEgoInvisible Flag = 1
	// FlagEnteredInput is set when the player entered a sentence.
	FlagEnteredInput Flag = 2
	// FlagEgoTouchedTrigger is set when the baseline of ego covers a
	// trigger control line.
	FlagEgoTouchedTrigger Flag = 3
	// FlagInputAccepted is set once a said test matched the sentence.
	FlagInputAccepted Flag = 4
	// FlagNewRoom is set during the first cycle in a new room.
	FlagNewRoom Flag = 5
	// FlagRestartGame is set during the first cycle after a restart.
	FlagRestartGame Flag = 6
	// FlagScriptBlocked is set when the script buffer is blocked.
	FlagScriptBlocked Flag = 7
	// FlagJoystick enables joystick sensitivity handling.
	FlagJoystick Flag = 8
	// FlagSound enables sound output.
	FlagSound Flag = 9
	// FlagDebugger enables the interpreter trace.
	FlagDebugger Flag = 10
	// FlagLogicZeroFirst is set during the first execution of logic 0.
	FlagLogicZeroFirst Flag = 11
	// FlagRestored is set during the first cycle after a restore.
	FlagRestored Flag = 12
	// FlagStatusSelect allows an item to be selected on the status
	// screen.
	FlagStatusSelect Flag = 13
	// FlagMenu enables the menu.
	FlagMenu Flag = 14
	// FlagPrintMode makes message windows non-blocking.
	FlagPrintMode Flag = 15
	// FlagAutoRestart makes restart.game skip its confirmation.
	FlagAutoRestart Flag = 16
)

// Border codes written to VarEgoBorder and VarBorderCode.
const (
	BorderNone uint8 = iota
	BorderTop
	BorderRight
	BorderBottom
	BorderLeft
)
