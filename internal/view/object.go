// Package view holds the table of animated objects shared by the
// interpreter, the motion controller and the compositor.
package view

import (
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
)

// Flag is a bit of the object flags.
type Flag uint16

const (
	Drawn Flag = 1 << iota
	IgnoreBlocks
	FixedPriority
	IgnoreHorizon
	Update
	Cycling
	Animated
	Motion
	OnWater
	IgnoreObjects
	UpdatePos
	OnLand
	DontUpdate
	FixLoop
	DidntMove
)

var flagNames = []string{
	"drawn", "ignore-blocks", "fixed-priority", "ignore-horizon", "update",
	"cycling", "animated", "motion", "on-water", "ignore-objects",
	"update-pos", "on-land", "dont-update", "fix-loop", "didnt-move",
}

func (f Flag) String() string {
	s := ""
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// MotionMode selects the movement strategy of an object.
type MotionMode uint8

const (
	MotionNormal MotionMode = iota
	MotionWander
	MotionFollow
	MotionMoveTo
	// MotionEgo is the player driven mode.
	MotionEgo
)

var motionNames = [...]string{"normal", "wander", "follow", "move", "ego"}

func (m MotionMode) String() string {
	if int(m) < len(motionNames) {
		return motionNames[m]
	}
	return fmt.Sprintf("motion(%d)", uint8(m))
}

// CycleMode selects how the cel advances each cycle.
type CycleMode uint8

const (
	CycleNormal CycleMode = iota
	CycleEndOfLoop
	CycleReverseLoop
	CycleReverse
)

// MoveParams holds the move-to-point parameters.
type MoveParams struct {
	X, Y     int
	StepSize int
	Flag     uint8
}

// FollowParams holds the follow-ego parameters.
type FollowParams struct {
	StepSize int
	Flag     uint8
	Count    int
}

// Object is an entry of the view table.
type Object struct {
	Number int
	Flags  Flag

	X, Y         int
	PrevX, PrevY int
	// Width and Height are those of the current cel.
	Width, Height int

	ViewNumber int
	View       *resource.View
	Loop, Cel  int

	Direction Direction
	Motion    MotionMode
	Cycle     CycleMode
	Priority  uint8

	StepSize       int
	StepTime       int
	StepTimeCount  int
	CycleTime      int
	CycleTimeCount int

	// LoopFlag is set when an end-of-loop or reverse-loop cycle
	// completes.
	LoopFlag uint8

	Move        MoveParams
	Follow      FollowParams
	WanderCount int
}

// Has reports whether every bit of f is set.
func (o *Object) Has(f Flag) bool { return o.Flags&f == f }

// Any reports whether some bit of f is set.
func (o *Object) Any(f Flag) bool { return o.Flags&f != 0 }

func (o *Object) Set(f Flag)   { o.Flags |= f }
func (o *Object) Clear(f Flag) { o.Flags &^= f }

// IsEgo reports whether the object is the player character.
func (o *Object) IsEgo() bool { return o.Number == 0 }

// CurrentCel returns the cel being shown, or nil if no view is set.
func (o *Object) CurrentCel() *resource.Cel {
	if o.View == nil {
		return nil
	}
	c, err := o.View.Cel(o.Loop, o.Cel)
	if err != nil {
		return nil
	}
	return c
}

// Loops returns the number of loops of the view.
func (o *Object) Loops() int {
	if o.View == nil {
		return 0
	}
	return len(o.View.Loops)
}

// Cels returns the number of cels of the current loop.
func (o *Object) Cels() int {
	if o.View == nil || o.Loop >= len(o.View.Loops) {
		return 0
	}
	return len(o.View.Loops[o.Loop].Cels)
}

// SetView attaches view v as view number n. The loop and cel are kept
// when still valid and reset to 0 otherwise.
func (o *Object) SetView(n int, v *resource.View) error {
	if len(v.Loops) == 0 {
		return fmt.Errorf("object %d: view %d has no loops: %w", o.Number, n, types.ErrBoundsViolation)
	}
	o.ViewNumber = n
	o.View = v
	if o.Loop >= len(v.Loops) {
		o.Loop = 0
	}
	return o.SetLoop(o.Loop)
}

// SetLoop selects loop l, clamping the cel into range.
func (o *Object) SetLoop(l int) error {
	if o.View == nil || l < 0 || l >= len(o.View.Loops) {
		return fmt.Errorf("object %d: loop %d: %w", o.Number, l, types.ErrBoundsViolation)
	}
	o.Loop = l
	if o.Cel >= o.Cels() {
		o.Cel = 0
	}
	return o.SetCel(o.Cel)
}

// SetCel selects cel c of the current loop and updates the object size.
// The object is pulled back onto the screen if the new cel would stick
// out of it.
func (o *Object) SetCel(c int) error {
	if o.View == nil || c < 0 || c >= o.Cels() {
		return fmt.Errorf("object %d: cel %d: %w", o.Number, c, types.ErrBoundsViolation)
	}
	o.Cel = c
	cel := o.View.Loops[o.Loop].Cels[c]
	o.Width, o.Height = cel.Width, cel.Height

	if o.X+o.Width > ScreenWidth {
		o.Set(UpdatePos)
		o.X = ScreenWidth - o.Width
	}
	if o.Y-o.Height+1 < 0 {
		o.Set(UpdatePos)
		o.Y = o.Height - 1
	}
	return nil
}

// Screen dimensions in object coordinates.
const (
	ScreenWidth  = 160
	ScreenHeight = 168
)
