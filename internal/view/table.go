package view

import (
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/types"
)

// DefaultHorizon is the horizon of a freshly entered room.
const DefaultHorizon = 36

// Block is the rectangle objects may not cross unless they ignore
// blocks. Only the interior counts as inside.
type Block struct {
	Active         bool
	X1, Y1, X2, Y2 int
}

// Contains reports whether (x, y) lies strictly inside the block.
func (b Block) Contains(x, y int) bool {
	return x > b.X1 && x < b.X2 && y > b.Y1 && y < b.Y2
}

// Table is the fixed capacity array of objects. Object 0 is ego.
type Table struct {
	objects []Object
	Horizon int
	Block   Block
}

// NewTable returns a table with room for n objects.
func NewTable(n int) *Table {
	if n < 1 {
		n = 1
	}
	t := &Table{objects: make([]Object, n), Horizon: DefaultHorizon}
	for i := range t.objects {
		t.objects[i].Number = i
	}
	t.Reset()
	return t
}

// Len returns the capacity of the table.
func (t *Table) Len() int { return len(t.objects) }

// Object returns object n.
func (t *Table) Object(n int) (*Object, error) {
	if n < 0 || n >= len(t.objects) {
		return nil, fmt.Errorf("object %d of %d: %w", n, len(t.objects), types.ErrBoundsViolation)
	}
	return &t.objects[n], nil
}

// Ego returns object 0.
func (t *Table) Ego() *Object { return &t.objects[0] }

// Each calls fn for every object in table order.
func (t *Table) Each(fn func(o *Object)) {
	for i := range t.objects {
		fn(&t.objects[i])
	}
}

// Reset puts every object back into the state it has when a new room
// is entered.
func (t *Table) Reset() {
	for i := range t.objects {
		o := &t.objects[i]
		o.Clear(Animated | Drawn)
		o.Set(Update)
		o.StepTime, o.StepTimeCount = 1, 1
		o.CycleTime, o.CycleTimeCount = 1, 1
		o.StepSize = 1
	}
	t.Horizon = DefaultHorizon
	t.Block.Active = false
}
