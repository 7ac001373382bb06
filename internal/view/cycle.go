package view

// loop selection per direction, noChange keeps the current loop
const noChange = 4

var (
	loopsSmall = [9]int{noChange, noChange, 0, 0, 0, noChange, 1, 1, 1}
	loopsLarge = [9]int{noChange, 3, 0, 0, 0, 2, 1, 1, 1}
)

// LoopForDirection returns the loop an object facing d should show, or
// false if the current loop is kept.
func LoopForDirection(loops int, d Direction) (int, bool) {
	var l int
	switch {
	case loops == 2 || loops == 3:
		l = loopsSmall[d%9]
	case loops == 4:
		l = loopsLarge[d%9]
	default:
		return 0, false
	}
	if l == noChange {
		return 0, false
	}
	return l, true
}

// UpdateLoop selects the loop matching the object direction, unless
// the loop is fixed.
func (o *Object) UpdateLoop() {
	if o.Has(FixLoop) {
		return
	}
	if l, ok := LoopForDirection(o.Loops(), o.Direction); ok && l != o.Loop {
		_ = o.SetLoop(l)
	}
}

// AdvanceCel moves the object to its next cel according to its cycle
// mode. It returns true when an end-of-loop or reverse-loop cycle
// completes, in which case the caller sets the LoopFlag.
func (o *Object) AdvanceCel() bool {
	if o.Has(DontUpdate) {
		o.Clear(DontUpdate)
		return false
	}

	cel := o.Cel
	last := o.Cels() - 1
	done := false

	switch o.Cycle {
	case CycleNormal:
		cel++
		if cel > last {
			cel = 0
		}
	case CycleEndOfLoop:
		if cel < last {
			cel++
			if cel != last {
				break
			}
		}
		done = true
	case CycleReverseLoop:
		if cel > 0 {
			cel--
			if cel != 0 {
				break
			}
		}
		done = true
	case CycleReverse:
		if cel == 0 {
			cel = last
		} else {
			cel--
		}
	}

	if done {
		o.Clear(Cycling)
		o.Direction = Stop
		o.Cycle = CycleNormal
	}
	if cel >= 0 && cel <= last {
		_ = o.SetCel(cel)
	}
	return done
}
