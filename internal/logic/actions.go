package logic

import (
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

func (m *Interpreter) v(n int) uint8 { return m.cmd.Var(uint8(n)) }

func (m *Interpreter) setV(n int, val uint8) { m.cmd.SetVar(uint8(n), val) }

// objectAction builds a handler for an action whose first operand is
// an object.
func objectAction(fn func(m *Interpreter, o *view.Object, a []int) error) actionFunc {
	return func(m *Interpreter, a []int) error {
		o, err := m.cmd.Object(a[0])
		if err != nil {
			return err
		}
		return fn(m, o, a[1:])
	}
}

// objectFlag builds a handler setting or clearing flags of an object.
func objectFlag(set, clear view.Flag) actionFunc {
	return objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Set(set)
		o.Clear(clear)
		return nil
	})
}

// objectVar builds a handler storing a property of an object in a
// variable.
func objectVar(get func(o *view.Object) int) actionFunc {
	return objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.setV(a[0], uint8(get(o)))
		return nil
	})
}

func init() {
	defineAction(0x00, "return", "", nil)

	// arithmetic, bytes wrap except for increment and decrement which
	// saturate
	defineAction(0x01, "increment", "v", func(m *Interpreter, a []int) error {
		if v := m.v(a[0]); v != 0xFF {
			m.setV(a[0], v+1)
		}
		return nil
	})
	defineAction(0x02, "decrement", "v", func(m *Interpreter, a []int) error {
		if v := m.v(a[0]); v != 0 {
			m.setV(a[0], v-1)
		}
		return nil
	})
	defineAction(0x03, "assignn", "vn", func(m *Interpreter, a []int) error {
		m.setV(a[0], uint8(a[1]))
		return nil
	})
	defineAction(0x04, "assignv", "vv", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(a[1]))
		return nil
	})
	defineAction(0x05, "addn", "vn", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(a[0])+uint8(a[1]))
		return nil
	})
	defineAction(0x06, "addv", "vv", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(a[0])+m.v(a[1]))
		return nil
	})
	defineAction(0x07, "subn", "vn", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(a[0])-uint8(a[1]))
		return nil
	})
	defineAction(0x08, "subv", "vv", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(a[0])-m.v(a[1]))
		return nil
	})
	defineAction(0x09, "lindirectv", "vv", func(m *Interpreter, a []int) error {
		m.setV(int(m.v(a[0])), m.v(a[1]))
		return nil
	})
	defineAction(0x0A, "rindirect", "vv", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(int(m.v(a[1]))))
		return nil
	})
	defineAction(0x0B, "lindirectn", "vn", func(m *Interpreter, a []int) error {
		m.setV(int(m.v(a[0])), uint8(a[1]))
		return nil
	})
	defineAction(0xA5, "mul.n", "vn", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(a[0])*uint8(a[1]))
		return nil
	})
	defineAction(0xA6, "mul.v", "vv", func(m *Interpreter, a []int) error {
		m.setV(a[0], m.v(a[0])*m.v(a[1]))
		return nil
	})
	defineAction(0xA7, "div.n", "vn", func(m *Interpreter, a []int) error {
		if a[1] != 0 {
			m.setV(a[0], m.v(a[0])/uint8(a[1]))
		}
		return nil
	})
	defineAction(0xA8, "div.v", "vv", func(m *Interpreter, a []int) error {
		if d := m.v(a[1]); d != 0 {
			m.setV(a[0], m.v(a[0])/d)
		}
		return nil
	})
	defineAction(0x82, "random", "nnv", func(m *Interpreter, a []int) error {
		m.setV(a[2], m.cmd.Random(uint8(a[0]), uint8(a[1])))
		return nil
	})

	// flags
	defineAction(0x0C, "set", "f", func(m *Interpreter, a []int) error {
		m.cmd.SetFlag(uint8(a[0]), true)
		return nil
	})
	defineAction(0x0D, "reset", "f", func(m *Interpreter, a []int) error {
		m.cmd.SetFlag(uint8(a[0]), false)
		return nil
	})
	defineAction(0x0E, "toggle", "f", func(m *Interpreter, a []int) error {
		m.cmd.SetFlag(uint8(a[0]), !m.cmd.Flag(uint8(a[0])))
		return nil
	})
	defineAction(0x0F, "set.v", "v", func(m *Interpreter, a []int) error {
		m.cmd.SetFlag(m.v(a[0]), true)
		return nil
	})
	defineAction(0x10, "reset.v", "v", func(m *Interpreter, a []int) error {
		m.cmd.SetFlag(m.v(a[0]), false)
		return nil
	})
	defineAction(0x11, "toggle.v", "v", func(m *Interpreter, a []int) error {
		f := m.v(a[0])
		m.cmd.SetFlag(f, !m.cmd.Flag(f))
		return nil
	})

	// rooms and logics
	defineAction(0x12, "new.room", "n", func(m *Interpreter, a []int) error {
		m.newRoom(a[0])
		return nil
	})
	defineAction(0x13, "new.room.v", "v", func(m *Interpreter, a []int) error {
		m.newRoom(int(m.v(a[0])))
		return nil
	})
	defineAction(0x14, "load.logics", "n", func(m *Interpreter, a []int) error {
		return m.cmd.LoadLogic(a[0])
	})
	defineAction(0x15, "load.logics.v", "v", func(m *Interpreter, a []int) error {
		return m.cmd.LoadLogic(int(m.v(a[0])))
	})
	defineAction(0x16, "call", "n", func(m *Interpreter, a []int) error {
		m.call(a[0])
		return nil
	})
	defineAction(0x17, "call.v", "v", func(m *Interpreter, a []int) error {
		m.call(int(m.v(a[0])))
		return nil
	})
	defineAction(0x91, "set.scan.start", "", func(m *Interpreter, a []int) error {
		f := m.current()
		f.script.ScanStart = f.ip
		return nil
	})
	defineAction(0x92, "reset.scan.start", "", func(m *Interpreter, a []int) error {
		m.current().script.ScanStart = 0
		return nil
	})

	// pictures
	defineAction(0x18, "load.pic", "v", func(m *Interpreter, a []int) error {
		return m.cmd.Subsystems().LoadPicture(int(m.v(a[0])))
	})
	defineAction(0x19, "draw.pic", "v", func(m *Interpreter, a []int) error {
		return m.cmd.Subsystems().DrawPicture(int(m.v(a[0])), false)
	})
	defineAction(0x1A, "show.pic", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().ShowPicture()
		return nil
	})
	defineAction(0x1B, "discard.pic", "v", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().DiscardPicture(int(m.v(a[0])))
		return nil
	})
	defineAction(0x1C, "overlay.pic", "v", func(m *Interpreter, a []int) error {
		return m.cmd.Subsystems().DrawPicture(int(m.v(a[0])), true)
	})
	defineAction(0x1D, "show.pri.screen", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().ShowPriorityScreen()
		return nil
	})

	// views
	defineAction(0x1E, "load.view", "n", func(m *Interpreter, a []int) error {
		return m.cmd.LoadView(a[0])
	})
	defineAction(0x1F, "load.view.v", "v", func(m *Interpreter, a []int) error {
		return m.cmd.LoadView(int(m.v(a[0])))
	})
	defineAction(0x20, "discard.view", "n", func(m *Interpreter, a []int) error {
		m.cmd.DiscardView(a[0])
		return nil
	})
	defineAction(0x99, "discard.view.v", "v", func(m *Interpreter, a []int) error {
		m.cmd.DiscardView(int(m.v(a[0])))
		return nil
	})
	defineAction(0x29, "set.view", "on", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		return m.cmd.SetView(o, a[0])
	}))
	defineAction(0x2A, "set.view.v", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		return m.cmd.SetView(o, int(m.v(a[0])))
	}))
	defineAction(0x2B, "set.loop", "on", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		return o.SetLoop(a[0])
	}))
	defineAction(0x2C, "set.loop.v", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		return o.SetLoop(int(m.v(a[0])))
	}))
	defineAction(0x2D, "fix.loop", "o", objectFlag(view.FixLoop, 0))
	defineAction(0x2E, "release.loop", "o", objectFlag(0, view.FixLoop))
	defineAction(0x2F, "set.cel", "on", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Clear(view.DontUpdate)
		return o.SetCel(a[0])
	}))
	defineAction(0x30, "set.cel.v", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Clear(view.DontUpdate)
		return o.SetCel(int(m.v(a[0])))
	}))
	defineAction(0x31, "last.cel", "ov", objectVar(func(o *view.Object) int { return o.Cels() - 1 }))
	defineAction(0x32, "current.cel", "ov", objectVar(func(o *view.Object) int { return o.Cel }))
	defineAction(0x33, "current.loop", "ov", objectVar(func(o *view.Object) int { return o.Loop }))
	defineAction(0x34, "current.view", "ov", objectVar(func(o *view.Object) int { return o.ViewNumber }))
	defineAction(0x35, "number.of.loops", "ov", objectVar(func(o *view.Object) int { return o.Loops() }))

	// drawing
	defineAction(0x21, "animate.obj", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		if o.Has(view.Animated) {
			return nil
		}
		o.Flags = view.Animated | view.Update | view.Cycling
		o.Motion = view.MotionNormal
		o.Cycle = view.CycleNormal
		o.Direction = view.Stop
		return nil
	}))
	defineAction(0x22, "unanimate.all", "", func(m *Interpreter, a []int) error {
		m.cmd.UnanimateAll()
		return nil
	})
	defineAction(0x23, "draw", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.Draw(o)
		return nil
	}))
	defineAction(0x24, "erase", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.Erase(o)
		return nil
	}))
	defineAction(0x3A, "stop.update", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.StopUpdate(o)
		return nil
	}))
	defineAction(0x3B, "start.update", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.StartUpdate(o)
		return nil
	}))
	defineAction(0x3C, "force.update", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.ForceUpdate(o)
		return nil
	}))
	defineAction(0x7A, "add.to.pic", "nnnnnnn", func(m *Interpreter, a []int) error {
		return m.cmd.AddToPic(a[0], a[1], a[2], a[3], a[4], a[5], a[6])
	})
	defineAction(0x7B, "add.to.pic.v", "vvvvvvv", func(m *Interpreter, a []int) error {
		var v [7]int
		for i := range v {
			v[i] = int(m.v(a[i]))
		}
		return m.cmd.AddToPic(v[0], v[1], v[2], v[3], v[4], v[5], v[6])
	})
	defineAction(0xAE, "set.pri.base", "n", func(m *Interpreter, a []int) error {
		m.cmd.SetPriorityBase(a[0])
		return nil
	})

	// position
	defineAction(0x25, "position", "onn", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.X, o.Y = a[0], a[1]
		o.PrevX, o.PrevY = a[0], a[1]
		return nil
	}))
	defineAction(0x26, "position.v", "ovv", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.X, o.Y = int(m.v(a[0])), int(m.v(a[1]))
		o.PrevX, o.PrevY = o.X, o.Y
		return nil
	}))
	defineAction(0x27, "get.posn", "ovv", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.setV(a[0], uint8(o.X))
		m.setV(a[1], uint8(o.Y))
		return nil
	}))
	defineAction(0x28, "reposition", "ovv", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		dx, dy := int(int8(m.v(a[0]))), int(int8(m.v(a[1])))
		o.Set(view.UpdatePos)
		o.X = max(o.X+dx, 0)
		o.Y = max(o.Y+dy, 0)
		m.cmd.FixPosition(o)
		return nil
	}))
	defineAction(0x93, "reposition.to", "onn", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.X, o.Y = a[0], a[1]
		o.Set(view.UpdatePos)
		m.cmd.FixPosition(o)
		return nil
	}))
	defineAction(0x94, "reposition.to.v", "ovv", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.X, o.Y = int(m.v(a[0])), int(m.v(a[1]))
		o.Set(view.UpdatePos)
		m.cmd.FixPosition(o)
		return nil
	}))
	defineAction(0x45, "distance", "oov", func(m *Interpreter, a []int) error {
		o1, err := m.cmd.Object(a[0])
		if err != nil {
			return err
		}
		o2, err := m.cmd.Object(a[1])
		if err != nil {
			return err
		}
		d := 255
		if o1.Has(view.Drawn) && o2.Has(view.Drawn) {
			d = abs(o1.X+o1.Width/2-o2.X-o2.Width/2) + abs(o1.Y-o2.Y)
			if d > 254 {
				d = 254
			}
		}
		m.setV(a[2], uint8(d))
		return nil
	})

	// priority and horizon
	defineAction(0x36, "set.priority", "on", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Set(view.FixedPriority)
		o.Priority = uint8(a[0])
		return nil
	}))
	defineAction(0x37, "set.priority.v", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Set(view.FixedPriority)
		o.Priority = m.v(a[0])
		return nil
	}))
	defineAction(0x38, "release.priority", "o", objectFlag(0, view.FixedPriority))
	defineAction(0x39, "get.priority", "ov", objectVar(func(o *view.Object) int { return int(o.Priority) }))
	defineAction(0x3D, "ignore.horizon", "o", objectFlag(view.IgnoreHorizon, 0))
	defineAction(0x3E, "observe.horizon", "o", objectFlag(0, view.IgnoreHorizon))
	defineAction(0x3F, "set.horizon", "n", func(m *Interpreter, a []int) error {
		m.cmd.Table().Horizon = a[0]
		return nil
	})
	defineAction(0x40, "object.on.water", "o", objectFlag(view.OnWater, 0))
	defineAction(0x41, "object.on.land", "o", objectFlag(view.OnLand, 0))
	defineAction(0x42, "object.on.anything", "o", objectFlag(0, view.OnWater|view.OnLand))
	defineAction(0x43, "ignore.objs", "o", objectFlag(view.IgnoreObjects, 0))
	defineAction(0x44, "observe.objs", "o", objectFlag(0, view.IgnoreObjects))
	defineAction(0x58, "ignore.blocks", "o", objectFlag(view.IgnoreBlocks, 0))
	defineAction(0x59, "observe.blocks", "o", objectFlag(0, view.IgnoreBlocks))
	defineAction(0x5A, "block", "nnnn", func(m *Interpreter, a []int) error {
		m.cmd.Table().Block = view.Block{Active: true, X1: a[0], Y1: a[1], X2: a[2], Y2: a[3]}
		return nil
	})
	defineAction(0x5B, "unblock", "", func(m *Interpreter, a []int) error {
		m.cmd.Table().Block.Active = false
		return nil
	})

	// cycling
	defineAction(0x46, "stop.cycling", "o", objectFlag(0, view.Cycling))
	defineAction(0x47, "start.cycling", "o", objectFlag(view.Cycling, 0))
	defineAction(0x48, "normal.cycle", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Cycle = view.CycleNormal
		o.Set(view.Cycling)
		return nil
	}))
	defineAction(0x4A, "reverse.cycle", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Cycle = view.CycleReverse
		o.Set(view.Cycling)
		return nil
	}))
	defineAction(0x49, "end.of.loop", "of", loopCycle(view.CycleEndOfLoop))
	defineAction(0x4B, "reverse.loop", "of", loopCycle(view.CycleReverseLoop))
	defineAction(0x4C, "cycle.time", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.CycleTime = int(m.v(a[0]))
		o.CycleTimeCount = o.CycleTime
		return nil
	}))

	// motion
	defineAction(0x4D, "stop.motion", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Direction = view.Stop
		o.Motion = view.MotionNormal
		if o.IsEgo() {
			m.cmd.SetVar(types.VarEgoDirection, 0)
			m.cmd.SetPlayerControl(false)
		}
		return nil
	}))
	defineAction(0x4E, "start.motion", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Motion = view.MotionNormal
		if o.IsEgo() {
			m.cmd.SetVar(types.VarEgoDirection, 0)
			m.cmd.SetPlayerControl(true)
		}
		return nil
	}))
	defineAction(0x4F, "step.size", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.StepSize = int(m.v(a[0]))
		return nil
	}))
	defineAction(0x50, "step.time", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.StepTime = int(m.v(a[0]))
		o.StepTimeCount = o.StepTime
		return nil
	}))
	defineAction(0x51, "move.obj", "onnnf", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.MoveTo(o, a[0], a[1], a[2], uint8(a[3]))
		return nil
	}))
	defineAction(0x52, "move.obj.v", "ovvvf", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.MoveTo(o, int(m.v(a[0])), int(m.v(a[1])), int(m.v(a[2])), uint8(a[3]))
		return nil
	}))
	defineAction(0x53, "follow.ego", "onf", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.Follow(o, a[0], uint8(a[1]))
		return nil
	}))
	defineAction(0x54, "wander", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		m.cmd.Wander(o)
		return nil
	}))
	defineAction(0x55, "normal.motion", "o", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Motion = view.MotionNormal
		return nil
	}))
	defineAction(0x56, "set.dir", "ov", objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Direction = view.Direction(m.v(a[0]) % 9)
		return nil
	}))
	defineAction(0x57, "get.dir", "ov", objectVar(func(o *view.Object) int { return int(o.Direction) }))
	defineAction(0x83, "program.control", "", func(m *Interpreter, a []int) error {
		m.cmd.SetPlayerControl(false)
		return nil
	})
	defineAction(0x84, "player.control", "", func(m *Interpreter, a []int) error {
		m.cmd.SetPlayerControl(true)
		return nil
	})
	defineAction(0xB6, "adj.ego.move.to.x.y", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().Hint("adj.ego.move.to.x.y")
		return nil
	})

	// inventory
	defineAction(0x5C, "get", "i", func(m *Interpreter, a []int) error {
		return m.cmd.SetItemRoom(a[0], types.InventoryRoom)
	})
	defineAction(0x5D, "get.v", "v", func(m *Interpreter, a []int) error {
		return m.cmd.SetItemRoom(int(m.v(a[0])), types.InventoryRoom)
	})
	defineAction(0x5E, "drop", "i", func(m *Interpreter, a []int) error {
		return m.cmd.SetItemRoom(a[0], 0)
	})
	defineAction(0x5F, "put", "iv", func(m *Interpreter, a []int) error {
		return m.cmd.SetItemRoom(a[0], m.v(a[1]))
	})
	defineAction(0x60, "put.v", "vv", func(m *Interpreter, a []int) error {
		return m.cmd.SetItemRoom(int(m.v(a[0])), m.v(a[1]))
	})
	defineAction(0x61, "get.room.v", "vv", func(m *Interpreter, a []int) error {
		room, err := m.cmd.ItemRoom(int(m.v(a[0])))
		if err != nil {
			return err
		}
		m.setV(a[1], room)
		return nil
	})

	// sound
	defineAction(0x62, "load.sound", "n", func(m *Interpreter, a []int) error {
		return m.cmd.Subsystems().LoadSound(a[0])
	})
	defineAction(0x63, "sound", "nf", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().PlaySound(a[0], uint8(a[1]))
		return nil
	})
	defineAction(0x64, "stop.sound", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().StopSound()
		return nil
	})
	defineAction(0xAF, "discard.sound", "n", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().DiscardSound(a[0])
		return nil
	})

	// text
	defineAction(0x65, "print", "m", func(m *Interpreter, a []int) error {
		return m.print(a[0], -1, -1, 0)
	})
	defineAction(0x66, "print.v", "v", func(m *Interpreter, a []int) error {
		return m.print(int(m.v(a[0])), -1, -1, 0)
	})
	defineAction(0x97, "print.at", "mnnn", func(m *Interpreter, a []int) error {
		return m.print(a[0], a[1], a[2], a[3])
	})
	defineAction(0x98, "print.at.v", "vnnn", func(m *Interpreter, a []int) error {
		return m.print(int(m.v(a[0])), a[1], a[2], a[3])
	})
	defineAction(0x67, "display", "nnm", func(m *Interpreter, a []int) error {
		return m.display(a[0], a[1], a[2])
	})
	defineAction(0x68, "display.v", "vvv", func(m *Interpreter, a []int) error {
		return m.display(int(m.v(a[0])), int(m.v(a[1])), int(m.v(a[2])))
	})
	defineAction(0x69, "clear.lines", "nnn", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().ClearLines(a[0], a[1], uint8(a[2]))
		return nil
	})
	defineAction(0x9A, "clear.text.rect", "nnnnn", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().ClearTextRect(a[0], a[1], a[2], a[3], uint8(a[4]))
		return nil
	})
	defineAction(0x6A, "text.screen", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().TextScreen()
		return nil
	})
	defineAction(0x6B, "graphics", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().Graphics()
		return nil
	})
	defineAction(0x6C, "set.cursor.char", "m", hint("set.cursor.char"))
	defineAction(0x6D, "set.text.attribute", "nn", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().SetTextAttribute(uint8(a[0]), uint8(a[1]))
		return nil
	})
	defineAction(0x6E, "shake.screen", "n", hint("shake.screen"))
	defineAction(0x6F, "configure.screen", "nnn", hint("configure.screen"))
	defineAction(0x70, "status.line.on", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().StatusLine(true)
		return nil
	})
	defineAction(0x71, "status.line.off", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().StatusLine(false)
		return nil
	})
	defineAction(0x9B, "set.upper.left", "nn", hint("set.upper.left"))
	defineAction(0xA3, "open.dialogue", "", hint("open.dialogue"))
	defineAction(0xA4, "close.dialogue", "", hint("close.dialogue"))
	defineAction(0xA9, "close.window", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().CloseWindow()
		return nil
	})

	// strings and input
	defineAction(0x72, "set.string", "sm", func(m *Interpreter, a []int) error {
		s, err := m.current().script.Message(a[1])
		if err != nil {
			return err
		}
		m.cmd.SetString(a[0], s)
		return nil
	})
	defineAction(0x73, "get.string", "smnnn", func(m *Interpreter, a []int) error {
		prompt, err := m.message(a[1])
		if err != nil {
			return err
		}
		limit := a[4]
		if limit > 40 {
			limit = 40
		}
		m.cmd.SetString(a[0], m.cmd.Subsystems().GetString(prompt, a[2], a[3], limit))
		return nil
	})
	defineAction(0x74, "word.to.string", "sw", func(m *Interpreter, a []int) error {
		m.cmd.SetString(a[0], m.cmd.Word(a[1]+1))
		return nil
	})
	defineAction(0x75, "parse", "s", func(m *Interpreter, a []int) error {
		m.cmd.Parse(m.cmd.String(a[0]))
		return nil
	})
	defineAction(0x76, "get.num", "mv", func(m *Interpreter, a []int) error {
		prompt, err := m.message(a[0])
		if err != nil {
			return err
		}
		m.setV(a[1], m.cmd.Subsystems().GetNum(prompt))
		return nil
	})
	defineAction(0x77, "prevent.input", "", func(m *Interpreter, a []int) error {
		m.cmd.SetInputEnabled(false)
		return nil
	})
	defineAction(0x78, "accept.input", "", func(m *Interpreter, a []int) error {
		m.cmd.SetInputEnabled(true)
		return nil
	})
	defineAction(0x79, "set.key", "nnc", func(m *Interpreter, a []int) error {
		m.cmd.SetKey(a[0]|a[1]<<8, a[2])
		return nil
	})
	defineAction(0x89, "echo.line", "", hint("echo.line"))
	defineAction(0x8A, "cancel.line", "", hint("cancel.line"))
	defineAction(0xAD, "hold.key", "", hint("hold.key"))
	defineAction(0xB5, "release.key", "", hint("release.key"))

	// menus
	defineAction(0x9C, "set.menu", "m", func(m *Interpreter, a []int) error {
		s, err := m.message(a[0])
		if err != nil {
			return err
		}
		m.cmd.Subsystems().SetMenu(s)
		return nil
	})
	defineAction(0x9D, "set.menu.item", "mc", func(m *Interpreter, a []int) error {
		s, err := m.message(a[0])
		if err != nil {
			return err
		}
		m.cmd.Subsystems().SetMenuItem(s, a[1])
		return nil
	})
	defineAction(0x9E, "submit.menu", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().SubmitMenu()
		return nil
	})
	defineAction(0x9F, "enable.item", "c", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().EnableItem(a[0], true)
		return nil
	})
	defineAction(0xA0, "disable.item", "c", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().EnableItem(a[0], false)
		return nil
	})
	defineAction(0xA1, "menu.input", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().MenuInput()
		return nil
	})
	defineAction(0xB1, "allow.menu", "n", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().AllowMenu(a[0] != 0)
		return nil
	})

	// system
	defineAction(0x7C, "status", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().Status()
		return nil
	})
	defineAction(0x7D, "save.game", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().SaveGame()
		return nil
	})
	defineAction(0x7E, "restore.game", "", func(m *Interpreter, a []int) error {
		if m.cmd.Subsystems().RestoreGame() {
			m.cmd.SetFlag(types.FlagRestored, true)
			m.ExitAll()
		}
		return nil
	})
	defineAction(0x7F, "init.disk", "", hint("init.disk"))
	defineAction(0x80, "restart.game", "", func(m *Interpreter, a []int) error {
		if m.cmd.Flag(types.FlagAutoRestart) || m.cmd.Subsystems().ConfirmRestart() {
			m.cmd.Restart()
			m.ExitAll()
		}
		return nil
	})
	defineAction(0x81, "show.obj", "n", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().ShowObj(a[0])
		return nil
	})
	defineAction(0xA2, "show.obj.v", "v", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().ShowObj(int(m.v(a[0])))
		return nil
	})
	defineAction(0x85, "obj.status.v", "v", hint("obj.status.v"))
	defineAction(opQuit, "quit", "n", func(m *Interpreter, a []int) error {
		sys := m.cmd.Subsystems()
		if (len(a) > 0 && a[0] == 1) || sys.ConfirmQuit() {
			sys.Quit()
			m.ExitAll()
		}
		return nil
	})
	defineAction(0x87, "show.mem", "", hint("show.mem"))
	defineAction(0x88, "pause", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().Pause()
		return nil
	})
	defineAction(0x8B, "init.joy", "", hint("init.joy"))
	defineAction(0x8C, "toggle.monitor", "", hint("toggle.monitor"))
	defineAction(0x8D, "version", "", func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().Print("Adventure Game Interpreter\n  Version "+m.cmd.Version().String(), -1, -1, 0)
		return nil
	})
	defineAction(0x8E, "script.size", "n", hint("script.size"))
	defineAction(0x8F, "set.game.id", "m", hint("set.game.id"))
	defineAction(0x90, "log", "m", func(m *Interpreter, a []int) error {
		s, err := m.message(a[0])
		if err != nil {
			return err
		}
		m.cmd.Subsystems().Log(s)
		return nil
	})
	defineAction(0x95, "trace.on", "", func(m *Interpreter, a []int) error {
		m.trace = true
		return nil
	})
	defineAction(0x96, "trace.info", "nnn", hint("trace.info"))
	defineAction(0xAA, "set.simple", "n", hint("set.simple"))
	defineAction(0xAB, "push.script", "", hint("push.script"))
	defineAction(0xAC, "pop.script", "", hint("pop.script"))
	defineAction(0xB0, "hide.mouse", "", hint("hide.mouse"))
	defineAction(0xB2, "show.mouse", "", hint("show.mouse"))
	defineAction(0xB3, "fence.mouse", "nnnn", hint("fence.mouse"))
	defineAction(0xB4, "mouse.posn", "vv", hint("mouse.posn"))
}

// hint builds a handler passing the opcode to the host untouched.
func hint(name string) actionFunc {
	return func(m *Interpreter, a []int) error {
		m.cmd.Subsystems().Hint(name, a...)
		return nil
	}
}

func loopCycle(mode view.CycleMode) actionFunc {
	return objectAction(func(m *Interpreter, o *view.Object, a []int) error {
		o.Cycle = mode
		o.Set(view.DontUpdate | view.Update | view.Cycling)
		o.LoopFlag = uint8(a[0])
		m.cmd.SetFlag(uint8(a[0]), false)
		return nil
	})
}

func (m *Interpreter) newRoom(n int) {
	m.cmd.NewRoom(n)
	m.ExitAll()
}

func (m *Interpreter) print(msg, row, col, width int) error {
	s, err := m.message(msg)
	if err != nil {
		return err
	}
	m.cmd.Subsystems().Print(s, row, col, width)
	return nil
}

func (m *Interpreter) display(row, col, msg int) error {
	s, err := m.message(msg)
	if err != nil {
		return err
	}
	m.cmd.Subsystems().Display(row, col, s)
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
