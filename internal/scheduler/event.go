package scheduler

type EventType int

const (
	// GameCycle runs one game cycle.
	GameCycle EventType = iota
	// Clock advances the game clock by one second.
	Clock
	// Flush presents pending screen changes to the host.
	Flush

	eventTypes
)

var eventNames = [eventTypes]string{"cycle", "clock", "flush"}

func (t EventType) String() string {
	if t >= 0 && t < eventTypes {
		return eventNames[t]
	}
	return "unknown"
}

type Event struct {
	tick      uint64
	eventType EventType
	scheduled bool
	next      *Event
}
