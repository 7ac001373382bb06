// Package scheduler orders the timed events of the game loop on a
// clock of ticks.
package scheduler

import (
	"fmt"
	"strings"
)

// TicksPerSecond is the rate of the game timer.
const TicksPerSecond = 20

// Scheduler is a simple event scheduler that runs events at a given
// tick.
//
// The scheduled events form a linked list sorted by the tick they are
// due at. Only one event of each type can be scheduled at a time:
// scheduling an event again moves it.
type Scheduler struct {
	ticks uint64
	root  *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]Event
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}
	for i := range s.events {
		s.events[i].eventType = EventType(i)
	}
	return s
}

// Ticks returns the current tick.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// RegisterEvent registers the function called when an event of the
// given type is due.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by n ticks, running every event due up
// to the new tick in order. Handlers may schedule further events; those
// due within the window run in the same call.
func (s *Scheduler) Tick(n uint64) {
	target := s.ticks + n
	for s.root != nil && s.root.tick <= target {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false

		s.ticks = event.tick
		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
	s.ticks = target
}

// Next returns the number of ticks until the next event, and false if
// nothing is scheduled.
func (s *Scheduler) Next() (uint64, bool) {
	if s.root == nil {
		return 0, false
	}
	return s.root.tick - s.ticks, true
}

// ScheduleEvent schedules eventType to run in the given number of
// ticks. Events due at the same tick run in the order they were
// scheduled.
func (s *Scheduler) ScheduleEvent(eventType EventType, in uint64) {
	s.DescheduleEvent(eventType)

	this := &s.events[eventType]
	this.tick = s.ticks + in
	this.scheduled = true

	if s.root == nil || this.tick < s.root.tick {
		this.next = s.root
		s.root = this
		return
	}

	event := s.root
	for event.next != nil && event.next.tick <= this.tick {
		event = event.next
	}
	this.next = event.next
	event.next = this
}

// DescheduleEvent removes eventType if it is scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	this := &s.events[eventType]
	if !this.scheduled {
		return
	}
	this.scheduled = false

	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event == this {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.next = nil
			return
		}
		prev = event
	}
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.tick)
	}
	return b.String()
}
