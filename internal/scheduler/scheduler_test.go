package scheduler

import "testing"

func TestScheduler_Order(t *testing.T) {
	s := NewScheduler()
	var ran []EventType
	for _, e := range []EventType{GameCycle, Clock, Flush} {
		e := e
		s.RegisterEvent(e, func() { ran = append(ran, e) })
	}

	s.ScheduleEvent(Clock, 5)
	s.ScheduleEvent(GameCycle, 2)
	s.ScheduleEvent(Flush, 2)

	if next, ok := s.Next(); !ok || next != 2 {
		t.Fatalf("expected next event in 2 ticks, got %d %t", next, ok)
	}

	s.Tick(4)
	if len(ran) != 2 || ran[0] != GameCycle || ran[1] != Flush {
		t.Fatalf("unexpected events %v", ran)
	}
	if s.Ticks() != 4 {
		t.Errorf("expected tick 4, got %d", s.Ticks())
	}

	s.Tick(1)
	if len(ran) != 3 || ran[2] != Clock {
		t.Fatalf("unexpected events %v", ran)
	}
	if _, ok := s.Next(); ok {
		t.Errorf("expected no events, got %s", s)
	}
}

func TestScheduler_Reschedule(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.RegisterEvent(Clock, func() {
		count++
		s.ScheduleEvent(Clock, TicksPerSecond)
	})
	s.ScheduleEvent(Clock, TicksPerSecond)

	s.Tick(5 * TicksPerSecond)
	if count != 5 {
		t.Errorf("expected 5 clock events, got %d", count)
	}

	s.ScheduleEvent(GameCycle, 1)
	s.ScheduleEvent(GameCycle, 3)
	s.DescheduleEvent(Clock)
	if next, _ := s.Next(); next != 3 {
		t.Errorf("expected the moved event in 3 ticks, got %d (%s)", next, s)
	}
}
