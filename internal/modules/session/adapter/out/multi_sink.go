package out

import (
	sessionout "focuspro/internal/modules/session/port/out"
)

// MultiSink fans events out to several sinks in order.
type MultiSink []sessionout.EventSink

func (m MultiSink) Tick(remainingSeconds int) {
	for _, s := range m {
		s.Tick(remainingSeconds)
	}
}

func (m MultiSink) Completed(durationMin int) {
	for _, s := range m {
		s.Completed(durationMin)
	}
}

func (m MultiSink) GoalReached(goalHours int) {
	for _, s := range m {
		s.GoalReached(goalHours)
	}
}

var _ sessionout.EventSink = (MultiSink)(nil)
