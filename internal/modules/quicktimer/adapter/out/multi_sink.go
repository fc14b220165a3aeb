package out

import (
	quickout "focuspro/internal/modules/quicktimer/port/out"
)

// MultiSink fans events out to several sinks in order.
type MultiSink []quickout.FinishSink

func (m MultiSink) Tick(remainingSeconds int) {
	for _, s := range m {
		s.Tick(remainingSeconds)
	}
}

func (m MultiSink) Finished(totalSeconds int) {
	for _, s := range m {
		s.Finished(totalSeconds)
	}
}

var _ quickout.FinishSink = (MultiSink)(nil)
