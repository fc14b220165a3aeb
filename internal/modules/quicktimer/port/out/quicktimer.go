package out

// FinishSink receives quick timer events. Tick fires once per running second,
// Finished exactly once per natural expiry.
type FinishSink interface {
	Tick(remainingSeconds int)
	Finished(totalSeconds int)
}

type NopSink struct{}

func (NopSink) Tick(int)     {}
func (NopSink) Finished(int) {}
