package out

import (
	"context"
	"fmt"

	notifydomain "focuspro/internal/modules/notify/domain"
	notifyin "focuspro/internal/modules/notify/port/in"
	quicktimerout "focuspro/internal/modules/quicktimer/port/out"
)

// NotifySink announces quick timer expiry to the notifier plugins.
type NotifySink struct {
	notify notifyin.Usecase
}

func NewNotifySink(notify notifyin.Usecase) NotifySink {
	return NotifySink{notify: notify}
}

func (s NotifySink) Tick(int) {}

func (s NotifySink) Finished(totalSeconds int) {
	s.notify.Dispatch(context.Background(), notifydomain.Notification{
		Event: notifydomain.EventTimerFinished,
		Title: "Timer finished",
		Body:  fmt.Sprintf("Your %d second timer is up.", totalSeconds),
	})
}

var _ quicktimerout.FinishSink = NotifySink{}
