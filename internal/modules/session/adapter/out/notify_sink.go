package out

import (
	"context"
	"fmt"

	notifydomain "focuspro/internal/modules/notify/domain"
	notifyin "focuspro/internal/modules/notify/port/in"
	sessionout "focuspro/internal/modules/session/port/out"
)

// NotifySink forwards session milestones to the notifier plugins. Ticks are
// deliberately not forwarded; launching a plugin once a second would be
// absurd.
type NotifySink struct {
	notify notifyin.Usecase
}

func NewNotifySink(notify notifyin.Usecase) NotifySink {
	return NotifySink{notify: notify}
}

func (s NotifySink) Tick(int) {}

func (s NotifySink) Completed(durationMin int) {
	s.notify.Dispatch(context.Background(), notifydomain.Notification{
		Event: notifydomain.EventSessionCompleted,
		Title: "Session complete",
		Body:  fmt.Sprintf("You focused for %d minutes.", durationMin),
	})
}

func (s NotifySink) GoalReached(goalHours int) {
	s.notify.Dispatch(context.Background(), notifydomain.Notification{
		Event: notifydomain.EventDailyGoal,
		Title: "Daily goal reached",
		Body:  fmt.Sprintf("You hit your %d hour goal today.", goalHours),
	})
}

var _ sessionout.EventSink = NotifySink{}
