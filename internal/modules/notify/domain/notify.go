package domain

import (
	"errors"
	"fmt"

	apperrors "focuspro/internal/platform/errors"
)

// Event names a moment the timers announce to notifier plugins.
type Event string

const (
	EventSessionCompleted Event = "session_completed"
	EventDailyGoal        Event = "daily_goal"
	EventTimerFinished    Event = "timer_finished"
)

var ErrPluginTimeout = errors.New("notifier plugin timed out")

// Manifest describes one installed notifier plugin. Binary paths are resolved
// relative to the data directory by the store; SHA256 is optional but when
// present must match the binary on disk before the plugin is launched.
type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Binary  string   `json:"binary"`
	SHA256  string   `json:"sha256,omitempty"`
	Enabled bool     `json:"enabled"`
	Events  []string `json:"events"`
}

// Metadata is what a running plugin reports about itself.
type Metadata struct {
	Name    string
	Version string
	Events  []string
}

// Notification is one rendered event handed to a plugin.
type Notification struct {
	Event Event
	Title string
	Body  string
}

// DoctorReport is one plugin's health check outcome.
type DoctorReport struct {
	Name   string
	OK     bool
	Detail string
}

func KnownEvent(name string) bool {
	switch Event(name) {
	case EventSessionCompleted, EventDailyGoal, EventTimerFinished:
		return true
	}
	return false
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: manifest missing name", apperrors.ErrInvalidInput)
	}
	if m.Binary == "" {
		return fmt.Errorf("%w: manifest %q missing binary", apperrors.ErrInvalidInput, m.Name)
	}
	for _, event := range m.Events {
		if !KnownEvent(event) {
			return fmt.Errorf("%w: manifest %q subscribes to unknown event %q", apperrors.ErrInvalidInput, m.Name, event)
		}
	}
	return nil
}

// SubscribedTo reports whether the manifest asked for the event. An empty
// event list means all events.
func (m Manifest) SubscribedTo(event Event) bool {
	if len(m.Events) == 0 {
		return true
	}
	for _, e := range m.Events {
		if Event(e) == event {
			return true
		}
	}
	return false
}
