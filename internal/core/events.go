package core

import (
	"time"

	"github.com/lumipallolabs/pollwatch/internal/model"
)

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// WatchStartedEvent is emitted when an observer starts polling
type WatchStartedEvent struct {
	Target   string
	Interval time.Duration
}

func (WatchStartedEvent) isEvent() {}

// WatchStoppedEvent is emitted when polling stops, either paused or for good
type WatchStoppedEvent struct {
	Paused bool
}

func (WatchStoppedEvent) isEvent() {}

// ChangeDetectedEvent is emitted for every change the observer reports
type ChangeDetectedEvent struct {
	Change model.Change
}

func (ChangeDetectedEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
