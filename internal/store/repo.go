package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// KVRepo is a string-keyed blob store, the local stand-in for browser
// storage. Every Put fully overwrites the previous value.
type KVRepo interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// EventKind identifies what happened to the progress record.
type EventKind string

const (
	EventLevelSelected   EventKind = "level_selected"
	EventLessonCompleted EventKind = "lesson_completed"
	EventProgressReset   EventKind = "progress_reset"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProgressEventData captures one change to the progress record.
type ProgressEventData struct {
	Kind      EventKind
	Level     string // level after the change
	FromLevel string // previous level, for level changes
	LessonID  string // completed lesson, or the lesson the learner was on when switching level
	Timestamp time.Time
}

// ProgressEvent is a stored ProgressEventData.
type ProgressEvent struct {
	ID       string
	Sequence int64
	ProgressEventData
}

// EventRepo provides append and query access to progress events.
type EventRepo interface {
	// AppendProgressEvent records a progress change.
	AppendProgressEvent(ctx context.Context, data ProgressEventData) error

	// ProgressEvents returns matching events, newest first.
	ProgressEvents(ctx context.Context, opts QueryOpts) ([]ProgressEvent, error)
}
