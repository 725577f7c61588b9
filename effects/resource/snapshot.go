package resource

import (
	"errors"
	"reflect"

	"github.com/on-the-ground/viewstate/effects/task"
)

// Status is the phase of a resource. Exactly one holds at any time.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is what the presentation layer renders: {data, isLoading, error}.
// It is always copied as a whole.
type Snapshot[T any] struct {
	// Data is the last successfully produced value. It survives reloads and
	// failures; HasData is false until the first success.
	Data    T
	HasData bool

	Status Status

	// Error is non-empty exactly when Status is StatusFailed.
	Error string

	// Generation counts dependency epochs; it increases every time a new
	// producer invocation starts.
	Generation uint64
}

func (s Snapshot[T]) IsLoading() bool {
	return s.Status == StatusLoading
}

// FallbackErrorMessage describes failures that carry no message of their own.
const FallbackErrorMessage = "an error occurred"

func describe(err error) string {
	if errors.Is(err, task.ErrPanicked) {
		return FallbackErrorMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackErrorMessage
}

// depsChanged compares two dependency lists element-wise.
// Values of non-comparable types never compare equal.
func depsChanged(prev, next []any) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if !sameDep(prev[i], next[i]) {
			return true
		}
	}
	return false
}

func sameDep(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	// structs holding non-comparable values in interface fields panic on ==
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
