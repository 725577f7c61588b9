package transient

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Kind names the visual effect a token drives.
type Kind string

const (
	KindRipple Kind = "ripple"
	KindAlert  Kind = "alert"
)

const (
	RippleDuration = 600 * time.Millisecond
	AlertDuration  = 3000 * time.Millisecond
)

// Token is one short-lived unit of visual feedback state.
type Token[P any] struct {
	ID        string
	Kind      Kind
	Payload   P
	CreatedAt time.Time
	// Window is [CreatedAt, CreatedAt+TTL), the span during which the
	// token is expected to be rendered.
	Window timespan.TimeSpan
}

// ExpiresAt is the end of the token's window.
func (t Token[P]) ExpiresAt() time.Time {
	return t.Window.End()
}
