package transient

import (
	"context"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert is the payload of an alert banner.
type Alert struct {
	Message  string
	Severity Severity
}

// Alerts holds at most one active alert. Showing a new alert replaces the
// current one and cancels its pending expiry.
type Alerts struct {
	q *Queue[Alert]
}

func NewAlerts(ctx context.Context) *Alerts {
	return NewAlertsWithDuration(ctx, AlertDuration)
}

// NewAlertsWithDuration is NewAlerts with a configured lifetime.
func NewAlertsWithDuration(ctx context.Context, d time.Duration) *Alerts {
	return &Alerts{q: New[Alert](ctx, Config{Kind: KindAlert, TTL: d, Slots: 1})}
}

// Show makes message the active alert. An empty severity means info.
func (a *Alerts) Show(message string, severity Severity) string {
	if severity == "" {
		severity = SeverityInfo
	}
	return a.q.Add(Alert{Message: message, Severity: severity})
}

// Hide clears the active alert. It reports false if none was active.
func (a *Alerts) Hide() bool {
	tok, ok := a.Active()
	if !ok {
		return false
	}
	return a.q.Dismiss(tok.ID)
}

// Dismiss hides the alert with the given id if it is still the active one.
func (a *Alerts) Dismiss(id string) bool {
	return a.q.Dismiss(id)
}

func (a *Alerts) Active() (Token[Alert], bool) {
	tokens := a.q.Tokens()
	if len(tokens) == 0 {
		return Token[Alert]{}, false
	}
	return tokens[len(tokens)-1], true
}

func (a *Alerts) OnChange(fn func(active []Token[Alert])) (unsubscribe func()) {
	return a.q.OnChange(fn)
}

func (a *Alerts) Close() {
	a.q.Close()
}
