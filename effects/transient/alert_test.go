package transient_test

import (
	"testing"
	"time"

	"github.com/on-the-ground/viewstate/effects/transient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlerts_ManualDismissBeforeNaturalExpiry(t *testing.T) {
	ctx, manual := withHandlers(t)
	a := transient.NewAlerts(ctx)
	defer a.Close()

	id := a.Show("Saved", transient.SeveritySuccess)
	active, ok := a.Active()
	require.True(t, ok)
	assert.Equal(t, id, active.ID)
	assert.Equal(t, transient.Alert{Message: "Saved", Severity: transient.SeveritySuccess}, active.Payload)

	manual.Advance(500 * time.Millisecond)
	assert.True(t, a.Hide())
	_, ok = a.Active()
	assert.False(t, ok)
	assert.Zero(t, manual.Pending())

	// the natural expiry at 3000ms has nothing left to remove
	manual.Advance(2500 * time.Millisecond)
	assert.False(t, a.Hide())
	assert.False(t, a.Dismiss(id))
}

func TestAlerts_ExpireAfterAlertDuration(t *testing.T) {
	ctx, manual := withHandlers(t)
	a := transient.NewAlerts(ctx)
	defer a.Close()

	a.Show("Heads up", "")
	active, ok := a.Active()
	require.True(t, ok)
	assert.Equal(t, transient.SeverityInfo, active.Payload.Severity)
	assert.Equal(t, transient.AlertDuration, active.Window.Duration())

	manual.Advance(transient.AlertDuration - time.Millisecond)
	_, ok = a.Active()
	assert.True(t, ok)

	manual.Advance(time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := a.Active()
		return !ok
	}, waitFor, tick)
}

func TestAlerts_NewAlertReplacesOld(t *testing.T) {
	ctx, manual := withHandlers(t)
	a := transient.NewAlerts(ctx)
	defer a.Close()

	old := a.Show("first", transient.SeverityWarning)
	manual.Advance(2 * time.Second)
	latest := a.Show("second", transient.SeverityError)

	active, ok := a.Active()
	require.True(t, ok)
	assert.Equal(t, latest, active.ID)
	assert.Equal(t, 1, manual.Pending())

	// the replaced alert's timer would have fired here
	manual.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)
	active, ok = a.Active()
	require.True(t, ok)
	assert.Equal(t, latest, active.ID)
	assert.False(t, a.Dismiss(old))
}
