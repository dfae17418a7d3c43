package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpening(t *testing.T) {
	b := New("stats-cache", WithFailureThreshold(3))
	assert.Equal(t, "stats-cache", b.Name())
	assert.Equal(t, StateClosed, b.State())

	for i := 0; i < 2; i++ {
		fallback, change := b.RecordFailure()
		assert.False(t, fallback)
		assert.False(t, change.Opened)
	}
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen(), "a success clears the failure streak")

	fallback, change := b.RecordFailure()
	assert.True(t, fallback)
	assert.True(t, change.Opened)

	fallback, change = b.RecordFailure()
	assert.True(t, fallback)
	assert.False(t, change.Opened, "already open")
}

func TestBreakerClosing(t *testing.T) {
	b := New("stats-cache", WithFailureThreshold(1), WithSuccessThreshold(2))
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	primary, _ := b.RecordSuccess()
	assert.False(t, primary)
	b.RecordFailure()
	primary, _ = b.RecordSuccess()
	assert.False(t, primary, "a failure restarts the success streak")

	primary, change := b.RecordSuccess()
	assert.True(t, primary)
	assert.True(t, change.Closed)
	assert.Equal(t, StateClosed, b.State())

	b.RecordFailure()
	b.Reset()
	assert.False(t, b.IsOpen())
}

func TestBreakerAllowProbesAfterCooldown(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	b := New("redis", WithFailureThreshold(1), WithCooldown(time.Minute), WithClock(func() time.Time { return now }))

	assert.True(t, b.Allow())
	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(time.Minute)
	assert.True(t, b.Allow(), "one probe after the cooldown")
	assert.False(t, b.Allow(), "the probe claims the window")
}
