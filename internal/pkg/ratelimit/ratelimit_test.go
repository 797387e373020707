package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllow(t *testing.T) {
	current := time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(time.Minute)
	l.now = func() time.Time { return current }

	_, ok := l.Allow("req:1")
	assert.True(t, ok)

	current = current.Add(20 * time.Second)
	wait, ok := l.Allow("req:1")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, wait)

	_, ok = l.Allow("req:2")
	assert.True(t, ok, "keys are limited independently")

	current = current.Add(41 * time.Second)
	_, ok = l.Allow("req:1")
	assert.True(t, ok)
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0)

	for i := 0; i < 3; i++ {
		_, ok := l.Allow("k")
		assert.True(t, ok)
	}
}

func TestLimiterReset(t *testing.T) {
	l := NewLimiter(time.Hour)

	_, ok := l.Allow("k")
	assert.True(t, ok)
	_, ok = l.Allow("k")
	assert.False(t, ok)

	l.Reset("k")
	_, ok = l.Allow("k")
	assert.True(t, ok)
}
