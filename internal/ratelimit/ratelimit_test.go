package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Allow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	m := NewMemory(2, time.Minute)
	m.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := m.Allow(ctx, "login:a@campus.edu")
		assert.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := m.Allow(ctx, "login:a@campus.edu")
	assert.False(t, ok)

	ok, _ = m.Allow(ctx, "login:b@campus.edu")
	assert.True(t, ok, "keys are independent")

	now = now.Add(61 * time.Second)
	ok, _ = m.Allow(ctx, "login:a@campus.edu")
	assert.True(t, ok, "window resets")
}

func TestMemory_ZeroLimitDisables(t *testing.T) {
	m := NewMemory(0, time.Minute)
	for i := 0; i < 50; i++ {
		ok, err := m.Allow(context.Background(), "k")
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestNop(t *testing.T) {
	ok, err := Nop{}.Allow(context.Background(), "k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, Nop{}.Close())
}
