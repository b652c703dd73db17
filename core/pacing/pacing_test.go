package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFixed_DisabledForNonPositiveInterval(t *testing.T) {
	assert.Nil(t, NewFixed(0))
	assert.Nil(t, NewFixed(-time.Second))
}

func TestFixed_FirstWaitIsImmediate(t *testing.T) {
	p := NewFixed(time.Hour)
	assert.NotNil(t, p)

	start := time.Now()
	assert.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestFixed_WaitHonorsCancellation(t *testing.T) {
	p := NewFixed(time.Hour)
	assert.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Wait(ctx)
	assert.Error(t, err, "second wait must not outlive the context")
}

func TestFixed_EnforcesInterval(t *testing.T) {
	interval := 30 * time.Millisecond
	p := NewFixed(interval)

	assert.NoError(t, p.Wait(context.Background()))
	start := time.Now()
	assert.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), interval/2)
}
