package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives a Pacer without real sleeps
type fakeClock struct {
	now    time.Time
	slept  []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func newTestPacer(delay time.Duration) (*Pacer, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	p := NewPacer(delay)
	p.now = clock.Now
	p.sleep = clock.Sleep
	return p, clock
}

func TestPacer_FirstRequestDoesNotWait(t *testing.T) {
	p, clock := newTestPacer(2 * time.Second)

	p.Wait()
	assert.Empty(t, clock.slept)
}

func TestPacer_EnforcesDelayBetweenRequests(t *testing.T) {
	p, clock := newTestPacer(2 * time.Second)

	p.Wait()
	clock.now = clock.now.Add(500 * time.Millisecond)
	p.Wait()

	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, clock.slept)
}

func TestPacer_NoWaitAfterDelayElapsed(t *testing.T) {
	p, clock := newTestPacer(2 * time.Second)

	p.Wait()
	clock.now = clock.now.Add(3 * time.Second)
	p.Wait()

	assert.Empty(t, clock.slept)
}
