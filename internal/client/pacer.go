package client

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Pacer enforces a minimum delay between upstream requests. It is owned
// by the Client rather than living in package state so tests can inject
// a fake clock and run in parallel.
type Pacer struct {
	mu    sync.Mutex
	delay time.Duration
	last  time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer creates a pacer with the given minimum inter-request delay
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		delay: delay,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Wait blocks until at least the configured delay has elapsed since the
// previous call, then records the new request time.
func (p *Pacer) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := p.now().Sub(p.last)
	if !p.last.IsZero() && elapsed < p.delay {
		wait := p.delay - elapsed
		log.Debug().Dur("wait", wait).Msg("Rate limiting upstream request")
		p.sleep(wait)
	}
	p.last = p.now()
}
