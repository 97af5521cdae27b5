package utils

import (
	"errors"
	"sync"
	"time"
)

// Breaker guards a flaky collaborator (here: the view cache's Redis) so that
// repeated failures stop hitting it for a cool-down period.
type Breaker struct {
	name         string
	maxRequests  uint32
	interval     time.Duration
	timeout      time.Duration
	failureRatio float64

	mu         sync.Mutex
	state      BreakerState
	generation uint64
	counts     breakerCounts
	expiry     time.Time
}

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerHalfOpen
	BreakerOpen
)

type breakerCounts struct {
	requests  uint32
	successes uint32
	failures  uint32
}

var ErrBreakerOpen = errors.New("circuit breaker is open")

func NewBreaker(name string) *Breaker {
	return &Breaker{
		name:         name,
		maxRequests:  5,
		interval:     60 * time.Second,
		timeout:      30 * time.Second,
		failureRatio: 0.6,
		state:        BreakerClosed,
	}
}

// Execute runs fn unless the breaker is open. A nil Breaker always runs fn.
func (b *Breaker) Execute(fn func() error) error {
	if b == nil {
		return fn()
	}

	generation, err := b.beforeRequest()
	if err != nil {
		return err
	}

	err = fn()
	b.afterRequest(generation, err == nil)
	return err
}

// State reports the current state, advancing open -> half-open when the
// cool-down expired.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, _ := b.currentState(time.Now())
	return state
}

func (b *Breaker) beforeRequest() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	state, generation := b.currentState(now)

	if state == BreakerOpen {
		return generation, ErrBreakerOpen
	}
	if state == BreakerHalfOpen && b.counts.requests >= b.maxRequests {
		return generation, ErrBreakerOpen
	}

	b.counts.requests++
	return generation, nil
}

func (b *Breaker) afterRequest(before uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	state, generation := b.currentState(now)
	if generation != before {
		return
	}

	if success {
		b.counts.successes++
		if state == BreakerHalfOpen {
			b.toState(BreakerClosed, now)
		}
		return
	}

	b.counts.failures++
	if state == BreakerHalfOpen || b.readyToTrip() {
		b.toState(BreakerOpen, now)
	}
}

func (b *Breaker) readyToTrip() bool {
	return b.counts.requests >= b.maxRequests &&
		float64(b.counts.failures)/float64(b.counts.requests) >= b.failureRatio
}

func (b *Breaker) currentState(now time.Time) (BreakerState, uint64) {
	switch b.state {
	case BreakerClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.newGeneration(now)
		}
	case BreakerOpen:
		if b.expiry.Before(now) {
			b.toState(BreakerHalfOpen, now)
		}
	}
	return b.state, b.generation
}

func (b *Breaker) toState(state BreakerState, now time.Time) {
	b.state = state
	b.newGeneration(now)
}

func (b *Breaker) newGeneration(now time.Time) {
	b.generation++
	b.counts = breakerCounts{}

	switch b.state {
	case BreakerClosed:
		b.expiry = now.Add(b.interval)
	case BreakerOpen:
		b.expiry = now.Add(b.timeout)
	default:
		b.expiry = time.Time{}
	}
}
