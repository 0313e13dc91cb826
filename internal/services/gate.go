package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate spaces out outbound requests. Wait blocks until the next request may be sent.
type Gate interface {
	Wait(ctx context.Context) error
}

// GateFunc adapts a function to [Gate].
type GateFunc func(ctx context.Context) error

func (f GateFunc) Wait(ctx context.Context) error {
	return f(ctx)
}

// IntervalGate lets one request through per interval, backed by a [rate.Limiter] with a burst of one.
//
// The first Wait returns immediately.
type IntervalGate struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewIntervalGate creates an [IntervalGate]. A non-positive interval never blocks.
func NewIntervalGate(interval time.Duration) *IntervalGate {
	return &IntervalGate{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// NewRateGate creates an [IntervalGate] allowing perSecond requests each second.
func NewRateGate(perSecond float64) *IntervalGate {
	if perSecond <= 0 {
		return NewIntervalGate(0)
	}
	return NewIntervalGate(time.Duration(float64(time.Second) / perSecond))
}

// Wait blocks until the interval since the previous request has elapsed or ctx is done.
func (g *IntervalGate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}

// Interval returns the minimum spacing between requests.
func (g *IntervalGate) Interval() time.Duration {
	return g.interval
}
