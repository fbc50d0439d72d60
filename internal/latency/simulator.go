// Package latency adds the fixed round-trip delay every facade call waits on.
package latency

import (
	"context"
	"garage/internal/structures"
	"time"
)

const DefaultDelay = 300 * time.Millisecond

type SimulatorInterface interface {
	Wait(ctx context.Context) error
	Delay() time.Duration
}

type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	if delay < 0 {
		delay = 0
	}
	return &Simulator{delay: delay}
}

func NewSimulatorFromConfig(conf *structures.Config) *Simulator {
	return NewSimulator(conf.Latency.Delay)
}

func (s *Simulator) Delay() time.Duration {
	return s.delay
}

// Wait blocks for the configured delay. Cancelling ctx only cuts the wait short.
func (s *Simulator) Wait(ctx context.Context) error {
	if s.delay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do waits, then runs fn to completion; fn sees a context that is no longer cancellable.
func Do[T any](ctx context.Context, sim SimulatorInterface, fn func(ctx context.Context) (T, error)) (T, error) {
	if err := sim.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return fn(context.WithoutCancel(ctx))
}

// Run is Do for calls with no result.
func Run(ctx context.Context, sim SimulatorInterface, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, sim, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
