package api

import (
	"context"
	"time"
)

// Stream is a lazily-started asynchronous sequence of values.
//
// Invoking the stream starts production and returns the channel values are
// delivered on. The channel is closed when the sequence is exhausted; an
// infinite stream never closes it. Production must stop when ctx is
// cancelled, closing the channel.
type Stream[T any] func(ctx context.Context) <-chan T

// Values returns a finite stream that yields the given values in order and
// then finishes.
func Values[T any](values ...T) Stream[T] {
	return func(ctx context.Context) <-chan T {
		out := make(chan T)
		go func() {
			defer close(out)
			for _, v := range values {
				select {
				case <-ctx.Done():
					return
				case out <- v:
				}
			}
		}()
		return out
	}
}

// Chan adapts an existing receive channel into a Stream. The stream finishes
// when ch is closed; cancelling ctx stops delivery without draining ch.
func Chan[T any](ch <-chan T) Stream[T] {
	return func(ctx context.Context) <-chan T {
		out := make(chan T)
		go func() {
			defer close(out)
			for {
				select {
				case <-ctx.Done():
					return
				case v, ok := <-ch:
					if !ok {
						return
					}
					select {
					case <-ctx.Done():
						return
					case out <- v:
					}
				}
			}
		}()
		return out
	}
}

// Ticks returns an infinite stream that yields the current time every
// interval until its context is cancelled.
func Ticks(interval time.Duration) Stream[time.Time] {
	return func(ctx context.Context) <-chan time.Time {
		out := make(chan time.Time)
		go func() {
			defer close(out)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case t := <-ticker.C:
					select {
					case <-ctx.Done():
						return
					case out <- t:
					}
				}
			}
		}()
		return out
	}
}
