// Package retry wraps calls to unreliable, rate-limited providers with
// exponential backoff, jitter and error classification.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"storycast/internal/provider"
)

// Policy configures how many times and how patiently a call is retried.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	// MaxDelay caps the exponential part of the wait. Zero means no cap.
	MaxDelay time.Duration
	// ShouldRetry overrides IsRetryable when set.
	ShouldRetry func(error) bool
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   3,
		InitialDelay: 1000 * time.Millisecond,
		MaxDelay:     30000 * time.Millisecond,
	}
}

// TextPolicy is used for content-generation calls.
func TextPolicy() Policy {
	return DefaultPolicy()
}

// SpeechPolicy is used for speech-synthesis calls, which are expensive enough
// to deserve extra patience.
func SpeechPolicy() Policy {
	return Policy{
		MaxRetries:   5,
		InitialDelay: 2000 * time.Millisecond,
		MaxDelay:     60000 * time.Millisecond,
	}
}

// jitterFraction is the upper bound of random jitter added to each delay.
const jitterFraction = 0.1

// maxBackoffMillis bounds an uncapped backoff well below time.Duration overflow.
const maxBackoffMillis = math.MaxInt64 / int64(time.Millisecond) / 4

type EventType string

const (
	EventRetry     EventType = "retry"
	EventExhausted EventType = "exhausted"
)

// Event describes one retry decision. Observers receive it synchronously.
type Event struct {
	Type       EventType
	Operation  string
	Attempt    int
	MaxRetries int
	Delay      time.Duration
	Message    string
	Err        error
}

type Observer func(Event)

type Option func(*Executor)

// WithName labels events emitted by the executor.
func WithName(name string) Option {
	return func(e *Executor) { e.name = name }
}

func WithObserver(o Observer) Option {
	return func(e *Executor) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithSleep replaces the context-aware sleep used between attempts.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Executor) { e.sleep = fn }
}

// WithJitter replaces the jitter source; fn must return a value in [0, 1).
func WithJitter(fn func() float64) Option {
	return func(e *Executor) { e.jitter = fn }
}

// Executor runs operations under a Policy. It holds no per-call state and is
// safe for concurrent use.
type Executor struct {
	policy    Policy
	name      string
	observers []Observer
	sleep     func(ctx context.Context, d time.Duration) error
	jitter    func() float64
}

func New(policy Policy, opts ...Option) *Executor {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	e := &Executor{
		policy: policy,
		sleep:  sleepContext,
		jitter: rand.Float64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Policy() Policy {
	return e.policy
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// retry budget is spent.
func (e *Executor) Do(ctx context.Context, op func(ctx context.Context) error) error {
	_, err := Execute(ctx, e, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Execute runs op under the executor's policy and returns its first
// successful result. Non-retryable errors are returned unchanged; exhausting
// the budget returns an *ExhaustedError wrapping the last failure.
func Execute[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil || !e.shouldRetry(err) {
			return zero, err
		}
		if attempt >= e.policy.MaxRetries {
			break
		}

		delay := e.Backoff(attempt)
		e.emit(Event{
			Type:       EventRetry,
			Operation:  e.name,
			Attempt:    attempt + 1,
			MaxRetries: e.policy.MaxRetries,
			Delay:      delay,
			Message:    provider.Message(err),
			Err:        err,
		})

		if err := e.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	e.emit(Event{
		Type:       EventExhausted,
		Operation:  e.name,
		Attempt:    e.policy.MaxRetries,
		MaxRetries: e.policy.MaxRetries,
		Message:    provider.Message(lastErr),
		Err:        lastErr,
	})
	return zero, &ExhaustedError{Retries: e.policy.MaxRetries, Last: lastErr}
}

// Backoff returns the wait before retry attempt (0-indexed):
// min(initial*2^attempt, max) plus up to 10% jitter, in whole milliseconds.
// Without a MaxDelay the wait keeps doubling up to maxBackoffMillis.
func (e *Executor) Backoff(attempt int) time.Duration {
	initial := e.policy.InitialDelay.Milliseconds()
	maxDelay := e.policy.MaxDelay.Milliseconds()
	if maxDelay <= 0 || maxDelay > maxBackoffMillis {
		maxDelay = maxBackoffMillis
	}

	base := initial
	for i := 0; i < attempt && base < maxDelay; i++ {
		base *= 2
	}
	if base > maxDelay {
		base = maxDelay
	}

	jitter := int64(float64(base) * jitterFraction * e.jitter())
	return time.Duration(base+jitter) * time.Millisecond
}

func (e *Executor) shouldRetry(err error) bool {
	if e.policy.ShouldRetry != nil {
		return e.policy.ShouldRetry(err)
	}
	return IsRetryable(err)
}

func (e *Executor) emit(ev Event) {
	for _, o := range e.observers {
		o(ev)
	}
}

// ExhaustedError is returned once every retry has failed.
type ExhaustedError struct {
	Retries int
	Last    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d retries: %s", e.Retries, provider.Message(e.Last))
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
