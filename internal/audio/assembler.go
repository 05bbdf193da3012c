// Package audio concatenates synthesized speech segments into one playable
// buffer, inserting silence between them.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Pause conventions between segments, in seconds.
const (
	PauseNarrative    = 0.0
	PauseInterview    = 0.3
	PauseDebate       = 0.5
	PauseNodeBoundary = 0.5
)

const ContentTypeMP3 = "audio/mpeg"

var (
	ErrNoSegments   = errors.New("no audio segments to assemble")
	ErrEmptySegment = errors.New("audio segment is empty")
)

// Joiner is the mechanism that produces silence and joins encoded buffers
// without re-encoding them.
type Joiner interface {
	Silence(ctx context.Context, seconds float64) ([]byte, error)
	Join(ctx context.Context, inputs [][]byte) ([]byte, error)
}

type Option func(*Assembler)

// WithFallbackObserver is called whenever AssembleSafe degrades to plain
// concatenation.
func WithFallbackObserver(fn func(err error)) Option {
	return func(a *Assembler) { a.onFallback = fn }
}

type Assembler struct {
	joiner     Joiner
	logger     *slog.Logger
	onFallback func(err error)
}

func NewAssembler(joiner Joiner, logger *slog.Logger, opts ...Option) *Assembler {
	a := &Assembler{
		joiner: joiner,
		logger: logger.With("component", "audio-assembler"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble interleaves one silence buffer of pauseSeconds between every pair
// of segments and joins the result losslessly.
func (a *Assembler) Assemble(ctx context.Context, segments [][]byte, pauseSeconds float64) ([]byte, error) {
	if err := checkSegments(segments); err != nil {
		return nil, err
	}
	if a.joiner == nil {
		return nil, errors.New("no audio joiner configured")
	}

	inputs := segments
	if pauseSeconds > 0 && len(segments) > 1 {
		silence, err := a.joiner.Silence(ctx, pauseSeconds)
		if err != nil {
			return nil, fmt.Errorf("generate silence: %w", err)
		}
		inputs = Interleave(segments, silence)
	}

	out, err := a.joiner.Join(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("join %d inputs: %w", len(inputs), err)
	}
	return out, nil
}

// AssembleSafe tries Assemble and falls back to byte concatenation of the
// raw segments, without silence, when the join mechanism fails. Invalid input
// is still an error.
func (a *Assembler) AssembleSafe(ctx context.Context, segments [][]byte, pauseSeconds float64) ([]byte, error) {
	if err := checkSegments(segments); err != nil {
		return nil, err
	}

	out, err := a.Assemble(ctx, segments, pauseSeconds)
	if err == nil {
		return out, nil
	}

	a.logger.Warn("audio join failed, falling back to byte concatenation",
		"segments", len(segments),
		"pause_seconds", pauseSeconds,
		"error", err,
	)
	if a.onFallback != nil {
		a.onFallback(err)
	}
	return Concat(segments), nil
}

// Interleave places silence between every pair of segments: n segments
// produce 2n-1 inputs.
func Interleave(segments [][]byte, silence []byte) [][]byte {
	if len(segments) == 0 {
		return nil
	}
	out := make([][]byte, 0, 2*len(segments)-1)
	for i, seg := range segments {
		if i > 0 {
			out = append(out, silence)
		}
		out = append(out, seg)
	}
	return out
}

// Concat joins buffers byte for byte.
func Concat(segments [][]byte) []byte {
	size := 0
	for _, seg := range segments {
		size += len(seg)
	}
	out := make([]byte, 0, size)
	for _, seg := range segments {
		out = append(out, seg...)
	}
	return out
}

func checkSegments(segments [][]byte) error {
	if len(segments) == 0 {
		return ErrNoSegments
	}
	for i, seg := range segments {
		if len(seg) == 0 {
			return fmt.Errorf("segment %d: %w", i, ErrEmptySegment)
		}
	}
	return nil
}
