package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"storycast/internal/audio"
	"storycast/internal/domain"
	"storycast/internal/retry"
)

// MaxSpeechInput is the longest text sent in a single synthesis call.
const MaxSpeechInput = 4096

// SpeechSynthesizer turns segments into encoded audio, one provider call at a
// time and in order.
type SpeechSynthesizer struct {
	provider SpeechProvider
	exec     *retry.Executor
	logger   *slog.Logger
}

func NewSpeechSynthesizer(provider SpeechProvider, exec *retry.Executor, logger *slog.Logger) *SpeechSynthesizer {
	return &SpeechSynthesizer{
		provider: provider,
		exec:     exec,
		logger:   logger.With("component", "speech"),
	}
}

// Synthesize renders one segment. Text longer than MaxSpeechInput is split on
// sentence boundaries and the encoded chunks are joined back to back.
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, seg domain.AudioSegment) ([]byte, error) {
	chunks := SplitText(seg.Text, MaxSpeechInput)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("segment for %q has no text", seg.Speaker)
	}

	parts := make([][]byte, 0, len(chunks))
	for _, chunk := range chunks {
		req := domain.SpeechRequest{Text: chunk, Voice: seg.Voice, Speed: seg.Speed}
		data, err := retry.Execute(ctx, s.exec, func(ctx context.Context) ([]byte, error) {
			return s.provider.Synthesize(ctx, req)
		})
		if err != nil {
			return nil, err
		}
		parts = append(parts, data)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return audio.Concat(parts), nil
}

// SynthesizeAll renders segments sequentially, preserving order.
func (s *SpeechSynthesizer) SynthesizeAll(ctx context.Context, segments []domain.AudioSegment) ([][]byte, error) {
	out := make([][]byte, 0, len(segments))
	for i, seg := range segments {
		data, err := s.Synthesize(ctx, seg)
		if err != nil {
			return nil, fmt.Errorf("synthesize segment %d (%s): %w", i+1, seg.Speaker, err)
		}
		s.logger.Debug("segment synthesized",
			"index", i,
			"speaker", seg.Speaker,
			"voice", seg.Voice,
			"bytes", len(data),
		)
		out = append(out, data)
	}
	return out, nil
}

// ScriptSegments maps every script line to a segment voiced per speaker.
// Consecutive lines by the same speaker are merged into one turn.
func ScriptSegments(script *domain.Script, voices domain.VoiceConfig) []domain.AudioSegment {
	var segments []domain.AudioSegment
	for _, line := range script.Lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		if n := len(segments); n > 0 && segments[n-1].Speaker == line.Speaker {
			segments[n-1].Text += "\n\n" + text
			continue
		}
		segments = append(segments, domain.AudioSegment{
			Speaker: line.Speaker,
			Voice:   voices.VoiceFor(line.Speaker),
			Text:    text,
			Speed:   voices.Speed,
		})
	}
	return segments
}

// PauseFor returns the silence inserted between speaker turns of format.
func PauseFor(format domain.Format) float64 {
	switch format {
	case domain.FormatInterview:
		return audio.PauseInterview
	case domain.FormatDebate:
		return audio.PauseDebate
	case domain.FormatAdventure:
		return audio.PauseNodeBoundary
	}
	return audio.PauseNarrative
}

// SplitText breaks text into chunks of at most limit bytes, preferring
// sentence ends, then whitespace.
func SplitText(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for len(text) > limit {
		cut := splitPoint(text, limit)
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// splitPoint picks where to cut text, which is longer than limit.
func splitPoint(text string, limit int) int {
	window := text[:limit]
	if i := strings.LastIndexAny(window, ".!?\n"); i >= limit/2 {
		return i + 1
	}
	if i := strings.LastIndexFunc(window, unicode.IsSpace); i > 0 {
		return i
	}
	cut := limit
	for cut > 1 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}
