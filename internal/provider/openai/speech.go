package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	openaigo "github.com/sashabaranov/go-openai"

	"storycast/internal/domain"
)

const (
	MinSpeed = 0.25
	MaxSpeed = 4.0
)

var voices = map[string]openaigo.SpeechVoice{
	string(openaigo.VoiceAlloy):   openaigo.VoiceAlloy,
	string(openaigo.VoiceEcho):    openaigo.VoiceEcho,
	string(openaigo.VoiceFable):   openaigo.VoiceFable,
	string(openaigo.VoiceOnyx):    openaigo.VoiceOnyx,
	string(openaigo.VoiceNova):    openaigo.VoiceNova,
	string(openaigo.VoiceShimmer): openaigo.VoiceShimmer,
}

var (
	ErrUnknownVoice = errors.New("unknown voice")
	ErrSpeedRange   = errors.New("speed out of range")
	ErrEmptyText    = errors.New("speech text is empty")
)

// ValidVoice reports whether name is one of the six preset voices.
func ValidVoice(name string) bool {
	_, ok := voices[name]
	return ok
}

// SpeechClient synthesizes MP3 audio with the speech endpoint.
type SpeechClient struct {
	base
	model openaigo.SpeechModel
}

func NewSpeechClient(cfg Config, logger *slog.Logger, opts ...Option) *SpeechClient {
	model := openaigo.SpeechModel(cfg.SpeechModel)
	if model == "" {
		model = openaigo.TTSModel1
	}
	return &SpeechClient{
		base:  newBase(cfg, logger, "speech", opts...),
		model: model,
	}
}

// Synthesize validates the request before any network call and returns the
// encoded audio.
func (c *SpeechClient) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	voice, ok := voices[strings.ToLower(req.Voice)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVoice, req.Voice)
	}
	speed := req.Speed
	if speed == 0 {
		speed = 1.0
	}
	if speed < MinSpeed || speed > MaxSpeed {
		return nil, fmt.Errorf("%w: %.2f not in [%.2f, %.2f]", ErrSpeedRange, speed, MinSpeed, MaxSpeed)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	var audio []byte
	err := c.observe(ctx, "speech", func(ctx context.Context) error {
		resp, err := c.client.CreateSpeech(ctx, openaigo.CreateSpeechRequest{
			Model:          c.model,
			Input:          req.Text,
			Voice:          voice,
			ResponseFormat: openaigo.SpeechResponseFormatMp3,
			Speed:          speed,
		})
		if err != nil {
			return convertError(err)
		}
		defer resp.Close()

		audio, err = io.ReadAll(resp)
		if err != nil {
			return convertError(fmt.Errorf("read speech body: %w", err))
		}
		if len(audio) == 0 {
			return errors.New("speech response is empty")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return audio, nil
}
