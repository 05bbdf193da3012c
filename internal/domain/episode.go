package domain

import (
	"time"

	"github.com/google/uuid"
)

type Format string

const (
	FormatNarrative Format = "narrative"
	FormatInterview Format = "interview"
	FormatDebate    Format = "debate"
	FormatAdventure Format = "adventure"
)

func (f Format) Valid() bool {
	switch f {
	case FormatNarrative, FormatInterview, FormatDebate, FormatAdventure:
		return true
	}
	return false
}

// Speakers returns the voices a script of this format is written for.
func (f Format) Speakers() []string {
	switch f {
	case FormatInterview:
		return []string{"host", "guest"}
	case FormatDebate:
		return []string{"moderator", "proponent", "opponent"}
	}
	return []string{"narrator"}
}

type Status string

const (
	StatusPending           Status = "PENDING"
	StatusGeneratingOutline Status = "GENERATING_OUTLINE"
	StatusGeneratingScript  Status = "GENERATING_SCRIPT"
	StatusGeneratingAudio   Status = "GENERATING_AUDIO"
	StatusProcessing        Status = "PROCESSING"
	StatusReady             Status = "READY"
	StatusPublished         Status = "PUBLISHED"
	StatusFailed            Status = "FAILED"
)

// Terminal reports whether the orchestrator no longer owns the episode.
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusPublished || s == StatusFailed
}

// Stage is one step of the linear generation pipeline.
type Stage string

const (
	StageOutline Stage = "outline"
	StageScript  Stage = "script"
	StageAudio   Stage = "audio"
	StageUpload  Stage = "upload"
	StagePublish Stage = "publish"
)

// Stages lists the pipeline in execution order.
var Stages = []Stage{StageOutline, StageScript, StageAudio, StageUpload, StagePublish}

// Status returns the episode status persisted while the stage runs.
func (s Stage) Status() Status {
	switch s {
	case StageOutline:
		return StatusGeneratingOutline
	case StageScript:
		return StatusGeneratingScript
	case StageAudio:
		return StatusGeneratingAudio
	case StageUpload:
		return StatusProcessing
	case StagePublish:
		return StatusReady
	}
	return StatusFailed
}

// WordsPerMinute is the speaking rate used for every word/duration conversion.
const WordsPerMinute = 150

// TargetWordCount converts a requested duration into a script length.
func TargetWordCount(durationSeconds int) int {
	return durationSeconds * WordsPerMinute / 60
}

// EstimateDurationSeconds converts a word count into spoken seconds.
func EstimateDurationSeconds(words int) int {
	return words * 60 / WordsPerMinute
}

type Episode struct {
	ID              uuid.UUID
	Format          Format
	Status          Status
	Title           string
	Subtitle        *string
	Topic           string
	Era             *string
	Context         *string
	DurationSeconds int
	Voices          VoiceConfig
	Outline         *Outline
	Script          *Script
	Transcript      *string
	Audio           *AudioRef
	ErrorMsg        *string
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VoiceConfig maps speaker names to speech-provider voices.
type VoiceConfig struct {
	Default  string            `json:"default"`
	Speakers map[string]string `json:"speakers,omitempty"`
	Speed    float64           `json:"speed,omitempty"`
}

// VoiceFor returns the configured voice for a speaker, falling back to Default.
func (v VoiceConfig) VoiceFor(speaker string) string {
	if voice, ok := v.Speakers[speaker]; ok && voice != "" {
		return voice
	}
	return v.Default
}

type AudioRef struct {
	URL             string  `json:"url"`
	Bytes           int64   `json:"bytes"`
	ContentType     string  `json:"content_type"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// AudioSegment is one unit handed to the speech provider.
type AudioSegment struct {
	Speaker string
	Voice   string
	Text    string
	Speed   float64
}

type UploadOptions struct {
	Filename    string
	ContentType string
}
