package service

import (
	"time"

	"storycast/internal/domain"
)

// Recorder receives generation and traversal measurements.
type Recorder interface {
	ObserveStage(stage domain.Stage, elapsed time.Duration, err error)
	EpisodeFinished(format domain.Format, status domain.Status)
	JourneyChoice(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(domain.Stage, time.Duration, error) {}
func (nopRecorder) EpisodeFinished(domain.Format, domain.Status) {}
func (nopRecorder) JourneyChoice(string) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
