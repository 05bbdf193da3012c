package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventEpisodeReady     EventType = "episode.ready"
	EventEpisodeFailed    EventType = "episode.failed"
	EventJourneyCompleted EventType = "journey.completed"
)

// Event is a lifecycle notification published on the message bus.
type Event struct {
	Type       EventType  `json:"type"`
	EpisodeID  uuid.UUID  `json:"episode_id"`
	Format     Format     `json:"format,omitempty"`
	Status     Status     `json:"status,omitempty"`
	Title      string     `json:"title,omitempty"`
	AudioURL   string     `json:"audio_url,omitempty"`
	Error      string     `json:"error,omitempty"`
	JourneyID  uuid.UUID  `json:"journey_id"`
	ListenerID string     `json:"listener_id,omitempty"`
	EndingNode string     `json:"ending_node,omitempty"`
	EndingKind EndingKind `json:"ending_kind,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// RoutingKey is the bus routing key for the event.
func (e Event) RoutingKey() string {
	return string(e.Type)
}
