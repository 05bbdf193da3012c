package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storycast/internal/domain"
)

type ContentGenerator interface {
	GenerateOutline(ctx context.Context, req domain.OutlineRequest) (*domain.Outline, error)
	GenerateScript(ctx context.Context, req domain.ScriptRequest) (*domain.Script, error)
	GenerateGraph(ctx context.Context, req domain.AdventureRequest) (*domain.AdventureDraft, error)
	GenerateNodeContent(ctx context.Context, req domain.NodeContentRequest) (*domain.NodeContent, error)
}

type SpeechProvider interface {
	Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error)
}

type AudioAssembler interface {
	AssembleSafe(ctx context.Context, segments [][]byte, pauseSeconds float64) ([]byte, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, data []byte, opts domain.UploadOptions) (*domain.AudioRef, error)
}

type EpisodeStore interface {
	Create(ctx context.Context, episode *domain.Episode) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Episode, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
	SaveOutline(ctx context.Context, id uuid.UUID, outline *domain.Outline) error
	SaveScript(ctx context.Context, id uuid.UUID, script *domain.Script) error
	SaveAudio(ctx context.Context, id uuid.UUID, audio *domain.AudioRef) error
	MarkReady(ctx context.Context, id uuid.UUID, publishedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	ClaimPending(ctx context.Context, limit int) ([]domain.Episode, error)
}

type AdventureStore interface {
	Create(ctx context.Context, adventure *domain.Adventure) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Adventure, error)
	GetByEpisode(ctx context.Context, episodeID uuid.UUID) (*domain.Adventure, error)
	// SaveNodeContent and SaveNodeAudio keep the first value written for a
	// node and return whichever value is stored after the call.
	SaveNodeContent(ctx context.Context, adventureID uuid.UUID, nodeID string, content *domain.NodeContent) (*domain.NodeContent, error)
	SaveNodeAudio(ctx context.Context, adventureID uuid.UUID, nodeID string, audio *domain.AudioRef) (*domain.AudioRef, error)
}

type JourneyStore interface {
	Create(ctx context.Context, journey *domain.Journey) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Journey, error)
	// Update writes journey if the stored version still equals expectedVersion
	// and returns domain.ErrJourneyConflict otherwise.
	Update(ctx context.Context, journey *domain.Journey, expectedVersion int) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}
