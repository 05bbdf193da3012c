package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storycast/internal/domain"
)

// AdventureService turns an adventure episode into a validated, persisted
// narrative graph with a voiced start node.
type AdventureService struct {
	builder    *GraphBuilder
	nodes      *NodeContentGenerator
	episodes   EpisodeStore
	adventures AdventureStore
	txManager  TransactionManager
	publisher  Publisher
	recorder   Recorder
	tracer     trace.Tracer
	logger     *slog.Logger
	now        func() time.Time
}

func NewAdventureService(
	builder *GraphBuilder,
	nodes *NodeContentGenerator,
	episodes EpisodeStore,
	adventures AdventureStore,
	txManager TransactionManager,
	publisher Publisher,
	recorder Recorder,
	logger *slog.Logger,
) *AdventureService {
	return &AdventureService{
		builder:    builder,
		nodes:      nodes,
		episodes:   episodes,
		adventures: adventures,
		txManager:  txManager,
		publisher:  publisher,
		recorder:   recorderOrNop(recorder),
		tracer:     otel.Tracer("storycast/service"),
		logger:     logger.With("component", "adventure"),
		now:        time.Now,
	}
}

// Create builds the graph for episode, stores it, voices the start node and
// marks the episode READY. Any failure marks the episode FAILED.
func (s *AdventureService) Create(ctx context.Context, episode *domain.Episode) (*domain.Adventure, error) {
	if episode.Format != domain.FormatAdventure {
		return nil, fmt.Errorf("%w: %q is not an adventure", ErrInvalidFormat, episode.Format)
	}

	logger := s.logger.With("episode_id", episode.ID)
	ctx, span := s.tracer.Start(ctx, "adventure.create", trace.WithAttributes(
		attribute.String("episode.id", episode.ID.String()),
	))
	defer span.End()

	adventure, err := s.create(ctx, episode, logger)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail(ctx, episode, err, logger)
	}

	s.recorder.EpisodeFinished(episode.Format, domain.StatusReady)
	publishEvent(ctx, s.publisher, domain.Event{
		Type:      domain.EventEpisodeReady,
		EpisodeID: episode.ID,
		Format:    episode.Format,
		Status:    domain.StatusReady,
		Title:     episode.Title,
		AudioURL:  audioURL(episode.Audio),
	}, s.now(), logger)

	logger.Info("adventure created", "adventure_id", adventure.ID, "nodes", len(adventure.Graph.Nodes))
	return adventure, nil
}

func (s *AdventureService) create(ctx context.Context, episode *domain.Episode, logger *slog.Logger) (*domain.Adventure, error) {
	if err := s.setStatus(ctx, episode, domain.StatusGeneratingOutline); err != nil {
		return nil, err
	}

	start := time.Now()
	draft, err := s.builder.Build(ctx, domain.AdventureRequest{
		Topic:   episode.Topic,
		Era:     deref(episode.Era),
		Context: deref(episode.Context),
	})
	s.recorder.ObserveStage(domain.StageOutline, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	adventure := &domain.Adventure{
		ID:          uuid.New(),
		EpisodeID:   episode.ID,
		Title:       draft.Title,
		Description: draft.Description,
		Setting:     draft.Setting,
		Graph:       draft.Graph,
		CreatedAt:   s.now(),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.adventures.Create(txCtx, adventure); err != nil {
			return fmt.Errorf("create adventure: %w", err)
		}
		if err := s.episodes.UpdateStatus(txCtx, episode.ID, domain.StatusGeneratingScript); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	episode.Status = domain.StatusGeneratingScript
	logger.Debug("adventure persisted", "adventure_id", adventure.ID)

	startNode, _ := adventure.Graph.Start()

	start = time.Now()
	_, err = s.nodes.Generate(ctx, adventure, startNode.ID, nil)
	s.recorder.ObserveStage(domain.StageScript, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := s.setStatus(ctx, episode, domain.StatusGeneratingAudio); err != nil {
		return nil, err
	}

	start = time.Now()
	ref, err := s.nodes.GenerateAudio(ctx, adventure, startNode.ID, episode.Voices)
	s.recorder.ObserveStage(domain.StageAudio, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if err := s.episodes.SaveAudio(ctx, episode.ID, ref); err != nil {
		return nil, fmt.Errorf("save audio: %w", err)
	}
	episode.Audio = ref

	publishedAt := s.now()
	if err := s.episodes.MarkReady(ctx, episode.ID, publishedAt); err != nil {
		return nil, fmt.Errorf("mark ready: %w", err)
	}
	episode.Status = domain.StatusReady
	episode.PublishedAt = &publishedAt

	return adventure, nil
}

func (s *AdventureService) setStatus(ctx context.Context, episode *domain.Episode, status domain.Status) error {
	if err := s.episodes.UpdateStatus(ctx, episode.ID, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	episode.Status = status
	return nil
}

func (s *AdventureService) fail(ctx context.Context, episode *domain.Episode, cause error, logger *slog.Logger) error {
	msg := cause.Error()
	episode.Status = domain.StatusFailed
	episode.ErrorMsg = &msg

	logger.Error("adventure generation failed", "error", cause)

	persistCtx := context.WithoutCancel(ctx)
	if err := s.episodes.MarkFailed(persistCtx, episode.ID, msg); err != nil {
		logger.Error("failed to persist episode failure", "error", err)
	}

	s.recorder.EpisodeFinished(episode.Format, domain.StatusFailed)
	publishEvent(persistCtx, s.publisher, domain.Event{
		Type:      domain.EventEpisodeFailed,
		EpisodeID: episode.ID,
		Format:    episode.Format,
		Status:    domain.StatusFailed,
		Title:     episode.Title,
		Error:     msg,
	}, s.now(), logger)

	return fmt.Errorf("create adventure: %w", cause)
}

// Scene returns a node's narration for a listener who reached it along
// history, generating the narration on first visit.
func (s *AdventureService) Scene(ctx context.Context, adventureID uuid.UUID, nodeID string, history []string) (*domain.NodeContent, error) {
	adventure, err := s.adventures.Get(ctx, adventureID)
	if err != nil {
		return nil, fmt.Errorf("get adventure: %w", err)
	}
	return s.nodes.Generate(ctx, adventure, nodeID, history)
}

func audioURL(ref *domain.AudioRef) string {
	if ref == nil {
		return ""
	}
	return ref.URL
}
