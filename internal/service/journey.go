package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"storycast/internal/domain"
	"storycast/internal/narrative"
)

var ErrListenerRequired = errors.New("listener id is required")

// Choice outcomes reported to the recorder.
const (
	ChoiceAccepted  = "accepted"
	ChoiceInvalid   = "invalid"
	ChoiceConflict  = "conflict"
	ChoiceCompleted = "completed"
)

// JourneyService tracks listeners through adventure graphs.
type JourneyService struct {
	adventures AdventureStore
	journeys   JourneyStore
	nodes      *NodeContentGenerator
	publisher  Publisher
	recorder   Recorder
	logger     *slog.Logger
	now        func() time.Time
}

func NewJourneyService(
	adventures AdventureStore,
	journeys JourneyStore,
	nodes *NodeContentGenerator,
	publisher Publisher,
	recorder Recorder,
	logger *slog.Logger,
) *JourneyService {
	return &JourneyService{
		adventures: adventures,
		journeys:   journeys,
		nodes:      nodes,
		publisher:  publisher,
		recorder:   recorderOrNop(recorder),
		logger:     logger.With("component", "journey"),
		now:        time.Now,
	}
}

// Start places a listener at the adventure's START node.
func (s *JourneyService) Start(ctx context.Context, adventureID uuid.UUID, listenerID string) (*domain.Journey, error) {
	listenerID = strings.TrimSpace(listenerID)
	if listenerID == "" {
		return nil, ErrListenerRequired
	}

	adventure, err := s.adventures.Get(ctx, adventureID)
	if err != nil {
		return nil, fmt.Errorf("get adventure: %w", err)
	}

	journey, err := narrative.NewJourney(adventure, listenerID, s.now())
	if err != nil {
		return nil, fmt.Errorf("start journey: %w", err)
	}

	if err := s.journeys.Create(ctx, &journey); err != nil {
		return nil, fmt.Errorf("create journey: %w", err)
	}

	s.logger.Info("journey started",
		"journey_id", journey.ID,
		"adventure_id", adventureID,
		"listener_id", listenerID,
		"node_id", journey.CurrentNodeID,
	)
	return &journey, nil
}

func (s *JourneyService) Get(ctx context.Context, journeyID uuid.UUID) (*domain.Journey, error) {
	journey, err := s.journeys.Get(ctx, journeyID)
	if err != nil {
		return nil, fmt.Errorf("get journey: %w", err)
	}
	return journey, nil
}

// Choose applies a choice to the journey. The stored journey is left
// untouched when the choice is rejected or another writer got there first.
func (s *JourneyService) Choose(ctx context.Context, journeyID uuid.UUID, choiceID string) (*domain.Journey, error) {
	journey, err := s.journeys.Get(ctx, journeyID)
	if err != nil {
		return nil, fmt.Errorf("get journey: %w", err)
	}

	adventure, err := s.adventures.Get(ctx, journey.AdventureID)
	if err != nil {
		return nil, fmt.Errorf("get adventure: %w", err)
	}

	logger := s.logger.With("journey_id", journeyID, "choice_id", choiceID)

	next, err := narrative.Advance(&adventure.Graph, *journey, choiceID, s.now())
	if err != nil {
		s.recorder.JourneyChoice(ChoiceInvalid)
		logger.Warn("choice rejected", "node_id", journey.CurrentNodeID, "error", err)
		return nil, err
	}
	next.Version = journey.Version + 1

	if err := s.journeys.Update(ctx, &next, journey.Version); err != nil {
		if errors.Is(err, domain.ErrJourneyConflict) {
			s.recorder.JourneyChoice(ChoiceConflict)
			logger.Warn("journey changed concurrently", "version", journey.Version)
		}
		return nil, fmt.Errorf("update journey: %w", err)
	}

	if !next.IsCompleted {
		s.recorder.JourneyChoice(ChoiceAccepted)
		logger.Debug("choice applied", "node_id", next.CurrentNodeID)
		return &next, nil
	}

	s.recorder.JourneyChoice(ChoiceCompleted)
	ending, _ := adventure.Graph.Node(next.CurrentNodeID)
	publishEvent(ctx, s.publisher, domain.Event{
		Type:       domain.EventJourneyCompleted,
		EpisodeID:  adventure.EpisodeID,
		Format:     domain.FormatAdventure,
		Title:      adventure.Title,
		JourneyID:  next.ID,
		ListenerID: next.ListenerID,
		EndingNode: ending.ID,
		EndingKind: ending.EndingKind,
	}, s.now(), logger)

	logger.Info("journey completed", "ending_node", ending.ID, "ending_kind", ending.EndingKind, "steps", len(next.Path))
	return &next, nil
}

// Scene is what a listener hears at their current position.
type Scene struct {
	Journey *domain.Journey
	Node    *domain.Node
	Content *domain.NodeContent
}

// CurrentScene returns the narration for the journey's current node,
// generating it from the listener's path when the node has not been visited.
func (s *JourneyService) CurrentScene(ctx context.Context, journeyID uuid.UUID) (*Scene, error) {
	journey, err := s.journeys.Get(ctx, journeyID)
	if err != nil {
		return nil, fmt.Errorf("get journey: %w", err)
	}

	adventure, err := s.adventures.Get(ctx, journey.AdventureID)
	if err != nil {
		return nil, fmt.Errorf("get adventure: %w", err)
	}

	content, err := s.nodes.Generate(ctx, adventure, journey.CurrentNodeID, journey.History())
	if err != nil {
		return nil, err
	}

	node, _ := adventure.Graph.Node(journey.CurrentNodeID)
	return &Scene{Journey: journey, Node: node, Content: content}, nil
}
