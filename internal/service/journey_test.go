package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"storycast/internal/domain"
	"storycast/internal/narrative"
	"storycast/internal/service/mocks"
)

type JourneyServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	content    *mocks.MockContentGenerator
	adventures *mocks.MockAdventureStore
	journeys   *mocks.MockJourneyStore
	publisher  *mocks.MockPublisher
	recorder   *fakeRecorder

	now       time.Time
	adventure *domain.Adventure
	service   *JourneyService
}

func (s *JourneyServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.content = mocks.NewMockContentGenerator(s.ctrl)
	s.adventures = mocks.NewMockAdventureStore(s.ctrl)
	s.journeys = mocks.NewMockJourneyStore(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)
	s.recorder = &fakeRecorder{}
	s.now = time.Date(2026, 6, 2, 18, 0, 0, 0, time.UTC)

	s.adventure = &domain.Adventure{
		ID:        uuid.New(),
		EpisodeID: uuid.New(),
		Title:     "The Longitude Voyage",
		Graph:     adventureGraph(),
	}

	logger := discardLogger()
	exec := noSleepExecutor(0)
	nodes := NewNodeContentGenerator(s.content, nil, nil, nil, s.adventures, exec, logger)
	s.service = NewJourneyService(s.adventures, s.journeys, nodes, s.publisher, s.recorder, logger)
	s.service.now = fixedClock(s.now)
}

func (s *JourneyServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestJourneyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JourneyServiceTestSuite))
}

func (s *JourneyServiceTestSuite) journeyAt(nodeID string, version int) *domain.Journey {
	return &domain.Journey{
		ID:            uuid.New(),
		AdventureID:   s.adventure.ID,
		ListenerID:    "listener-1",
		CurrentNodeID: nodeID,
		Path:          []domain.PathEntry{},
		Version:       version,
	}
}

func (s *JourneyServiceTestSuite) TestStart() {
	ctx := context.Background()

	s.adventures.EXPECT().Get(ctx, s.adventure.ID).Return(s.adventure, nil)
	s.journeys.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	journey, err := s.service.Start(ctx, s.adventure.ID, " listener-1 ")

	s.Require().NoError(err)
	s.Equal("start", journey.CurrentNodeID)
	s.Equal("listener-1", journey.ListenerID)
	s.Empty(journey.Path)
	s.False(journey.IsCompleted)
	s.Equal(1, journey.Version)
	s.Equal(s.now, journey.CreatedAt)
}

func (s *JourneyServiceTestSuite) TestStart_RequiresListener() {
	_, err := s.service.Start(context.Background(), s.adventure.ID, "  ")

	s.ErrorIs(err, ErrListenerRequired)
}

func (s *JourneyServiceTestSuite) TestStart_UnknownAdventure() {
	ctx := context.Background()
	s.adventures.EXPECT().Get(ctx, gomock.Any()).Return(nil, domain.ErrNotFound)

	_, err := s.service.Start(ctx, uuid.New(), "listener-1")

	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *JourneyServiceTestSuite) TestChoose_Advances() {
	ctx := context.Background()
	journey := s.journeyAt("deck", 2)
	journey.Path = []domain.PathEntry{{NodeID: "start", ChoiceText: "board the ship"}}

	s.journeys.EXPECT().Get(ctx, journey.ID).Return(journey, nil)
	s.adventures.EXPECT().Get(ctx, s.adventure.ID).Return(s.adventure, nil)
	s.journeys.EXPECT().Update(ctx, gomock.Any(), 2).DoAndReturn(
		func(_ context.Context, j *domain.Journey, _ int) error {
			s.Equal(3, j.Version)
			return nil
		},
	)

	next, err := s.service.Choose(ctx, journey.ID, "deck-c0")

	s.Require().NoError(err)
	s.Equal("storm", next.CurrentNodeID)
	s.False(next.IsCompleted)
	s.Equal([]string{"board the ship", "trust the clock"}, next.History())
	s.Equal(s.now, next.Path[1].ChosenAt)
	s.Len(journey.Path, 1)
	s.Equal([]string{ChoiceAccepted}, s.recorder.choices)
}

func (s *JourneyServiceTestSuite) TestChoose_ReachingEndingPublishesCompletion() {
	ctx := context.Background()
	journey := s.journeyAt("deck", 1)
	var published domain.Event

	s.journeys.EXPECT().Get(ctx, journey.ID).Return(journey, nil)
	s.adventures.EXPECT().Get(ctx, s.adventure.ID).Return(s.adventure, nil)
	s.journeys.EXPECT().Update(ctx, gomock.Any(), 1).Return(nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event domain.Event) error {
			published = event
			return nil
		},
	)

	next, err := s.service.Choose(ctx, journey.ID, "deck-c1")

	s.Require().NoError(err)
	s.True(next.IsCompleted)
	s.Equal("reef", next.CurrentNodeID)

	s.Equal(domain.EventJourneyCompleted, published.Type)
	s.Equal(journey.ID, published.JourneyID)
	s.Equal(s.adventure.EpisodeID, published.EpisodeID)
	s.Equal("listener-1", published.ListenerID)
	s.Equal("reef", published.EndingNode)
	s.Equal(domain.EndingDefeat, published.EndingKind)
	s.Equal([]string{ChoiceCompleted}, s.recorder.choices)
}

func (s *JourneyServiceTestSuite) TestChoose_InvalidChoiceLeavesJourneyUntouched() {
	ctx := context.Background()
	journey := s.journeyAt("deck", 1)

	s.journeys.EXPECT().Get(ctx, journey.ID).Return(journey, nil)
	s.adventures.EXPECT().Get(ctx, s.adventure.ID).Return(s.adventure, nil)

	_, err := s.service.Choose(ctx, journey.ID, "start-c0")

	s.ErrorIs(err, narrative.ErrInvalidChoice)
	s.Equal("deck", journey.CurrentNodeID)
	s.Equal([]string{ChoiceInvalid}, s.recorder.choices)
}

func (s *JourneyServiceTestSuite) TestChoose_CompletedJourney() {
	ctx := context.Background()
	journey := s.journeyAt("home", 4)
	journey.IsCompleted = true

	s.journeys.EXPECT().Get(ctx, journey.ID).Return(journey, nil)
	s.adventures.EXPECT().Get(ctx, s.adventure.ID).Return(s.adventure, nil)

	_, err := s.service.Choose(ctx, journey.ID, "anything")

	s.ErrorIs(err, narrative.ErrJourneyCompleted)
}

func (s *JourneyServiceTestSuite) TestChoose_ConcurrentUpdateConflicts() {
	ctx := context.Background()
	journey := s.journeyAt("start", 1)

	s.journeys.EXPECT().Get(ctx, journey.ID).Return(journey, nil)
	s.adventures.EXPECT().Get(ctx, s.adventure.ID).Return(s.adventure, nil)
	s.journeys.EXPECT().Update(ctx, gomock.Any(), 1).Return(domain.ErrJourneyConflict)

	_, err := s.service.Choose(ctx, journey.ID, "start-c0")

	s.ErrorIs(err, domain.ErrJourneyConflict)
	s.Equal([]string{ChoiceConflict}, s.recorder.choices)
}

func (s *JourneyServiceTestSuite) TestCurrentScene_GeneratesFromPath() {
	ctx := context.Background()
	journey := s.journeyAt("storm", 3)
	journey.Path = []domain.PathEntry{
		{NodeID: "start", ChoiceText: "board the ship"},
		{NodeID: "deck", ChoiceText: "trust the clock"},
	}

	s.journeys.EXPECT().Get(ctx, journey.ID).Return(journey, nil)
	s.adventures.EXPECT().Get(ctx, s.adventure.ID).Return(s.adventure, nil)
	s.content.EXPECT().GenerateNodeContent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.NodeContentRequest) (*domain.NodeContent, error) {
			s.Equal([]string{"board the ship", "trust the clock"}, req.PathHistory)
			return &domain.NodeContent{Narrative: "Thunder."}, nil
		},
	)
	s.adventures.EXPECT().SaveNodeContent(gomock.Any(), s.adventure.ID, "storm", gomock.Any()).DoAndReturn(storeContent)

	scene, err := s.service.CurrentScene(ctx, journey.ID)

	s.Require().NoError(err)
	s.Equal("storm", scene.Node.ID)
	s.Equal("Thunder.", scene.Content.Narrative)
	s.Same(journey, scene.Journey)
}
