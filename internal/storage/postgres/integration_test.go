//go:build integration

package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"storycast/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB

	episodes   *EpisodeStore
	adventures *AdventureStore
	journeys   *JourneyStore
	txManager  *TransactionManager
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(Migrate(db, logger))
	// A second run finds nothing to apply.
	s.Require().NoError(Migrate(db, logger))

	s.episodes = NewEpisodeStore(db)
	s.adventures = NewAdventureStore(db)
	s.journeys = NewJourneyStore(db)
	s.txManager = NewTransactionManager(db)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM journeys")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM adventure_nodes")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM adventures")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM episodes")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) newEpisode(format domain.Format, createdAt time.Time) *domain.Episode {
	era := "Georgian"
	ep := &domain.Episode{
		ID:              uuid.New(),
		Format:          format,
		Status:          domain.StatusPending,
		Title:           "Harrison's Clock",
		Topic:           "The marine chronometer",
		Era:             &era,
		DurationSeconds: 600,
		Voices:          domain.VoiceConfig{Default: "alloy", Speakers: map[string]string{"host": "echo"}, Speed: 1.1},
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	s.Require().NoError(s.episodes.Create(s.ctx, ep))
	return ep
}

func (s *PostgresIntegrationSuite) TestEpisodeStore_Lifecycle() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	ep := s.newEpisode(domain.FormatInterview, now)

	outline := &domain.Outline{Title: "Time at Sea", Subtitle: "A carpenter's obsession", Acts: []domain.Act{
		{Name: domain.ActHook, Beats: []domain.Beat{{Text: "1707, the Scilly naval disaster"}}},
	}}
	s.Require().NoError(s.episodes.UpdateStatus(s.ctx, ep.ID, domain.StatusGeneratingOutline))
	s.Require().NoError(s.episodes.SaveOutline(s.ctx, ep.ID, outline))

	script := &domain.Script{Lines: []domain.ScriptLine{{Speaker: "host", Text: "Welcome aboard."}}}
	script.Finalize()
	s.Require().NoError(s.episodes.SaveScript(s.ctx, ep.ID, script))

	audio := &domain.AudioRef{URL: "file:///a.mp3", Bytes: 42, ContentType: "audio/mpeg", DurationSeconds: 1}
	s.Require().NoError(s.episodes.SaveAudio(s.ctx, ep.ID, audio))
	s.Require().NoError(s.episodes.MarkReady(s.ctx, ep.ID, now))

	got, err := s.episodes.Get(s.ctx, ep.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusReady, got.Status)
	s.Equal(ep.Voices, got.Voices)
	s.Equal("Georgian", *got.Era)
	s.Nil(got.Context)
	s.Require().NotNil(got.Subtitle)
	s.Equal("A carpenter's obsession", *got.Subtitle)
	s.Equal(outline, got.Outline)
	s.Equal(script, got.Script)
	s.Equal("Welcome aboard.", *got.Transcript)
	s.Equal(audio, got.Audio)
	s.True(now.Equal(*got.PublishedAt))
	s.Nil(got.ErrorMsg)
}

func (s *PostgresIntegrationSuite) TestEpisodeStore_MarkFailedKeepsOutput() {
	ep := s.newEpisode(domain.FormatNarrative, time.Now())
	outline := &domain.Outline{Title: "t"}
	s.Require().NoError(s.episodes.SaveOutline(s.ctx, ep.ID, outline))

	s.Require().NoError(s.episodes.MarkFailed(s.ctx, ep.ID, "audio stage: boom"))

	got, err := s.episodes.Get(s.ctx, ep.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusFailed, got.Status)
	s.Equal("audio stage: boom", *got.ErrorMsg)
	s.NotNil(got.Outline)
	s.Nil(got.Script)
}

func (s *PostgresIntegrationSuite) TestEpisodeStore_NotFound() {
	_, err := s.episodes.Get(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)

	err = s.episodes.UpdateStatus(s.ctx, uuid.New(), domain.StatusReady)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestEpisodeStore_ClaimPending() {
	base := time.Now().Add(-time.Hour)
	first := s.newEpisode(domain.FormatNarrative, base)
	second := s.newEpisode(domain.FormatAdventure, base.Add(time.Minute))
	s.newEpisode(domain.FormatDebate, base.Add(2*time.Minute))

	claimed, err := s.episodes.ClaimPending(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(claimed, 2)

	ids := []uuid.UUID{claimed[0].ID, claimed[1].ID}
	s.ElementsMatch([]uuid.UUID{first.ID, second.ID}, ids)
	for _, ep := range claimed {
		s.Equal(domain.StatusGeneratingOutline, ep.Status)
	}

	rest, err := s.episodes.ClaimPending(s.ctx, 5)
	s.Require().NoError(err)
	s.Len(rest, 1)

	none, err := s.episodes.ClaimPending(s.ctx, 5)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *PostgresIntegrationSuite) createAdventure() *domain.Adventure {
	ep := s.newEpisode(domain.FormatAdventure, time.Now())
	adventure := &domain.Adventure{
		ID:          uuid.New(),
		EpisodeID:   ep.ID,
		Title:       "The Voyage",
		Description: "Find longitude",
		Setting:     "1761",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		Graph: domain.NarrativeGraph{Nodes: []domain.Node{
			{ID: "start", Title: "Harbour", Type: domain.NodeStart, Choices: []domain.Choice{
				{ID: "start-c0", Text: "sail", TargetNodeID: "end"},
			}},
			{ID: "end", Title: "Landfall", Type: domain.NodeEnding, EndingKind: domain.EndingVictory},
		}},
	}

	err := s.txManager.WithTransaction(s.ctx, func(ctx context.Context) error {
		return s.adventures.Create(ctx, adventure)
	})
	s.Require().NoError(err)
	return adventure
}

func (s *PostgresIntegrationSuite) TestAdventureStore_RoundTrip() {
	adventure := s.createAdventure()

	got, err := s.adventures.Get(s.ctx, adventure.ID)
	s.Require().NoError(err)
	s.Equal(adventure.Title, got.Title)
	s.Require().Len(got.Graph.Nodes, 2)
	s.Equal("start", got.Graph.Nodes[0].ID)
	s.Equal(adventure.Graph.Nodes[0].Choices, got.Graph.Nodes[0].Choices)
	s.Equal(domain.EndingVictory, got.Graph.Nodes[1].EndingKind)
	s.Empty(got.Graph.Nodes[1].Choices)

	byEpisode, err := s.adventures.GetByEpisode(s.ctx, adventure.EpisodeID)
	s.Require().NoError(err)
	s.Equal(adventure.ID, byEpisode.ID)
}

func (s *PostgresIntegrationSuite) TestAdventureStore_FirstContentWins() {
	adventure := s.createAdventure()

	first, err := s.adventures.SaveNodeContent(s.ctx, adventure.ID, "start", &domain.NodeContent{Narrative: "first"})
	s.Require().NoError(err)
	s.Equal("first", first.Narrative)

	second, err := s.adventures.SaveNodeContent(s.ctx, adventure.ID, "start", &domain.NodeContent{Narrative: "second"})
	s.Require().NoError(err)
	s.Equal("first", second.Narrative)

	ref, err := s.adventures.SaveNodeAudio(s.ctx, adventure.ID, "start", &domain.AudioRef{URL: "u"})
	s.Require().NoError(err)
	s.Equal("u", ref.URL)
	ref, err = s.adventures.SaveNodeAudio(s.ctx, adventure.ID, "start", &domain.AudioRef{URL: "late"})
	s.Require().NoError(err)
	s.Equal("u", ref.URL)

	got, err := s.adventures.Get(s.ctx, adventure.ID)
	s.Require().NoError(err)
	s.Equal("first", got.Graph.Nodes[0].Content.Narrative)
	s.Equal("u", got.Graph.Nodes[0].Audio.URL)
	s.Nil(got.Graph.Nodes[1].Content)

	_, err = s.adventures.SaveNodeContent(s.ctx, adventure.ID, "missing", &domain.NodeContent{})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestTransaction_RollsBackGraph() {
	ep := s.newEpisode(domain.FormatAdventure, time.Now())
	adventure := &domain.Adventure{ID: uuid.New(), EpisodeID: ep.ID, Title: "dup", Graph: domain.NarrativeGraph{Nodes: []domain.Node{
		{ID: "a", Title: "A", Type: domain.NodeStart},
		{ID: "a", Title: "A again", Type: domain.NodeEnding},
	}}}

	err := s.txManager.WithTransaction(s.ctx, func(ctx context.Context) error {
		return s.adventures.Create(ctx, adventure)
	})
	s.Require().Error(err)

	_, err = s.adventures.Get(s.ctx, adventure.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestJourneyStore_OptimisticUpdate() {
	adventure := s.createAdventure()
	now := time.Now().UTC().Truncate(time.Microsecond)

	journey := &domain.Journey{
		ID:            uuid.New(),
		AdventureID:   adventure.ID,
		ListenerID:    "listener-1",
		CurrentNodeID: "start",
		Path:          []domain.PathEntry{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.Require().NoError(s.journeys.Create(s.ctx, journey))

	next := *journey
	next.CurrentNodeID = "end"
	next.IsCompleted = true
	next.Path = []domain.PathEntry{{NodeID: "start", ChoiceText: "sail", ChosenAt: now}}
	next.Version = 2
	s.Require().NoError(s.journeys.Update(s.ctx, &next, 1))

	stale := *journey
	stale.Version = 2
	err := s.journeys.Update(s.ctx, &stale, 1)
	s.ErrorIs(err, domain.ErrJourneyConflict)

	got, err := s.journeys.Get(s.ctx, journey.ID)
	s.Require().NoError(err)
	s.Equal("end", got.CurrentNodeID)
	s.True(got.IsCompleted)
	s.Equal(2, got.Version)
	s.Require().Len(got.Path, 1)
	s.Equal("sail", got.Path[0].ChoiceText)
	s.True(now.Equal(got.Path[0].ChosenAt))

	missing := *journey
	missing.ID = uuid.New()
	err = s.journeys.Update(s.ctx, &missing, 1)
	s.True(errors.Is(err, domain.ErrNotFound))
}
