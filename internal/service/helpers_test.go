package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"storycast/internal/domain"
	"storycast/internal/retry"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func noSleepExecutor(maxRetries int) *retry.Executor {
	return retry.New(
		retry.Policy{MaxRetries: maxRetries, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond},
		retry.WithSleep(func(context.Context, time.Duration) error { return nil }),
	)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// fakeRecorder captures what the services report.
type fakeRecorder struct {
	mu       sync.Mutex
	stages   []domain.Stage
	finished []domain.Status
	choices  []string
}

func (r *fakeRecorder) ObserveStage(stage domain.Stage, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func (r *fakeRecorder) EpisodeFinished(_ domain.Format, status domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, status)
}

func (r *fakeRecorder) JourneyChoice(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.choices = append(r.choices, outcome)
}

func validOutline() *domain.Outline {
	acts := make([]domain.Act, 0, len(domain.ActOrder))
	for _, name := range domain.ActOrder {
		acts = append(acts, domain.Act{Name: name, Beats: []domain.Beat{
			{Text: name + " opens"},
			{Text: name + " closes"},
		}})
	}
	return &domain.Outline{Title: "The Longitude Problem", Acts: acts}
}

func interviewScript() *domain.Script {
	return &domain.Script{Lines: []domain.ScriptLine{
		{Speaker: "host", Text: "Welcome to the show."},
		{Speaker: "guest", Text: "Thanks for having me here today."},
		{Speaker: "host", Text: "Let us begin."},
	}}
}

func storyChoice(id, text, target string) domain.Choice {
	return domain.Choice{
		ID:                  id,
		Text:                text,
		Description:         "you " + text,
		ConsequencesSummary: "leads to " + target,
		TargetNodeID:        target,
	}
}

// adventureGraph is the smallest valid graph: START -> DECISION with three
// branches, one of which passes through a STORY node.
func adventureGraph() domain.NarrativeGraph {
	return domain.NarrativeGraph{Nodes: []domain.Node{
		{ID: "start", Title: "The Harbour", Type: domain.NodeStart, Choices: []domain.Choice{
			storyChoice("start-c0", "board the ship", "deck"),
		}},
		{ID: "deck", Title: "On Deck", Type: domain.NodeDecision, Choices: []domain.Choice{
			storyChoice("deck-c0", "trust the clock", "storm"),
			storyChoice("deck-c1", "trust the stars", "reef"),
			storyChoice("deck-c2", "turn back", "home"),
		}},
		{ID: "storm", Title: "The Storm", Type: domain.NodeStory, Choices: []domain.Choice{
			storyChoice("storm-c0", "ride it out", "landfall"),
		}},
		{ID: "landfall", Title: "Landfall", Type: domain.NodeEnding, EndingKind: domain.EndingVictory},
		{ID: "reef", Title: "The Reef", Type: domain.NodeEnding, EndingKind: domain.EndingDefeat},
		{ID: "home", Title: "Home Port", Type: domain.NodeEnding, EndingKind: domain.EndingNeutral},
	}}
}

// storeContent stands in for an AdventureStore that had no narration yet.
func storeContent(_ context.Context, _ uuid.UUID, _ string, content *domain.NodeContent) (*domain.NodeContent, error) {
	return content, nil
}
