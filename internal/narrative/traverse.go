package narrative

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storycast/internal/domain"
)

var (
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrJourneyCompleted  = errors.New("journey already completed")
	ErrNodeNotFound      = errors.New("node not found")
	ErrStartNodeNotFound = errors.New("adventure has no START node")
)

// NewJourney places a listener on the START node of an adventure.
func NewJourney(adventure *domain.Adventure, listenerID string, now time.Time) (domain.Journey, error) {
	start, ok := adventure.Graph.Start()
	if !ok {
		return domain.Journey{}, ErrStartNodeNotFound
	}
	return domain.Journey{
		ID:            uuid.New(),
		AdventureID:   adventure.ID,
		ListenerID:    listenerID,
		CurrentNodeID: start.ID,
		Path:          []domain.PathEntry{},
		IsCompleted:   start.Type == domain.NodeEnding,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Advance applies a choice to a journey and returns the new state. The input
// journey is never modified, so a rejected choice leaves it intact.
func Advance(g *domain.NarrativeGraph, journey domain.Journey, choiceID string, now time.Time) (domain.Journey, error) {
	if journey.IsCompleted {
		return journey, ErrJourneyCompleted
	}

	current, ok := g.Node(journey.CurrentNodeID)
	if !ok {
		return journey, fmt.Errorf("%w: current node %q", ErrNodeNotFound, journey.CurrentNodeID)
	}

	choice, ok := current.Choice(choiceID)
	if !ok {
		return journey, fmt.Errorf("%w: %q is not a choice of node %q", ErrInvalidChoice, choiceID, current.ID)
	}

	target, ok := g.Node(choice.TargetNodeID)
	if !ok {
		return journey, fmt.Errorf("%w: choice %q targets %q", ErrNodeNotFound, choiceID, choice.TargetNodeID)
	}

	next := journey
	next.Path = make([]domain.PathEntry, len(journey.Path), len(journey.Path)+1)
	copy(next.Path, journey.Path)
	next.Path = append(next.Path, domain.PathEntry{
		NodeID:     current.ID,
		ChoiceText: choice.Text,
		ChosenAt:   now,
	})
	next.CurrentNodeID = target.ID
	next.IsCompleted = target.Type == domain.NodeEnding
	next.UpdatedAt = now

	return next, nil
}
