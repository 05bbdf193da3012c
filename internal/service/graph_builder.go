package service

import (
	"context"
	"fmt"
	"log/slog"

	"storycast/internal/domain"
	"storycast/internal/narrative"
	"storycast/internal/retry"
)

// GraphBuilder requests a branching outline and accepts it only when it
// passes structural validation.
type GraphBuilder struct {
	content ContentGenerator
	exec    *retry.Executor
	logger  *slog.Logger
}

func NewGraphBuilder(content ContentGenerator, exec *retry.Executor, logger *slog.Logger) *GraphBuilder {
	return &GraphBuilder{
		content: content,
		exec:    exec,
		logger:  logger.With("component", "graph-builder"),
	}
}

// Build returns a validated draft. Structural defects come back as a
// *narrative.ValidationError listing every violation; they are never retried.
func (b *GraphBuilder) Build(ctx context.Context, req domain.AdventureRequest) (*domain.AdventureDraft, error) {
	draft, err := retry.Execute(ctx, b.exec, func(ctx context.Context) (*domain.AdventureDraft, error) {
		return b.content.GenerateGraph(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("generate graph: %w", err)
	}

	AssignChoiceIDs(&draft.Graph)

	result := narrative.Validate(&draft.Graph)
	if !result.Valid {
		b.logger.Warn("generated graph rejected",
			"topic", req.Topic,
			"nodes", len(draft.Graph.Nodes),
			"errors", result.Errors,
		)
		return nil, result.Err()
	}

	b.logger.Info("graph built", "topic", req.Topic, "title", draft.Title, "nodes", len(draft.Graph.Nodes))
	return draft, nil
}

// AssignChoiceIDs keeps the first occurrence of every non-empty choice id on
// a node and gives the remaining choices "<nodeID>-c<index>" (0-based),
// moving to the next free index when that id is already used on the node.
func AssignChoiceIDs(g *domain.NarrativeGraph) {
	for i := range g.Nodes {
		node := &g.Nodes[i]

		taken := make(map[string]bool, len(node.Choices))
		kept := make([]bool, len(node.Choices))
		for j, choice := range node.Choices {
			if choice.ID != "" && !taken[choice.ID] {
				taken[choice.ID] = true
				kept[j] = true
			}
		}

		for j := range node.Choices {
			if kept[j] {
				continue
			}
			id := assignedChoiceID(node.ID, j)
			for k := j + 1; taken[id]; k++ {
				id = assignedChoiceID(node.ID, k)
			}
			taken[id] = true
			node.Choices[j].ID = id
		}
	}
}

func assignedChoiceID(nodeID string, index int) string {
	return fmt.Sprintf("%s-c%d", nodeID, index)
}
