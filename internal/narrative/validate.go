// Package narrative holds the pure graph logic of branching adventures:
// structural validation, reachability and journey traversal.
package narrative

import (
	"fmt"
	"strings"

	"storycast/internal/domain"
)

const (
	RequiredStartNodes = 1
	MinEndingNodes     = 3
	MinDecisionChoices = 2
	MaxDecisionChoices = 3
)

// Result lists every structural violation found in a graph.
type Result struct {
	Valid  bool
	Errors []string
}

// Err returns a *ValidationError when the result is invalid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// ValidationError reports a generated graph that cannot be used. It is a
// generation-quality failure and is never retried.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid narrative graph: " + strings.Join(e.Errors, "; ")
}

// Validate runs every structural check and reports all violations together.
func Validate(g *domain.NarrativeGraph) Result {
	var errs []string

	ids := make(map[string]bool, len(g.Nodes))
	counts := make(map[domain.NodeType]int)
	for _, node := range g.Nodes {
		if ids[node.ID] {
			errs = append(errs, fmt.Sprintf("duplicate node id %q", node.ID))
		}
		ids[node.ID] = true
		counts[node.Type]++
	}

	if n := counts[domain.NodeStart]; n != RequiredStartNodes {
		errs = append(errs, fmt.Sprintf("expected exactly %d START node, found %d", RequiredStartNodes, n))
	}
	if n := counts[domain.NodeEnding]; n < MinEndingNodes {
		errs = append(errs, fmt.Sprintf("expected at least %d ENDING nodes, found %d", MinEndingNodes, n))
	}

	for _, node := range g.Nodes {
		choiceIDs := make(map[string]bool, len(node.Choices))
		for _, choice := range node.Choices {
			switch {
			case choice.ID == "":
				errs = append(errs, fmt.Sprintf("node %q: choice %q has no id", node.ID, choice.Text))
			case choiceIDs[choice.ID]:
				errs = append(errs, fmt.Sprintf("duplicate choice id %q on node %q", choice.ID, node.ID))
			}
			choiceIDs[choice.ID] = true

			if !ids[choice.TargetNodeID] {
				errs = append(errs, fmt.Sprintf("node %q: choice %q targets unknown node %q", node.ID, choice.Text, choice.TargetNodeID))
			}
		}

		switch {
		case node.Type == domain.NodeEnding && len(node.Choices) > 0:
			errs = append(errs, fmt.Sprintf("ENDING node %q must not have choices", node.ID))
		case node.Type == domain.NodeDecision && (len(node.Choices) < MinDecisionChoices || len(node.Choices) > MaxDecisionChoices):
			errs = append(errs, fmt.Sprintf("DECISION node %q has %d choices, expected %d-%d", node.ID, len(node.Choices), MinDecisionChoices, MaxDecisionChoices))
		case node.Type != domain.NodeEnding && len(node.Choices) == 0:
			errs = append(errs, fmt.Sprintf("%s node %q has no choices", node.Type, node.ID))
		}
	}

	adj := AdjacencyOf(g)
	if start, ok := g.Start(); ok {
		visited := Reachable(adj, start.ID)
		for _, node := range g.Nodes {
			if !visited[node.ID] {
				errs = append(errs, fmt.Sprintf("node %q is unreachable from START", node.ID))
			}
		}
	}

	for _, id := range FindCycles(adj, nodeIDs(g)) {
		errs = append(errs, fmt.Sprintf("cycle detected through node %q", id))
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func nodeIDs(g *domain.NarrativeGraph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for _, node := range g.Nodes {
		ids = append(ids, node.ID)
	}
	return ids
}
