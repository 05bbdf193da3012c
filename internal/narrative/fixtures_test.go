package narrative

import "storycast/internal/domain"

func choice(id, target string) domain.Choice {
	return domain.Choice{
		ID:                  id,
		Text:                "go to " + target,
		Description:         "leads to " + target,
		ConsequencesSummary: "you reach " + target,
		TargetNodeID:        target,
	}
}

// wellFormedGraph has 10 nodes: 1 START, 4 DECISION, 2 STORY, 3 ENDING.
// Every root-to-ending path spans 4 or 5 nodes.
func wellFormedGraph() *domain.NarrativeGraph {
	return &domain.NarrativeGraph{Nodes: []domain.Node{
		{ID: "start", Title: "The Gate", Type: domain.NodeStart, Choices: []domain.Choice{
			choice("start-c0", "d1"),
			choice("start-c1", "d2"),
		}},
		{ID: "d1", Title: "The Bridge", Type: domain.NodeDecision, Choices: []domain.Choice{
			choice("d1-c0", "s1"),
			choice("d1-c1", "d3"),
		}},
		{ID: "d2", Title: "The Forest", Type: domain.NodeDecision, Choices: []domain.Choice{
			choice("d2-c0", "d4"),
			choice("d2-c1", "s2"),
			choice("d2-c2", "d3"),
		}},
		{ID: "s1", Title: "The River", Type: domain.NodeStory, Choices: []domain.Choice{
			choice("s1-c0", "e1"),
		}},
		{ID: "s2", Title: "The Cave", Type: domain.NodeStory, Choices: []domain.Choice{
			choice("s2-c0", "e3"),
		}},
		{ID: "d3", Title: "The Tower", Type: domain.NodeDecision, Choices: []domain.Choice{
			choice("d3-c0", "e1"),
			choice("d3-c1", "e2"),
		}},
		{ID: "d4", Title: "The Camp", Type: domain.NodeDecision, Choices: []domain.Choice{
			choice("d4-c0", "e2"),
			choice("d4-c1", "e3"),
		}},
		{ID: "e1", Title: "Crowned", Type: domain.NodeEnding, EndingKind: domain.EndingVictory},
		{ID: "e2", Title: "Lost", Type: domain.NodeEnding, EndingKind: domain.EndingDefeat},
		{ID: "e3", Title: "Home Again", Type: domain.NodeEnding, EndingKind: domain.EndingBittersweet},
	}}
}
