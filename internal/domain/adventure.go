package domain

import (
	"time"

	"github.com/google/uuid"
)

type NodeType string

const (
	NodeStart    NodeType = "START"
	NodeDecision NodeType = "DECISION"
	NodeStory    NodeType = "STORY"
	NodeEnding   NodeType = "ENDING"
)

type EndingKind string

const (
	EndingVictory     EndingKind = "victory"
	EndingDefeat      EndingKind = "defeat"
	EndingNeutral     EndingKind = "neutral"
	EndingBittersweet EndingKind = "bittersweet"
)

type Adventure struct {
	ID          uuid.UUID
	EpisodeID   uuid.UUID
	Title       string
	Description string
	Setting     string
	Graph       NarrativeGraph
	CreatedAt   time.Time
}

type NarrativeGraph struct {
	Nodes []Node `json:"nodes"`
}

// Node returns the node with the given id.
func (g *NarrativeGraph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Start returns the first START node.
func (g *NarrativeGraph) Start() (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].Type == NodeStart {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

type Node struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Type       NodeType     `json:"type"`
	Summary    string       `json:"summary,omitempty"`
	Choices    []Choice     `json:"choices,omitempty"`
	EndingKind EndingKind   `json:"ending_kind,omitempty"`
	Content    *NodeContent `json:"-"`
	Audio      *AudioRef    `json:"-"`
}

// Choice returns the choice with the given id.
func (n *Node) Choice(id string) (*Choice, bool) {
	for i := range n.Choices {
		if n.Choices[i].ID == id {
			return &n.Choices[i], true
		}
	}
	return nil, false
}

type Choice struct {
	ID                  string `json:"id,omitempty"`
	Text                string `json:"text"`
	Description         string `json:"description"`
	ConsequencesSummary string `json:"consequences_summary"`
	TargetNodeID        string `json:"target_node_id"`
}

// NodeContent is the lazily generated narration for one node.
type NodeContent struct {
	Narrative      string       `json:"narrative"`
	DecisionPrompt string       `json:"decision_prompt,omitempty"`
	Choices        []ChoiceView `json:"choices,omitempty"`
}

// ChoiceView is a choice echoed back for display alongside generated narration.
type ChoiceView struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
}

type Journey struct {
	ID            uuid.UUID
	AdventureID   uuid.UUID
	ListenerID    string
	CurrentNodeID string
	Path          []PathEntry
	IsCompleted   bool
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PathEntry struct {
	NodeID     string    `json:"node_id"`
	ChoiceText string    `json:"choice_text"`
	ChosenAt   time.Time `json:"chosen_at"`
}

// History returns the chosen option texts in order.
func (j *Journey) History() []string {
	history := make([]string, 0, len(j.Path))
	for _, entry := range j.Path {
		history = append(history, entry.ChoiceText)
	}
	return history
}
