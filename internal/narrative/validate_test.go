package narrative

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycast/internal/domain"
)

func TestValidate_WellFormedGraph(t *testing.T) {
	result := Validate(wellFormedGraph())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.NoError(t, result.Err())
}

func TestValidate_TwoStartNodes(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[1].Type = domain.NodeStart

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "expected exactly 1 START node, found 2")
}

func TestValidate_TooFewEndings(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes = g.Nodes[:len(g.Nodes)-1]
	g.Nodes[4].Choices = []domain.Choice{choice("s2-c0", "e1")}
	g.Nodes[6].Choices = []domain.Choice{choice("d4-c0", "e2"), choice("d4-c1", "e1")}

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"expected at least 3 ENDING nodes, found 2"}, result.Errors)
}

func TestValidate_UnknownChoiceTarget(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[5].Choices[1].TargetNodeID = "nowhere"

	result := Validate(g)

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], `node "d3"`)
	assert.Contains(t, result.Errors[0], `"nowhere"`)
}

func TestValidate_UnreachableNode(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes = append(g.Nodes, domain.Node{
		ID:   "island",
		Type: domain.NodeStory,
		Choices: []domain.Choice{
			choice("island-c0", "e1"),
		},
	})

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{`node "island" is unreachable from START`}, result.Errors)
}

func TestValidate_ReportsAllViolationsTogether(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[1].Type = domain.NodeStart
	g.Nodes[5].Choices[0].TargetNodeID = "ghost"
	g.Nodes = append(g.Nodes, domain.Node{ID: "orphan", Type: domain.NodeEnding})

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)

	var verr *ValidationError
	require.True(t, errors.As(result.Err(), &verr))
	assert.Equal(t, result.Errors, verr.Errors)
	assert.Contains(t, verr.Error(), "invalid narrative graph")
}

func TestValidate_DecisionChoiceCardinality(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[1].Choices = g.Nodes[1].Choices[:1]

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, `DECISION node "d1" has 1 choices, expected 2-3`)
}

func TestValidate_EndingWithChoices(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[7].Choices = []domain.Choice{choice("e1-c0", "e2")}

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, `ENDING node "e1" must not have choices`)
}

func TestValidate_DeadEndStoryNode(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[3].Choices = nil

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, `STORY node "s1" has no choices`)
}

func TestValidate_DuplicateNodeID(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[4].ID = "s1"

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, `duplicate node id "s1"`)
}

func TestValidate_DuplicateChoiceID(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[2].Choices[2].ID = "d2-c0"

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{`duplicate choice id "d2-c0" on node "d2"`}, result.Errors)
}

func TestValidate_MissingChoiceID(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[1].Choices[1].ID = ""

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{`node "d1": choice "go to d3" has no id`}, result.Errors)
}

func TestValidate_RejectsCycles(t *testing.T) {
	g := wellFormedGraph()
	g.Nodes[3].Choices = []domain.Choice{choice("s1-c0", "d1")}

	result := Validate(g)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, `cycle detected through node "d1"`)
}

func TestReachable(t *testing.T) {
	adj := Adjacency{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
		"x": {"a"},
	}

	visited := Reachable(adj, "a")

	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, visited)
}

func TestAdjacencyOf(t *testing.T) {
	adj := AdjacencyOf(wellFormedGraph())

	assert.Equal(t, []string{"d4", "s2", "d3"}, adj["d2"])
	assert.Empty(t, adj["e1"])
}
