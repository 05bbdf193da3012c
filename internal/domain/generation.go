package domain

// OutlineRequest carries the inputs of the outline stage.
type OutlineRequest struct {
	Format          Format
	Topic           string
	Era             string
	Context         string
	DurationSeconds int
}

type ScriptRequest struct {
	Format      Format
	Topic       string
	Outline     Outline
	TargetWords int
	Speakers    []string
}

// AdventureRequest asks for a complete branching outline.
type AdventureRequest struct {
	Topic   string
	Era     string
	Context string
}

// AdventureDraft is the provider's answer to an AdventureRequest, before ids
// are normalized and the graph is validated.
type AdventureDraft struct {
	Title       string
	Description string
	Setting     string
	Graph       NarrativeGraph
}

type NodeContentRequest struct {
	AdventureTitle       string
	AdventureDescription string
	Setting              string
	Node                 Node
	PathHistory          []string
	MinWords             int
	MaxWords             int
}

type SpeechRequest struct {
	Text  string
	Voice string
	Speed float64
}
