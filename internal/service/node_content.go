package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storycast/internal/audio"
	"storycast/internal/domain"
	"storycast/internal/narrative"
	"storycast/internal/retry"
)

// Narration length targets for one node.
const (
	NodeMinWords = 800
	NodeMaxWords = 1500
)

var ErrNodeContentMissing = errors.New("node has no generated content")

// NodeContentGenerator fills in narration and audio for adventure nodes on
// first use.
type NodeContentGenerator struct {
	content    ContentGenerator
	speech     *SpeechSynthesizer
	assembler  AudioAssembler
	objects    ObjectStore
	adventures AdventureStore
	exec       *retry.Executor
	logger     *slog.Logger
}

func NewNodeContentGenerator(
	content ContentGenerator,
	speech *SpeechSynthesizer,
	assembler AudioAssembler,
	objects ObjectStore,
	adventures AdventureStore,
	exec *retry.Executor,
	logger *slog.Logger,
) *NodeContentGenerator {
	return &NodeContentGenerator{
		content:    content,
		speech:     speech,
		assembler:  assembler,
		objects:    objects,
		adventures: adventures,
		exec:       exec,
		logger:     logger.With("component", "node-content"),
	}
}

// Generate returns the node's narration, generating and storing it when the
// node has none yet. history is the ordered list of choices the listener made
// to get here; it is empty for the start node.
func (g *NodeContentGenerator) Generate(ctx context.Context, adventure *domain.Adventure, nodeID string, history []string) (*domain.NodeContent, error) {
	node, ok := adventure.Graph.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", narrative.ErrNodeNotFound, nodeID)
	}
	if node.Content != nil {
		return node.Content, nil
	}

	req := domain.NodeContentRequest{
		AdventureTitle:       adventure.Title,
		AdventureDescription: adventure.Description,
		Setting:              adventure.Setting,
		Node:                 *node,
		PathHistory:          history,
		MinWords:             NodeMinWords,
		MaxWords:             NodeMaxWords,
	}
	content, err := retry.Execute(ctx, g.exec, func(ctx context.Context) (*domain.NodeContent, error) {
		return g.content.GenerateNodeContent(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("generate node %q content: %w", nodeID, err)
	}
	normalizeContent(node, content)

	stored, err := g.adventures.SaveNodeContent(ctx, adventure.ID, nodeID, content)
	if err != nil {
		return nil, fmt.Errorf("save node %q content: %w", nodeID, err)
	}
	node.Content = stored

	g.logger.Info("node content generated",
		"adventure_id", adventure.ID,
		"node_id", nodeID,
		"node_type", node.Type,
		"history_len", len(history),
	)
	return stored, nil
}

// GenerateAudio voices the node's narration, decision prompt and each choice
// as separate segments joined with node-boundary pauses.
func (g *NodeContentGenerator) GenerateAudio(ctx context.Context, adventure *domain.Adventure, nodeID string, voices domain.VoiceConfig) (*domain.AudioRef, error) {
	node, ok := adventure.Graph.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", narrative.ErrNodeNotFound, nodeID)
	}
	if node.Audio != nil {
		return node.Audio, nil
	}
	if node.Content == nil {
		return nil, fmt.Errorf("%w: %q", ErrNodeContentMissing, nodeID)
	}

	segments := NodeSegments(node.Content, voices)
	buffers, err := g.speech.SynthesizeAll(ctx, segments)
	if err != nil {
		return nil, fmt.Errorf("synthesize node %q: %w", nodeID, err)
	}

	data, err := g.assembler.AssembleSafe(ctx, buffers, audio.PauseNodeBoundary)
	if err != nil {
		return nil, fmt.Errorf("assemble node %q: %w", nodeID, err)
	}

	ref, err := g.objects.Upload(ctx, data, domain.UploadOptions{
		Filename:    fmt.Sprintf("adventures/%s/%s.mp3", adventure.ID, nodeID),
		ContentType: audio.ContentTypeMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("upload node %q audio: %w", nodeID, err)
	}

	stored, err := g.adventures.SaveNodeAudio(ctx, adventure.ID, nodeID, ref)
	if err != nil {
		return nil, fmt.Errorf("save node %q audio: %w", nodeID, err)
	}
	node.Audio = stored
	return stored, nil
}

// NodeSegments lists the spoken parts of a node in playback order.
func NodeSegments(content *domain.NodeContent, voices domain.VoiceConfig) []domain.AudioSegment {
	segment := func(text string) domain.AudioSegment {
		return domain.AudioSegment{Speaker: "narrator", Voice: voices.VoiceFor("narrator"), Text: text, Speed: voices.Speed}
	}

	segments := []domain.AudioSegment{segment(content.Narrative)}
	if content.DecisionPrompt != "" {
		segments = append(segments, segment(content.DecisionPrompt))
	}
	for i, choice := range content.Choices {
		segments = append(segments, segment(fmt.Sprintf("Option %d. %s", i+1, choice.Text)))
	}
	return segments
}

// normalizeContent keeps decision material only on DECISION nodes and makes
// the echoed choices match the node's actual choices.
func normalizeContent(node *domain.Node, content *domain.NodeContent) {
	if node.Type != domain.NodeDecision {
		content.DecisionPrompt = ""
		content.Choices = nil
		return
	}

	echoed := make(map[string]domain.ChoiceView, len(content.Choices))
	for _, c := range content.Choices {
		echoed[c.ID] = c
	}
	views := make([]domain.ChoiceView, 0, len(node.Choices))
	for _, c := range node.Choices {
		view := domain.ChoiceView{ID: c.ID, Text: c.Text, Description: c.Description}
		if e, ok := echoed[c.ID]; ok && e.Description != "" {
			view.Description = e.Description
		}
		views = append(views, view)
	}
	content.Choices = views
}
