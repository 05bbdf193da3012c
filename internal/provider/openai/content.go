package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openaigo "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"storycast/internal/domain"
)

// ErrEmptyResponse is returned when the model answers with no content.
var ErrEmptyResponse = errors.New("empty completion")

// SchemaError reports a completion that does not match the requested shape.
type SchemaError struct {
	Operation string
	Err       error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s response rejected: %v", e.Operation, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

type scriptResponse struct {
	Lines []struct {
		Speaker string `json:"speaker"`
		Text    string `json:"text"`
	} `json:"lines"`
	Citations []string `json:"citations,omitempty"`
}

type adventureResponse struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Setting     string         `json:"setting"`
	Nodes       []nodeResponse `json:"nodes"`
}

type nodeResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Type       string           `json:"type"`
	Summary    string           `json:"summary"`
	EndingKind string           `json:"ending_kind,omitempty"`
	Choices    []choiceResponse `json:"choices,omitempty"`
}

type choiceResponse struct {
	ID                  string `json:"id,omitempty"`
	Text                string `json:"text"`
	Description         string `json:"description"`
	ConsequencesSummary string `json:"consequences_summary"`
	TargetNodeID        string `json:"target_node_id"`
}

type nodeContentResponse struct {
	Narrative      string `json:"narrative"`
	DecisionPrompt string `json:"decision_prompt,omitempty"`
	Choices        []struct {
		ID          string `json:"id"`
		Text        string `json:"text"`
		Description string `json:"description,omitempty"`
	} `json:"choices,omitempty"`
}

// ContentClient generates outlines, scripts, adventure graphs and node
// narration through structured chat completions.
type ContentClient struct {
	base
	model       string
	temperature float32
}

func NewContentClient(cfg Config, logger *slog.Logger, opts ...Option) *ContentClient {
	model := cfg.ChatModel
	if model == "" {
		model = openaigo.GPT4oMini
	}
	return &ContentClient{
		base:        newBase(cfg, logger, "content", opts...),
		model:       model,
		temperature: cfg.Temperature,
	}
}

func (c *ContentClient) GenerateOutline(ctx context.Context, req domain.OutlineRequest) (*domain.Outline, error) {
	var out domain.Outline
	if err := c.complete(ctx, "outline", outlinePrompt(req), &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, &SchemaError{Operation: "outline", Err: err}
	}
	return &out, nil
}

func (c *ContentClient) GenerateScript(ctx context.Context, req domain.ScriptRequest) (*domain.Script, error) {
	var resp scriptResponse
	if err := c.complete(ctx, "script", scriptPrompt(req), &resp); err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(req.Speakers))
	for _, s := range req.Speakers {
		allowed[s] = true
	}

	script := &domain.Script{Citations: resp.Citations}
	for i, line := range resp.Lines {
		speaker := strings.ToLower(strings.TrimSpace(line.Speaker))
		if len(allowed) > 0 && !allowed[speaker] {
			return nil, &SchemaError{Operation: "script", Err: fmt.Errorf("line %d has unknown speaker %q", i+1, line.Speaker)}
		}
		script.Lines = append(script.Lines, domain.ScriptLine{Speaker: speaker, Text: strings.TrimSpace(line.Text)})
	}
	if err := script.Validate(); err != nil {
		return nil, &SchemaError{Operation: "script", Err: err}
	}
	script.Finalize()
	return script, nil
}

func (c *ContentClient) GenerateGraph(ctx context.Context, req domain.AdventureRequest) (*domain.AdventureDraft, error) {
	var resp adventureResponse
	if err := c.complete(ctx, "graph", adventurePrompt(req), &resp); err != nil {
		return nil, err
	}
	if len(resp.Nodes) == 0 {
		return nil, &SchemaError{Operation: "graph", Err: errors.New("graph has no nodes")}
	}
	draft := &domain.AdventureDraft{
		Title:       resp.Title,
		Description: resp.Description,
		Setting:     resp.Setting,
	}
	for _, n := range resp.Nodes {
		node := domain.Node{
			ID:         strings.TrimSpace(n.ID),
			Title:      n.Title,
			Type:       domain.NodeType(strings.ToUpper(strings.TrimSpace(n.Type))),
			Summary:    n.Summary,
			EndingKind: domain.EndingKind(strings.ToLower(strings.TrimSpace(n.EndingKind))),
		}
		for _, ch := range n.Choices {
			node.Choices = append(node.Choices, domain.Choice{
				ID:                  strings.TrimSpace(ch.ID),
				Text:                ch.Text,
				Description:         ch.Description,
				ConsequencesSummary: ch.ConsequencesSummary,
				TargetNodeID:        strings.TrimSpace(ch.TargetNodeID),
			})
		}
		draft.Graph.Nodes = append(draft.Graph.Nodes, node)
	}
	return draft, nil
}

func (c *ContentClient) GenerateNodeContent(ctx context.Context, req domain.NodeContentRequest) (*domain.NodeContent, error) {
	var resp nodeContentResponse
	if err := c.complete(ctx, "node_content", nodeContentPrompt(req), &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Narrative) == "" {
		return nil, &SchemaError{Operation: "node_content", Err: errors.New("narrative is empty")}
	}

	content := &domain.NodeContent{
		Narrative:      strings.TrimSpace(resp.Narrative),
		DecisionPrompt: strings.TrimSpace(resp.DecisionPrompt),
	}
	for _, ch := range resp.Choices {
		content.Choices = append(content.Choices, domain.ChoiceView{ID: ch.ID, Text: ch.Text, Description: ch.Description})
	}
	return content, nil
}

// complete requests a JSON completion constrained to the schema of out and
// decodes it after checking the payload against that schema.
func (c *ContentClient) complete(ctx context.Context, operation, prompt string, out any) error {
	schema, err := jsonschema.GenerateSchemaForType(out)
	if err != nil {
		return fmt.Errorf("build %s schema: %w", operation, err)
	}

	var content string
	err = c.observe(ctx, operation, func(ctx context.Context) error {
		resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
			Model:       c.model,
			Temperature: c.temperature,
			Messages: []openaigo.ChatCompletionMessage{
				{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openaigo.ChatMessageRoleUser, Content: prompt},
			},
			ResponseFormat: &openaigo.ChatCompletionResponseFormat{
				Type: openaigo.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openaigo.ChatCompletionResponseFormatJSONSchema{
					Name:   operation,
					Schema: schema,
				},
			},
		})
		if err != nil {
			return convertError(err)
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return ErrEmptyResponse
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return err
	}

	if err := schema.Unmarshal(content, out); err != nil {
		return &SchemaError{Operation: operation, Err: err}
	}
	return nil
}
