package openai

import (
	"fmt"
	"strings"

	"storycast/internal/domain"
	"storycast/internal/narrative"
)

const systemPrompt = "You are the head writer of an audio storytelling studio. " +
	"Answer only with JSON that matches the requested schema."

func outlinePrompt(req domain.OutlineRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Plan a %s audio episode about %q.\n", req.Format, req.Topic)
	if req.Era != "" {
		fmt.Fprintf(&sb, "Era: %s.\n", req.Era)
	}
	if req.Context != "" {
		fmt.Fprintf(&sb, "Background: %s\n", req.Context)
	}
	fmt.Fprintf(&sb, "Target length: %d seconds.\n", req.DurationSeconds)
	fmt.Fprintf(&sb, "Use exactly five acts named %s, in that order, each with %d to %d beats. ",
		strings.Join(domain.ActOrder, ", "), domain.MinBeatsPerAct, domain.MaxBeatsPerAct)
	sb.WriteString("Attach citations to beats that state facts.")
	return sb.String()
}

func scriptPrompt(req domain.ScriptRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write the full %s script for %q from this outline.\n", req.Format, req.Outline.Title)
	for _, act := range req.Outline.Acts {
		fmt.Fprintf(&sb, "%s:\n", act.Name)
		for _, beat := range act.Beats {
			fmt.Fprintf(&sb, "- %s\n", beat.Text)
		}
	}
	fmt.Fprintf(&sb, "Aim for about %d words. ", req.TargetWords)
	fmt.Fprintf(&sb, "Every line must use one of these speakers: %s.", strings.Join(req.Speakers, ", "))
	return sb.String()
}

func adventurePrompt(req domain.AdventureRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Design a choose-your-path audio adventure about %q.\n", req.Topic)
	if req.Era != "" {
		fmt.Fprintf(&sb, "Era: %s.\n", req.Era)
	}
	if req.Context != "" {
		fmt.Fprintf(&sb, "Background: %s\n", req.Context)
	}
	sb.WriteString("Return 8 to 12 nodes: exactly 1 START, 4 to 6 DECISION, 2 to 3 STORY and 3 to 4 ENDING. ")
	sb.WriteString("DECISION nodes offer 2 or 3 choices, STORY nodes lead on with one choice, ENDING nodes have none ")
	sb.WriteString("and carry an ending_kind of victory, defeat, neutral or bittersweet. ")
	sb.WriteString("Every path from START to an ENDING spans 4 to 5 nodes and never loops back.")
	return sb.String()
}

func nodeContentPrompt(req domain.NodeContentRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Adventure: %s\n", req.AdventureTitle)
	if req.AdventureDescription != "" {
		fmt.Fprintf(&sb, "Premise: %s\n", req.AdventureDescription)
	}
	if req.Setting != "" {
		fmt.Fprintf(&sb, "Setting: %s\n", req.Setting)
	}
	sb.WriteString(narrative.HistoryContext(req.PathHistory))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Scene %q (%s): %s\n", req.Node.Title, req.Node.Type, req.Node.Summary)
	fmt.Fprintf(&sb, "Narrate it in the second person in %d to %d words.", req.MinWords, req.MaxWords)
	if req.Node.Type == domain.NodeDecision {
		sb.WriteString(" Close with a decision prompt and echo these choices with their ids:\n")
		for _, c := range req.Node.Choices {
			fmt.Fprintf(&sb, "- %s: %s\n", c.ID, c.Text)
		}
	}
	return sb.String()
}
