package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Act names of the five-act outline, in order.
const (
	ActHook         = "hook"
	ActContext      = "context"
	ActConflict     = "conflict"
	ActBreakthrough = "breakthrough"
	ActLegacy       = "legacy"
)

var ActOrder = []string{ActHook, ActContext, ActConflict, ActBreakthrough, ActLegacy}

const (
	MinBeatsPerAct = 2
	MaxBeatsPerAct = 5
)

type Outline struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Acts     []Act  `json:"acts"`
}

type Act struct {
	Name  string `json:"name"`
	Beats []Beat `json:"beats"`
}

type Beat struct {
	Text      string   `json:"text"`
	Citations []string `json:"citations,omitempty"`
}

// Validate rejects outlines that do not follow the five-act shape.
func (o *Outline) Validate() error {
	if o == nil {
		return errors.New("outline is empty")
	}
	if len(o.Acts) != len(ActOrder) {
		return fmt.Errorf("outline has %d acts, expected %d", len(o.Acts), len(ActOrder))
	}
	var errs []error
	for i, act := range o.Acts {
		if act.Name != ActOrder[i] {
			errs = append(errs, fmt.Errorf("act %d is %q, expected %q", i+1, act.Name, ActOrder[i]))
		}
		if n := len(act.Beats); n < MinBeatsPerAct || n > MaxBeatsPerAct {
			errs = append(errs, fmt.Errorf("act %q has %d beats, expected %d-%d", act.Name, n, MinBeatsPerAct, MaxBeatsPerAct))
		}
		for j, beat := range act.Beats {
			if strings.TrimSpace(beat.Text) == "" {
				errs = append(errs, fmt.Errorf("act %q beat %d is empty", act.Name, j+1))
			}
		}
	}
	return errors.Join(errs...)
}

type Script struct {
	Lines            []ScriptLine `json:"lines"`
	Transcript       string       `json:"transcript"`
	WordCount        int          `json:"word_count"`
	DurationEstimate int          `json:"duration_estimate"`
	Citations        []string     `json:"citations,omitempty"`
}

type ScriptLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Validate rejects scripts with no speakable content.
func (s *Script) Validate() error {
	if s == nil {
		return errors.New("script is empty")
	}
	if len(s.Lines) == 0 {
		return errors.New("script has no lines")
	}
	for i, line := range s.Lines {
		if strings.TrimSpace(line.Text) == "" {
			return fmt.Errorf("script line %d is empty", i+1)
		}
	}
	return nil
}

// Finalize derives the transcript, word count and duration estimate from the lines.
func (s *Script) Finalize() {
	if strings.TrimSpace(s.Transcript) == "" {
		parts := make([]string, 0, len(s.Lines))
		for _, line := range s.Lines {
			parts = append(parts, strings.TrimSpace(line.Text))
		}
		s.Transcript = strings.Join(parts, "\n\n")
	}
	s.WordCount = len(strings.Fields(s.Transcript))
	s.DurationEstimate = EstimateDurationSeconds(s.WordCount)
}
