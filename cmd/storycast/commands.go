package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"storycast/internal/domain"
	"storycast/internal/service"
)

func (a *app) submit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	format := fs.String("format", string(domain.FormatNarrative), "narrative, interview, debate or adventure")
	title := fs.String("title", "", "episode title (defaults to the topic)")
	topic := fs.String("topic", "", "historical topic")
	era := fs.String("era", "", "historical era")
	extra := fs.String("context", "", "additional context for the writers")
	duration := fs.Duration("duration", 0, "target length, e.g. 10m")
	wait := fs.Bool("wait", false, "generate now instead of queueing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := domain.Format(*format)
	episode, err := a.pipeline.Submit(ctx, service.EpisodeRequest{
		Format:          f,
		Title:           *title,
		Topic:           *topic,
		Era:             *era,
		Context:         *extra,
		DurationSeconds: int(duration.Seconds()),
		Voices:          a.cfg.Voices.For(f),
	})
	if err != nil {
		return err
	}

	if *wait {
		if err := a.generate(ctx, episode); err != nil {
			return err
		}
	}
	return printJSON(episodeView(episode))
}

func (a *app) resume(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resume", flag.ContinueOnError)
	id := fs.String("id", "", "episode id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	episodeID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("parse episode id: %w", err)
	}

	episode, err := a.pipeline.Resume(ctx, episodeID, a.logProgress(episodeID))
	if err != nil {
		return err
	}
	return printJSON(episodeView(episode))
}

func (a *app) generate(ctx context.Context, episode *domain.Episode) error {
	if episode.Format == domain.FormatAdventure {
		_, err := a.adventures.Create(ctx, episode)
		return err
	}
	return a.pipeline.Run(ctx, episode, a.logProgress(episode.ID))
}

func (a *app) logProgress(id uuid.UUID) service.ProgressFunc {
	return func(p service.Progress) {
		a.logger.Info("episode progress", "episode_id", id, "stage", p.Stage, "percent", p.Percent, "message", p.Message)
	}
}

func (a *app) journey(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("journey needs a subcommand: start, choose or show")
	}
	sub, args := args[0], args[1:]

	fs := flag.NewFlagSet("journey "+sub, flag.ContinueOnError)
	adventureID := fs.String("adventure", "", "adventure id (start)")
	listener := fs.String("listener", "", "listener id (start)")
	journeyID := fs.String("id", "", "journey id (choose, show)")
	choice := fs.String("choice", "", "choice id (choose)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch sub {
	case "start":
		id, err := uuid.Parse(*adventureID)
		if err != nil {
			return fmt.Errorf("parse adventure id: %w", err)
		}
		j, err := a.journeys.Start(ctx, id, *listener)
		if err != nil {
			return err
		}
		return a.printScene(ctx, j.ID)

	case "choose":
		id, err := uuid.Parse(*journeyID)
		if err != nil {
			return fmt.Errorf("parse journey id: %w", err)
		}
		if _, err := a.journeys.Choose(ctx, id, *choice); err != nil {
			return err
		}
		return a.printScene(ctx, id)

	case "show":
		id, err := uuid.Parse(*journeyID)
		if err != nil {
			return fmt.Errorf("parse journey id: %w", err)
		}
		return a.printScene(ctx, id)
	}
	return fmt.Errorf("unknown journey subcommand %q", sub)
}

func (a *app) printScene(ctx context.Context, journeyID uuid.UUID) error {
	scene, err := a.journeys.CurrentScene(ctx, journeyID)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"journey_id":   scene.Journey.ID,
		"node_id":      scene.Node.ID,
		"title":        scene.Node.Title,
		"type":         scene.Node.Type,
		"completed":    scene.Journey.IsCompleted,
		"ending_kind":  scene.Node.EndingKind,
		"history":      scene.Journey.History(),
		"narrative":    scene.Content.Narrative,
		"prompt":       scene.Content.DecisionPrompt,
		"choices":      scene.Content.Choices,
		"path_entries": len(scene.Journey.Path),
	})
}

func episodeView(ep *domain.Episode) map[string]any {
	view := map[string]any{
		"id":     ep.ID,
		"format": ep.Format,
		"status": ep.Status,
		"title":  ep.Title,
		"topic":  ep.Topic,
	}
	if ep.Audio != nil {
		view["audio_url"] = ep.Audio.URL
	}
	if ep.ErrorMsg != nil {
		view["error"] = *ep.ErrorMsg
	}
	return view
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
