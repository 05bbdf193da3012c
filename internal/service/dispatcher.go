package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storycast/internal/domain"
)

// Dispatcher claims pending episodes and hands each to the generator for its
// format.
type Dispatcher struct {
	episodes   EpisodeStore
	pipeline   *Orchestrator
	adventures *AdventureService
	batchSize  int
	logger     *slog.Logger
}

func NewDispatcher(episodes EpisodeStore, pipeline *Orchestrator, adventures *AdventureService, batchSize int, logger *slog.Logger) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Dispatcher{
		episodes:   episodes,
		pipeline:   pipeline,
		adventures: adventures,
		batchSize:  batchSize,
		logger:     logger.With("component", "dispatcher"),
	}
}

// RunPending processes one batch of pending episodes sequentially. A failed
// episode is counted and does not stop the batch.
func (d *Dispatcher) RunPending(ctx context.Context) (*domain.RunStats, error) {
	start := time.Now()
	stats := &domain.RunStats{}

	claimed, err := d.episodes.ClaimPending(ctx, d.batchSize)
	if err != nil {
		return nil, fmt.Errorf("claim pending episodes: %w", err)
	}
	stats.Claimed = len(claimed)

	for i := range claimed {
		if ctx.Err() != nil {
			break
		}
		episode := &claimed[i]
		if episode.Format == domain.FormatAdventure {
			stats.Adventure++
		}

		if err := d.dispatch(ctx, episode); err != nil {
			stats.Failed++
			d.logger.Error("episode generation failed",
				"episode_id", episode.ID,
				"format", episode.Format,
				"error", err,
			)
			continue
		}
		stats.Ready++
	}

	stats.Duration = time.Since(start)
	if stats.Claimed > 0 {
		d.logger.Info("pending episodes processed",
			"claimed", stats.Claimed,
			"ready", stats.Ready,
			"failed", stats.Failed,
			"adventures", stats.Adventure,
			"duration", stats.Duration,
		)
	}
	return stats, ctx.Err()
}

func (d *Dispatcher) dispatch(ctx context.Context, episode *domain.Episode) error {
	if episode.Format == domain.FormatAdventure {
		_, err := d.adventures.Create(ctx, episode)
		return err
	}
	return d.pipeline.Run(ctx, episode, func(p Progress) {
		d.logger.Debug("episode progress",
			"episode_id", episode.ID,
			"stage", p.Stage,
			"percent", p.Percent,
			"message", p.Message,
		)
	})
}
