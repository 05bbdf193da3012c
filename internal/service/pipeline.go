package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storycast/internal/audio"
	"storycast/internal/domain"
	"storycast/internal/retry"
)

var (
	ErrInvalidFormat   = errors.New("invalid episode format")
	ErrInvalidRequest  = errors.New("invalid episode request")
	ErrEpisodeTerminal = errors.New("episode already finished")
)

// Progress is reported before each pipeline stage starts.
type Progress struct {
	Stage   domain.Stage
	Message string
	Percent int
}

type ProgressFunc func(Progress)

var stageProgress = map[domain.Stage]Progress{
	domain.StageOutline: {Stage: domain.StageOutline, Message: "Drafting the outline", Percent: 10},
	domain.StageScript:  {Stage: domain.StageScript, Message: "Writing the script", Percent: 35},
	domain.StageAudio:   {Stage: domain.StageAudio, Message: "Recording the voices", Percent: 60},
	domain.StageUpload:  {Stage: domain.StageUpload, Message: "Uploading the audio", Percent: 85},
	domain.StagePublish: {Stage: domain.StagePublish, Message: "Publishing the episode", Percent: 100},
}

// EpisodeRequest describes a new episode to generate.
type EpisodeRequest struct {
	Format          domain.Format
	Title           string
	Topic           string
	Era             string
	Context         string
	DurationSeconds int
	Voices          domain.VoiceConfig
}

type OrchestratorOption func(*Orchestrator)

func WithRecorder(r Recorder) OrchestratorOption {
	return func(o *Orchestrator) { o.recorder = recorderOrNop(r) }
}

func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.now = now }
}

// Orchestrator drives linear episodes through outline, script, audio, upload
// and publish, persisting status before each stage and output after it.
type Orchestrator struct {
	content   ContentGenerator
	speech    *SpeechSynthesizer
	assembler AudioAssembler
	objects   ObjectStore
	episodes  EpisodeStore
	publisher Publisher
	textExec  *retry.Executor
	recorder  Recorder
	tracer    trace.Tracer
	logger    *slog.Logger
	now       func() time.Time
}

func NewOrchestrator(
	content ContentGenerator,
	speech *SpeechSynthesizer,
	assembler AudioAssembler,
	objects ObjectStore,
	episodes EpisodeStore,
	publisher Publisher,
	textExec *retry.Executor,
	logger *slog.Logger,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		content:   content,
		speech:    speech,
		assembler: assembler,
		objects:   objects,
		episodes:  episodes,
		publisher: publisher,
		textExec:  textExec,
		recorder:  nopRecorder{},
		tracer:    otel.Tracer("storycast/service"),
		logger:    logger.With("component", "orchestrator"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit validates req and stores it as a PENDING episode.
func (o *Orchestrator) Submit(ctx context.Context, req EpisodeRequest) (*domain.Episode, error) {
	if !req.Format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, req.Format)
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	if req.DurationSeconds <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
	}

	now := o.now()
	episode := &domain.Episode{
		ID:              uuid.New(),
		Format:          req.Format,
		Status:          domain.StatusPending,
		Title:           req.Title,
		Topic:           req.Topic,
		Era:             optional(req.Era),
		Context:         optional(req.Context),
		DurationSeconds: req.DurationSeconds,
		Voices:          req.Voices,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if episode.Title == "" {
		episode.Title = req.Topic
	}

	if err := o.episodes.Create(ctx, episode); err != nil {
		return nil, fmt.Errorf("create episode: %w", err)
	}

	o.logger.Info("episode submitted", "episode_id", episode.ID, "format", episode.Format)
	return episode, nil
}

// Resume loads an episode and runs whatever stages are still missing.
func (o *Orchestrator) Resume(ctx context.Context, id uuid.UUID, onProgress ProgressFunc) (*domain.Episode, error) {
	episode, err := o.episodes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get episode: %w", err)
	}
	if err := o.Run(ctx, episode, onProgress); err != nil {
		return episode, err
	}
	return episode, nil
}

// Run executes every stage that has not produced output yet. A failed stage
// marks the episode FAILED and returns the stage error; output of earlier
// stages stays persisted.
func (o *Orchestrator) Run(ctx context.Context, episode *domain.Episode, onProgress ProgressFunc) error {
	if episode.Format == domain.FormatAdventure || !episode.Format.Valid() {
		return fmt.Errorf("%w: %q is not a linear format", ErrInvalidFormat, episode.Format)
	}
	if episode.Status.Terminal() && episode.Status != domain.StatusFailed {
		return fmt.Errorf("%w: status %s", ErrEpisodeTerminal, episode.Status)
	}

	logger := o.logger.With("episode_id", episode.ID, "format", episode.Format)
	ctx, span := o.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.String("episode.id", episode.ID.String()),
		attribute.String("episode.format", string(episode.Format)),
	))
	defer span.End()

	startTime := time.Now()
	logger.Info("starting episode pipeline", "topic", episode.Topic, "duration_seconds", episode.DurationSeconds)

	run := &pipelineRun{episode: episode}
	for _, stage := range domain.Stages {
		if run.done(stage) {
			logger.Info("stage already completed, skipping", "stage", stage)
			continue
		}

		notify(onProgress, stageProgress[stage], logger)

		if err := o.runStage(ctx, run, stage); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return o.fail(ctx, episode, stage, err, logger)
		}
	}

	o.recorder.EpisodeFinished(episode.Format, domain.StatusReady)
	o.publish(ctx, domain.Event{
		Type:      domain.EventEpisodeReady,
		EpisodeID: episode.ID,
		Format:    episode.Format,
		Status:    episode.Status,
		Title:     episode.Title,
		AudioURL:  episode.Audio.URL,
	}, logger)

	logger.Info("episode pipeline completed",
		"audio_url", episode.Audio.URL,
		"audio_bytes", episode.Audio.Bytes,
		"duration", time.Since(startTime),
	)
	return nil
}

// pipelineRun carries the in-memory audio buffer from the audio stage to the
// upload stage.
type pipelineRun struct {
	episode *domain.Episode
	audio   []byte
}

func (r *pipelineRun) done(stage domain.Stage) bool {
	switch stage {
	case domain.StageOutline:
		return r.episode.Outline != nil
	case domain.StageScript:
		return r.episode.Script != nil
	case domain.StageAudio, domain.StageUpload:
		return r.episode.Audio != nil
	}
	return false
}

func (o *Orchestrator) runStage(ctx context.Context, run *pipelineRun, stage domain.Stage) (err error) {
	ctx, span := o.tracer.Start(ctx, "pipeline."+string(stage))
	defer span.End()

	start := time.Now()
	defer func() { o.recorder.ObserveStage(stage, time.Since(start), err) }()

	episode := run.episode
	if stage != domain.StagePublish {
		if err := o.episodes.UpdateStatus(ctx, episode.ID, stage.Status()); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		episode.Status = stage.Status()
	}

	switch stage {
	case domain.StageOutline:
		return o.outline(ctx, episode)
	case domain.StageScript:
		return o.script(ctx, episode)
	case domain.StageAudio:
		return o.audio(ctx, run)
	case domain.StageUpload:
		return o.upload(ctx, run)
	case domain.StagePublish:
		return o.publishStage(ctx, episode)
	}
	return fmt.Errorf("unknown stage %q", stage)
}

func (o *Orchestrator) outline(ctx context.Context, episode *domain.Episode) error {
	req := domain.OutlineRequest{
		Format:          episode.Format,
		Topic:           episode.Topic,
		Era:             deref(episode.Era),
		Context:         deref(episode.Context),
		DurationSeconds: episode.DurationSeconds,
	}
	outline, err := retry.Execute(ctx, o.textExec, func(ctx context.Context) (*domain.Outline, error) {
		return o.content.GenerateOutline(ctx, req)
	})
	if err != nil {
		return fmt.Errorf("generate outline: %w", err)
	}

	if err := o.episodes.SaveOutline(ctx, episode.ID, outline); err != nil {
		return fmt.Errorf("save outline: %w", err)
	}
	episode.Outline = outline
	return nil
}

func (o *Orchestrator) script(ctx context.Context, episode *domain.Episode) error {
	req := domain.ScriptRequest{
		Format:      episode.Format,
		Topic:       episode.Topic,
		Outline:     *episode.Outline,
		TargetWords: domain.TargetWordCount(episode.DurationSeconds),
		Speakers:    episode.Format.Speakers(),
	}
	script, err := retry.Execute(ctx, o.textExec, func(ctx context.Context) (*domain.Script, error) {
		return o.content.GenerateScript(ctx, req)
	})
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}
	script.Finalize()

	if err := o.episodes.SaveScript(ctx, episode.ID, script); err != nil {
		return fmt.Errorf("save script: %w", err)
	}
	episode.Script = script
	episode.Transcript = &script.Transcript
	return nil
}

func (o *Orchestrator) audio(ctx context.Context, run *pipelineRun) error {
	episode := run.episode
	segments := ScriptSegments(episode.Script, episode.Voices)
	if len(segments) == 0 {
		return audio.ErrNoSegments
	}

	buffers, err := o.speech.SynthesizeAll(ctx, segments)
	if err != nil {
		return err
	}

	data, err := o.assembler.AssembleSafe(ctx, buffers, PauseFor(episode.Format))
	if err != nil {
		return fmt.Errorf("assemble audio: %w", err)
	}
	run.audio = data
	return nil
}

func (o *Orchestrator) upload(ctx context.Context, run *pipelineRun) error {
	episode := run.episode
	ref, err := o.objects.Upload(ctx, run.audio, domain.UploadOptions{
		Filename:    fmt.Sprintf("episodes/%s.mp3", episode.ID),
		ContentType: audio.ContentTypeMP3,
	})
	if err != nil {
		return fmt.Errorf("upload audio: %w", err)
	}
	if ref.DurationSeconds == 0 && episode.Script != nil {
		ref.DurationSeconds = float64(episode.Script.DurationEstimate)
	}

	if err := o.episodes.SaveAudio(ctx, episode.ID, ref); err != nil {
		return fmt.Errorf("save audio: %w", err)
	}
	episode.Audio = ref
	run.audio = nil
	return nil
}

func (o *Orchestrator) publishStage(ctx context.Context, episode *domain.Episode) error {
	publishedAt := o.now()
	if err := o.episodes.MarkReady(ctx, episode.ID, publishedAt); err != nil {
		return fmt.Errorf("mark ready: %w", err)
	}
	episode.PublishedAt = &publishedAt
	episode.Status = domain.StatusReady
	return nil
}

// fail records FAILED with the stage error and returns that error.
func (o *Orchestrator) fail(ctx context.Context, episode *domain.Episode, stage domain.Stage, stageErr error, logger *slog.Logger) error {
	msg := stageErr.Error()
	episode.Status = domain.StatusFailed
	episode.ErrorMsg = &msg

	logger.Error("episode stage failed", "stage", stage, "error", stageErr)

	// The failure must be recorded even when ctx was cancelled.
	persistCtx := context.WithoutCancel(ctx)
	if err := o.episodes.MarkFailed(persistCtx, episode.ID, msg); err != nil {
		logger.Error("failed to persist episode failure", "stage", stage, "error", err)
	}

	o.recorder.EpisodeFinished(episode.Format, domain.StatusFailed)
	o.publish(persistCtx, domain.Event{
		Type:      domain.EventEpisodeFailed,
		EpisodeID: episode.ID,
		Format:    episode.Format,
		Status:    domain.StatusFailed,
		Title:     episode.Title,
		Error:     msg,
	}, logger)

	return fmt.Errorf("%s stage: %w", stage, stageErr)
}

func (o *Orchestrator) publish(ctx context.Context, event domain.Event, logger *slog.Logger) {
	publishEvent(ctx, o.publisher, event, o.now(), logger)
}

// publishEvent sends event on the bus when one is configured. Bus failures are
// logged and never fail the caller.
func publishEvent(ctx context.Context, publisher Publisher, event domain.Event, now time.Time, logger *slog.Logger) {
	if publisher == nil {
		return
	}
	event.OccurredAt = now
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}

// notify delivers progress without letting the observer affect the pipeline.
func notify(fn ProgressFunc, p Progress, logger *slog.Logger) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("progress observer panicked", "stage", p.Stage, "panic", r)
		}
	}()
	fn(p)
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
