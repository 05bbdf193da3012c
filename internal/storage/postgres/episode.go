package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storycast/internal/domain"
)

const episodeColumns = `
	id, format, status, title, subtitle, topic, era, context, duration_seconds,
	voices, outline, script, transcript, audio, error_msg, published_at,
	created_at, updated_at`

type episodeRow struct {
	ID              uuid.UUID  `db:"id"`
	Format          string     `db:"format"`
	Status          string     `db:"status"`
	Title           string     `db:"title"`
	Subtitle        *string    `db:"subtitle"`
	Topic           string     `db:"topic"`
	Era             *string    `db:"era"`
	Context         *string    `db:"context"`
	DurationSeconds int        `db:"duration_seconds"`
	Voices          []byte     `db:"voices"`
	Outline         []byte     `db:"outline"`
	Script          []byte     `db:"script"`
	Transcript      *string    `db:"transcript"`
	Audio           []byte     `db:"audio"`
	ErrorMsg        *string    `db:"error_msg"`
	PublishedAt     *time.Time `db:"published_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r episodeRow) toDomain() (*domain.Episode, error) {
	ep := &domain.Episode{
		ID:              r.ID,
		Format:          domain.Format(r.Format),
		Status:          domain.Status(r.Status),
		Title:           r.Title,
		Subtitle:        r.Subtitle,
		Topic:           r.Topic,
		Era:             r.Era,
		Context:         r.Context,
		DurationSeconds: r.DurationSeconds,
		Transcript:      r.Transcript,
		ErrorMsg:        r.ErrorMsg,
		PublishedAt:     r.PublishedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if err := decodeJSON(r.Voices, &ep.Voices); err != nil {
		return nil, fmt.Errorf("decode voices: %w", err)
	}
	if err := decodeOptional(r.Outline, &ep.Outline); err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}
	if err := decodeOptional(r.Script, &ep.Script); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := decodeOptional(r.Audio, &ep.Audio); err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return ep, nil
}

type EpisodeStore struct {
	db *sqlx.DB
}

func NewEpisodeStore(db *sqlx.DB) *EpisodeStore {
	return &EpisodeStore{db: db}
}

func (s *EpisodeStore) Create(ctx context.Context, episode *domain.Episode) error {
	voices, err := json.Marshal(episode.Voices)
	if err != nil {
		return fmt.Errorf("encode voices: %w", err)
	}

	query := `
		INSERT INTO episodes (
			id, format, status, title, subtitle, topic, era, context,
			duration_seconds, voices, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, query,
		episode.ID,
		episode.Format,
		episode.Status,
		episode.Title,
		episode.Subtitle,
		episode.Topic,
		episode.Era,
		episode.Context,
		episode.DurationSeconds,
		voices,
		episode.CreatedAt,
		episode.UpdatedAt,
	)
	return err
}

func (s *EpisodeStore) Get(ctx context.Context, id uuid.UUID) (*domain.Episode, error) {
	var row episodeRow
	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("episode %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (s *EpisodeStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	return s.exec(ctx, id, `UPDATE episodes SET status = $2, updated_at = NOW() WHERE id = $1`, status)
}

// SaveOutline stores the outline and adopts its subtitle.
func (s *EpisodeStore) SaveOutline(ctx context.Context, id uuid.UUID, outline *domain.Outline) error {
	data, err := json.Marshal(outline)
	if err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	query := `
		UPDATE episodes
		SET outline = $2, subtitle = COALESCE(NULLIF($3, ''), subtitle), updated_at = NOW()
		WHERE id = $1`
	return s.exec(ctx, id, query, data, outline.Subtitle)
}

func (s *EpisodeStore) SaveScript(ctx context.Context, id uuid.UUID, script *domain.Script) error {
	data, err := json.Marshal(script)
	if err != nil {
		return fmt.Errorf("encode script: %w", err)
	}
	query := `UPDATE episodes SET script = $2, transcript = $3, updated_at = NOW() WHERE id = $1`
	return s.exec(ctx, id, query, data, script.Transcript)
}

func (s *EpisodeStore) SaveAudio(ctx context.Context, id uuid.UUID, audio *domain.AudioRef) error {
	data, err := json.Marshal(audio)
	if err != nil {
		return fmt.Errorf("encode audio: %w", err)
	}
	return s.exec(ctx, id, `UPDATE episodes SET audio = $2, updated_at = NOW() WHERE id = $1`, data)
}

func (s *EpisodeStore) MarkReady(ctx context.Context, id uuid.UUID, publishedAt time.Time) error {
	query := `
		UPDATE episodes
		SET status = $2, published_at = $3, error_msg = NULL, updated_at = NOW()
		WHERE id = $1`
	return s.exec(ctx, id, query, domain.StatusReady, publishedAt)
}

func (s *EpisodeStore) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	query := `UPDATE episodes SET status = $2, error_msg = $3, updated_at = NOW() WHERE id = $1`
	return s.exec(ctx, id, query, domain.StatusFailed, message)
}

// ClaimPending moves up to limit of the oldest PENDING episodes to
// GENERATING_OUTLINE and returns them. Concurrent claimers never receive the
// same episode.
func (s *EpisodeStore) ClaimPending(ctx context.Context, limit int) ([]domain.Episode, error) {
	query := `
		UPDATE episodes SET status = $1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM episodes
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + episodeColumns

	var rows []episodeRow
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query,
		domain.StatusGeneratingOutline,
		domain.StatusPending,
		limit,
	)
	if err != nil {
		return nil, err
	}

	episodes := make([]domain.Episode, 0, len(rows))
	for _, row := range rows {
		ep, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("episode %s: %w", row.ID, err)
		}
		episodes = append(episodes, *ep)
	}
	return episodes, nil
}

func (s *EpisodeStore) exec(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	return requireAffected(res, fmt.Sprintf("episode %s", id))
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}

func decodeJSON(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// decodeOptional leaves *dst nil for NULL or JSON null columns.
func decodeOptional[T any](data []byte, dst **T) error {
	if len(data) == 0 || string(data) == "null" {
		*dst = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
