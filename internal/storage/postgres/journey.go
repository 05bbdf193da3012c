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

type journeyRow struct {
	ID            uuid.UUID `db:"id"`
	AdventureID   uuid.UUID `db:"adventure_id"`
	ListenerID    string    `db:"listener_id"`
	CurrentNodeID string    `db:"current_node_id"`
	Path          []byte    `db:"path"`
	IsCompleted   bool      `db:"is_completed"`
	Version       int       `db:"version"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type JourneyStore struct {
	db *sqlx.DB
}

func NewJourneyStore(db *sqlx.DB) *JourneyStore {
	return &JourneyStore{db: db}
}

func (s *JourneyStore) Create(ctx context.Context, journey *domain.Journey) error {
	path, err := encodePath(journey.Path)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO journeys (
			id, adventure_id, listener_id, current_node_id, path,
			is_completed, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, query,
		journey.ID,
		journey.AdventureID,
		journey.ListenerID,
		journey.CurrentNodeID,
		path,
		journey.IsCompleted,
		journey.Version,
		journey.CreatedAt,
		journey.UpdatedAt,
	)
	return err
}

func (s *JourneyStore) Get(ctx context.Context, id uuid.UUID) (*domain.Journey, error) {
	var row journeyRow
	query := `
		SELECT id, adventure_id, listener_id, current_node_id, path,
			is_completed, version, created_at, updated_at
		FROM journeys
		WHERE id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journey %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	journey := &domain.Journey{
		ID:            row.ID,
		AdventureID:   row.AdventureID,
		ListenerID:    row.ListenerID,
		CurrentNodeID: row.CurrentNodeID,
		IsCompleted:   row.IsCompleted,
		Version:       row.Version,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if err := decodeJSON(row.Path, &journey.Path); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	if journey.Path == nil {
		journey.Path = []domain.PathEntry{}
	}
	return journey, nil
}

// Update writes the journey only if its stored version is still
// expectedVersion.
func (s *JourneyStore) Update(ctx context.Context, journey *domain.Journey, expectedVersion int) error {
	path, err := encodePath(journey.Path)
	if err != nil {
		return err
	}

	exec := GetExecutor(ctx, s.db)
	query := `
		UPDATE journeys
		SET current_node_id = $3, path = $4, is_completed = $5, version = $6, updated_at = $7
		WHERE id = $1 AND version = $2`

	res, err := exec.ExecContext(ctx, query,
		journey.ID,
		expectedVersion,
		journey.CurrentNodeID,
		path,
		journey.IsCompleted,
		journey.Version,
		journey.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := sqlx.GetContext(ctx, exec, &exists, `SELECT EXISTS(SELECT 1 FROM journeys WHERE id = $1)`, journey.ID); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("journey %s: %w", journey.ID, domain.ErrNotFound)
	}
	return fmt.Errorf("journey %s at version %d: %w", journey.ID, expectedVersion, domain.ErrJourneyConflict)
}

func encodePath(path []domain.PathEntry) ([]byte, error) {
	if path == nil {
		path = []domain.PathEntry{}
	}
	data, err := json.Marshal(path)
	if err != nil {
		return nil, fmt.Errorf("encode path: %w", err)
	}
	return data, nil
}
