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

type adventureRow struct {
	ID          uuid.UUID `db:"id"`
	EpisodeID   uuid.UUID `db:"episode_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Setting     string    `db:"setting"`
	CreatedAt   time.Time `db:"created_at"`
}

type nodeRow struct {
	NodeID     string  `db:"node_id"`
	Title      string  `db:"title"`
	Type       string  `db:"type"`
	Summary    string  `db:"summary"`
	EndingKind *string `db:"ending_kind"`
	Choices    []byte  `db:"choices"`
	Content    []byte  `db:"content"`
	Audio      []byte  `db:"audio"`
}

func (r nodeRow) toDomain() (domain.Node, error) {
	node := domain.Node{
		ID:      r.NodeID,
		Title:   r.Title,
		Type:    domain.NodeType(r.Type),
		Summary: r.Summary,
	}
	if r.EndingKind != nil {
		node.EndingKind = domain.EndingKind(*r.EndingKind)
	}
	if err := decodeJSON(r.Choices, &node.Choices); err != nil {
		return node, fmt.Errorf("decode choices: %w", err)
	}
	if err := decodeOptional(r.Content, &node.Content); err != nil {
		return node, fmt.Errorf("decode content: %w", err)
	}
	if err := decodeOptional(r.Audio, &node.Audio); err != nil {
		return node, fmt.Errorf("decode audio: %w", err)
	}
	return node, nil
}

type AdventureStore struct {
	db *sqlx.DB
}

func NewAdventureStore(db *sqlx.DB) *AdventureStore {
	return &AdventureStore{db: db}
}

// Create inserts the adventure and every node of its graph. Callers wrap it in
// a transaction so a graph is never stored partially.
func (s *AdventureStore) Create(ctx context.Context, adventure *domain.Adventure) error {
	exec := GetExecutor(ctx, s.db)

	_, err := exec.ExecContext(ctx, `
		INSERT INTO adventures (id, episode_id, title, description, setting, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		adventure.ID,
		adventure.EpisodeID,
		adventure.Title,
		adventure.Description,
		adventure.Setting,
		adventure.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adventure: %w", err)
	}

	query := `
		INSERT INTO adventure_nodes (
			adventure_id, node_id, position, title, type, summary, ending_kind, choices
		) VALUES (
			$1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8
		)`

	for i, node := range adventure.Graph.Nodes {
		choices, err := json.Marshal(nonNilChoices(node.Choices))
		if err != nil {
			return fmt.Errorf("encode node %q choices: %w", node.ID, err)
		}
		_, err = exec.ExecContext(ctx, query,
			adventure.ID,
			node.ID,
			i,
			node.Title,
			node.Type,
			node.Summary,
			node.EndingKind,
			choices,
		)
		if err != nil {
			return fmt.Errorf("insert node %q: %w", node.ID, err)
		}
	}
	return nil
}

func (s *AdventureStore) Get(ctx context.Context, id uuid.UUID) (*domain.Adventure, error) {
	return s.getBy(ctx, "id", id)
}

func (s *AdventureStore) GetByEpisode(ctx context.Context, episodeID uuid.UUID) (*domain.Adventure, error) {
	return s.getBy(ctx, "episode_id", episodeID)
}

func (s *AdventureStore) getBy(ctx context.Context, column string, value uuid.UUID) (*domain.Adventure, error) {
	exec := GetExecutor(ctx, s.db)

	var row adventureRow
	query := `SELECT id, episode_id, title, description, setting, created_at FROM adventures WHERE ` + column + ` = $1`
	err := sqlx.GetContext(ctx, exec, &row, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("adventure %s: %w", value, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var nodes []nodeRow
	err = sqlx.SelectContext(ctx, exec, &nodes, `
		SELECT node_id, title, type, summary, ending_kind, choices, content, audio
		FROM adventure_nodes
		WHERE adventure_id = $1
		ORDER BY position`, row.ID)
	if err != nil {
		return nil, fmt.Errorf("select nodes: %w", err)
	}

	adventure := &domain.Adventure{
		ID:          row.ID,
		EpisodeID:   row.EpisodeID,
		Title:       row.Title,
		Description: row.Description,
		Setting:     row.Setting,
		CreatedAt:   row.CreatedAt,
		Graph:       domain.NarrativeGraph{Nodes: make([]domain.Node, 0, len(nodes))},
	}
	for _, n := range nodes {
		node, err := n.toDomain()
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.NodeID, err)
		}
		adventure.Graph.Nodes = append(adventure.Graph.Nodes, node)
	}
	return adventure, nil
}

// SaveNodeContent stores narration for a node unless it already has some and
// returns the narration that is stored afterwards. The first write wins.
func (s *AdventureStore) SaveNodeContent(ctx context.Context, adventureID uuid.UUID, nodeID string, content *domain.NodeContent) (*domain.NodeContent, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	stored, err := s.saveNodeColumn(ctx, adventureID, nodeID, "content", data)
	if err != nil {
		return nil, err
	}

	var winner domain.NodeContent
	if err := json.Unmarshal(stored, &winner); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &winner, nil
}

// SaveNodeAudio is SaveNodeContent for the node's voiced audio.
func (s *AdventureStore) SaveNodeAudio(ctx context.Context, adventureID uuid.UUID, nodeID string, audio *domain.AudioRef) (*domain.AudioRef, error) {
	data, err := json.Marshal(audio)
	if err != nil {
		return nil, fmt.Errorf("encode audio: %w", err)
	}
	stored, err := s.saveNodeColumn(ctx, adventureID, nodeID, "audio", data)
	if err != nil {
		return nil, err
	}

	var winner domain.AudioRef
	if err := json.Unmarshal(stored, &winner); err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return &winner, nil
}

func (s *AdventureStore) saveNodeColumn(ctx context.Context, adventureID uuid.UUID, nodeID, column string, data []byte) ([]byte, error) {
	query := `
		UPDATE adventure_nodes SET ` + column + ` = COALESCE(` + column + `, $3)
		WHERE adventure_id = $1 AND node_id = $2
		RETURNING ` + column

	var stored []byte
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &stored, query, adventureID, nodeID, data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("adventure %s node %q: %w", adventureID, nodeID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func nonNilChoices(choices []domain.Choice) []domain.Choice {
	if choices == nil {
		return []domain.Choice{}
	}
	return choices
}
