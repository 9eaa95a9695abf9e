package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkuiper/voiceloop/internal/types"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// Postgres implements Store on a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Migrate creates the tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS foundation_answers (
			workspace_id TEXT NOT NULL,
			project_id   TEXT NOT NULL DEFAULT '',
			question_key TEXT NOT NULL,
			answer_text  TEXT NOT NULL,
			answer_json  JSONB,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (workspace_id, project_id, question_key)
		)`,
		`CREATE TABLE IF NOT EXISTS example_records (
			id           BIGSERIAL PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			project_id   TEXT NOT NULL DEFAULT '',
			kind         TEXT NOT NULL,
			content      TEXT NOT NULL,
			notes        TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			workspace_id TEXT NOT NULL,
			project_id   TEXT NOT NULL DEFAULT '',
			version      INTEGER NOT NULL,
			cards        JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (workspace_id, project_id, version)
		)`,
		`CREATE TABLE IF NOT EXISTS drafts (
			id                   UUID PRIMARY KEY,
			workspace_id         TEXT NOT NULL,
			project_id           TEXT NOT NULL DEFAULT '',
			content              TEXT NOT NULL,
			content_type         TEXT NOT NULL,
			length_mode          TEXT NOT NULL,
			profile_version_used INTEGER NOT NULL,
			created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id             UUID PRIMARY KEY,
			draft_id       UUID NOT NULL REFERENCES drafts(id),
			rating         INTEGER NOT NULL,
			notes          TEXT NOT NULL DEFAULT '',
			posted_metrics JSONB,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// UpsertAnswer stores an answer, overwriting any earlier answer for the key.
func (p *Postgres) UpsertAnswer(ctx context.Context, answer types.FoundationAnswer) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO foundation_answers (workspace_id, project_id, question_key, answer_text, answer_json)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (workspace_id, project_id, question_key)
		 DO UPDATE SET answer_text = $4, answer_json = $5, updated_at = NOW()`,
		answer.Scope.WorkspaceID, answer.Scope.ProjectID, answer.QuestionKey,
		answer.AnswerText, answer.AnswerJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert answer %s: %w", answer.QuestionKey, err)
	}
	return nil
}

// ListAnswers returns all answers for a scope.
func (p *Postgres) ListAnswers(ctx context.Context, scope types.Scope) ([]types.FoundationAnswer, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT question_key, answer_text, answer_json
		 FROM foundation_answers
		 WHERE workspace_id = $1 AND project_id = $2
		 ORDER BY question_key`,
		scope.WorkspaceID, scope.ProjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	var answers []types.FoundationAnswer
	for rows.Next() {
		a := types.FoundationAnswer{Scope: scope}
		if err := rows.Scan(&a.QuestionKey, &a.AnswerText, &a.AnswerJSON); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// AddExample appends an example record for a scope.
func (p *Postgres) AddExample(ctx context.Context, scope types.Scope, example types.ExampleRecord) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO example_records (workspace_id, project_id, kind, content, notes)
		 VALUES ($1, $2, $3, $4, $5)`,
		scope.WorkspaceID, scope.ProjectID, string(example.Kind), example.Content, example.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to add example: %w", err)
	}
	return nil
}

// ListExamples returns all examples for a scope in insertion order.
func (p *Postgres) ListExamples(ctx context.Context, scope types.Scope) ([]types.ExampleRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT kind, content, notes
		 FROM example_records
		 WHERE workspace_id = $1 AND project_id = $2
		 ORDER BY id`,
		scope.WorkspaceID, scope.ProjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	defer rows.Close()

	var examples []types.ExampleRecord
	for rows.Next() {
		var ex types.ExampleRecord
		var kind string
		if err := rows.Scan(&kind, &ex.Content, &ex.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		ex.Kind = types.ExampleKind(kind)
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

// LatestProfile returns the highest-version profile for a scope, or nil.
func (p *Postgres) LatestProfile(ctx context.Context, scope types.Scope) (*types.Profile, error) {
	var cards []byte
	err := p.pool.QueryRow(ctx,
		`SELECT cards FROM profiles
		 WHERE workspace_id = $1 AND project_id = $2
		 ORDER BY version DESC LIMIT 1`,
		scope.WorkspaceID, scope.ProjectID,
	).Scan(&cards)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest profile: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal(cards, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile stores a profile if its version is exactly latest+1. The
// version check and the insert run in one transaction; a concurrent writer
// hitting the same version surfaces as a unique violation, which is mapped
// to the same conflict error.
func (p *Postgres) SaveProfile(ctx context.Context, scope types.Scope, profile types.Profile) error {
	cards, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var latest int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM profiles
		 WHERE workspace_id = $1 AND project_id = $2`,
		scope.WorkspaceID, scope.ProjectID,
	).Scan(&latest)
	if err != nil {
		return fmt.Errorf("failed to read latest profile version: %w", err)
	}

	if profile.Version != latest+1 {
		return &VersionConflictError{Scope: scope, Attempted: profile.Version, Latest: latest}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (workspace_id, project_id, version, cards)
		 VALUES ($1, $2, $3, $4)`,
		scope.WorkspaceID, scope.ProjectID, profile.Version, cards,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &VersionConflictError{Scope: scope, Attempted: profile.Version, Latest: latest}
		}
		return fmt.Errorf("failed to save profile v%d: %w", profile.Version, err)
	}

	return tx.Commit(ctx)
}

// SaveDraft stores a generated draft.
func (p *Postgres) SaveDraft(ctx context.Context, draft types.GeneratedDraft) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO drafts (id, workspace_id, project_id, content, content_type, length_mode, profile_version_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		draft.ID, draft.Scope.WorkspaceID, draft.Scope.ProjectID, draft.Text,
		string(draft.ContentType), string(draft.LengthMode), draft.ProfileVersionUsed, draft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// GetDraft returns a draft by ID, or nil if not found.
func (p *Postgres) GetDraft(ctx context.Context, id uuid.UUID) (*types.GeneratedDraft, error) {
	var d types.GeneratedDraft
	var contentType, lengthMode string
	err := p.pool.QueryRow(ctx,
		`SELECT id, workspace_id, project_id, content, content_type, length_mode, profile_version_used, created_at
		 FROM drafts WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.Scope.WorkspaceID, &d.Scope.ProjectID, &d.Text,
		&contentType, &lengthMode, &d.ProfileVersionUsed, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	d.ContentType = types.ContentType(contentType)
	d.LengthMode = types.LengthMode(lengthMode)
	return &d, nil
}

// AppendFeedback appends a feedback record.
func (p *Postgres) AppendFeedback(ctx context.Context, feedback types.Feedback) error {
	var metrics []byte
	if feedback.PostedMetrics != nil {
		var err error
		metrics, err = json.Marshal(feedback.PostedMetrics)
		if err != nil {
			return fmt.Errorf("failed to marshal posted metrics: %w", err)
		}
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO feedback (id, draft_id, rating, notes, posted_metrics, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		feedback.ID, feedback.DraftID, feedback.Rating, feedback.Notes, metrics, feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append feedback: %w", err)
	}
	return nil
}

// ListFeedback returns all feedback for a draft in insertion order.
func (p *Postgres) ListFeedback(ctx context.Context, draftID uuid.UUID) ([]types.Feedback, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, draft_id, rating, notes, posted_metrics, created_at
		 FROM feedback WHERE draft_id = $1
		 ORDER BY created_at, id`,
		draftID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var items []types.Feedback
	for rows.Next() {
		var fb types.Feedback
		var metrics []byte
		if err := rows.Scan(&fb.ID, &fb.DraftID, &fb.Rating, &fb.Notes, &metrics, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		if len(metrics) > 0 {
			fb.PostedMetrics = &types.PostedMetrics{}
			if err := json.Unmarshal(metrics, fb.PostedMetrics); err != nil {
				return nil, fmt.Errorf("failed to decode posted metrics: %w", err)
			}
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}
