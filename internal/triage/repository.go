package triage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `SELECT id, patient_id, module_id, question_index, visited_modules, transcript, outcome, is_complete, created_at, updated_at
		FROM triage_sessions WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	var s Session
	var visitedJSON, transcriptJSON, outcomeJSON []byte

	err := row.Scan(
		&s.ID,
		&s.PatientID,
		&s.ModuleID,
		&s.QuestionIndex,
		&visitedJSON,
		&transcriptJSON,
		&outcomeJSON,
		&s.Complete,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if len(visitedJSON) > 0 {
		if err := json.Unmarshal(visitedJSON, &s.VisitedModules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal visited modules: %w", err)
		}
	}
	if len(transcriptJSON) > 0 {
		if err := json.Unmarshal(transcriptJSON, &s.Transcript); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
		}
	}
	if len(outcomeJSON) > 0 {
		if err := json.Unmarshal(outcomeJSON, &s.Outcome); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outcome: %w", err)
		}
	}

	return &s, nil
}

func (r *postgresRepo) Save(ctx context.Context, s *Session) error {
	visitedJSON, err := json.Marshal(s.VisitedModules)
	if err != nil {
		return err
	}
	transcriptJSON, err := json.Marshal(s.Transcript)
	if err != nil {
		return err
	}
	var outcomeJSON any
	if s.Outcome != nil {
		b, err := json.Marshal(s.Outcome)
		if err != nil {
			return err
		}
		outcomeJSON = b
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.UpdatedAt = time.Now()

	query := `
		INSERT INTO triage_sessions (id, patient_id, module_id, question_index, visited_modules, transcript, outcome, is_complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			module_id = $3,
			question_index = $4,
			visited_modules = $5,
			transcript = $6,
			outcome = $7,
			is_complete = $8,
			updated_at = $10
	`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.PatientID, s.ModuleID, s.QuestionIndex, visitedJSON, transcriptJSON, outcomeJSON, s.Complete, s.CreatedAt, s.UpdatedAt)
	return err
}
