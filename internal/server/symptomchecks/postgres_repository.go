package symptomchecks

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, check *SymptomCheck) (*SymptomCheck, error) {

	query :=
		`INSERT INTO symptom_checks (user_id, age, sex, symptoms, duration, severity, additional_notes, analysis, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		check.UserID, check.Age, check.Sex, check.Symptoms, check.Duration,
		check.Severity, nullIfEmpty(check.AdditionalNotes), check.Analysis, check.Status).
		Scan(&check.ID, &check.CreatedAt, &check.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return check, nil
}

// ListByUser returns the user's records newest first. The query is served by
// the composite (user_id, created_at) index.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*SymptomCheck, error) {

	query :=
		`SELECT id, user_id, age, sex, symptoms, duration, severity, additional_notes, analysis, status, created_at, updated_at
		 FROM symptom_checks
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	checks := make([]*SymptomCheck, 0)
	for rows.Next() {
		check := &SymptomCheck{}
		var notes sql.NullString
		err := rows.Scan(&check.ID, &check.UserID, &check.Age, &check.Sex, &check.Symptoms,
			&check.Duration, &check.Severity, &notes, &check.Analysis, &check.Status,
			&check.CreatedAt, &check.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		check.AdditionalNotes = notes.String
		checks = append(checks, check)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return checks, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
