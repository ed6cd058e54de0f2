// Package symptomchecks implements the symptom check core: it orchestrates
// analysis of a submission and keeps the append-only per-user record log.
package symptomchecks

import (
	"context"
	"fmt"

	"github.com/medassist/symptomchecker/internal/logging"
)

// Analyzer produces analysis text for a submission. The production
// implementation wraps the external provider with bounded retries and a
// fallback, so a returned error is always a hard failure.
type Analyzer interface {
	Analyze(ctx context.Context, submission Submission) (string, error)
}

type Service struct {
	repo     Repository
	analyzer Analyzer
	logger   logging.Logger
}

func NewService(repo Repository, analyzer Analyzer, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		logger:   logger.With("module", "symptomchecks"),
	}
}

// Submit runs the analysis for a validated submission and persists the
// resulting record for the given user. The analysis happens before any store
// access, so a slow provider never holds a database connection, and nothing
// is persisted when the analysis is aborted.
func (s *Service) Submit(ctx context.Context, userID int64, submission Submission) (*SymptomCheck, error) {

	analysis, err := s.analyzer.Analyze(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("error analyzing symptoms: %w", err)
	}

	check := &SymptomCheck{
		UserID:          userID,
		Age:             submission.Age,
		Sex:             submission.Sex,
		Symptoms:        submission.Symptoms,
		Duration:        submission.Duration,
		Severity:        submission.Severity,
		AdditionalNotes: submission.AdditionalNotes,
		Analysis:        analysis,
		Status:          StatusCompleted,
	}

	check, err = s.repo.Create(ctx, check)
	if err != nil {
		return nil, fmt.Errorf("error creating symptom check: %w", err)
	}

	s.logger.Info(ctx, "symptom check stored", "user_id", userID, "check_id", check.ID)

	return check, nil
}

// History returns the user's symptom checks, newest first. Only records owned
// by userID are ever returned.
func (s *Service) History(ctx context.Context, userID int64) ([]*SymptomCheck, error) {

	checks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing symptom checks: %w", err)
	}

	return checks, nil
}
