package symptomchecks

import "time"

// StatusCompleted is the only status currently produced; the column is kept
// so a pending state can be introduced later without a schema change.
const StatusCompleted = "completed"

// Submission is the structured input for one analysis request.
// AdditionalNotes is optional; an empty string means absent.
type Submission struct {
	Age             int
	Sex             string
	Symptoms        string
	Duration        string
	Severity        int
	AdditionalNotes string
}

// SymptomCheck is one persisted analysis transaction. Records are append
// only: once created they are never mutated except for the store's own
// updated_at bookkeeping.
type SymptomCheck struct {
	ID              int64
	UserID          int64
	Age             int
	Sex             string
	Symptoms        string
	Duration        string
	Severity        int
	AdditionalNotes string
	Analysis        string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Submission reconstructs the structured input embedded in the record.
func (c *SymptomCheck) Submission() Submission {
	return Submission{
		Age:             c.Age,
		Sex:             c.Sex,
		Symptoms:        c.Symptoms,
		Duration:        c.Duration,
		Severity:        c.Severity,
		AdditionalNotes: c.AdditionalNotes,
	}
}
