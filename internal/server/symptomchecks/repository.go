package symptomchecks

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, check *SymptomCheck) (*SymptomCheck, error)
	ListByUser(ctx context.Context, userID int64) ([]*SymptomCheck, error)
}
