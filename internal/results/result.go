package results

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/fitcalc/internal/units"

	"github.com/google/uuid"
)

var (
	ErrResultNotFound = errors.New("saved result not found")
	ErrInvalidResult  = errors.New("saved result incomplete")
)

// SavedResult is one calculation stored on an account.
// Data holds the Record as JSON.
type SavedResult struct {
	ID             uuid.UUID       `json:"id"`
	AccountID      string          `json:"accountId"`
	CalculatorType string          `json:"calculatorType"`
	CalculatorName string          `json:"calculatorName"`
	Data           json.RawMessage `json:"data"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Record is what gets stored in SavedResult.Data.
type Record struct {
	System  units.System      `json:"system"`
	Inputs  map[string]string `json:"inputs"`
	Outcome any               `json:"outcome"`
}

func (r *SavedResult) validate() error {
	if r.ID == uuid.Nil || r.AccountID == "" || r.CalculatorType == "" || len(r.Data) == 0 || r.CreatedAt.IsZero() {
		return ErrInvalidResult
	}
	return nil
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=results

// Repo stores saved results. Every read and delete is scoped to the owning
// account; a result of another account is reported as ErrResultNotFound.
type Repo interface {
	Add(ctx context.Context, result *SavedResult) error
	Get(ctx context.Context, accountID string, id uuid.UUID) (*SavedResult, error)
	Delete(ctx context.Context, accountID string, id uuid.UUID) error
	Page(ctx context.Context, accountID string, page, size int) ([]SavedResult, error)
	Count(ctx context.Context, accountID string) (int, error)
}
