package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitcalc/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var _ Repo = (*SQLiteRepo)(nil)

type SQLiteRepo struct {
	db *sqlx.DB
}

func NewSQLiteRepo(conn *sqlx.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: conn,
	}
}

type resultRow struct {
	ID             string `db:"id"`
	AccountID      string `db:"account_id"`
	CalculatorType string `db:"calculator_type"`
	CalculatorName string `db:"calculator_name"`
	Data           string `db:"data"`
	CreatedAt      string `db:"created_at"`
}

func (row resultRow) toResult() (SavedResult, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return SavedResult{}, fmt.Errorf("parse saved result id: %w", err)
	}
	createdAt, err := time.Parse(db.TimeLayout, row.CreatedAt)
	if err != nil {
		return SavedResult{}, fmt.Errorf("parse saved result created at: %w", err)
	}
	return SavedResult{
		ID:             id,
		AccountID:      row.AccountID,
		CalculatorType: row.CalculatorType,
		CalculatorName: row.CalculatorName,
		Data:           []byte(row.Data),
		CreatedAt:      createdAt,
	}, nil
}

func (r *SQLiteRepo) Add(ctx context.Context, result *SavedResult) error {
	if err := result.validate(); err != nil {
		return err
	}

	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO saved_result (id, account_id, calculator_type, calculator_name, data, created_at)
			VALUES (:id, :account_id, :calculator_type, :calculator_name, :data, :created_at)`,
		resultRow{
			ID:             result.ID.String(),
			AccountID:      result.AccountID,
			CalculatorType: result.CalculatorType,
			CalculatorName: result.CalculatorName,
			Data:           string(result.Data),
			CreatedAt:      result.CreatedAt.UTC().Format(db.TimeLayout),
		},
	)
	if err != nil {
		return fmt.Errorf("insert saved result: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Get(ctx context.Context, accountID string, id uuid.UUID) (*SavedResult, error) {
	var row resultRow
	err := r.db.GetContext(
		ctx,
		&row,
		`SELECT id, account_id, calculator_type, calculator_name, data, created_at
			FROM saved_result WHERE id = ? AND account_id = ?`,
		id.String(), accountID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("get saved result: %w", err)
	}

	result, err := row.toResult()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, accountID string, id uuid.UUID) error {
	res, err := r.db.ExecContext(
		ctx,
		`DELETE FROM saved_result WHERE id = ? AND account_id = ?`,
		id.String(), accountID,
	)
	if err != nil {
		return fmt.Errorf("delete saved result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved result, rows affected: %w", err)
	}
	if affected == 0 {
		return ErrResultNotFound
	}
	return nil
}

func (r *SQLiteRepo) Page(ctx context.Context, accountID string, page, size int) ([]SavedResult, error) {
	var rows []resultRow
	err := r.db.SelectContext(
		ctx,
		&rows,
		`SELECT id, account_id, calculator_type, calculator_name, data, created_at
			FROM saved_result
			WHERE account_id = ?
			ORDER BY created_at DESC
			LIMIT ? OFFSET ?`,
		accountID, size, offset(page, size),
	)
	if err != nil {
		return nil, fmt.Errorf("list saved results: %w", err)
	}

	results := make([]SavedResult, 0, len(rows))
	for _, row := range rows {
		result, err := row.toResult()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *SQLiteRepo) Count(ctx context.Context, accountID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM saved_result WHERE account_id = ?`, accountID); err != nil {
		return 0, fmt.Errorf("count saved results: %w", err)
	}
	return count, nil
}
