package results

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ Repo = (*PsqlRepo)(nil)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) Add(ctx context.Context, result *SavedResult) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "resultsRepo.add")
	defer func() { tracing.EndWithError(span, err) }()

	if err := result.validate(); err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO saved_result (id, account_id, calculator_type, calculator_name, data, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		result.ID, result.AccountID, result.CalculatorType, result.CalculatorName, []byte(result.Data), result.CreatedAt,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return fmt.Errorf("%w: unknown account %s", ErrInvalidResult, result.AccountID)
		}
		return fmt.Errorf("insert saved result: %w", err)
	}
	return nil
}

func (r *PsqlRepo) Get(ctx context.Context, accountID string, id uuid.UUID) (_ *SavedResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "resultsRepo.get")
	defer func() { tracing.EndWithError(span, err) }()

	var result SavedResult
	var data []byte
	err = r.db.QueryRow(
		ctx,
		`SELECT id, account_id, calculator_type, calculator_name, data, created_at
			FROM saved_result WHERE id = $1 AND account_id = $2`,
		id, accountID,
	).Scan(&result.ID, &result.AccountID, &result.CalculatorType, &result.CalculatorName, &data, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("get saved result: %w", err)
	}
	result.Data = data
	return &result, nil
}

func (r *PsqlRepo) Delete(ctx context.Context, accountID string, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "resultsRepo.delete")
	defer func() { tracing.EndWithError(span, err) }()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM saved_result WHERE id = $1 AND account_id = $2`,
		id, accountID,
	)
	if err != nil {
		return fmt.Errorf("delete saved result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResultNotFound
	}
	return nil
}

func (r *PsqlRepo) Page(ctx context.Context, accountID string, page, size int) (_ []SavedResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "resultsRepo.page")
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))
	defer func() { tracing.EndWithError(span, err) }()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, account_id, calculator_type, calculator_name, data, created_at
			FROM saved_result
			WHERE account_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`,
		accountID, size, offset(page, size),
	)
	if err != nil {
		return nil, fmt.Errorf("list saved results: %w", err)
	}
	defer rows.Close()

	results := []SavedResult{}
	for rows.Next() {
		var result SavedResult
		var data []byte
		if err := rows.Scan(&result.ID, &result.AccountID, &result.CalculatorType, &result.CalculatorName, &data, &result.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		result.Data = data
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *PsqlRepo) Count(ctx context.Context, accountID string) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "resultsRepo.count")
	defer func() { tracing.EndWithError(span, err) }()

	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM saved_result WHERE account_id = $1`,
		accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count saved results: %w", err)
	}
	return count, nil
}

// offset saturates at math.MaxInt instead of overflowing into a negative OFFSET.
func offset(page, size int) int {
	if page < 1 || size < 1 {
		return 0
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}
