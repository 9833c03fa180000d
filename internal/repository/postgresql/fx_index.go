package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/database"
)

type indexRepository struct {
	db *database.DB
}

func NewIndexRepository(db *database.DB) legalparams.IndexRepository {
	return &indexRepository{db: db}
}

// GetUFAtOrBefore returns the UF record for date, or the closest prior
// one. A single at-or-before query covers both the exact-hit and the
// fallback case.
func (r *indexRepository) GetUFAtOrBefore(ctx context.Context, date time.Time) (legalparams.IndexValue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT value_date, value
		FROM uf_values
		WHERE value_date <= $1
		ORDER BY value_date DESC
		LIMIT 1
	`

	var iv legalparams.IndexValue
	err := q.QueryRow(ctx, query, date).Scan(&iv.Date, &iv.Value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return legalparams.IndexValue{}, legalparams.ErrNoIndexAvailable
		}
		return legalparams.IndexValue{}, fmt.Errorf("failed to get UF value: %w", err)
	}

	return iv, nil
}

func (r *indexRepository) GetUTMAtOrBefore(ctx context.Context, month time.Time) (legalparams.IndexValue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month_start, value
		FROM utm_values
		WHERE month_start <= $1
		ORDER BY month_start DESC
		LIMIT 1
	`

	var iv legalparams.IndexValue
	err := q.QueryRow(ctx, query, month).Scan(&iv.Date, &iv.Value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return legalparams.IndexValue{}, legalparams.ErrNoIndexAvailable
		}
		return legalparams.IndexValue{}, fmt.Errorf("failed to get UTM value: %w", err)
	}

	return iv, nil
}
