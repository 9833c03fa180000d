package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/database"
)

type parameterVersionRepository struct {
	db *database.DB
}

func NewParameterVersionRepository(db *database.DB) legalparams.ParameterVersionRepository {
	return &parameterVersionRepository{db: db}
}

const parameterVersionColumns = `id, name, effective_from, effective_until, is_active, parameters, created_at`

func (r *parameterVersionRepository) GetActive(ctx context.Context) (legalparams.ParameterVersion, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM legal_parameter_versions
		WHERE is_active = true
	`, parameterVersionColumns)

	v, err := scanParameterVersion(q.QueryRow(ctx, query))
	if err != nil {
		if err == pgx.ErrNoRows {
			return legalparams.ParameterVersion{}, legalparams.ErrNoActiveVersion
		}
		return legalparams.ParameterVersion{}, fmt.Errorf("failed to get active parameter version: %w", err)
	}

	return v, nil
}

func (r *parameterVersionRepository) GetByID(ctx context.Context, id string) (legalparams.ParameterVersion, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM legal_parameter_versions
		WHERE id = $1
	`, parameterVersionColumns)

	v, err := scanParameterVersion(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return legalparams.ParameterVersion{}, legalparams.ErrVersionNotFound
		}
		return legalparams.ParameterVersion{}, fmt.Errorf("failed to get parameter version: %w", err)
	}

	return v, nil
}

func (r *parameterVersionRepository) GetByDate(ctx context.Context, date time.Time) (legalparams.ParameterVersion, error) {
	q := GetQuerier(ctx, r.db)

	// Validity windows are half-open; the latest effective_from wins when
	// authoring ever lets windows touch.
	query := fmt.Sprintf(`
		SELECT %s
		FROM legal_parameter_versions
		WHERE effective_from <= $1
		  AND (effective_until IS NULL OR effective_until > $1)
		ORDER BY effective_from DESC
		LIMIT 1
	`, parameterVersionColumns)

	v, err := scanParameterVersion(q.QueryRow(ctx, query, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return legalparams.ParameterVersion{}, legalparams.ErrNoVersionForDate
		}
		return legalparams.ParameterVersion{}, fmt.Errorf("failed to get parameter version by date: %w", err)
	}

	return v, nil
}

func (r *parameterVersionRepository) List(ctx context.Context) ([]legalparams.ParameterVersion, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM legal_parameter_versions
		ORDER BY effective_from DESC
	`, parameterVersionColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parameter versions: %w", err)
	}
	defer rows.Close()

	var versions []legalparams.ParameterVersion
	for rows.Next() {
		v, err := scanParameterVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parameter version: %w", err)
		}
		versions = append(versions, v)
	}

	return versions, nil
}

func scanParameterVersion(row pgx.Row) (legalparams.ParameterVersion, error) {
	var v legalparams.ParameterVersion
	var payload []byte

	err := row.Scan(
		&v.ID, &v.Name, &v.EffectiveFrom, &v.EffectiveUntil, &v.IsActive, &payload, &v.CreatedAt,
	)
	if err != nil {
		return legalparams.ParameterVersion{}, err
	}

	if err := json.Unmarshal(payload, &v.Parameters); err != nil {
		return legalparams.ParameterVersion{}, fmt.Errorf("decode parameters payload: %w", err)
	}

	return v, nil
}
