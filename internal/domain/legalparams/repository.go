package legalparams

import (
	"context"
	"time"
)

// ParameterVersionRepository defines read-only access to legal-parameter
// versions. Authoring and activation happen outside this backend.
type ParameterVersionRepository interface {
	GetActive(ctx context.Context) (ParameterVersion, error)
	GetByID(ctx context.Context, id string) (ParameterVersion, error)
	// GetByDate returns the version whose validity window contains date,
	// preferring the latest EffectiveFrom when windows could tie.
	GetByDate(ctx context.Context, date time.Time) (ParameterVersion, error)
	List(ctx context.Context) ([]ParameterVersion, error)
}

// IndexRepository defines access to the UF (daily) and UTM (monthly)
// indexation tables. Both lookups return the record with the latest key
// at or before the target, so an exact hit is returned as-is and a miss
// falls back to the closest prior record.
type IndexRepository interface {
	GetUFAtOrBefore(ctx context.Context, date time.Time) (IndexValue, error)
	GetUTMAtOrBefore(ctx context.Context, month time.Time) (IndexValue, error)
}
