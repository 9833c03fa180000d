package legalparams

import (
	"context"
	"time"
)

// LegalParamsService exposes the read side of the parameter store to the
// suite UI: version browsing and current index values.
type LegalParamsService interface {
	GetActiveVersion(ctx context.Context) (ParameterVersionResponse, error)
	GetVersion(ctx context.Context, id string) (ParameterVersionResponse, error)
	GetVersionByDate(ctx context.Context, date time.Time) (ParameterVersionResponse, error)
	ListVersions(ctx context.Context) ([]ParameterVersionSummaryResponse, error)
	GetCurrentIndexes(ctx context.Context) (CurrentIndexesResponse, error)
}
