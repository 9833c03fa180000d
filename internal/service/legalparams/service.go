package legalparams

import (
	"context"
	"fmt"
	"time"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
)

type LegalParamsServiceImpl struct {
	versions legalparams.ParameterVersionRepository
	indexes  legalparams.IndexRepository
}

func NewLegalParamsService(
	versions legalparams.ParameterVersionRepository,
	indexes legalparams.IndexRepository,
) legalparams.LegalParamsService {
	return &LegalParamsServiceImpl{
		versions: versions,
		indexes:  indexes,
	}
}

func (s *LegalParamsServiceImpl) GetActiveVersion(ctx context.Context) (legalparams.ParameterVersionResponse, error) {
	v, err := s.versions.GetActive(ctx)
	if err != nil {
		return legalparams.ParameterVersionResponse{}, err
	}
	return mapToVersionResponse(v), nil
}

func (s *LegalParamsServiceImpl) GetVersion(ctx context.Context, id string) (legalparams.ParameterVersionResponse, error) {
	v, err := s.versions.GetByID(ctx, id)
	if err != nil {
		return legalparams.ParameterVersionResponse{}, err
	}
	return mapToVersionResponse(v), nil
}

func (s *LegalParamsServiceImpl) GetVersionByDate(ctx context.Context, date time.Time) (legalparams.ParameterVersionResponse, error) {
	v, err := s.versions.GetByDate(ctx, date)
	if err != nil {
		return legalparams.ParameterVersionResponse{}, err
	}
	return mapToVersionResponse(v), nil
}

func (s *LegalParamsServiceImpl) ListVersions(ctx context.Context) ([]legalparams.ParameterVersionSummaryResponse, error) {
	versions, err := s.versions.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]legalparams.ParameterVersionSummaryResponse, 0, len(versions))
	for _, v := range versions {
		result = append(result, legalparams.ParameterVersionSummaryResponse{
			ID:             v.ID,
			Name:           v.Name,
			EffectiveFrom:  v.EffectiveFrom.Format("2006-01-02"),
			EffectiveUntil: formatDatePtr(v.EffectiveUntil),
			IsActive:       v.IsActive,
		})
	}
	return result, nil
}

func (s *LegalParamsServiceImpl) GetCurrentIndexes(ctx context.Context) (legalparams.CurrentIndexesResponse, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	uf, err := s.indexes.GetUFAtOrBefore(ctx, today)
	if err != nil {
		return legalparams.CurrentIndexesResponse{}, fmt.Errorf("resolve current UF: %w", err)
	}
	utm, err := s.indexes.GetUTMAtOrBefore(ctx, monthStart)
	if err != nil {
		return legalparams.CurrentIndexesResponse{}, fmt.Errorf("resolve current UTM: %w", err)
	}

	return legalparams.CurrentIndexesResponse{
		UF: legalparams.IndexValueResponse{
			Date:  uf.Date.Format("2006-01-02"),
			Value: uf.Value,
		},
		UTM: legalparams.IndexValueResponse{
			Date:  utm.Date.Format("2006-01"),
			Value: utm.Value,
		},
	}, nil
}

func mapToVersionResponse(v legalparams.ParameterVersion) legalparams.ParameterVersionResponse {
	return legalparams.ParameterVersionResponse{
		ID:             v.ID,
		Name:           v.Name,
		EffectiveFrom:  v.EffectiveFrom.Format("2006-01-02"),
		EffectiveUntil: formatDatePtr(v.EffectiveUntil),
		IsActive:       v.IsActive,
		Parameters:     v.Parameters,
		CreatedAt:      v.CreatedAt,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	str := t.Format("2006-01-02")
	return &str
}
