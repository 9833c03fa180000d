package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// normalizeDay strips the time-of-day so index lookups key on the date.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// normalizeMonth pins a date to the first of its month (UTM records are
// keyed by month start).
func normalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// loadVersion resolves by explicit id, falling back to the active version.
func (e *PayrollEngineImpl) loadVersion(ctx context.Context, id *string) (legalparams.ParameterVersion, error) {
	if id != nil {
		v, err := e.versions.GetByID(ctx, *id)
		if err != nil {
			return legalparams.ParameterVersion{}, fmt.Errorf("load parameter version %q: %w", *id, err)
		}
		return v, nil
	}

	v, err := e.versions.GetActive(ctx)
	if err != nil {
		return legalparams.ParameterVersion{}, fmt.Errorf("load active parameter version: %w", err)
	}
	return v, nil
}

// resolveUF returns the UF record for date, or the closest prior record
// when no exact match exists. The result carries the found record's own
// date, not the requested one.
func (e *PayrollEngineImpl) resolveUF(ctx context.Context, date time.Time) (legalparams.IndexValue, error) {
	target := normalizeDay(date)
	iv, err := e.indexes.GetUFAtOrBefore(ctx, target)
	if err != nil {
		return legalparams.IndexValue{}, fmt.Errorf("resolve UF for %s: %w", target.Format("2006-01-02"), err)
	}
	return iv, nil
}

// resolveUTM is the monthly counterpart of resolveUF.
func (e *PayrollEngineImpl) resolveUTM(ctx context.Context, month time.Time) (legalparams.IndexValue, error) {
	target := normalizeMonth(month)
	iv, err := e.indexes.GetUTMAtOrBefore(ctx, target)
	if err != nil {
		return legalparams.IndexValue{}, fmt.Errorf("resolve UTM for %s: %w", target.Format("2006-01"), err)
	}
	return iv, nil
}

// resolveReferences builds the indexation bundle for one invocation.
// Caller-supplied overrides are used verbatim; otherwise the store is
// consulted with today / the current month as targets. The minimum wage
// always comes from the parameter payload.
func (e *PayrollEngineImpl) resolveReferences(ctx context.Context, ov payroll.IndexOverrides, minimumWage decimal.Decimal) (legalparams.FxReferences, error) {
	refs := legalparams.FxReferences{MinimumWage: minimumWage}

	if ov.UFValue != nil && ov.UFDate != nil {
		date, err := time.Parse("2006-01-02", *ov.UFDate)
		if err != nil {
			return legalparams.FxReferences{}, fmt.Errorf("parse uf_date %q: %w", *ov.UFDate, err)
		}
		refs.UFValue = *ov.UFValue
		refs.UFDate = normalizeDay(date)
	} else {
		uf, err := e.resolveUF(ctx, time.Now().UTC())
		if err != nil {
			return legalparams.FxReferences{}, err
		}
		refs.UFValue = uf.Value
		refs.UFDate = uf.Date
	}

	if ov.UTMValue != nil && ov.UTMMonth != nil {
		month, err := time.Parse("2006-01", *ov.UTMMonth)
		if err != nil {
			return legalparams.FxReferences{}, fmt.Errorf("parse utm_month %q: %w", *ov.UTMMonth, err)
		}
		refs.UTMValue = *ov.UTMValue
		refs.UTMMonth = normalizeMonth(month)
	} else {
		utm, err := e.resolveUTM(ctx, time.Now().UTC())
		if err != nil {
			return legalparams.FxReferences{}, err
		}
		refs.UTMValue = utm.Value
		refs.UTMMonth = utm.Date
	}

	return refs, nil
}
