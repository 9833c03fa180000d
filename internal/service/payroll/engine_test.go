package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ===== TEST FIXTURES =====

const (
	testCompanyID = "0190a1b2-c3d4-7e5f-8a6b-000000000001"
	testUserID    = "0190a1b2-c3d4-7e5f-8a6b-000000000002"
	testVersionID = "0190a1b2-c3d4-7e5f-8a6b-000000000003"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("bad decimal literal: " + s)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

// testParameters mirrors a realistic 2025 parameter payload: UF-denominated
// caps, AFP commissions per fund, AFC splits per contract type and a
// progressive tax table whose rebates are continuous across brackets.
func testParameters() legalparams.Parameters {
	return legalparams.Parameters{
		Caps: legalparams.ContributionCaps{
			PensionUF:    dec("87.8"),
			HealthUF:     dec("87.8"),
			WorkInjuryUF: dec("87.8"),
			AFCUF:        dec("131.9"),
		},
		Gratification: legalparams.GratificationParams{
			MonthlyRate:          dec("0.25"),
			AnnualCapIMMMultiple: dec("4.75"),
		},
		AFP: map[string]decimal.Decimal{
			"modelo":  dec("0.0058"),
			"habitat": dec("0.0127"),
			"uno":     dec("0.0049"),
		},
		AFC: legalparams.AFCParams{
			Indefinite: legalparams.AFCContractRates{
				Worker:      dec("0.006"),
				EmployerCIC: dec("0.016"),
				EmployerFCS: dec("0.008"),
			},
			FixedTerm: legalparams.AFCContractRates{
				Worker:      dec("0"),
				EmployerCIC: dec("0.028"),
				EmployerFCS: dec("0.002"),
			},
		},
		SIS: legalparams.SISParams{EmployerRate: dec("0.0188")},
		WorkInjury: legalparams.WorkInjuryParams{
			RiskLevels: map[string]decimal.Decimal{
				"low":    dec("0.0093"),
				"medium": dec("0.017"),
				"high":   dec("0.0255"),
			},
		},
		TaxBrackets: []legalparams.TaxBracket{
			{From: dec("0"), To: decPtr("891000"), Factor: dec("0"), Rebate: dec("0")},
			{From: dec("891000"), To: decPtr("1980000"), Factor: dec("0.04"), Rebate: dec("35640")},
			{From: dec("1980000"), To: decPtr("3300000"), Factor: dec("0.08"), Rebate: dec("114840")},
			{From: dec("3300000"), To: decPtr("4620000"), Factor: dec("0.135"), Rebate: dec("296340")},
			{From: dec("4620000"), To: nil, Factor: dec("0.23"), Rebate: dec("735240")},
		},
		IMM: dec("500000"),
	}
}

func testVersion() legalparams.ParameterVersion {
	return legalparams.ParameterVersion{
		ID:            testVersionID,
		Name:          "2025-S2",
		EffectiveFrom: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
		Parameters:    testParameters(),
		CreatedAt:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

// testReferences pins UF 38,000 / UTM 66,000 so cap conversions are
// stable across the suite.
func testReferences() legalparams.FxReferences {
	return legalparams.FxReferences{
		UFValue:     dec("38000"),
		UFDate:      time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC),
		UTMValue:    dec("66000"),
		UTMMonth:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		MinimumWage: dec("500000"),
	}
}

func testSnapshot() legalparams.ParametersSnapshot {
	capturedAt := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	return buildSnapshot(testVersion(), testReferences(), capturedAt)
}

// ===== IN-MEMORY REPOSITORIES =====

type fakeVersionRepo struct {
	active    *legalparams.ParameterVersion
	activeErr error
	byID      map[string]legalparams.ParameterVersion
}

func newFakeVersionRepo() *fakeVersionRepo {
	v := testVersion()
	return &fakeVersionRepo{
		active: &v,
		byID:   map[string]legalparams.ParameterVersion{v.ID: v},
	}
}

func (f *fakeVersionRepo) GetActive(ctx context.Context) (legalparams.ParameterVersion, error) {
	if f.activeErr != nil {
		return legalparams.ParameterVersion{}, f.activeErr
	}
	if f.active == nil {
		return legalparams.ParameterVersion{}, legalparams.ErrNoActiveVersion
	}
	return *f.active, nil
}

func (f *fakeVersionRepo) GetByID(ctx context.Context, id string) (legalparams.ParameterVersion, error) {
	v, ok := f.byID[id]
	if !ok {
		return legalparams.ParameterVersion{}, legalparams.ErrVersionNotFound
	}
	return v, nil
}

func (f *fakeVersionRepo) GetByDate(ctx context.Context, date time.Time) (legalparams.ParameterVersion, error) {
	for _, v := range f.byID {
		if v.Covers(date) {
			return v, nil
		}
	}
	return legalparams.ParameterVersion{}, legalparams.ErrNoVersionForDate
}

func (f *fakeVersionRepo) List(ctx context.Context) ([]legalparams.ParameterVersion, error) {
	versions := make([]legalparams.ParameterVersion, 0, len(f.byID))
	for _, v := range f.byID {
		versions = append(versions, v)
	}
	return versions, nil
}

type fakeIndexRepo struct {
	uf  []legalparams.IndexValue // ascending by date
	utm []legalparams.IndexValue
}

func newFakeIndexRepo() *fakeIndexRepo {
	return &fakeIndexRepo{
		uf: []legalparams.IndexValue{
			{Date: time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), Value: dec("37990")},
			{Date: time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC), Value: dec("38000")},
		},
		utm: []legalparams.IndexValue{
			{Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Value: dec("65900")},
			{Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Value: dec("66000")},
		},
	}
}

func latestAtOrBefore(records []legalparams.IndexValue, target time.Time) (legalparams.IndexValue, error) {
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].Date.After(target) {
			return records[i], nil
		}
	}
	return legalparams.IndexValue{}, legalparams.ErrNoIndexAvailable
}

func (f *fakeIndexRepo) GetUFAtOrBefore(ctx context.Context, date time.Time) (legalparams.IndexValue, error) {
	return latestAtOrBefore(f.uf, date)
}

func (f *fakeIndexRepo) GetUTMAtOrBefore(ctx context.Context, month time.Time) (legalparams.IndexValue, error) {
	return latestAtOrBefore(f.utm, month)
}

type fakeSimulationRepo struct {
	created   []payroll.Simulation
	createErr error
}

func (f *fakeSimulationRepo) Create(ctx context.Context, sim payroll.Simulation) (payroll.Simulation, error) {
	if f.createErr != nil {
		return payroll.Simulation{}, f.createErr
	}
	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Simulation{}, err
	}
	sim.ID = id.String()
	sim.CreatedAt = time.Now().UTC()
	f.created = append(f.created, sim)
	return sim, nil
}

func (f *fakeSimulationRepo) GetByID(ctx context.Context, id string, companyID string) (payroll.Simulation, error) {
	for _, sim := range f.created {
		if sim.ID == id && sim.CompanyID == companyID {
			return sim, nil
		}
	}
	return payroll.Simulation{}, payroll.ErrSimulationNotFound
}

func (f *fakeSimulationRepo) List(ctx context.Context, companyID string, filter payroll.SimulationFilter) ([]payroll.Simulation, int64, error) {
	var matched []payroll.Simulation
	for _, sim := range f.created {
		if sim.CompanyID != companyID {
			continue
		}
		if filter.Type != nil && string(sim.Type) != *filter.Type {
			continue
		}
		matched = append(matched, sim)
	}
	total := int64(len(matched))

	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ===== ENGINE WIRING =====

func newTestEngine(versions *fakeVersionRepo, indexes *fakeIndexRepo, sims *fakeSimulationRepo) *PayrollEngineImpl {
	return &PayrollEngineImpl{
		versions:    versions,
		indexes:     indexes,
		simulations: sims,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// claimsContext builds a request context carrying a verified token, the
// same shape the auth middleware produces.
func claimsContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": companyID,
		"user_id":    userID,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}
