package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== EMPLOYER COST TESTS =====

func baselineCostRequest() payroll.EmployerCostRequest {
	return payroll.EmployerCostRequest{
		BaseSalary:   dec("1000000"),
		AFPName:      "modelo",
		HealthSystem: "fonasa",
		RiskTier:     "low",
		ContractType: "indefinite",
	}
}

func TestComputeEmployerCost_BaselineGuard(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	resp, err := engine.ComputeEmployerCost(context.Background(), baselineCostRequest())
	require.NoError(t, err)

	// 1,000,000 base: SIS 1.88%, AFC employer 2.4% (1.6 CIC + 0.8 FCS),
	// work injury 0.93%. No gratification, no provisions.
	assert.True(t, resp.Breakdown.SISEmployer.Equal(dec("18800")), "sis %s", resp.Breakdown.SISEmployer)
	assert.True(t, resp.Breakdown.AFCEmployerCIC.Equal(dec("16000")), "cic %s", resp.Breakdown.AFCEmployerCIC)
	assert.True(t, resp.Breakdown.AFCEmployerFCS.Equal(dec("8000")), "fcs %s", resp.Breakdown.AFCEmployerFCS)
	assert.True(t, resp.Breakdown.AFCEmployerTotal.Equal(dec("24000")))
	assert.True(t, resp.Breakdown.WorkInjury.Equal(dec("9300")), "work injury %s", resp.Breakdown.WorkInjury)
	assert.True(t, resp.Breakdown.Gratification.IsZero())
	assert.True(t, resp.Breakdown.DirectCost.Equal(dec("1052100")))
	assert.True(t, resp.MonthlyEmployerCostCLP.Equal(dec("1052100")), "total %s", resp.MonthlyEmployerCostCLP)

	// Worker estimate: AFP 10.58%, Fonasa 7%, AFC 0.6%; resulting
	// taxable base falls in the exempt bracket.
	assert.True(t, resp.WorkerEstimate.AFP.Equal(dec("105800")))
	assert.True(t, resp.WorkerEstimate.Health.Equal(dec("70000")))
	assert.True(t, resp.WorkerEstimate.AFC.Equal(dec("6000")))
	assert.True(t, resp.WorkerEstimate.TaxableBase.Equal(dec("818200")))
	assert.True(t, resp.WorkerEstimate.Tax.IsZero())
	assert.Equal(t, 0, resp.WorkerEstimate.TaxBracketIndex)
	assert.True(t, resp.WorkerNetSalaryEstimate.Equal(dec("818200")))
	assert.True(t, resp.CostToNetRatio.Equal(dec("128.59")), "ratio %s", resp.CostToNetRatio)

	assert.Equal(t, testVersionID, resp.ParametersSnapshot.VersionID)
	assert.Equal(t, resp.ParametersSnapshot.CapturedAt, resp.ComputedAt)
}

func TestComputeEmployerCost_GratificationCappedAtIMMMultiple(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	req := baselineCostRequest()
	req.Assumptions.IncludeGratification = true

	resp, err := engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)

	// 25% of 1,000,000 is 250,000, above the cap of
	// 500,000 * 4.75 / 12 = 197,916.67.
	assert.True(t, resp.Breakdown.Gratification.Equal(dec("197916.67")),
		"gratification %s", resp.Breakdown.Gratification)

	// The gratification also grows the AFC base.
	assert.True(t, resp.Breakdown.AFCEmployerCIC.Equal(dec("19166.67")))
	assert.True(t, resp.Breakdown.AFCEmployerFCS.Equal(dec("9583.33")))
	assert.True(t, resp.MonthlyEmployerCostCLP.Equal(dec("1254766.67")),
		"total %s", resp.MonthlyEmployerCostCLP)
}

func TestComputeEmployerCost_CapsLimitContributionBases(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	req := baselineCostRequest()
	req.BaseSalary = dec("5000000")

	resp, err := engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)

	// Pension cap: 87.8 UF * 38,000 = 3,336,400. AFC cap 131.9 UF =
	// 5,012,200, above the salary, so AFC sees the full base.
	assert.True(t, resp.ParametersSnapshot.CapsCLP.PensionCLP.Equal(dec("3336400")))
	assert.True(t, resp.Breakdown.SISEmployer.Equal(dec("62724.32")), "sis %s", resp.Breakdown.SISEmployer)
	assert.True(t, resp.Breakdown.WorkInjury.Equal(dec("31028.52")), "work injury %s", resp.Breakdown.WorkInjury)
	assert.True(t, resp.Breakdown.AFCEmployerCIC.Equal(dec("80000")))
	assert.True(t, resp.Breakdown.AFCEmployerFCS.Equal(dec("40000")))
	assert.True(t, resp.WorkerEstimate.AFP.Equal(dec("352991.12")), "afp %s", resp.WorkerEstimate.AFP)
	assert.True(t, resp.WorkerEstimate.Health.Equal(dec("233548")), "health %s", resp.WorkerEstimate.Health)
}

func TestComputeEmployerCost_FixedTermContractUsesItsAFCRates(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	req := baselineCostRequest()
	req.ContractType = "fixed_term"

	resp, err := engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Breakdown.AFCEmployerCIC.Equal(dec("28000")))
	assert.True(t, resp.Breakdown.AFCEmployerFCS.Equal(dec("2000")))
	assert.True(t, resp.WorkerEstimate.AFC.IsZero())
}

func TestComputeEmployerCost_ProvisionsOnDirectCost(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	req := baselineCostRequest()
	req.Assumptions.IncludeVacationProvision = true
	req.Assumptions.VacationProvisionRate = decPtr("0.05")
	req.Assumptions.IncludeSeveranceProvision = true
	req.Assumptions.SeveranceProvisionRate = decPtr("0.024")

	resp, err := engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Breakdown.VacationProvision.Equal(dec("52605")), "vacation %s", resp.Breakdown.VacationProvision)
	assert.True(t, resp.Breakdown.SeveranceProvision.Equal(dec("25250.4")), "severance %s", resp.Breakdown.SeveranceProvision)
	assert.True(t, resp.MonthlyEmployerCostCLP.Equal(dec("1129955.4")), "total %s", resp.MonthlyEmployerCostCLP)
}

func TestComputeEmployerCost_ToggledOffProvisionContributesZero(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	// Rate supplied but toggle off.
	req := baselineCostRequest()
	req.Assumptions.VacationProvisionRate = decPtr("0.05")

	resp, err := engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Breakdown.VacationProvision.IsZero())
	assert.True(t, resp.MonthlyEmployerCostCLP.Equal(dec("1052100")))
}

func TestComputeEmployerCost_WorkInjuryOverrideChain(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	// Total override wins over everything.
	req := baselineCostRequest()
	req.Assumptions.WorkInjuryTotalRate = decPtr("0.02")
	resp, err := engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Breakdown.WorkInjury.Equal(dec("20000")))

	// Component overrides sum.
	req = baselineCostRequest()
	req.Assumptions.WorkInjuryBasicRate = decPtr("0.0093")
	req.Assumptions.WorkInjuryExtraRate = decPtr("0.0007")
	resp, err = engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Breakdown.WorkInjury.Equal(dec("10000")))

	// No overrides: risk tier table applies.
	req = baselineCostRequest()
	req.RiskTier = "high"
	resp, err = engine.ComputeEmployerCost(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Breakdown.WorkInjury.Equal(dec("25500")))
}

func TestComputeEmployerCost_UnknownAFPFundRejected(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	req := baselineCostRequest()
	req.AFPName = "inexistente"

	_, err := engine.ComputeEmployerCost(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrUnknownAFPFund)
}

func TestComputeEmployerCost_ValidationErrors(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), &fakeSimulationRepo{})

	req := baselineCostRequest()
	req.BaseSalary = dec("-1")
	req.HealthSystem = "private"

	_, err := engine.ComputeEmployerCost(context.Background(), req)
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "base_salary")
	assert.Contains(t, fields, "health_system")
}

func TestComputeEmployerCost_Deterministic(t *testing.T) {
	t.Parallel()

	// Same snapshot and inputs must reproduce the exact same result.
	snapshot := testSnapshot()
	req := baselineCostRequest()

	first, err := buildEmployerCost(req, testParameters(), snapshot)
	require.NoError(t, err)
	second, err := buildEmployerCost(req, testParameters(), snapshot)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeEmployerCost_SaveIsOptIn(t *testing.T) {
	t.Parallel()
	sims := &fakeSimulationRepo{}
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), sims)
	ctx := claimsContext(t, testCompanyID, testUserID)

	// Default: no audit record.
	_, err := engine.ComputeEmployerCost(ctx, baselineCostRequest())
	require.NoError(t, err)
	assert.Empty(t, sims.created)

	// Explicit opt-in persists with the caller's identity.
	req := baselineCostRequest()
	req.SaveSimulation = boolPtr(true)
	_, err = engine.ComputeEmployerCost(ctx, req)
	require.NoError(t, err)
	require.Len(t, sims.created, 1)
	assert.Equal(t, payroll.SimulationTypeEmployerCost, sims.created[0].Type)
	assert.Equal(t, testCompanyID, sims.created[0].CompanyID)
	require.NotNil(t, sims.created[0].CreatedBy)
	assert.Equal(t, testUserID, *sims.created[0].CreatedBy)
}

func TestComputeEmployerCost_PersistFailureStillReturnsResult(t *testing.T) {
	t.Parallel()
	sims := &fakeSimulationRepo{createErr: errors.New("connection refused")}
	engine := newTestEngine(newFakeVersionRepo(), newFakeIndexRepo(), sims)

	req := baselineCostRequest()
	req.SaveSimulation = boolPtr(true)

	resp, err := engine.ComputeEmployerCost(claimsContext(t, testCompanyID, testUserID), req)
	require.NoError(t, err)
	assert.True(t, resp.MonthlyEmployerCostCLP.Equal(dec("1052100")))
	assert.Empty(t, sims.created)
}
