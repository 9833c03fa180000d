package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ComputeEmployerCost resolves parameters and references, runs the pure
// cost model and optionally writes the audit record. A persistence
// failure is logged and the computed result is still returned.
func (e *PayrollEngineImpl) ComputeEmployerCost(ctx context.Context, req payroll.EmployerCostRequest) (payroll.EmployerCostResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EmployerCostResponse{}, err
	}

	version, err := e.loadVersion(ctx, req.ParameterVersionID)
	if err != nil {
		return payroll.EmployerCostResponse{}, err
	}

	refs, err := e.resolveReferences(ctx, req.Indexes, version.Parameters.IMM)
	if err != nil {
		return payroll.EmployerCostResponse{}, err
	}

	snapshot := buildSnapshot(version, refs, time.Now().UTC())
	resp, err := buildEmployerCost(req, version.Parameters, snapshot)
	if err != nil {
		return payroll.EmployerCostResponse{}, err
	}

	if req.SaveEnabled() {
		if _, err := e.saveSimulation(ctx, payroll.SimulationTypeEmployerCost, req, resp, snapshot); err != nil {
			e.logger.ErrorContext(ctx, "employer cost computed but audit record was not persisted",
				slog.String("error", err.Error()))
		}
	}

	return resp, nil
}

// buildEmployerCost is the pure cost model: capped bases, gratification,
// employer-side contributions and provisions, plus a worker-side estimate
// feeding the cost-to-net ratio. Step order matters: later steps consume
// earlier capped bases.
func buildEmployerCost(
	req payroll.EmployerCostRequest,
	params legalparams.Parameters,
	snapshot legalparams.ParametersSnapshot,
) (payroll.EmployerCostResponse, error) {
	contract, err := payroll.ParseContractType(req.ContractType)
	if err != nil {
		return payroll.EmployerCostResponse{}, err
	}
	health, err := payroll.ParseHealthSystem(req.HealthSystem)
	if err != nil {
		return payroll.EmployerCostResponse{}, err
	}
	tier, err := payroll.ParseRiskTier(req.RiskTier)
	if err != nil {
		return payroll.EmployerCostResponse{}, err
	}
	afpRate, err := afpWorkerRate(params, req.AFPName)
	if err != nil {
		return payroll.EmployerCostResponse{}, err
	}

	caps := snapshot.CapsCLP
	imponibleBase := decimal.Min(req.BaseSalary, caps.PensionCLP)

	gratification := decimal.Zero
	if req.Assumptions.IncludeGratification {
		gratification = gratificationAmount(req.BaseSalary, params.Gratification, snapshot.References.MinimumWage)
	}

	afcBase := decimal.Min(req.BaseSalary.Add(gratification), caps.AFCCLP)
	afcRates := afcRatesFor(params.AFC, contract)
	afcCIC := afcBase.Mul(afcRates.EmployerCIC)
	afcFCS := afcBase.Mul(afcRates.EmployerFCS)
	afcEmployer := afcCIC.Add(afcFCS)

	sis := imponibleBase.Mul(params.SIS.EmployerRate)
	workInjury := imponibleBase.Mul(workInjuryRate(req.Assumptions, params.WorkInjury, tier))

	directCost := req.BaseSalary.Add(gratification).Add(sis).Add(afcEmployer).Add(workInjury)

	vacation := provisionAmount(directCost, req.Assumptions.IncludeVacationProvision, req.Assumptions.VacationProvisionRate)
	severance := provisionAmount(directCost, req.Assumptions.IncludeSeveranceProvision, req.Assumptions.SeveranceProvisionRate)
	totalCost := directCost.Add(vacation).Add(severance)

	// Worker-side estimate, for display and the cost-to-net ratio only.
	afpWorker := imponibleBase.Mul(afpRate)
	healthWorker := imponibleBase.Mul(healthWorkerRate(health, req.HealthPlanRate))
	afcWorker := afcBase.Mul(afcRates.Worker)

	taxableBase := req.BaseSalary.Sub(afpWorker).Sub(healthWorker).Sub(afcWorker)
	tax := CalculateTax(taxableBase, params.TaxBrackets)
	netEstimate := taxableBase.Sub(tax)

	costToNet := decimal.Zero
	if !netEstimate.IsZero() {
		costToNet = totalCost.Div(netEstimate).Mul(hundred)
	}

	return payroll.EmployerCostResponse{
		MonthlyEmployerCostCLP: roundMoney(totalCost),
		Breakdown: payroll.EmployerCostBreakdown{
			BaseSalary:         roundMoney(req.BaseSalary),
			Gratification:      roundMoney(gratification),
			SISEmployer:        roundMoney(sis),
			AFCEmployerCIC:     roundMoney(afcCIC),
			AFCEmployerFCS:     roundMoney(afcFCS),
			AFCEmployerTotal:   roundMoney(afcEmployer),
			WorkInjury:         roundMoney(workInjury),
			DirectCost:         roundMoney(directCost),
			VacationProvision:  roundMoney(vacation),
			SeveranceProvision: roundMoney(severance),
		},
		WorkerEstimate: payroll.WorkerDeductionEstimate{
			AFP:             roundMoney(afpWorker),
			Health:          roundMoney(healthWorker),
			AFC:             roundMoney(afcWorker),
			TaxableBase:     roundMoney(taxableBase),
			Tax:             roundMoney(tax),
			TaxBracketIndex: FindTaxBracketIndex(taxableBase, params.TaxBrackets),
		},
		WorkerNetSalaryEstimate: roundMoney(netEstimate),
		CostToNetRatio:          roundMoney(costToNet),
		ParametersSnapshot:      snapshot,
		ComputedAt:              snapshot.CapturedAt,
	}, nil
}

func provisionAmount(directCost decimal.Decimal, enabled bool, rate *decimal.Decimal) decimal.Decimal {
	if !enabled || rate == nil {
		return decimal.Zero
	}
	return directCost.Mul(*rate)
}
