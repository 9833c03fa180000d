package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	overtime50Factor  = decimal.NewFromFloat(1.5)
	overtime100Factor = decimal.NewFromInt(2)
	// Hourly normalization is fixed at 30 days of 8 hours regardless of the
	// actual period length, per legal convention.
	normalizedMonthDays = decimal.NewFromInt(30)
	normalizedDayHours  = decimal.NewFromInt(8)
)

// payslipSummary is the condensed result stored in the audit record; the
// full breakdown is reproducible from the snapshot plus inputs.
type payslipSummary struct {
	GrossSalary       decimal.Decimal `json:"gross_salary"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	NetSalary         decimal.Decimal `json:"net_salary"`
	TotalEmployerCost decimal.Decimal `json:"total_employer_cost"`
}

// SimulatePayslip resolves parameters and references, runs the pure
// payslip model, then optionally persists the audit record. The computed
// result is returned even when persistence fails; in that case the
// failure is logged and SimulationID stays nil.
func (e *PayrollEngineImpl) SimulatePayslip(ctx context.Context, req payroll.PayslipSimulationRequest) (payroll.PayslipSimulationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}

	version, err := e.loadVersion(ctx, req.ParameterVersionID)
	if err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}

	refs, err := e.resolveReferences(ctx, req.Indexes, version.Parameters.IMM)
	if err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}

	snapshot := buildSnapshot(version, refs, time.Now().UTC())
	resp, err := buildPayslip(req, version.Parameters, snapshot)
	if err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}

	if req.SaveEnabled() {
		summary := payslipSummary{
			GrossSalary:       resp.Earnings.GrossSalary,
			TotalDeductions:   resp.Deductions.Total,
			NetSalary:         resp.NetSalary,
			TotalEmployerCost: resp.EmployerCost.TotalEmployerCost,
		}
		id, err := e.saveSimulation(ctx, payroll.SimulationTypePayslip, req, summary, snapshot)
		if err != nil {
			e.logger.ErrorContext(ctx, "payslip simulated but audit record was not persisted",
				slog.String("error", err.Error()))
		} else {
			resp.SimulationID = &id
		}
	}

	return resp, nil
}

// buildPayslip is the pure payslip model for one pay period: proportional
// base pay, overtime premiums, taxable and non-taxable income, statutory
// and additional deductions, and the employer-cost mirror.
func buildPayslip(
	req payroll.PayslipSimulationRequest,
	params legalparams.Parameters,
	snapshot legalparams.ParametersSnapshot,
) (payroll.PayslipSimulationResponse, error) {
	contract, err := payroll.ParseContractType(req.ContractType)
	if err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}
	health, err := payroll.ParseHealthSystem(req.HealthSystem)
	if err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}
	tier, err := payroll.ParseRiskTier(req.RiskTier)
	if err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}
	afpRate, err := afpWorkerRate(params, req.AFPName)
	if err != nil {
		return payroll.PayslipSimulationResponse{}, err
	}

	totalDays := req.TotalDaysInPeriod
	if totalDays == 0 {
		totalDays = 30
	}

	proportionalBase := req.BaseSalary.
		Div(decimal.NewFromInt(int64(totalDays))).
		Mul(decimal.NewFromInt(int64(req.WorkedDays)))

	hourlyRate := req.BaseSalary.Div(normalizedMonthDays).Div(normalizedDayHours)
	overtime50 := req.OvertimeHours50.Mul(hourlyRate).Mul(overtime50Factor)
	overtime100 := req.OvertimeHours100.Mul(hourlyRate).Mul(overtime100Factor)

	totalTaxable := proportionalBase.Add(overtime50).Add(overtime100).Add(req.OtherTaxableAllowances)
	totalNonTaxable := req.NonTaxableAllowances.Total()
	grossSalary := totalTaxable.Add(totalNonTaxable)

	caps := snapshot.CapsCLP
	pensionBase := decimal.Min(totalTaxable, caps.PensionCLP)
	afcBase := decimal.Min(totalTaxable, caps.AFCCLP)
	afcRates := afcRatesFor(params.AFC, contract)

	afpWorker := pensionBase.Mul(afpRate)
	healthWorker := pensionBase.Mul(healthWorkerRate(health, req.HealthPlanRate))
	afcWorker := afcBase.Mul(afcRates.Worker)

	taxableBase := totalTaxable.Sub(afpWorker).Sub(healthWorker).Sub(afcWorker)
	tax := CalculateTax(taxableBase, params.TaxBrackets)

	statutory := afpWorker.Add(healthWorker).Add(afcWorker).Add(tax)
	additional := req.AdditionalDeductions.Total()
	totalDeductions := statutory.Add(additional)
	netSalary := grossSalary.Sub(totalDeductions)

	// Employer-side mirror for the same period.
	sis := pensionBase.Mul(params.SIS.EmployerRate)
	afcCIC := afcBase.Mul(afcRates.EmployerCIC)
	afcFCS := afcBase.Mul(afcRates.EmployerFCS)
	workInjury := pensionBase.Mul(workInjuryRate(payroll.CostAssumptions{}, params.WorkInjury, tier))
	totalEmployerCost := grossSalary.Add(sis).Add(afcCIC).Add(afcFCS).Add(workInjury)

	return payroll.PayslipSimulationResponse{
		Earnings: payroll.PayslipEarnings{
			ProportionalBase:   roundMoney(proportionalBase),
			HourlyRate:         roundMoney(hourlyRate),
			Overtime50:         roundMoney(overtime50),
			Overtime100:        roundMoney(overtime100),
			OtherTaxable:       roundMoney(req.OtherTaxableAllowances),
			TotalTaxableIncome: roundMoney(totalTaxable),
			NonTaxable: payroll.NonTaxableAllowances{
				Transport: roundMoney(req.NonTaxableAllowances.Transport),
				Meal:      roundMoney(req.NonTaxableAllowances.Meal),
				Family:    roundMoney(req.NonTaxableAllowances.Family),
				Other:     roundMoney(req.NonTaxableAllowances.Other),
			},
			TotalNonTaxableIncome: roundMoney(totalNonTaxable),
			GrossSalary:           roundMoney(grossSalary),
		},
		Deductions: payroll.PayslipDeductions{
			AFP:             roundMoney(afpWorker),
			Health:          roundMoney(healthWorker),
			AFCWorker:       roundMoney(afcWorker),
			TaxableBase:     roundMoney(taxableBase),
			Tax:             roundMoney(tax),
			TaxBracketIndex: FindTaxBracketIndex(taxableBase, params.TaxBrackets),
			StatutoryTotal:  roundMoney(statutory),
			Loan:            roundMoney(req.AdditionalDeductions.Loan),
			Advance:         roundMoney(req.AdditionalDeductions.Advance),
			Other:           roundMoney(req.AdditionalDeductions.Other),
			AdditionalTotal: roundMoney(additional),
			Total:           roundMoney(totalDeductions),
		},
		NetSalary: roundMoney(netSalary),
		EmployerCost: payroll.PayslipEmployerCost{
			SISEmployer:       roundMoney(sis),
			AFCEmployerCIC:    roundMoney(afcCIC),
			AFCEmployerFCS:    roundMoney(afcFCS),
			WorkInjury:        roundMoney(workInjury),
			TotalEmployerCost: roundMoney(totalEmployerCost),
		},
		ParametersSnapshot: snapshot,
		ComputedAt:         snapshot.CapturedAt,
	}, nil
}
