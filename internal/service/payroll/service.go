package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// PayrollEngineImpl computes employer costs and payslip simulations from a
// freshly resolved parameter version. It holds no mutable state; all
// methods are safe for concurrent use.
type PayrollEngineImpl struct {
	versions    legalparams.ParameterVersionRepository
	indexes     legalparams.IndexRepository
	simulations payroll.SimulationRepository
	logger      *slog.Logger
}

func NewPayrollEngine(
	versions legalparams.ParameterVersionRepository,
	indexes legalparams.IndexRepository,
	simulations payroll.SimulationRepository,
	logger *slog.Logger,
) payroll.PayrollEngine {
	return &PayrollEngineImpl{
		versions:    versions,
		indexes:     indexes,
		simulations: simulations,
		logger:      logger,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== AUDIT TRAIL ==========

// saveSimulation writes the append-only audit record and returns its id.
func (e *PayrollEngineImpl) saveSimulation(
	ctx context.Context,
	simType payroll.SimulationType,
	inputs any,
	results any,
	snapshot legalparams.ParametersSnapshot,
) (string, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", payroll.ErrSimulationPersistFailed, err)
	}

	inputsJSON, err := json.Marshal(inputs)
	if err != nil {
		return "", fmt.Errorf("%w: encode inputs: %v", payroll.ErrSimulationPersistFailed, err)
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("%w: encode results: %v", payroll.ErrSimulationPersistFailed, err)
	}

	var createdBy *string
	if userID != "" {
		createdBy = &userID
	}

	created, err := e.simulations.Create(ctx, payroll.Simulation{
		CompanyID: companyID,
		Type:      simType,
		Inputs:    inputsJSON,
		Results:   resultsJSON,
		Snapshot:  snapshot,
		CreatedBy: createdBy,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", payroll.ErrSimulationPersistFailed, err)
	}

	return created.ID, nil
}

func (e *PayrollEngineImpl) GetSimulation(ctx context.Context, id string) (payroll.SimulationResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SimulationResponse{}, err
	}

	sim, err := e.simulations.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.SimulationResponse{}, err
	}

	return mapToSimulationResponse(sim), nil
}

func (e *PayrollEngineImpl) ListSimulations(ctx context.Context, filter payroll.SimulationFilter) (payroll.ListSimulationsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListSimulationsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	sims, totalCount, err := e.simulations.List(ctx, companyID, filter)
	if err != nil {
		return payroll.ListSimulationsResponse{}, err
	}

	result := make([]payroll.SimulationResponse, 0, len(sims))
	for _, sim := range sims {
		result = append(result, mapToSimulationResponse(sim))
	}

	return payroll.ListSimulationsResponse{
		Data:       result,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func mapToSimulationResponse(sim payroll.Simulation) payroll.SimulationResponse {
	var inputs, results any
	_ = json.Unmarshal(sim.Inputs, &inputs)
	_ = json.Unmarshal(sim.Results, &results)

	return payroll.SimulationResponse{
		ID:        sim.ID,
		Type:      string(sim.Type),
		Inputs:    inputs,
		Results:   results,
		Snapshot:  sim.Snapshot,
		CreatedBy: sim.CreatedBy,
		CreatedAt: sim.CreatedAt,
	}
}

// ========== SHARED RATE HELPERS ==========

const defaultAFPFund = "modelo"

var (
	pensionBaseWorkerRate = decimal.NewFromFloat(0.10)
	fonasaRate            = decimal.NewFromFloat(0.07)
	defaultWorkInjuryRate = decimal.NewFromFloat(0.0093)
	twelve                = decimal.NewFromInt(12)
	hundred               = decimal.NewFromInt(100)
)

// afpWorkerRate returns the full worker-side pension rate: the fixed base
// contribution plus the fund's commission. Unknown funds are rejected, not
// defaulted: a zero-commission fallback would silently understate the
// deduction.
func afpWorkerRate(params legalparams.Parameters, fundName string) (decimal.Decimal, error) {
	if fundName == "" {
		fundName = defaultAFPFund
	}
	commission, ok := params.AFP[fundName]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", payroll.ErrUnknownAFPFund, fundName)
	}
	return pensionBaseWorkerRate.Add(commission), nil
}

func afcRatesFor(afc legalparams.AFCParams, contract payroll.ContractType) legalparams.AFCContractRates {
	if contract == payroll.ContractFixedTerm {
		return afc.FixedTerm
	}
	return afc.Indefinite
}

func healthWorkerRate(system payroll.HealthSystem, planRate *decimal.Decimal) decimal.Decimal {
	if system == payroll.HealthIsapre && planRate != nil {
		return *planRate
	}
	return fonasaRate
}

// workInjuryRate resolves the employer-side rate: caller override first,
// then the version's flat base rate, then the risk-tier table, then the
// statutory floor.
func workInjuryRate(a payroll.CostAssumptions, wi legalparams.WorkInjuryParams, tier payroll.RiskTier) decimal.Decimal {
	if a.WorkInjuryTotalRate != nil {
		return *a.WorkInjuryTotalRate
	}
	if a.WorkInjuryBasicRate != nil || a.WorkInjuryAdditionalRate != nil || a.WorkInjuryExtraRate != nil {
		rate := decimal.Zero
		for _, part := range []*decimal.Decimal{a.WorkInjuryBasicRate, a.WorkInjuryAdditionalRate, a.WorkInjuryExtraRate} {
			if part != nil {
				rate = rate.Add(*part)
			}
		}
		return rate
	}
	if wi.BaseRate != nil {
		return *wi.BaseRate
	}
	if rate, ok := wi.RiskLevels[string(tier)]; ok {
		return rate
	}
	return defaultWorkInjuryRate
}

// gratificationAmount applies the statutory monthly rate, capped at the
// annual IMM multiple spread over twelve months.
func gratificationAmount(base decimal.Decimal, g legalparams.GratificationParams, minimumWage decimal.Decimal) decimal.Decimal {
	monthly := base.Mul(g.MonthlyRate)
	cap := minimumWage.Mul(g.AnnualCapIMMMultiple).Div(twelve)
	return decimal.Min(monthly, cap)
}
