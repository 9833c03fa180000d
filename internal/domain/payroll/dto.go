package payroll

import (
	"time"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SHARED INPUTS ==========

// IndexOverrides lets a caller pin the UF/UTM values instead of resolving
// them from the store, e.g. to replay a previous snapshot. Value and
// date/month must be supplied together.
type IndexOverrides struct {
	UFValue  *decimal.Decimal `json:"uf_value,omitempty"`
	UFDate   *string          `json:"uf_date,omitempty"` // "2006-01-02"
	UTMValue *decimal.Decimal `json:"utm_value,omitempty"`
	UTMMonth *string          `json:"utm_month,omitempty"` // "2006-01"
}

func (o IndexOverrides) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if (o.UFValue == nil) != (o.UFDate == nil) {
		errs = append(errs, validator.ValidationError{Field: "uf_value", Message: "uf_value and uf_date must be supplied together"})
	}
	if (o.UTMValue == nil) != (o.UTMMonth == nil) {
		errs = append(errs, validator.ValidationError{Field: "utm_value", Message: "utm_value and utm_month must be supplied together"})
	}
	if o.UFDate != nil {
		if _, ok := validator.IsValidDate(*o.UFDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "uf_date", Message: "must be a YYYY-MM-DD date"})
		}
	}
	if o.UTMMonth != nil {
		if _, ok := validator.IsValidMonth(*o.UTMMonth); !ok {
			errs = append(errs, validator.ValidationError{Field: "utm_month", Message: "must be a YYYY-MM month"})
		}
	}
	return errs
}

// CostAssumptions - explicit toggles and override rates for the employer
// cost model. Disabled or unset provisions contribute zero.
type CostAssumptions struct {
	IncludeGratification      bool `json:"include_gratification"`
	IncludeVacationProvision  bool `json:"include_vacation_provision"`
	IncludeSeveranceProvision bool `json:"include_severance_provision"`

	VacationProvisionRate  *decimal.Decimal `json:"vacation_provision_rate,omitempty"`
	SeveranceProvisionRate *decimal.Decimal `json:"severance_provision_rate,omitempty"`

	// Work-injury overrides. TotalRate wins when set; otherwise the sum of
	// the set components is used; otherwise the version's own rates apply.
	WorkInjuryTotalRate      *decimal.Decimal `json:"work_injury_total_rate,omitempty"`
	WorkInjuryBasicRate      *decimal.Decimal `json:"work_injury_basic_rate,omitempty"`
	WorkInjuryAdditionalRate *decimal.Decimal `json:"work_injury_additional_rate,omitempty"`
	WorkInjuryExtraRate      *decimal.Decimal `json:"work_injury_extra_rate,omitempty"`
}

// ========== EMPLOYER COST ==========

type EmployerCostRequest struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	ParameterVersionID *string         `json:"parameter_version_id,omitempty"`
	Indexes            IndexOverrides  `json:"indexes"`

	AFPName        string           `json:"afp_name,omitempty"`         // default "modelo"
	HealthSystem   string           `json:"health_system,omitempty"`    // "fonasa" | "isapre"
	HealthPlanRate *decimal.Decimal `json:"health_plan_rate,omitempty"` // isapre plan, default 7%
	RiskTier       string           `json:"risk_tier,omitempty"`        // "low" | "medium" | "high"
	ContractType   string           `json:"contract_type,omitempty"`    // "indefinite" | "fixed_term"

	Assumptions CostAssumptions `json:"assumptions"`

	SaveSimulation *bool `json:"save_simulation,omitempty"` // default false
}

// SaveEnabled reports whether the audit record should be written. Cost
// estimates are ephemeral quoting aids, so the default is off.
func (r *EmployerCostRequest) SaveEnabled() bool {
	return r.SaveSimulation != nil && *r.SaveSimulation
}

func (r *EmployerCostRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.ParameterVersionID != nil && !validator.IsValidUUID(*r.ParameterVersionID) {
		errs = append(errs, validator.ValidationError{Field: "parameter_version_id", Message: "must be a valid UUID"})
	}
	if _, err := ParseHealthSystem(r.HealthSystem); err != nil {
		errs = append(errs, validator.ValidationError{Field: "health_system", Message: "must be 'fonasa' or 'isapre'"})
	}
	if _, err := ParseContractType(r.ContractType); err != nil {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "must be 'indefinite' or 'fixed_term'"})
	}
	if _, err := ParseRiskTier(r.RiskTier); err != nil {
		errs = append(errs, validator.ValidationError{Field: "risk_tier", Message: "must be 'low', 'medium' or 'high'"})
	}
	if r.HealthPlanRate != nil && r.HealthPlanRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "health_plan_rate", Message: "must be non-negative"})
	}
	errs = r.Indexes.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployerCostBreakdown - employer-side components, all CLP.
type EmployerCostBreakdown struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	Gratification      decimal.Decimal `json:"gratification"`
	SISEmployer        decimal.Decimal `json:"sis_employer"`
	AFCEmployerCIC     decimal.Decimal `json:"afc_employer_cic"`
	AFCEmployerFCS     decimal.Decimal `json:"afc_employer_fcs"`
	AFCEmployerTotal   decimal.Decimal `json:"afc_employer_total"`
	WorkInjury         decimal.Decimal `json:"work_injury"`
	DirectCost         decimal.Decimal `json:"direct_cost"`
	VacationProvision  decimal.Decimal `json:"vacation_provision"`
	SeveranceProvision decimal.Decimal `json:"severance_provision"`
}

// WorkerDeductionEstimate - the worker-side mirror used for the ratio and
// display. Not an authoritative payslip.
type WorkerDeductionEstimate struct {
	AFP             decimal.Decimal `json:"afp"`
	Health          decimal.Decimal `json:"health"`
	AFC             decimal.Decimal `json:"afc"`
	TaxableBase     decimal.Decimal `json:"taxable_base"`
	Tax             decimal.Decimal `json:"tax"`
	TaxBracketIndex int             `json:"tax_bracket_index"`
}

type EmployerCostResponse struct {
	MonthlyEmployerCostCLP  decimal.Decimal                `json:"monthly_employer_cost_clp"`
	Breakdown               EmployerCostBreakdown          `json:"breakdown"`
	WorkerEstimate          WorkerDeductionEstimate        `json:"worker_estimate"`
	WorkerNetSalaryEstimate decimal.Decimal                `json:"worker_net_salary_estimate"`
	CostToNetRatio          decimal.Decimal                `json:"cost_to_net_ratio"`
	ParametersSnapshot      legalparams.ParametersSnapshot `json:"parameters_snapshot"`
	ComputedAt              time.Time                      `json:"computed_at"`
}

// ========== PAYSLIP SIMULATION ==========

// NonTaxableAllowances - the legally non-taxable allowance categories.
type NonTaxableAllowances struct {
	Transport decimal.Decimal `json:"transport"`
	Meal      decimal.Decimal `json:"meal"`
	Family    decimal.Decimal `json:"family"`
	Other     decimal.Decimal `json:"other"`
}

func (a NonTaxableAllowances) Total() decimal.Decimal {
	return a.Transport.Add(a.Meal).Add(a.Family).Add(a.Other)
}

// AdditionalDeductions - non-statutory deductions agreed with the worker.
type AdditionalDeductions struct {
	Loan    decimal.Decimal `json:"loan"`
	Advance decimal.Decimal `json:"advance"`
	Other   decimal.Decimal `json:"other"`
}

func (d AdditionalDeductions) Total() decimal.Decimal {
	return d.Loan.Add(d.Advance).Add(d.Other)
}

type PayslipSimulationRequest struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	ParameterVersionID *string         `json:"parameter_version_id,omitempty"`
	Indexes            IndexOverrides  `json:"indexes"`

	AFPName        string           `json:"afp_name,omitempty"`
	HealthSystem   string           `json:"health_system,omitempty"`
	HealthPlanRate *decimal.Decimal `json:"health_plan_rate,omitempty"`
	RiskTier       string           `json:"risk_tier,omitempty"`
	ContractType   string           `json:"contract_type,omitempty"`

	WorkedDays        int `json:"worked_days"`
	TotalDaysInPeriod int `json:"total_days_in_period,omitempty"` // default 30

	OvertimeHours50  decimal.Decimal `json:"overtime_hours_50"`
	OvertimeHours100 decimal.Decimal `json:"overtime_hours_100"`

	OtherTaxableAllowances decimal.Decimal      `json:"other_taxable_allowances"`
	NonTaxableAllowances   NonTaxableAllowances `json:"non_taxable_allowances"`
	AdditionalDeductions   AdditionalDeductions `json:"additional_deductions"`

	SaveSimulation *bool `json:"save_simulation,omitempty"` // default true
}

// SaveEnabled reports whether the audit record should be written.
func (r *PayslipSimulationRequest) SaveEnabled() bool {
	return r.SaveSimulation == nil || *r.SaveSimulation
}

func (r *PayslipSimulationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.ParameterVersionID != nil && !validator.IsValidUUID(*r.ParameterVersionID) {
		errs = append(errs, validator.ValidationError{Field: "parameter_version_id", Message: "must be a valid UUID"})
	}
	if r.WorkedDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "worked_days", Message: "must be non-negative"})
	}
	if r.TotalDaysInPeriod < 0 {
		errs = append(errs, validator.ValidationError{Field: "total_days_in_period", Message: "must be non-negative"})
	}
	if r.TotalDaysInPeriod > 0 && r.WorkedDays > r.TotalDaysInPeriod {
		errs = append(errs, validator.ValidationError{Field: "worked_days", Message: "cannot exceed total_days_in_period"})
	}
	if r.OvertimeHours50.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours_50", Message: "must be non-negative"})
	}
	if r.OvertimeHours100.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours_100", Message: "must be non-negative"})
	}
	if _, err := ParseHealthSystem(r.HealthSystem); err != nil {
		errs = append(errs, validator.ValidationError{Field: "health_system", Message: "must be 'fonasa' or 'isapre'"})
	}
	if _, err := ParseContractType(r.ContractType); err != nil {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "must be 'indefinite' or 'fixed_term'"})
	}
	if _, err := ParseRiskTier(r.RiskTier); err != nil {
		errs = append(errs, validator.ValidationError{Field: "risk_tier", Message: "must be 'low', 'medium' or 'high'"})
	}
	errs = r.Indexes.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipEarnings struct {
	ProportionalBase      decimal.Decimal      `json:"proportional_base"`
	HourlyRate            decimal.Decimal      `json:"hourly_rate"`
	Overtime50            decimal.Decimal      `json:"overtime_50"`
	Overtime100           decimal.Decimal      `json:"overtime_100"`
	OtherTaxable          decimal.Decimal      `json:"other_taxable"`
	TotalTaxableIncome    decimal.Decimal      `json:"total_taxable_income"`
	NonTaxable            NonTaxableAllowances `json:"non_taxable"`
	TotalNonTaxableIncome decimal.Decimal      `json:"total_non_taxable_income"`
	GrossSalary           decimal.Decimal      `json:"gross_salary"`
}

type PayslipDeductions struct {
	AFP             decimal.Decimal `json:"afp"`
	Health          decimal.Decimal `json:"health"`
	AFCWorker       decimal.Decimal `json:"afc_worker"`
	TaxableBase     decimal.Decimal `json:"taxable_base"`
	Tax             decimal.Decimal `json:"tax"`
	TaxBracketIndex int             `json:"tax_bracket_index"`
	StatutoryTotal  decimal.Decimal `json:"statutory_total"`
	Loan            decimal.Decimal `json:"loan"`
	Advance         decimal.Decimal `json:"advance"`
	Other           decimal.Decimal `json:"other"`
	AdditionalTotal decimal.Decimal `json:"additional_total"`
	Total           decimal.Decimal `json:"total"`
}

// PayslipEmployerCost - employer-side mirror for the simulated period.
type PayslipEmployerCost struct {
	SISEmployer       decimal.Decimal `json:"sis_employer"`
	AFCEmployerCIC    decimal.Decimal `json:"afc_employer_cic"`
	AFCEmployerFCS    decimal.Decimal `json:"afc_employer_fcs"`
	WorkInjury        decimal.Decimal `json:"work_injury"`
	TotalEmployerCost decimal.Decimal `json:"total_employer_cost"`
}

type PayslipSimulationResponse struct {
	SimulationID       *string                        `json:"simulation_id,omitempty"`
	Earnings           PayslipEarnings                `json:"earnings"`
	Deductions         PayslipDeductions              `json:"deductions"`
	NetSalary          decimal.Decimal                `json:"net_salary"`
	EmployerCost       PayslipEmployerCost            `json:"employer_cost"`
	ParametersSnapshot legalparams.ParametersSnapshot `json:"parameters_snapshot"`
	ComputedAt         time.Time                      `json:"computed_at"`
}

// ========== SIMULATION AUDIT DTOs ==========

type SimulationResponse struct {
	ID        string                         `json:"id"`
	Type      string                         `json:"type"`
	Inputs    any                            `json:"inputs"`
	Results   any                            `json:"results"`
	Snapshot  legalparams.ParametersSnapshot `json:"parameters_snapshot"`
	CreatedBy *string                        `json:"created_by,omitempty"`
	CreatedAt time.Time                      `json:"created_at"`
}

type SimulationFilter struct {
	Type  *string `json:"type,omitempty"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

type ListSimulationsResponse struct {
	Data       []SimulationResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
