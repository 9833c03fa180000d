package legalparams

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParameterVersion - Effective-dated bundle of Chilean labor-law parameters.
// Versions are authored elsewhere and read-only here; at most one is active
// and validity windows do not overlap.
type ParameterVersion struct {
	ID             string
	Name           string
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time
	IsActive       bool
	Parameters     Parameters
	CreatedAt      time.Time
}

// Covers reports whether the version's validity window contains date.
// The window is half-open: [EffectiveFrom, EffectiveUntil).
func (v ParameterVersion) Covers(date time.Time) bool {
	if date.Before(v.EffectiveFrom) {
		return false
	}
	if v.EffectiveUntil != nil && !date.Before(*v.EffectiveUntil) {
		return false
	}
	return true
}

// Parameters - the nested legal-parameter payload, stored as JSONB.
type Parameters struct {
	Caps          ContributionCaps           `json:"caps"`
	Gratification GratificationParams        `json:"gratification"`
	AFP           map[string]decimal.Decimal `json:"afp"` // fund name -> commission rate
	AFC           AFCParams                  `json:"afc"`
	SIS           SISParams                  `json:"sis"`
	WorkInjury    WorkInjuryParams           `json:"work_injury"`
	TaxBrackets   []TaxBracket               `json:"tax_brackets"`
	IMM           decimal.Decimal            `json:"imm"` // monthly minimum wage, CLP
}

// ContributionCaps - contribution-base ceilings expressed in UF units.
// Multiply by the resolved UF value to obtain the monetary cap.
type ContributionCaps struct {
	PensionUF    decimal.Decimal `json:"pension_uf"`
	HealthUF     decimal.Decimal `json:"health_uf"`
	WorkInjuryUF decimal.Decimal `json:"work_injury_uf"`
	AFCUF        decimal.Decimal `json:"afc_uf"`
}

// GratificationParams - statutory gratification: a monthly rate on base
// salary, capped annually at a multiple of the minimum wage.
type GratificationParams struct {
	MonthlyRate          decimal.Decimal `json:"monthly_rate"`
	AnnualCapIMMMultiple decimal.Decimal `json:"annual_cap_imm_multiple"`
}

// AFCContractRates - unemployment-insurance rates for one contract type.
// The employer side splits into an individual-account component (CIC) and
// a solidarity-fund component (FCS).
type AFCContractRates struct {
	Worker      decimal.Decimal `json:"worker"`
	EmployerCIC decimal.Decimal `json:"employer_cic"`
	EmployerFCS decimal.Decimal `json:"employer_fcs"`
}

// EmployerTotal returns the combined employer-side AFC rate.
func (r AFCContractRates) EmployerTotal() decimal.Decimal {
	return r.EmployerCIC.Add(r.EmployerFCS)
}

type AFCParams struct {
	Indefinite AFCContractRates `json:"indefinite"`
	FixedTerm  AFCContractRates `json:"fixed_term"`
}

type SISParams struct {
	EmployerRate decimal.Decimal `json:"employer_rate"`
}

// WorkInjuryParams - employer-side work-injury insurance: either a flat
// base rate or a per-risk-tier table.
type WorkInjuryParams struct {
	BaseRate   *decimal.Decimal           `json:"base_rate,omitempty"`
	RiskLevels map[string]decimal.Decimal `json:"risk_levels,omitempty"`
}

// TaxBracket - one row of the progressive second-category tax table.
// To is nil on the open-ended last bracket.
type TaxBracket struct {
	From   decimal.Decimal  `json:"from"`
	To     *decimal.Decimal `json:"to"`
	Factor decimal.Decimal  `json:"factor"`
	Rebate decimal.Decimal  `json:"rebate"`
}

// IndexValue - one record of a currency-indexation table (UF or UTM).
type IndexValue struct {
	Date  time.Time
	Value decimal.Decimal
}

// FxReferences - point-in-time indexation bundle resolved for a single
// engine invocation. The minimum wage always comes from the parameter
// payload, never from an index table.
type FxReferences struct {
	UFValue     decimal.Decimal `json:"uf_value"`
	UFDate      time.Time       `json:"uf_date"`
	UTMValue    decimal.Decimal `json:"utm_value"`
	UTMMonth    time.Time       `json:"utm_month"`
	MinimumWage decimal.Decimal `json:"minimum_wage"`
}

// SnapshotCaps - contribution caps converted to CLP with the UF value in
// force at computation time.
type SnapshotCaps struct {
	PensionCLP    decimal.Decimal `json:"pension_clp"`
	HealthCLP     decimal.Decimal `json:"health_clp"`
	WorkInjuryCLP decimal.Decimal `json:"work_injury_clp"`
	AFCCLP        decimal.Decimal `json:"afc_clp"`
}

// ParametersSnapshot - the provenance record attached to every
// computation result. Given the same snapshot and scalar inputs a result
// must be reproducible exactly.
type ParametersSnapshot struct {
	VersionID      string          `json:"version_id"`
	VersionName    string          `json:"version_name"`
	EffectiveFrom  time.Time       `json:"effective_from"`
	EffectiveUntil *time.Time      `json:"effective_until,omitempty"`
	References     FxReferences    `json:"references"`
	CapsCLP        SnapshotCaps    `json:"caps_clp"`
	Parameters     Parameters      `json:"parameters"`
	CapturedAt     time.Time       `json:"captured_at"`
}
