package payroll

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
)

// ContractType enum
type ContractType string

const (
	ContractIndefinite ContractType = "indefinite"
	ContractFixedTerm  ContractType = "fixed_term"
)

// ParseContractType rejects anything outside the closed legal set. An
// empty string selects the indefinite default.
func ParseContractType(s string) (ContractType, error) {
	switch ContractType(s) {
	case "":
		return ContractIndefinite, nil
	case ContractIndefinite, ContractFixedTerm:
		return ContractType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContractType, s)
}

// HealthSystem enum
type HealthSystem string

const (
	HealthFonasa HealthSystem = "fonasa"
	HealthIsapre HealthSystem = "isapre"
)

func ParseHealthSystem(s string) (HealthSystem, error) {
	switch HealthSystem(s) {
	case "":
		return HealthFonasa, nil
	case HealthFonasa, HealthIsapre:
		return HealthSystem(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidHealthSystem, s)
}

// RiskTier enum - work-injury risk classification of the post.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

func ParseRiskTier(s string) (RiskTier, error) {
	switch RiskTier(s) {
	case "":
		return RiskMedium, nil
	case RiskLow, RiskMedium, RiskHigh:
		return RiskTier(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRiskTier, s)
}

// SimulationType enum
type SimulationType string

const (
	SimulationTypeEmployerCost SimulationType = "employer_cost"
	SimulationTypePayslip      SimulationType = "payslip"
)

// Simulation - Immutable audit record of one engine invocation. Created
// once, never updated or deleted.
type Simulation struct {
	ID        string
	CompanyID string
	Type      SimulationType
	Inputs    json.RawMessage
	Results   json.RawMessage
	Snapshot  legalparams.ParametersSnapshot
	CreatedBy *string
	CreatedAt time.Time
}
