package payroll

import "errors"

var (
	ErrSimulationNotFound      = errors.New("simulation not found")
	ErrSimulationPersistFailed = errors.New("failed to persist simulation record")
	ErrUnknownAFPFund          = errors.New("unknown AFP fund")
	ErrInvalidContractType     = errors.New("invalid contract type")
	ErrInvalidHealthSystem     = errors.New("invalid health system")
	ErrInvalidRiskTier         = errors.New("invalid work-injury risk tier")
)
