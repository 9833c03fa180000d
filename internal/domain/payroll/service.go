package payroll

import "context"

// PayrollEngine exposes the two computation entry points plus audit-trail
// retrieval. Both computations are safe for concurrent use; every result
// carries the parameter snapshot that produced it.
type PayrollEngine interface {
	ComputeEmployerCost(ctx context.Context, req EmployerCostRequest) (EmployerCostResponse, error)
	SimulatePayslip(ctx context.Context, req PayslipSimulationRequest) (PayslipSimulationResponse, error)

	GetSimulation(ctx context.Context, id string) (SimulationResponse, error)
	ListSimulations(ctx context.Context, filter SimulationFilter) (ListSimulationsResponse, error)
}
