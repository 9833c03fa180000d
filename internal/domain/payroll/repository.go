package payroll

import "context"

// SimulationRepository is an append-only audit sink. Simulations are
// never updated or deleted; all reads are scoped by companyID.
type SimulationRepository interface {
	Create(ctx context.Context, sim Simulation) (Simulation, error)
	GetByID(ctx context.Context, id string, companyID string) (Simulation, error)
	List(ctx context.Context, companyID string, filter SimulationFilter) ([]Simulation, int64, error)
}
