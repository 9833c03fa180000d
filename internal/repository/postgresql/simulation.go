package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/database"
)

type simulationRepository struct {
	db *database.DB
}

func NewSimulationRepository(db *database.DB) payroll.SimulationRepository {
	return &simulationRepository{db: db}
}

// Create inserts the audit record. The table is append-only; no update or
// delete statements exist for it anywhere in this package.
func (r *simulationRepository) Create(ctx context.Context, sim payroll.Simulation) (payroll.Simulation, error) {
	q := GetQuerier(ctx, r.db)

	snapshotJSON, err := json.Marshal(sim.Snapshot)
	if err != nil {
		return payroll.Simulation{}, fmt.Errorf("encode parameters snapshot: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Simulation{}, fmt.Errorf("generate simulation id: %w", err)
	}

	query := `
		INSERT INTO payroll_simulations (id, company_id, type, inputs, results, parameters_snapshot, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	sim.ID = id.String()
	err = q.QueryRow(ctx, query,
		sim.ID, sim.CompanyID, sim.Type, sim.Inputs, sim.Results, snapshotJSON, sim.CreatedBy,
	).Scan(&sim.CreatedAt)
	if err != nil {
		return payroll.Simulation{}, fmt.Errorf("failed to create simulation record: %w", err)
	}

	return sim, nil
}

func (r *simulationRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Simulation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, type, inputs, results, parameters_snapshot, created_by, created_at
		FROM payroll_simulations
		WHERE id = $1 AND company_id = $2
	`

	sim, err := scanSimulation(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Simulation{}, payroll.ErrSimulationNotFound
		}
		return payroll.Simulation{}, fmt.Errorf("failed to get simulation: %w", err)
	}

	return sim, nil
}

func (r *simulationRepository) List(ctx context.Context, companyID string, filter payroll.SimulationFilter) ([]payroll.Simulation, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `SELECT COUNT(*) FROM payroll_simulations WHERE company_id = $1`
	countArgs := []interface{}{companyID}
	if filter.Type != nil {
		countQuery += ` AND type = $2`
		countArgs = append(countArgs, *filter.Type)
	}

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count simulations: %w", err)
	}

	query := `
		SELECT id, company_id, type, inputs, results, parameters_snapshot, created_by, created_at
		FROM payroll_simulations
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2
	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	var sims []payroll.Simulation
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan simulation: %w", err)
		}
		sims = append(sims, sim)
	}

	return sims, totalCount, nil
}

func scanSimulation(row pgx.Row) (payroll.Simulation, error) {
	var sim payroll.Simulation
	var snapshotJSON []byte

	err := row.Scan(
		&sim.ID, &sim.CompanyID, &sim.Type, &sim.Inputs, &sim.Results, &snapshotJSON, &sim.CreatedBy, &sim.CreatedAt,
	)
	if err != nil {
		return payroll.Simulation{}, err
	}

	if err := json.Unmarshal(snapshotJSON, &sim.Snapshot); err != nil {
		return payroll.Simulation{}, fmt.Errorf("decode parameters snapshot: %w", err)
	}

	return sim, nil
}
