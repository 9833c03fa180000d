package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/database"
)

type txKey struct{}

// ContextWithTx binds a transaction to ctx so subsequent repository calls
// run inside it.
func ContextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetQuerier returns the transaction bound to ctx, or the pool.
// Repositories route every statement through this so callers can compose
// them transactionally without the repositories knowing.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
