// Package tx carries an open transaction through a context so repositories
// can run inside or outside a transaction without knowing which.
package tx

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type contextKey string

const txContextKey contextKey = "database_transaction"

// WithTransaction stores a transaction in the context.
func WithTransaction(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// TransactionFromContext extracts a transaction from the context.
func TransactionFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey).(*sqlx.Tx)
	return tx, ok
}

// GetTransactional returns the context's transaction when one is present and
// the plain connection otherwise. Both *sqlx.DB and *sqlx.Tx satisfy
// sqlx.ExtContext, which covers everything the repositories need.
func GetTransactional(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := TransactionFromContext(ctx); ok {
		return tx
	}
	return db
}
