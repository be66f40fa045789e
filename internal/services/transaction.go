package services

import (
	"context"

	"neighborhub/pkg/database"
)

// TxRunner runs fn atomically. Repository calls inside fn must use the ctx
// it receives.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTxRunner struct {
	db *database.MongoDB
}

func NewMongoTxRunner(db *database.MongoDB) TxRunner {
	return &mongoTxRunner{db: db}
}

func (r *mongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.RunInTransaction(ctx, fn)
}

type passthroughTxRunner struct{}

// NewPassthroughTxRunner runs fn directly. Used with standalone MongoDB
// deployments and the memory driver, where the per-user lock is the only
// serialisation.
func NewPassthroughTxRunner() TxRunner {
	return passthroughTxRunner{}
}

func (passthroughTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
