package shared

import "context"

// TxManager runs a function inside a single persistence transaction. Every
// repository call made with the context passed to fn joins that transaction,
// so a failure partway through a multi-entity write commits nothing.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTxManager executes fn without any transactional scope. Useful for tests
// and for callers that manage atomicity themselves.
type NopTxManager struct{}

// Do calls fn with the unmodified context.
func (NopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
