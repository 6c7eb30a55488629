package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"
)

type txKey struct{}

// GormTxManager implements shared.TxManager on a GORM connection. The
// transactional handle rides on the context, so repositories built on
// sessionFor automatically join an enclosing transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a transaction manager for the given connection.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// Do runs fn inside a database transaction. Any error from fn rolls the
// transaction back; nested Do calls reuse the enclosing transaction.
func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// sessionFor returns the transactional handle from ctx when one is
// present, otherwise the base connection bound to ctx.
func sessionFor(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// Ensure GormTxManager implements TxManager
var _ shared.TxManager = (*GormTxManager)(nil)
