package ledger

import (
	"context"

	"vendas/internal/core"
)

// Persister is the durable side of the ledger. Save always receives the
// whole ledger and replaces what was stored before.
type Persister interface {
	Load(ctx context.Context) ([]core.Sale, error)
	Save(ctx context.Context, sales []core.Sale) error
}
