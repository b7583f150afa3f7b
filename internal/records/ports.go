// Package records defines the ports of the receipt store. The collection is
// ordered and append-only: receipts are created in batches when processing
// finishes and are never edited or deleted afterwards.
package records

import (
	"context"

	"spendview/internal/core"
)

type (
	// Appender stores a processed batch, preserving its order.
	Appender interface {
		Append(ctx context.Context, recs []core.Receipt) error
	}

	// Lister supplies snapshots of the current collection. Because the set
	// is append-only, Count also serves as a cheap version marker.
	Lister interface {
		List(ctx context.Context) ([]core.Receipt, error)
		Count(ctx context.Context) (int, error)
	}

	// Store combines both sides for backends that implement the full port.
	Store interface {
		Appender
		Lister
	}
)
