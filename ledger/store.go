/*
store.go - Persistence interface for ledger rows

PURPOSE:
  Decouples the engine from where ledger rows live. Implementations:
  - store (ledger/store): in-memory, copy-on-read snapshots
  - store/sqlite: durable sqlite-backed store

CONTRACT:
  Load must return a self-consistent snapshot: a computation started against
  one Load result never observes rows appended afterwards. Appends never
  mutate previously returned datasets.
*/
package ledger

import (
	"context"
)

type Store interface {
	// Load returns a consistent snapshot of all five tables. The returned
	// dataset is owned by the caller; stores must not retain or mutate it.
	Load(ctx context.Context) (*Dataset, error)

	// Append* add rows. Rows with zero dates are dropped silently per the
	// invalid-date policy (shipments excepted).
	AppendPurchases(ctx context.Context, rows []Purchase) error
	AppendUsage(ctx context.Context, rows []Usage) error
	AppendSales(ctx context.Context, rows []Sale) error
	AppendShipments(ctx context.Context, rows []Shipment) error

	// ReplaceMaster swaps the ingredient master wholesale. Master sheets are
	// re-uploaded as a unit, not row-appended.
	ReplaceMaster(ctx context.Context, rows []IngredientInfo) error

	// Reset clears every table. Demo scenario loading starts from here.
	Reset(ctx context.Context) error

	Close() error
}
