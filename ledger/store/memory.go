// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	data   ledger.Dataset
	closed bool
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryFromDataset seeds a store from an existing dataset. The dataset
// is copied, so the caller keeps ownership of its argument.
func NewMemoryFromDataset(d *ledger.Dataset) *Memory {
	m := &Memory{}
	if d != nil {
		m.data = *d.Clone()
		m.data.Sanitize()
		m.sortLocked()
	}
	return m
}

// Load returns a deep copy so in-flight computations never observe rows
// appended after the snapshot was taken.
func (m *Memory) Load(_ context.Context) (*ledger.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ledger.ErrStoreClosed
	}
	return m.data.Clone(), nil
}

func (m *Memory) AppendPurchases(_ context.Context, rows []ledger.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ledger.ErrStoreClosed
	}
	for _, r := range rows {
		if r.Date.IsZero() {
			continue
		}
		// Binary search for insertion point keeps ledgers date-ordered.
		i := sort.Search(len(m.data.Purchases), func(i int) bool {
			return m.data.Purchases[i].Date.After(r.Date)
		})
		m.data.Purchases = append(m.data.Purchases, ledger.Purchase{})
		copy(m.data.Purchases[i+1:], m.data.Purchases[i:])
		m.data.Purchases[i] = r
	}
	return nil
}

func (m *Memory) AppendUsage(_ context.Context, rows []ledger.Usage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ledger.ErrStoreClosed
	}
	for _, r := range rows {
		if r.Date.IsZero() {
			continue
		}
		i := sort.Search(len(m.data.Usage), func(i int) bool {
			return m.data.Usage[i].Date.After(r.Date)
		})
		m.data.Usage = append(m.data.Usage, ledger.Usage{})
		copy(m.data.Usage[i+1:], m.data.Usage[i:])
		m.data.Usage[i] = r
	}
	return nil
}

func (m *Memory) AppendSales(_ context.Context, rows []ledger.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ledger.ErrStoreClosed
	}
	for _, r := range rows {
		if r.Date.IsZero() {
			continue
		}
		i := sort.Search(len(m.data.Sales), func(i int) bool {
			return m.data.Sales[i].Date.After(r.Date)
		})
		m.data.Sales = append(m.data.Sales, ledger.Sale{})
		copy(m.data.Sales[i+1:], m.data.Sales[i:])
		m.data.Sales[i] = r
	}
	return nil
}

func (m *Memory) AppendShipments(_ context.Context, rows []ledger.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ledger.ErrStoreClosed
	}
	// Shipments keep zero dates (frequency-only rows are valid).
	m.data.Shipments = append(m.data.Shipments, rows...)
	return nil
}

func (m *Memory) ReplaceMaster(_ context.Context, rows []ledger.IngredientInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ledger.ErrStoreClosed
	}
	m.data.Master = append([]ledger.IngredientInfo(nil), rows...)
	return nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ledger.ErrStoreClosed
	}
	m.data = ledger.Dataset{}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Memory) sortLocked() {
	sort.SliceStable(m.data.Purchases, func(i, j int) bool {
		return m.data.Purchases[i].Date.Before(m.data.Purchases[j].Date)
	})
	sort.SliceStable(m.data.Usage, func(i, j int) bool {
		return m.data.Usage[i].Date.Before(m.data.Usage[j].Date)
	})
	sort.SliceStable(m.data.Sales, func(i, j int) bool {
		return m.data.Sales[i].Date.Before(m.data.Sales[j].Date)
	})
}
