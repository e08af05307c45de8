/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  Durable persistence for the four ledgers and the ingredient master.
  In production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

APPEND-ONLY ENFORCEMENT:
  The ledger tables are append-only:
  - No UPDATE statements on purchases, usage, sales, shipments
  - No row-level DELETE; Reset truncates wholesale
  - The ingredient master is the one replace-wholesale table

KEY TABLES:
  purchases:         Immutable purchase ledger
  usage_rows:        Immutable usage ledger ("usage" is reserved-adjacent)
  sales:             Immutable sales ledger
  shipments:         Shipment outcomes and schedules
  ingredient_master: Thresholds, units, categories, shelf life

INDEXES:
  Every ledger table is indexed on its date column; Load reads each
  table in date order so downstream replay never re-sorts.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/inventory.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - ledger/store.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/inventory-engine/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Purchases (append-only ledger)
	CREATE TABLE IF NOT EXISTS purchases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		ingredient TEXT NOT NULL,
		quantity REAL NOT NULL,
		total_cost TEXT NOT NULL,
		supplier TEXT,
		unit TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases(date);
	CREATE INDEX IF NOT EXISTS idx_purchases_ingredient ON purchases(ingredient);

	-- Usage (append-only ledger)
	CREATE TABLE IF NOT EXISTS usage_rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		ingredient TEXT NOT NULL,
		quantity_used REAL NOT NULL,
		menu_item TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_usage_date ON usage_rows(date);
	CREATE INDEX IF NOT EXISTS idx_usage_ingredient ON usage_rows(ingredient);

	-- Sales (append-only ledger)
	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		menu_item TEXT NOT NULL,
		quantity_sold REAL NOT NULL,
		revenue TEXT NOT NULL,
		price TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date);
	CREATE INDEX IF NOT EXISTS idx_sales_menu_item ON sales(menu_item);

	-- Shipments (date may be empty: frequency-only schedule rows)
	CREATE TABLE IF NOT EXISTS shipments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ingredient TEXT NOT NULL,
		supplier TEXT,
		quantity REAL NOT NULL,
		date TEXT,
		frequency TEXT,
		status TEXT,
		delay_days INTEGER DEFAULT 0,
		ordered_qty REAL DEFAULT 0,
		received_qty REAL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_shipments_ingredient ON shipments(ingredient);
	CREATE INDEX IF NOT EXISTS idx_shipments_supplier ON shipments(supplier);

	-- Ingredient master (replace-wholesale)
	CREATE TABLE IF NOT EXISTS ingredient_master (
		name TEXT PRIMARY KEY,
		min_stock REAL NOT NULL,
		max_stock REAL NOT NULL,
		unit TEXT,
		category TEXT,
		shelf_life_days INTEGER DEFAULT 0
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads all five tables into a dataset. Each ledger comes back in
// date order via the indexed date columns.
func (s *Store) Load(ctx context.Context) (*ledger.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds := &ledger.Dataset{}

	if err := s.loadPurchases(ctx, ds); err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}
	if err := s.loadUsage(ctx, ds); err != nil {
		return nil, fmt.Errorf("load usage: %w", err)
	}
	if err := s.loadSales(ctx, ds); err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	if err := s.loadShipments(ctx, ds); err != nil {
		return nil, fmt.Errorf("load shipments: %w", err)
	}
	if err := s.loadMaster(ctx, ds); err != nil {
		return nil, fmt.Errorf("load master: %w", err)
	}

	return ds, nil
}

func (s *Store) loadPurchases(ctx context.Context, ds *ledger.Dataset) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, ingredient, quantity, total_cost, COALESCE(supplier, ''), COALESCE(unit, '')
		FROM purchases ORDER BY date, id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dateStr, costStr string
		var p ledger.Purchase
		if err := rows.Scan(&dateStr, &p.Ingredient, &p.Quantity, &costStr, &p.Supplier, &p.Unit); err != nil {
			return err
		}
		p.Date = parseStoredDate(dateStr)
		p.TotalCost = parseStoredMoney(costStr)
		ds.Purchases = append(ds.Purchases, p)
	}
	return rows.Err()
}

func (s *Store) loadUsage(ctx context.Context, ds *ledger.Dataset) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, ingredient, quantity_used, COALESCE(menu_item, '')
		FROM usage_rows ORDER BY date, id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dateStr string
		var u ledger.Usage
		if err := rows.Scan(&dateStr, &u.Ingredient, &u.QuantityUsed, &u.MenuItem); err != nil {
			return err
		}
		u.Date = parseStoredDate(dateStr)
		ds.Usage = append(ds.Usage, u)
	}
	return rows.Err()
}

func (s *Store) loadSales(ctx context.Context, ds *ledger.Dataset) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, menu_item, quantity_sold, revenue, price
		FROM sales ORDER BY date, id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dateStr, revenueStr, priceStr string
		var sale ledger.Sale
		if err := rows.Scan(&dateStr, &sale.MenuItem, &sale.QuantitySold, &revenueStr, &priceStr); err != nil {
			return err
		}
		sale.Date = parseStoredDate(dateStr)
		sale.Revenue = parseStoredMoney(revenueStr)
		sale.Price = parseStoredMoney(priceStr)
		ds.Sales = append(ds.Sales, sale)
	}
	return rows.Err()
}

func (s *Store) loadShipments(ctx context.Context, ds *ledger.Dataset) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ingredient, COALESCE(supplier, ''), quantity, COALESCE(date, ''),
		       COALESCE(frequency, ''), COALESCE(status, ''), delay_days, ordered_qty, received_qty
		FROM shipments ORDER BY date, id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dateStr, statusStr string
		var sh ledger.Shipment
		if err := rows.Scan(&sh.Ingredient, &sh.Supplier, &sh.Quantity, &dateStr,
			&sh.Frequency, &statusStr, &sh.DelayDays, &sh.OrderedQty, &sh.ReceivedQty); err != nil {
			return err
		}
		if dateStr != "" {
			sh.Date = parseStoredDate(dateStr)
		}
		sh.Status = ledger.ShipmentStatus(statusStr)
		ds.Shipments = append(ds.Shipments, sh)
	}
	return rows.Err()
}

func (s *Store) loadMaster(ctx context.Context, ds *ledger.Dataset) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, min_stock, max_stock, COALESCE(unit, ''), COALESCE(category, ''), shelf_life_days
		FROM ingredient_master ORDER BY name`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var info ledger.IngredientInfo
		if err := rows.Scan(&info.Name, &info.MinStock, &info.MaxStock, &info.Unit, &info.Category, &info.ShelfLifeDays); err != nil {
			return err
		}
		ds.Master = append(ds.Master, info)
	}
	return rows.Err()
}

// =============================================================================
// APPEND
// =============================================================================

func (s *Store) AppendPurchases(ctx context.Context, rows []ledger.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO purchases (date, ingredient, quantity, total_cost, supplier, unit)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if r.Date.IsZero() {
				continue
			}
			if _, err := stmt.ExecContext(ctx, r.Date.String(), r.Ingredient, r.Quantity,
				r.TotalCost.Value.String(), r.Supplier, r.Unit); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) AppendUsage(ctx context.Context, rows []ledger.Usage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO usage_rows (date, ingredient, quantity_used, menu_item)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if r.Date.IsZero() {
				continue
			}
			if _, err := stmt.ExecContext(ctx, r.Date.String(), r.Ingredient, r.QuantityUsed, r.MenuItem); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) AppendSales(ctx context.Context, rows []ledger.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sales (date, menu_item, quantity_sold, revenue, price)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if r.Date.IsZero() {
				continue
			}
			if _, err := stmt.ExecContext(ctx, r.Date.String(), r.MenuItem, r.QuantitySold,
				r.Revenue.Value.String(), r.Price.Value.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) AppendShipments(ctx context.Context, rows []ledger.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO shipments (ingredient, supplier, quantity, date, frequency, status, delay_days, ordered_qty, received_qty)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			dateStr := ""
			if !r.Date.IsZero() {
				dateStr = r.Date.String()
			}
			if _, err := stmt.ExecContext(ctx, r.Ingredient, r.Supplier, r.Quantity, dateStr,
				r.Frequency, string(r.Status), r.DelayDays, r.OrderedQty, r.ReceivedQty); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceMaster swaps the ingredient master wholesale inside one transaction.
func (s *Store) ReplaceMaster(ctx context.Context, rows []ledger.IngredientInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ingredient_master`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO ingredient_master (name, min_stock, max_stock, unit, category, shelf_life_days)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, r.Name, r.MinStock, r.MaxStock, r.Unit, r.Category, r.ShelfLifeDays); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset truncates every table.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"purchases", "usage_rows", "sales", "shipments", "ingredient_master"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		return nil
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func parseStoredDate(s string) ledger.TimePoint {
	tp, _ := ledger.ParseDate(s)
	return tp
}

func parseStoredMoney(s string) ledger.Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ledger.ZeroMoney()
	}
	return ledger.Money{Value: d}
}
