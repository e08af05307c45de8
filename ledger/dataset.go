package ledger

// =============================================================================
// DATASET - One consistent snapshot of all five tables
// =============================================================================

// Dataset bundles the four transaction ledgers and the ingredient master.
// Engine computations take a *Dataset and treat it as immutable; anything
// that needs to perturb rows works on a Clone.
type Dataset struct {
	Purchases []Purchase
	Usage     []Usage
	Sales     []Sale
	Shipments []Shipment
	Master    []IngredientInfo
}

func NewDataset() *Dataset {
	return &Dataset{}
}

// Empty reports whether no transaction ledger has any rows. Master data alone
// does not make a dataset non-empty.
func (d *Dataset) Empty() bool {
	return len(d.Purchases) == 0 && len(d.Usage) == 0 &&
		len(d.Sales) == 0 && len(d.Shipments) == 0
}

// Clone returns a deep copy. Money values are immutable decimals, so copying
// the row structs is sufficient.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Purchases: make([]Purchase, len(d.Purchases)),
		Usage:     make([]Usage, len(d.Usage)),
		Sales:     make([]Sale, len(d.Sales)),
		Shipments: make([]Shipment, len(d.Shipments)),
		Master:    make([]IngredientInfo, len(d.Master)),
	}
	copy(out.Purchases, d.Purchases)
	copy(out.Usage, d.Usage)
	copy(out.Sales, d.Sales)
	copy(out.Shipments, d.Shipments)
	copy(out.Master, d.Master)
	return out
}

// Sanitize drops transaction rows whose date is unusable. Shipments keep
// zero dates because a recurring frequency is a valid substitute.
func (d *Dataset) Sanitize() {
	purchases := d.Purchases[:0:0]
	for _, p := range d.Purchases {
		if !p.Date.IsZero() {
			purchases = append(purchases, p)
		}
	}
	d.Purchases = purchases

	usage := d.Usage[:0:0]
	for _, u := range d.Usage {
		if !u.Date.IsZero() {
			usage = append(usage, u)
		}
	}
	d.Usage = usage

	sales := d.Sales[:0:0]
	for _, s := range d.Sales {
		if !s.Date.IsZero() {
			sales = append(sales, s)
		}
	}
	d.Sales = sales
}

// =============================================================================
// DATE FILTERS - All derived state is "as of" a reference date
// =============================================================================

// PurchasesThrough returns purchases dated on or before ref.
func (d *Dataset) PurchasesThrough(ref TimePoint) []Purchase {
	out := make([]Purchase, 0, len(d.Purchases))
	for _, p := range d.Purchases {
		if p.Date.BeforeOrEqual(ref) {
			out = append(out, p)
		}
	}
	return out
}

// UsageThrough returns usage rows dated on or before ref.
func (d *Dataset) UsageThrough(ref TimePoint) []Usage {
	out := make([]Usage, 0, len(d.Usage))
	for _, u := range d.Usage {
		if u.Date.BeforeOrEqual(ref) {
			out = append(out, u)
		}
	}
	return out
}

// UsageBetween returns usage rows with from < date <= to.
func (d *Dataset) UsageBetween(from, to TimePoint) []Usage {
	out := make([]Usage, 0, len(d.Usage))
	for _, u := range d.Usage {
		if u.Date.After(from) && u.Date.BeforeOrEqual(to) {
			out = append(out, u)
		}
	}
	return out
}

// SalesThrough returns sales dated on or before ref.
func (d *Dataset) SalesThrough(ref TimePoint) []Sale {
	out := make([]Sale, 0, len(d.Sales))
	for _, s := range d.Sales {
		if s.Date.BeforeOrEqual(ref) {
			out = append(out, s)
		}
	}
	return out
}

// MasterByName indexes the ingredient master by name. Later duplicates win,
// matching last-sheet-uploaded precedence.
func (d *Dataset) MasterByName() map[string]IngredientInfo {
	out := make(map[string]IngredientInfo, len(d.Master))
	for _, info := range d.Master {
		out[info.Name] = info
	}
	return out
}

// LatestDate returns the most recent transaction date across all ledgers,
// or a zero TimePoint when the dataset is empty. Useful as a reference date
// for historical fixtures.
func (d *Dataset) LatestDate() TimePoint {
	var latest TimePoint
	for _, p := range d.Purchases {
		if p.Date.After(latest) {
			latest = p.Date
		}
	}
	for _, u := range d.Usage {
		if u.Date.After(latest) {
			latest = u.Date
		}
	}
	for _, s := range d.Sales {
		if s.Date.After(latest) {
			latest = s.Date
		}
	}
	return latest
}
