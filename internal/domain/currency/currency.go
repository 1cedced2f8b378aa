package currency

import (
	"context"
	"errors"
	"time"
)

var ErrSnapshotNotFound = errors.New("currency: settings snapshot not found")

// BaseCode is the currency all stored prices are canonical in. Rates are
// expressed as units of target currency per one unit of base currency.
const BaseCode = "TND"

type Currency struct {
	Code string
	Name string
	Rate float64
}

// Table is one snapshot of the admin-maintained currency list. Codes are
// unique within a snapshot; the base currency carries rate 1.
type Table []Currency

// Lookup returns the entry for code by exact equality.
func (t Table) Lookup(code string) (Currency, bool) {
	for _, c := range t {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// DefaultTable is the hardcoded fallback used when the remote snapshot fetch
// fails or returns empty, so offline behavior matches the live site. Rates
// are fixed approximations, not live quotes.
func DefaultTable() Table {
	return Table{
		{Code: BaseCode, Name: "Tunisian Dinar", Rate: 1},
		{Code: "EUR", Name: "Euro", Rate: 0.29},
		{Code: "USD", Name: "US Dollar", Rate: 0.31},
	}
}

// Snapshot is a versioned currency table; only the most recently updated one
// is ever read.
type Snapshot struct {
	ID        string
	Table     Table
	UpdatedAt time.Time
}

// SettingsRepository reads the latest snapshot (order by updated_at desc,
// limit 1) from the external settings store.
type SettingsRepository interface {
	LatestTable(ctx context.Context) (Table, error)
}

// TableOrDefault fetches the latest snapshot and substitutes DefaultTable on
// any error or empty result. Callers never see a fetch failure.
func TableOrDefault(ctx context.Context, repo SettingsRepository) Table {
	if repo == nil {
		return DefaultTable()
	}
	table, err := repo.LatestTable(ctx)
	if err != nil || len(table) == 0 {
		return DefaultTable()
	}
	return table
}
