package currency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTable() Table {
	return Table{
		{Code: "TND", Name: "Tunisian Dinar", Rate: 1},
		{Code: "EUR", Name: "Euro", Rate: 0.29},
	}
}

func TestFormat_ZeroAmountFallback(t *testing.T) {
	assert.Equal(t, "0 TND", Format(0, sampleTable(), "EUR"))
	assert.Equal(t, "0 TND", Format(0, nil, "XYZ"))
}

func TestFormat_UnknownCodeStaysInBaseCurrency(t *testing.T) {
	assert.Equal(t, "100 TND", Format(100, Table{}, "USD"))
	assert.Equal(t, "250.5 TND", Format(250.5, sampleTable(), "GBP"))
}

func TestFormat_ConvertsWithTableRate(t *testing.T) {
	assert.Equal(t, "29 EUR", Format(100, sampleTable(), "EUR"))
	assert.Equal(t, "100 TND", Format(100, sampleTable(), "TND"))
}

func TestFormat_AtMostTwoFractionDigits(t *testing.T) {
	table := Table{{Code: "EUR", Name: "Euro", Rate: 0.333}}

	assert.Equal(t, "33.3 EUR", Format(100, table, "EUR"))
	assert.Equal(t, "3.33 EUR", Format(10, table, "EUR"))
}

func TestDefaultTable_BaseRateIsOne(t *testing.T) {
	table := DefaultTable()

	base, ok := table.Lookup(BaseCode)
	assert.True(t, ok)
	assert.Equal(t, float64(1), base.Rate)
	assert.Len(t, table, 3)
}

type stubSettingsRepo struct {
	table Table
	err   error
}

func (s stubSettingsRepo) LatestTable(ctx context.Context) (Table, error) {
	return s.table, s.err
}

func TestTableOrDefault_SubstitutesFallbackOnError(t *testing.T) {
	table := TableOrDefault(context.Background(), stubSettingsRepo{err: errors.New("fetch failed")})

	assert.Equal(t, DefaultTable(), table)
}

func TestTableOrDefault_SubstitutesFallbackOnEmpty(t *testing.T) {
	table := TableOrDefault(context.Background(), stubSettingsRepo{})

	assert.Equal(t, DefaultTable(), table)
}

func TestTableOrDefault_PassesThroughSnapshot(t *testing.T) {
	table := TableOrDefault(context.Background(), stubSettingsRepo{table: sampleTable()})

	assert.Equal(t, sampleTable(), table)
}
