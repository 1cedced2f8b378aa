package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"darstay/internal/domain/currency"
)

func TestCalculatePayments_RoundSplit(t *testing.T) {
	split := CalculatePayments(1000)

	assert.Equal(t, float64(300), split.Deposit)
	assert.Equal(t, float64(700), split.Remaining)
}

func TestCalculatePayments_RemainingAbsorbsRounding(t *testing.T) {
	totals := []float64{999, 1001, 1, 333, 12345}
	for _, total := range totals {
		split := CalculatePayments(total)
		assert.Equal(t, total, split.Deposit+split.Remaining, "total %v", total)
	}

	split := CalculatePayments(999)
	assert.Equal(t, float64(300), split.Deposit)
	assert.Equal(t, float64(699), split.Remaining)
}

func TestAmountDue(t *testing.T) {
	due, err := AmountDue(1000, PlanDeposit)
	assert.NoError(t, err)
	assert.Equal(t, float64(300), due)

	due, err = AmountDue(1000, PlanFull)
	assert.NoError(t, err)
	assert.Equal(t, float64(1000), due)

	_, err = AmountDue(1000, Plan("installments"))
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestGatewayAmount_BaseCurrencyMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1000000), GatewayAmount(1000, currency.DefaultTable(), "TND"))
	assert.Equal(t, int64(300500), GatewayAmount(300.5, currency.DefaultTable(), ""))
}

func TestGatewayAmount_ForeignCurrencyFromDisplayString(t *testing.T) {
	table := currency.Table{
		{Code: "TND", Rate: 1},
		{Code: "EUR", Rate: 0.29},
	}

	// "29 EUR" -> 29
	assert.Equal(t, int64(29), GatewayAmount(100, table, "EUR"))
}

func TestGatewayAmount_UnknownCodeFallsBackToBaseDisplay(t *testing.T) {
	// Format falls back to "100 TND", so the stripped digits are the
	// unconverted amount.
	assert.Equal(t, int64(100), GatewayAmount(100, currency.Table{}, "GBP"))
}

func TestGatewayAmount_ZeroAmount(t *testing.T) {
	// Zero formats as "0 TND"; the derived amount is 0.
	assert.Equal(t, int64(0), GatewayAmount(0, currency.DefaultTable(), "EUR"))
}
