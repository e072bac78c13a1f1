package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeFeeAndNet(t *testing.T) {
	cases := []struct {
		name       string
		gross      string
		feePercent string
		wantFee    string
		wantNet    string
	}{
		{"ten percent of 200", "200", "10", "20.00", "180.00"},
		{"zero fee", "150.50", "0", "0.00", "150.50"},
		{"fractional fee rounds half away from zero", "99.99", "3.5", "3.50", "96.49"},
		{"card fee on odd cents", "10.01", "4.99", "0.50", "9.51"},
		{"full fee", "80", "100", "80.00", "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gross := decimal.RequireFromString(tc.gross)
			percent := decimal.RequireFromString(tc.feePercent)

			b := ComputeFeeAndNet(gross, percent)
			assert.Equal(t, tc.wantFee, b.FeeAmount.StringFixed(2))
			assert.Equal(t, tc.wantNet, b.NetAmount.StringFixed(2))
			assert.True(t, b.FeeAmount.Add(b.NetAmount).Equal(gross), "fee + net must reproduce gross")
		})
	}
}

func TestComputeFeeAndNetIsPure(t *testing.T) {
	gross := decimal.RequireFromString("123.45")
	percent := decimal.RequireFromString("7.5")

	first := ComputeFeeAndNet(gross, percent)
	second := ComputeFeeAndNet(gross, percent)
	assert.True(t, first.FeeAmount.Equal(second.FeeAmount))
	assert.True(t, first.NetAmount.Equal(second.NetAmount))
}
