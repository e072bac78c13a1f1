package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("creates active account with cache seeded from opening balance", func(t *testing.T) {
		a, err := NewAccount("Banco Azul", AccountKindChecking, decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.True(t, a.Active)
		assert.True(t, a.CurrentBalance.Equal(a.OpeningBalance))
		assert.NotEqual(t, "", a.ID.String())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewAccount("", AccountKindChecking, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewAccount("Caixa", AccountKind("WALLET"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("allows negative opening balance", func(t *testing.T) {
		a, err := NewAccount("Cartão", AccountKindCreditCard, decimal.NewFromInt(-250))
		require.NoError(t, err)
		assert.True(t, a.OpeningBalance.IsNegative())
	})
}

func TestAccountLifecycle(t *testing.T) {
	a, err := NewAccount("Banco Azul", AccountKindChecking, decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, a.Deactivate())
	assert.False(t, a.Active)
	assert.Error(t, a.Deactivate(), "double deactivation must fail")

	require.NoError(t, a.Reactivate())
	assert.True(t, a.Active)
	assert.Error(t, a.Reactivate())
}

func TestAccountCacheRefresh(t *testing.T) {
	a, err := NewAccount("Banco Azul", AccountKindChecking, decimal.NewFromInt(1000))
	require.NoError(t, err)

	a.ReflectTransferOut(decimal.NewFromInt(300))
	assert.Equal(t, "700.00", a.CurrentBalance.StringFixed(2))

	a.ReflectTransferIn(decimal.NewFromInt(50))
	assert.Equal(t, "750.00", a.CurrentBalance.StringFixed(2))

	a.ReflectAdjustment(decimal.NewFromInt(999))
	assert.Equal(t, "999.00", a.CurrentBalance.StringFixed(2))

	// the opening balance never moves
	assert.Equal(t, "1000.00", a.OpeningBalance.StringFixed(2))
}
