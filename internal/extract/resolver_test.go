package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSinglePriceWithQuantity(t *testing.T) {
	e := New(DefaultConfig())

	item, err := e.Resolve("el precio es de 42.378 COP para 5 unidades")
	require.NoError(t, err)

	assert.Equal(t, int64(42378), item.UnitPrice)
	assert.Equal(t, int64(5), item.Quantity)
	assert.Equal(t, int64(211890), item.LineTotal)
	assert.Equal(t, int64(0), item.Tax)
}

func TestResolveSinglePriceDefaultsQuantityToOne(t *testing.T) {
	e := New(DefaultConfig())

	item, err := e.Resolve("cada poste vale 28.000 pesos")
	require.NoError(t, err)

	assert.Equal(t, int64(28000), item.UnitPrice)
	assert.Equal(t, int64(1), item.Quantity)
	assert.Equal(t, int64(28000), item.LineTotal)
}

func TestResolveAdoptsStatedTotalWithinTolerance(t *testing.T) {
	e := New(DefaultConfig())

	// 5 * 42378 = 211890; the stated total 211000 is within ±10% and wins
	// over a fresh recomputation.
	item, err := e.Resolve("cada alfarda vale 42378 pesos, para 5 unidades, total aproximado 211000")
	require.NoError(t, err)

	assert.Equal(t, int64(42378), item.UnitPrice)
	assert.Equal(t, int64(5), item.Quantity)
	assert.Equal(t, int64(211000), item.LineTotal)
}

func TestResolveBackComputesUnitPriceBeyondTolerance(t *testing.T) {
	e := New(DefaultConfig())

	// naive total 2*42378 = 84756; 120000 exceeds the tolerance, so it is
	// the authoritative total and the unit price is back-computed.
	item, err := e.Resolve("2 alfardas, precio 42378, total 120000")
	require.NoError(t, err)

	assert.Equal(t, int64(2), item.Quantity)
	assert.Equal(t, int64(120000), item.LineTotal)
	assert.Equal(t, int64(60000), item.UnitPrice)
}

func TestResolveLargerCandidateWithoutQuantity(t *testing.T) {
	e := New(DefaultConfig())

	item, err := e.Resolve("alfarda tratada 12x300, precio unitario 42378, total 211890")
	require.NoError(t, err)

	assert.Equal(t, "ALF-12X300", item.Reference)
	assert.Equal(t, int64(1), item.Quantity, "dimension code must not read as a quantity")
	assert.Equal(t, int64(211890), item.LineTotal)
	assert.Equal(t, int64(211890), item.UnitPrice)
}

func TestResolveIntegerDivisionRemainderIsAcceptedLoss(t *testing.T) {
	e := New(DefaultConfig())

	// 100000 / 3 = 33333; 3*33333 != 100000 and the total stands.
	item, err := e.Resolve("3 postes, precio 25000, total 100000")
	require.NoError(t, err)

	assert.Equal(t, int64(33333), item.UnitPrice)
	assert.Equal(t, int64(100000), item.LineTotal)
}

func TestResolveNoPriceFound(t *testing.T) {
	e := New(DefaultConfig())

	item, err := e.Resolve("hola, ¿qué productos manejan?")
	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrNoPriceFound)
}

func TestResolveIdentifiesProduct(t *testing.T) {
	e := New(DefaultConfig())

	item, err := e.Resolve("una mesa de comedor cuesta 350.000 pesos")
	require.NoError(t, err)
	assert.Equal(t, "MES-STD", item.Reference)
	assert.Equal(t, "Mesa de madera", item.Description)
}
