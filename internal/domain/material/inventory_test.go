package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventory_CatalogDefaults(t *testing.T) {
	inv := NewInventory()

	stocks := inv.Stocks()
	require.Len(t, stocks, len(Catalog()))
	assert.Equal(t, AluminumStruts, stocks[0].Key)
	assert.Equal(t, CarbonResidue, stocks[len(stocks)-1].Key)
	assert.Equal(t, 180.0, inv.Quantity(FoamPack))
	assert.Equal(t, 970.0, inv.TotalKg())
}

func TestInventory_ConsumeClampsAtZero(t *testing.T) {
	amounts := []float64{0, 1, 9.5, 10, 11, 1000}

	for _, amount := range amounts {
		inv := NewInventory()
		inv.Consume(NitrileGloves, amount)
		assert.GreaterOrEqual(t, inv.Quantity(NitrileGloves), 0.0, "consume %v", amount)
	}

	inv := NewInventory()
	inv.Consume(NitrileGloves, 25)
	assert.Equal(t, 0.0, inv.Quantity(NitrileGloves))
	assert.True(t, inv.Has(NitrileGloves), "depleted stock must stay tracked")
}

func TestInventory_ConsumeUnknownKeyIsNoop(t *testing.T) {
	inv := NewInventory()
	before := inv.TotalKg()

	inv.Consume(Key("regolith"), 10)

	assert.Equal(t, before, inv.TotalKg())
	assert.False(t, inv.Has(Key("regolith")))
}

func TestInventory_SetQuantity(t *testing.T) {
	inv := NewInventory()

	inv.SetQuantity(FoamPack, 42)
	assert.Equal(t, 42.0, inv.Quantity(FoamPack))

	inv.SetQuantity(FoamPack, -5)
	assert.Equal(t, 0.0, inv.Quantity(FoamPack))

	inv.SetQuantity(Key("regolith"), 12)
	stock, ok := inv.Get(Key("regolith"))
	require.True(t, ok)
	assert.Equal(t, "regolith", stock.Name)
	assert.Equal(t, 12.0, stock.Kg)
	assert.Equal(t, Key("regolith"), inv.Stocks()[len(inv.Stocks())-1].Key)
}

func TestInventory_RestockDropsExtras(t *testing.T) {
	inv := NewInventory()
	inv.Consume(Textiles, 100)
	inv.Put(Key("regolith"), "Regolith fines", 3)

	inv.Restock()

	assert.Equal(t, 160.0, inv.Quantity(Textiles))
	assert.False(t, inv.Has(Key("regolith")))
}

func TestInventory_PutFillsCatalogName(t *testing.T) {
	inv := NewInventory()

	inv.Put(BubbleWrap, "", 7)

	stock, _ := inv.Get(BubbleWrap)
	assert.Equal(t, "Bubble wrap", stock.Name)
	assert.Equal(t, 7.0, stock.Kg)
}

func TestInventory_NonFiniteAmountsAreIgnored(t *testing.T) {
	inv := NewInventory()

	inv.SetQuantity(Textiles, math.NaN())
	inv.SetQuantity(Textiles, math.Inf(1))
	inv.Consume(Textiles, math.NaN())
	inv.SetQuantity("ice_blocks", math.Inf(-1))

	assert.Equal(t, 160.0, inv.Quantity(Textiles))
	assert.False(t, inv.Has("ice_blocks"))

	inv.Put("ice_blocks", "", math.NaN())
	assert.Equal(t, 0.0, inv.Quantity("ice_blocks"))
}
