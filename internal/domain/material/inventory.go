package material

import (
	"sort"

	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

// Stock is the quantity of one material held in primary inventory.
type Stock struct {
	Key  Key
	Name string
	Kg   float64
}

// Inventory holds the primary waste-material stocks.
//
// Invariants:
// - Every quantity is >= 0
// - Stocks are never removed; a depleted stock stays at zero
type Inventory struct {
	stocks map[Key]*Stock
	order  []Key
}

// NewInventory creates an inventory stocked with the catalog defaults.
func NewInventory() *Inventory {
	inv := &Inventory{}
	inv.Restock()
	return inv
}

// Restock resets every stock to its catalog default and drops materials
// that are not in the catalog.
func (i *Inventory) Restock() {
	i.stocks = make(map[Key]*Stock, len(catalog))
	i.order = make([]Key, 0, len(catalog))
	for _, entry := range catalog {
		i.stocks[entry.Key] = &Stock{Key: entry.Key, Name: entry.Name, Kg: entry.DefaultKg}
		i.order = append(i.order, entry.Key)
	}
}

// Consume removes kg from a stock, floored at zero. Unknown keys and
// non-finite amounts are ignored.
func (i *Inventory) Consume(key Key, kg float64) {
	stock, ok := i.stocks[key]
	if !ok || !utils.IsFinite(kg) {
		return
	}
	stock.Kg = utils.SaturatingSub(stock.Kg, kg)
}

// SetQuantity sets a stock to max(0, kg). An unknown key creates a new stock
// named after the key. Non-finite amounts leave the inventory unchanged.
func (i *Inventory) SetQuantity(key Key, kg float64) {
	if !utils.IsFinite(kg) {
		return
	}
	stock, ok := i.stocks[key]
	if !ok {
		i.put(key, key.String(), kg)
		return
	}
	stock.Kg = utils.NonNegative(kg)
}

// Put replaces a stock's name and quantity, creating it when absent.
// Used when restoring a persisted snapshot.
func (i *Inventory) Put(key Key, name string, kg float64) {
	if name == "" {
		if entry, ok := LookupCatalog(key); ok {
			name = entry.Name
		} else {
			name = key.String()
		}
	}
	i.put(key, name, kg)
}

func (i *Inventory) put(key Key, name string, kg float64) {
	if !utils.IsFinite(kg) {
		kg = 0
	}
	if stock, ok := i.stocks[key]; ok {
		stock.Name = name
		stock.Kg = utils.NonNegative(kg)
		return
	}
	i.stocks[key] = &Stock{Key: key, Name: name, Kg: utils.NonNegative(kg)}
	i.order = append(i.order, key)
}

// Has reports whether the inventory tracks key.
func (i *Inventory) Has(key Key) bool {
	_, ok := i.stocks[key]
	return ok
}

// Get returns a copy of the stock for key.
func (i *Inventory) Get(key Key) (Stock, bool) {
	stock, ok := i.stocks[key]
	if !ok {
		return Stock{}, false
	}
	return *stock, true
}

// Quantity returns the kilograms held for key (0 if unknown).
func (i *Inventory) Quantity(key Key) float64 {
	if stock, ok := i.stocks[key]; ok {
		return stock.Kg
	}
	return 0
}

// Stocks returns copies of all stocks: catalog materials in display order,
// then any other materials sorted by key.
func (i *Inventory) Stocks() []Stock {
	extras := make([]Key, 0)
	out := make([]Stock, 0, len(i.order))
	for _, key := range i.order {
		if _, ok := LookupCatalog(key); !ok {
			extras = append(extras, key)
			continue
		}
		out = append(out, *i.stocks[key])
	}
	sort.Slice(extras, func(a, b int) bool { return extras[a] < extras[b] })
	for _, key := range extras {
		out = append(out, *i.stocks[key])
	}
	return out
}

// TotalKg returns the sum of every stock.
func (i *Inventory) TotalKg() float64 {
	total := 0.0
	for _, stock := range i.stocks {
		total += stock.Kg
	}
	return total
}
