package product

import (
	"regexp"
	"sort"
	"strings"

	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

// ID is the stable ledger key of a product, derived from its display name.
type ID string

var whitespace = regexp.MustCompile(`\s+`)

// IDFromName collapses each whitespace run in name to a single underscore.
func IDFromName(name string) ID {
	return ID(whitespace.ReplaceAllString(strings.TrimSpace(name), "_"))
}

// Product is the cumulative output credited under one name.
type Product struct {
	ID   ID
	Name string
	Kg   float64
	Qty  int
}

// Ledger accumulates manufactured products.
type Ledger struct {
	products map[ID]*Product
}

// NewLedger creates an empty product ledger.
func NewLedger() *Ledger {
	return &Ledger{products: make(map[ID]*Product)}
}

// UnitsFor returns the unit count credited for kg of output: one unit per
// five kilograms, rounded, never fewer than one.
func UnitsFor(kg float64) int {
	units := int(utils.RoundHalfUp(kg / 5))
	if units < 1 {
		return 1
	}
	return units
}

// Credit adds kg of a named product, creating the entry on first credit.
func (l *Ledger) Credit(name string, kg float64) Product {
	id := IDFromName(name)
	p, ok := l.products[id]
	if !ok {
		p = &Product{ID: id, Name: name}
		l.products[id] = p
	}
	p.Kg += kg
	p.Qty += UnitsFor(kg)
	return *p
}

// Put replaces a ledger entry. Used when restoring a persisted snapshot.
func (l *Ledger) Put(p Product) {
	if p.ID == "" {
		p.ID = IDFromName(p.Name)
	}
	p.Kg = utils.NonNegative(p.Kg)
	if p.Qty < 0 {
		p.Qty = 0
	}
	l.products[p.ID] = &p
}

// Get returns the product stored under id.
func (l *Ledger) Get(id ID) (Product, bool) {
	p, ok := l.products[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// Products returns every product sorted by ID.
func (l *Ledger) Products() []Product {
	out := make([]Product, 0, len(l.products))
	for _, p := range l.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// TotalKg returns the mass of every product on the shelf.
func (l *Ledger) TotalKg() float64 {
	total := 0.0
	for _, p := range l.products {
		total += p.Kg
	}
	return total
}

// Clear removes every product.
func (l *Ledger) Clear() {
	l.products = make(map[ID]*Product)
}
