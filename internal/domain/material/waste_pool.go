package material

import (
	"sort"

	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

// PoolEntry is the unrecovered mass of one material waiting for reuse.
type PoolEntry struct {
	Key Key
	Kg  float64
}

// WastePool is the secondary reservoir of material left unrecovered by
// earlier processing. Processing draws from the pool before inventory.
//
// Invariants:
// - Every entry is > 0; an entry that reaches zero is removed
type WastePool struct {
	entries map[Key]float64
}

// NewWastePool creates an empty waste pool.
func NewWastePool() *WastePool {
	return &WastePool{entries: make(map[Key]float64)}
}

// Add returns kg of a material to the pool. Non-positive and non-finite
// amounts are ignored.
func (p *WastePool) Add(key Key, kg float64) {
	if kg <= 0 || !utils.IsFinite(kg) {
		return
	}
	p.entries[key] += kg
}

// Consume draws up to kg of a material and returns the amount actually
// taken. Callers must use the returned amount, not the requested one.
func (p *WastePool) Consume(key Key, kg float64) float64 {
	if kg <= 0 || !utils.IsFinite(kg) {
		return 0
	}
	available := p.entries[key]
	if available <= 0 {
		return 0
	}
	take := kg
	if available < take {
		take = available
	}
	if take == available {
		delete(p.entries, key)
	} else {
		p.entries[key] = available - take
	}
	return take
}

// Available returns the kilograms pooled for key.
func (p *WastePool) Available(key Key) float64 {
	return p.entries[key]
}

// Entries returns the pool contents sorted by key.
func (p *WastePool) Entries() []PoolEntry {
	out := make([]PoolEntry, 0, len(p.entries))
	for key, kg := range p.entries {
		out = append(out, PoolEntry{Key: key, Kg: kg})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out
}

// Total returns the sum of all pooled material.
func (p *WastePool) Total() float64 {
	total := 0.0
	for _, kg := range p.entries {
		total += kg
	}
	return total
}

// Clear empties the pool.
func (p *WastePool) Clear() {
	p.entries = make(map[Key]float64)
}
