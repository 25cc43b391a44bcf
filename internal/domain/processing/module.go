package processing

import "github.com/andrescamacho/redcycle-go/internal/domain/material"

// ModuleID identifies a processing facility in the habitat.
type ModuleID string

func (m ModuleID) String() string { return string(m) }

// Habitat modules
const (
	Habitat ModuleID = "habitat"
	Recycle ModuleID = "recycle"
	Foam    ModuleID = "foam"
	Party   ModuleID = "party"
	Lab     ModuleID = "lab"
	Storage ModuleID = "storage"
)

const (
	// DefaultEfficiency applies to modules missing from the catalog.
	DefaultEfficiency = 0.70

	// DefaultProduct is credited by modules missing from the catalog.
	DefaultProduct = "Recovered Material"

	// SecondaryProduct is credited by the salvage pass over primary waste.
	SecondaryProduct = "Secondary Recovered"
)

// Module describes one processing facility.
type Module struct {
	ID             ModuleID
	Title          string
	Description    string
	BaseEfficiency float64
	Product        string
	Efficient      []material.Key // materials the module handles best
}

// modules is in grid order.
var modules = []Module{
	{
		ID:             Habitat,
		Title:          "Habitat Workshop",
		Description:    "Interior outfitting, insulation, furniture from foam & fabrics",
		BaseEfficiency: 0.78,
		Product:        "Insulation Batting",
		Efficient:      []material.Key{material.FoamPack, material.Textiles},
	},
	{
		ID:             Recycle,
		Title:          "Recycling Plant",
		Description:    "Aluminum & composite rework, shredding, feedstock recovery",
		BaseEfficiency: 0.90,
		Product:        "Reworked Frames",
		Efficient:      []material.Key{material.AluminumStruts, material.Polycomposite},
	},
	{
		ID:             Foam,
		Title:          "Foam Lab",
		Description:    "Densify foam into insulation blocks or packing material",
		BaseEfficiency: 0.92,
		Product:        "Insulation Blocks",
		Efficient:      []material.Key{material.FoamPack},
	},
	{
		ID:             Party,
		Title:          "Party Hall / Maker Space",
		Description:    "Cosmic celebrations: decorate using recycled bits",
		BaseEfficiency: 0.85,
		Product:        "Decor Elements",
		Efficient:      []material.Key{material.Textiles, material.BubbleWrap, material.PlasticPouches},
	},
	{
		ID:             Lab,
		Title:          "Science Lab",
		Description:    "Repurpose carbon residue and filter media into tooling & filament",
		BaseEfficiency: 0.82,
		Product:        "Carbon Filament",
		Efficient:      []material.Key{material.CarbonResidue, material.PlasticPouches},
	},
	{
		ID:             Storage,
		Title:          "Storage & Logistics",
		Description:    "Temporary staging and packaging, makes containers from pouches",
		BaseEfficiency: 0.90,
		Product:        "Storage Containers",
		Efficient:      []material.Key{material.PlasticPouches, material.BubbleWrap},
	},
}

// Modules returns every known module in grid order.
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// LookupModule returns the module descriptor for id.
func LookupModule(id ModuleID) (Module, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// IsKnownModule reports whether id names a catalog module.
func IsKnownModule(id ModuleID) bool {
	_, ok := LookupModule(id)
	return ok
}

// ModuleIDs returns every known module id in grid order.
func ModuleIDs() []ModuleID {
	ids := make([]ModuleID, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	return ids
}

// BaseEfficiency returns the baseline conversion efficiency of a module.
func BaseEfficiency(id ModuleID) float64 {
	if m, ok := LookupModule(id); ok {
		return m.BaseEfficiency
	}
	return DefaultEfficiency
}

// ProductFor returns the product a module manufactures.
func ProductFor(id ModuleID) string {
	if m, ok := LookupModule(id); ok {
		return m.Product
	}
	return DefaultProduct
}

// IsEfficientFor reports whether key is one of the module's preferred inputs.
func (m Module) IsEfficientFor(key material.Key) bool {
	for _, k := range m.Efficient {
		if k == key {
			return true
		}
	}
	return false
}

// OutsideSpecialty returns the staged materials a catalog module does not
// list as preferred, in staging order and without repeats. Modules missing
// from the catalog have no specialty and return nil.
func OutsideSpecialty(id ModuleID, staged []StagedInput) []material.Key {
	m, ok := LookupModule(id)
	if !ok {
		return nil
	}
	var out []material.Key
	seen := make(map[material.Key]bool)
	for _, in := range staged {
		if seen[in.Key] || m.IsEfficientFor(in.Key) {
			continue
		}
		seen[in.Key] = true
		out = append(out, in.Key)
	}
	return out
}
