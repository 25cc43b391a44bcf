package material

// Key identifies a waste material across the inventory, the waste pool and
// staged processing inputs.
type Key string

func (k Key) String() string { return string(k) }

// Catalog keys
const (
	AluminumStruts Key = "aluminum_struts"
	Polycomposite  Key = "polycomposite"
	FoamPack       Key = "foam_pack"
	BubbleWrap     Key = "bubble_wrap"
	Textiles       Key = "textiles"
	EVAWaste       Key = "EVA_waste"
	PlasticPouches Key = "plastic_pouches"
	NitrileGloves  Key = "nitrile_gloves"
	CarbonResidue  Key = "carbon_residue"
)

// CatalogEntry describes one material the habitat starts the mission with.
type CatalogEntry struct {
	Key       Key
	Name      string
	DefaultKg float64
}

// catalog is in display order.
var catalog = []CatalogEntry{
	{Key: AluminumStruts, Name: "Aluminum struts", DefaultKg: 120},
	{Key: Polycomposite, Name: "Carbon-fiber composites", DefaultKg: 220},
	{Key: FoamPack, Name: "Packaging foam", DefaultKg: 180},
	{Key: BubbleWrap, Name: "Bubble wrap", DefaultKg: 60},
	{Key: Textiles, Name: "Fabrics & clothing", DefaultKg: 160},
	{Key: EVAWaste, Name: "EVA fabrics & liners", DefaultKg: 80},
	{Key: PlasticPouches, Name: "Food pouches", DefaultKg: 90},
	{Key: NitrileGloves, Name: "Small plastics & gloves", DefaultKg: 10},
	{Key: CarbonResidue, Name: "Carbon residue", DefaultKg: 50},
}

// Catalog returns a copy of the starting material catalog in display order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCatalog returns the catalog entry for key.
func LookupCatalog(key Key) (CatalogEntry, bool) {
	for _, entry := range catalog {
		if entry.Key == key {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// CatalogKeys returns every catalog key in display order.
func CatalogKeys() []Key {
	keys := make([]Key, len(catalog))
	for i, entry := range catalog {
		keys[i] = entry.Key
	}
	return keys
}
