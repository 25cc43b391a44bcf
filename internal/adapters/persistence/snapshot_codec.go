package persistence

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/product"
	"github.com/andrescamacho/redcycle-go/internal/domain/session"
)

// Storage keys, one per session field
const (
	KeyInventory = "redcycle_inv"
	KeyWastePool = "redcycle_pool"
	KeyProducts  = "redcycle_prod"
	KeyResources = "redcycle_resources"
	KeyDay       = "redcycle_day"
	KeyCrew      = "redcycle_crew"
	KeyRecovered = "redcycle_recovered"
	KeyWasted    = "redcycle_wasted"
)

// SessionKeys lists every storage key in write order
var SessionKeys = []string{
	KeyInventory, KeyWastePool, KeyProducts, KeyResources,
	KeyDay, KeyCrew, KeyRecovered, KeyWasted,
}

type stockEntry struct {
	Name string  `json:"name"`
	Kg   float64 `json:"kg"`
}

type productEntry struct {
	Name string  `json:"name"`
	Kg   float64 `json:"kg"`
	Qty  int     `json:"qty"`
}

type resourcesEntry struct {
	Energy    float64 `json:"energy"`
	Water     float64 `json:"water"`
	CrewHours float64 `json:"crewHours"`
}

var entrySchemas = map[string]*jsonschema.Schema{
	KeyInventory: jsonschema.MustCompileString("redcycle_inv.json", `{
		"type": "object",
		"additionalProperties": {
			"type": "object",
			"required": ["kg"],
			"properties": {
				"name": {"type": "string"},
				"kg": {"type": "number"}
			}
		}
	}`),
	KeyWastePool: jsonschema.MustCompileString("redcycle_pool.json", `{
		"type": "object",
		"additionalProperties": {"type": "number"}
	}`),
	KeyProducts: jsonschema.MustCompileString("redcycle_prod.json", `{
		"type": "object",
		"additionalProperties": {
			"type": "object",
			"required": ["name", "kg", "qty"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"kg": {"type": "number"},
				"qty": {"type": "integer"}
			}
		}
	}`),
	KeyResources: jsonschema.MustCompileString("redcycle_resources.json", `{
		"type": "object",
		"required": ["energy", "water", "crewHours"],
		"properties": {
			"energy": {"type": "number"},
			"water": {"type": "number"},
			"crewHours": {"type": "number"}
		}
	}`),
	KeyCrew: jsonschema.MustCompileString("redcycle_crew.json", `{
		"type": "object",
		"additionalProperties": {"type": ["string", "null"]}
	}`),
}

// EntryError describes a stored field that could not be read
type EntryError struct {
	Key    string
	Reason error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("session entry %s unreadable: %v", e.Key, e.Reason)
}

func (e *EntryError) Unwrap() error {
	return e.Reason
}

// EncodeSnapshot renders every field of a snapshot as storage text.
// Nil fields are skipped.
func EncodeSnapshot(snap *session.Snapshot) (map[string]string, error) {
	entries := make(map[string]string, len(SessionKeys))
	if snap == nil {
		return entries, nil
	}

	put := func(key string, v interface{}) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = string(data)
		return nil
	}

	if snap.Inventory != nil {
		inv := make(map[string]stockEntry, len(snap.Inventory))
		for key, rec := range snap.Inventory {
			inv[string(key)] = stockEntry{Name: rec.Name, Kg: rec.Kg}
		}
		if err := put(KeyInventory, inv); err != nil {
			return nil, err
		}
	}
	if snap.WastePool != nil {
		pool := make(map[string]float64, len(snap.WastePool))
		for key, kg := range snap.WastePool {
			pool[string(key)] = kg
		}
		if err := put(KeyWastePool, pool); err != nil {
			return nil, err
		}
	}
	if snap.Products != nil {
		prods := make(map[string]productEntry, len(snap.Products))
		for id, rec := range snap.Products {
			prods[string(id)] = productEntry{Name: rec.Name, Kg: rec.Kg, Qty: rec.Qty}
		}
		if err := put(KeyProducts, prods); err != nil {
			return nil, err
		}
	}
	if snap.Resources != nil {
		r := snap.Resources
		if err := put(KeyResources, resourcesEntry{Energy: r.Energy, Water: r.Water, CrewHours: r.CrewHours}); err != nil {
			return nil, err
		}
	}
	if snap.MissionDay != nil {
		entries[KeyDay] = strconv.Itoa(*snap.MissionDay)
	}
	if snap.Crew != nil {
		crew := make(map[string]*string, len(snap.Crew))
		for id, module := range snap.Crew {
			if module == "" {
				crew[string(id)] = nil
				continue
			}
			m := string(module)
			crew[string(id)] = &m
		}
		if err := put(KeyCrew, crew); err != nil {
			return nil, err
		}
	}
	if snap.RecoveredTotal != nil {
		entries[KeyRecovered] = strconv.FormatFloat(*snap.RecoveredTotal, 'f', -1, 64)
	}
	if snap.WastedTotal != nil {
		entries[KeyWasted] = strconv.FormatFloat(*snap.WastedTotal, 'f', -1, 64)
	}

	return entries, nil
}

// DecodeSnapshot reads storage text back into a snapshot. A field that is
// missing stays nil; a field that fails validation also stays nil and is
// reported in the returned slice. Decoding never fails as a whole.
func DecodeSnapshot(entries map[string]string) (*session.Snapshot, []error) {
	snap := &session.Snapshot{}
	var issues []error

	fail := func(key string, err error) {
		issues = append(issues, &EntryError{Key: key, Reason: err})
	}

	if raw, ok := entries[KeyInventory]; ok {
		var inv map[string]stockEntry
		if err := decodeEntry(KeyInventory, raw, &inv); err != nil {
			fail(KeyInventory, err)
		} else {
			snap.Inventory = make(map[material.Key]session.StockRecord, len(inv))
			for key, e := range inv {
				snap.Inventory[material.Key(key)] = session.StockRecord{Name: e.Name, Kg: e.Kg}
			}
		}
	}

	if raw, ok := entries[KeyWastePool]; ok {
		var pool map[string]float64
		if err := decodeEntry(KeyWastePool, raw, &pool); err != nil {
			fail(KeyWastePool, err)
		} else {
			snap.WastePool = make(map[material.Key]float64, len(pool))
			for key, kg := range pool {
				snap.WastePool[material.Key(key)] = kg
			}
		}
	}

	if raw, ok := entries[KeyProducts]; ok {
		var prods map[string]productEntry
		if err := decodeEntry(KeyProducts, raw, &prods); err != nil {
			fail(KeyProducts, err)
		} else {
			snap.Products = make(map[product.ID]session.ProductRecord, len(prods))
			for id, e := range prods {
				snap.Products[product.ID(id)] = session.ProductRecord{Name: e.Name, Kg: e.Kg, Qty: e.Qty}
			}
		}
	}

	if raw, ok := entries[KeyResources]; ok {
		var r resourcesEntry
		if err := decodeEntry(KeyResources, raw, &r); err != nil {
			fail(KeyResources, err)
		} else {
			snap.Resources = &mission.Resources{Energy: r.Energy, Water: r.Water, CrewHours: r.CrewHours}
		}
	}

	if raw, ok := entries[KeyDay]; ok {
		day, err := strconv.Atoi(raw)
		if err != nil {
			fail(KeyDay, err)
		} else {
			snap.MissionDay = &day
		}
	}

	if raw, ok := entries[KeyCrew]; ok {
		var crew map[string]*string
		if err := decodeEntry(KeyCrew, raw, &crew); err != nil {
			fail(KeyCrew, err)
		} else {
			snap.Crew = make(map[mission.CrewID]processing.ModuleID, len(crew))
			for id, module := range crew {
				var m processing.ModuleID
				if module != nil {
					m = processing.ModuleID(*module)
				}
				snap.Crew[mission.CrewID(id)] = m
			}
		}
	}

	if raw, ok := entries[KeyRecovered]; ok {
		v, err := parseTotal(raw)
		if err != nil {
			fail(KeyRecovered, err)
		} else {
			snap.RecoveredTotal = &v
		}
	}

	if raw, ok := entries[KeyWasted]; ok {
		v, err := parseTotal(raw)
		if err != nil {
			fail(KeyWasted, err)
		} else {
			snap.WastedTotal = &v
		}
	}

	return snap, issues
}

// decodeEntry validates raw JSON against the key's schema, then decodes it
func decodeEntry(key, raw string, out interface{}) error {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return err
	}
	if schema, ok := entrySchemas[key]; ok {
		if err := schema.Validate(doc); err != nil {
			return err
		}
	}
	return json.Unmarshal([]byte(raw), out)
}

func parseTotal(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	return v, nil
}
