package cli

import (
	"github.com/andrescamacho/redcycle-go/internal/application/session/commands"
	"github.com/andrescamacho/redcycle-go/internal/application/session/queries"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/product"
)

// Views are the JSON/YAML shapes of command output

type stockView struct {
	Key  string  `json:"key" yaml:"key"`
	Name string  `json:"name" yaml:"name"`
	Kg   float64 `json:"kg" yaml:"kg"`
}

type poolView struct {
	Key string  `json:"key" yaml:"key"`
	Kg  float64 `json:"kg" yaml:"kg"`
}

type productView struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	Kg   float64 `json:"kg" yaml:"kg"`
	Qty  int     `json:"qty" yaml:"qty"`
}

type resourcesView struct {
	Energy    float64 `json:"energy" yaml:"energy"`
	Water     float64 `json:"water" yaml:"water"`
	CrewHours float64 `json:"crewHours" yaml:"crewHours"`
}

type crewView struct {
	Crew   string `json:"crew" yaml:"crew"`
	Module string `json:"module,omitempty" yaml:"module,omitempty"`
}

type totalsView struct {
	Recovered float64 `json:"recovered" yaml:"recovered"`
	Wasted    float64 `json:"wasted" yaml:"wasted"`
}

type stateView struct {
	MissionDay  int           `json:"missionDay" yaml:"missionDay"`
	Resources   resourcesView `json:"resources" yaml:"resources"`
	Inventory   []stockView   `json:"inventory" yaml:"inventory"`
	InventoryKg float64       `json:"inventoryKg" yaml:"inventoryKg"`
	WastePool   []poolView    `json:"wastePool" yaml:"wastePool"`
	WastePoolKg float64       `json:"wastePoolKg" yaml:"wastePoolKg"`
	Products    []productView `json:"products" yaml:"products"`
	ProductKg   float64       `json:"productKg" yaml:"productKg"`
	Crew        []crewView    `json:"crew" yaml:"crew"`
	Totals      totalsView    `json:"totals" yaml:"totals"`
}

type batchView struct {
	BatchID     string        `json:"batchId" yaml:"batchId"`
	Module      string        `json:"module" yaml:"module"`
	Mode        string        `json:"mode" yaml:"mode"`
	Optimized   bool          `json:"optimized" yaml:"optimized"`
	TotalIn     float64       `json:"totalIn" yaml:"totalIn"`
	Efficiency  float64       `json:"efficiency" yaml:"efficiency"`
	Product     string        `json:"product" yaml:"product"`
	PrimaryKg   float64       `json:"primaryKg" yaml:"primaryKg"`
	SecondaryKg float64       `json:"secondaryKg" yaml:"secondaryKg"`
	RecoveredKg float64       `json:"recoveredKg" yaml:"recoveredKg"`
	WastedKg    float64       `json:"wastedKg" yaml:"wastedKg"`
	Returned    []poolView    `json:"returned" yaml:"returned"`
	Outputs     []string      `json:"outputs" yaml:"outputs"`
	Cost        resourcesView `json:"cost" yaml:"cost"`
	CrewCount   int           `json:"crewCount" yaml:"crewCount"`
	Resources   resourcesView `json:"resources" yaml:"resources"`

	OutsideSpecialty []string `json:"outsideSpecialty,omitempty" yaml:"outsideSpecialty,omitempty"`
}

type estimateView struct {
	Module     string        `json:"module" yaml:"module"`
	TotalKg    float64       `json:"totalKg" yaml:"totalKg"`
	Cost       resourcesView `json:"cost" yaml:"cost"`
	CrewCount  int           `json:"crewCount" yaml:"crewCount"`
	Efficiency float64       `json:"efficiency" yaml:"efficiency"`
	Affordable bool          `json:"affordable" yaml:"affordable"`
	Shortfall  string        `json:"shortfall,omitempty" yaml:"shortfall,omitempty"`
	Preferred  []string      `json:"preferred" yaml:"preferred"`
}

type moduleView struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description" yaml:"description"`
	BaseEfficiency float64  `json:"baseEfficiency" yaml:"baseEfficiency"`
	Product        string   `json:"product" yaml:"product"`
	Preferred      []string `json:"preferred" yaml:"preferred"`
	CrewCount      int      `json:"crewCount" yaml:"crewCount"`
}

type stageView struct {
	Material  string  `json:"material" yaml:"material"`
	Name      string  `json:"name" yaml:"name"`
	Available float64 `json:"available" yaml:"available"`
	PooledKg  float64 `json:"pooledKg" yaml:"pooledKg"`
	StageKg   float64 `json:"stageKg" yaml:"stageKg"`
}

type suggestionView struct {
	Material string  `json:"material,omitempty" yaml:"material,omitempty"`
	Kg       float64 `json:"kg,omitempty" yaml:"kg,omitempty"`
	Module   string  `json:"module,omitempty" yaml:"module,omitempty"`
	Message  string  `json:"message" yaml:"message"`
}

func toStockViews(stocks []material.Stock) []stockView {
	views := make([]stockView, 0, len(stocks))
	for _, s := range stocks {
		views = append(views, stockView{Key: s.Key.String(), Name: s.Name, Kg: s.Kg})
	}
	return views
}

func toPoolViews(entries []material.PoolEntry) []poolView {
	views := make([]poolView, 0, len(entries))
	for _, e := range entries {
		views = append(views, poolView{Key: e.Key.String(), Kg: e.Kg})
	}
	return views
}

func toProductViews(products []product.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{ID: string(p.ID), Name: p.Name, Kg: p.Kg, Qty: p.Qty})
	}
	return views
}

func toCrewViews(assignments []mission.Assignment) []crewView {
	views := make([]crewView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, crewView{Crew: string(a.Crew), Module: a.Module.String()})
	}
	return views
}

func toResourcesView(r mission.Resources) resourcesView {
	return resourcesView{Energy: r.Energy, Water: r.Water, CrewHours: r.CrewHours}
}

func toCostView(c processing.Cost) resourcesView {
	return resourcesView{Energy: c.Energy, Water: c.Water, CrewHours: c.CrewHours}
}

func toStateView(state *queries.GetStateResponse) stateView {
	return stateView{
		MissionDay:  state.MissionDay,
		Resources:   toResourcesView(state.Resources),
		Inventory:   toStockViews(state.Inventory),
		InventoryKg: state.InventoryKg,
		WastePool:   toPoolViews(state.WastePool),
		WastePoolKg: state.WastePoolKg,
		Products:    toProductViews(state.Products),
		ProductKg:   state.ProductKg,
		Crew:        toCrewViews(state.Crew),
		Totals: totalsView{
			Recovered: state.Totals.RecoveredTotal,
			Wasted:    state.Totals.WastedTotal,
		},
	}
}

func toBatchView(resp *commands.ProcessModuleResponse) batchView {
	r := resp.Result
	return batchView{
		BatchID:     r.BatchID,
		Module:      r.Module.String(),
		Mode:        string(r.Mode),
		Optimized:   r.Optimized,
		TotalIn:     r.TotalIn,
		Efficiency:  r.Efficiency,
		Product:     r.Product,
		PrimaryKg:   r.PrimaryKg,
		SecondaryKg: r.SecondaryKg,
		RecoveredKg: r.RecoveredKg,
		WastedKg:    r.WastedKg,
		Returned:    toPoolViews(r.Returned),
		Outputs:     r.Outputs,
		Cost:        toCostView(resp.Cost),
		CrewCount:   resp.CrewCount,
		Resources:   toResourcesView(resp.Resources),

		OutsideSpecialty: keyStrings(resp.OutsideSpecialty),
	}
}

func keyStrings(keys []material.Key) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
