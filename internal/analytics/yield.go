package analytics

import (
	"math"
	"strings"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

// Rate is the reference yield and price for one crop
type Rate struct {
	YieldPerHectare float64 `yaml:"yield_per_hectare"`
	Unit            string  `yaml:"unit"`
	PricePerUnit    float64 `yaml:"price_per_unit"`
}

// DefaultRateKey names the entry used for crops missing from the table
const DefaultRateKey = "default"

// RateTable maps lowercase crop names to reference rates. The zero value is
// not usable; build one with DefaultRateTable or With.
type RateTable struct {
	rates lookup[Rate]
}

var builtinRates = map[string]Rate{
	"rice":      {YieldPerHectare: 3.5, Unit: "tons", PricePerUnit: 25000},
	"wheat":     {YieldPerHectare: 3.2, Unit: "tons", PricePerUnit: 22750},
	"maize":     {YieldPerHectare: 3.0, Unit: "tons", PricePerUnit: 20900},
	"sugarcane": {YieldPerHectare: 70, Unit: "tons", PricePerUnit: 3150},
	"coconut":   {YieldPerHectare: 80, Unit: "nuts/tree", PricePerUnit: 15},
	"pepper":    {YieldPerHectare: 0.4, Unit: "tons", PricePerUnit: 500000},
	"cardamom":  {YieldPerHectare: 0.2, Unit: "tons", PricePerUnit: 1500000},
	"rubber":    {YieldPerHectare: 1.6, Unit: "tons", PricePerUnit: 170000},
	"banana":    {YieldPerHectare: 30, Unit: "tons", PricePerUnit: 15000},
	"tea":       {YieldPerHectare: 2.0, Unit: "tons", PricePerUnit: 200000},
	"coffee":    {YieldPerHectare: 0.8, Unit: "tons", PricePerUnit: 300000},
	"cashew":    {YieldPerHectare: 0.8, Unit: "tons", PricePerUnit: 100000},
	"ginger":    {YieldPerHectare: 15, Unit: "tons", PricePerUnit: 40000},
	"turmeric":  {YieldPerHectare: 6, Unit: "tons", PricePerUnit: 80000},
}

var fallbackRate = Rate{YieldPerHectare: 2, Unit: "tons", PricePerUnit: 20000}

// DefaultRateTable returns the built-in reference rates
func DefaultRateTable() RateTable {
	return RateTable{rates: newLookup(fallbackRate, builtinRates)}
}

// With returns a copy of t with overrides applied. An override keyed
// "default" replaces the fallback rate.
func (t RateTable) With(overrides map[string]Rate) RateTable {
	merged := make(map[string]Rate, len(t.rates.entries)+len(overrides))
	for k, v := range t.rates.entries {
		merged[k] = v
	}
	fallback := t.rates.fallback
	for k, v := range overrides {
		if normalizeKey(k) == DefaultRateKey {
			fallback = v
			continue
		}
		merged[k] = v
	}
	return RateTable{rates: newLookup(fallback, merged)}
}

// Lookup returns the rate for cropName and whether the name was in the table
func (t RateTable) Lookup(cropName string) (Rate, bool) {
	return t.rates.get(strings.ToLower(strings.TrimSpace(cropName)))
}

// Len returns the number of named crops in the table
func (t RateTable) Len() int {
	return len(t.rates.entries)
}

// EstimateYield computes the base per-crop and total estimates. A crop with
// no areaAllocated is given an equal share of the total land; this is a
// best-effort estimate, unlike LandUtilizationOf which only counts recorded
// allocations.
func EstimateYield(active []models.Crop, totalLand float64, landUnit string, rates RateTable) models.YieldEstimates {
	est := models.YieldEstimates{
		CropWiseEstimates:        make([]models.CropYieldEstimate, 0, len(active)),
		InfrastructureMultiplier: 1,
	}
	if len(active) == 0 {
		return est
	}

	totalHectares := nonNegative(ToHectares(nonNegative(totalLand), landUnit))
	equalShare := totalHectares / float64(len(active))

	for _, c := range active {
		rate, _ := rates.Lookup(c.CropName)

		area := equalShare
		imputed := true
		if c.AreaAllocated != nil {
			area = finite(hectaresOf(c.AreaAllocated, landUnit))
			imputed = false
		}

		yield := finite(rate.YieldPerHectare * area)
		revenue := finite(yield * rate.PricePerUnit)

		est.CropWiseEstimates = append(est.CropWiseEstimates, models.CropYieldEstimate{
			CropName:         c.CropName,
			AreaHectares:     area,
			AreaImputed:      imputed,
			YieldPerHectare:  rate.YieldPerHectare,
			YieldUnit:        rate.Unit,
			PricePerUnit:     rate.PricePerUnit,
			EstimatedYield:   yield,
			EstimatedRevenue: revenue,
		})
		est.TotalEstimatedYield = finite(est.TotalEstimatedYield + yield)
		est.TotalEstimatedRevenue = finite(est.TotalEstimatedRevenue + revenue)
	}

	est.BaseTotalYield = est.TotalEstimatedYield
	est.BaseTotalRevenue = est.TotalEstimatedRevenue
	return est
}

// InfrastructureMultiplier accumulates the irrigation, soil and equipment
// bonuses on top of 1.0. The result is never below 1.
func InfrastructureMultiplier(p *models.FarmProfile) float64 {
	m := 1.0
	if p == nil || p.LandDetails == nil {
		return m
	}
	ld := p.LandDetails
	if w := ld.WaterIrrigation; w != nil {
		m += irrigationSources.value(w.Source)
		m += irrigationMethodBonus.value(w.Method)
	}
	m += soilTypeBonus.value(ld.SoilType)
	if e := ld.EquipmentInputs; e != nil && isOwned(e.TractorAccess) {
		m += 0.05
	}
	return m
}

// Enhance scales every yield and revenue in base by multiplier. base is not
// modified.
func Enhance(base models.YieldEstimates, multiplier float64) models.YieldEstimates {
	if multiplier < 1 || math.IsNaN(multiplier) {
		multiplier = 1
	}
	out := base
	out.CropWiseEstimates = make([]models.CropYieldEstimate, len(base.CropWiseEstimates))
	for i, c := range base.CropWiseEstimates {
		c.EstimatedYield = finite(c.EstimatedYield * multiplier)
		c.EstimatedRevenue = finite(c.EstimatedRevenue * multiplier)
		out.CropWiseEstimates[i] = c
	}
	out.BaseTotalYield = base.TotalEstimatedYield
	out.BaseTotalRevenue = base.TotalEstimatedRevenue
	out.TotalEstimatedYield = finite(base.TotalEstimatedYield * multiplier)
	out.TotalEstimatedRevenue = finite(base.TotalEstimatedRevenue * multiplier)
	out.InfrastructureMultiplier = multiplier
	out.InfrastructureBonus = roundInt((multiplier - 1) * 100)
	out.Enhanced = true
	return out
}

func isOwned(access string) bool {
	k := normalizeKey(access)
	return k == "own" || k == "owned"
}
