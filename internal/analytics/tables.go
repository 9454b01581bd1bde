package analytics

import (
	"math"
	"strings"
)

// lookup is a read-only keyed table with a fallback value. Tables are built
// once at package init and never written to afterwards.
type lookup[V any] struct {
	entries  map[string]V
	fallback V
}

func newLookup[V any](fallback V, entries map[string]V) lookup[V] {
	normalized := make(map[string]V, len(entries))
	for k, v := range entries {
		normalized[normalizeKey(k)] = v
	}
	return lookup[V]{entries: normalized, fallback: fallback}
}

// get returns the entry for key, or the fallback and false when key is unknown.
func (l lookup[V]) get(key string) (V, bool) {
	v, ok := l.entries[normalizeKey(key)]
	if !ok {
		return l.fallback, false
	}
	return v, true
}

func (l lookup[V]) value(key string) V {
	v, _ := l.get(key)
	return v
}

func (l lookup[V]) has(key string) bool {
	_, ok := l.entries[normalizeKey(key)]
	return ok
}

// normalizeKey lowercases and folds spaces and dashes to underscores so
// "Square Feet", "square-feet" and "square_feet" hit the same entry.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

var (
	soilHealthScores = newLookup(65, map[string]int{
		"loamy":    95,
		"alluvial": 90,
		"black":    85,
		"red":      70,
		"clay":     60,
		"sandy":    50,
		"laterite": 55,
	})

	waterUsageScores = newLookup(50, map[string]int{
		"drip":      95,
		"sprinkler": 80,
		"flood":     60,
	})

	monthlyCostEstimates = newLookup(0.0, map[string]float64{
		"under_5k":  3500,
		"5k_15k":    10000,
		"15k_30k":   22500,
		"30k_50k":   40000,
		"above_50k": 75000,
	})

	marketingEfficiency = newLookup(70, map[string]int{
		"local":       60,
		"mandi":       65,
		"direct":      85,
		"contract":    80,
		"cooperative": 75,
		"online":      90,
	})

	electricityPoints = newLookup(0, map[string]int{
		"24x7":    20,
		"24×7":    20,
		"24_7":    20,
		"regular": 15,
		"limited": 10,
		"none":    0,
	})

	roadPoints = newLookup(0, map[string]int{
		"good": 15,
		"fair": 10,
		"poor": 5,
	})

	equipmentPoints = newLookup(0, map[string]int{
		"own":    5,
		"owned":  5,
		"rent":   3,
		"rented": 3,
		"none":   0,
	})

	irrigationSources = newLookup(0.0, map[string]float64{
		"borewell": 0.15,
		"canal":    0.15,
		"well":     0,
		"river":    0,
		"pond":     0,
		"tank":     0,
		"rainfed":  0,
	})

	irrigationMethodBonus = newLookup(0.0, map[string]float64{
		"drip":      0.20,
		"sprinkler": 0.10,
		"flood":     0,
	})

	soilTypeBonus = newLookup(0.0, map[string]float64{
		"loamy":    0.10,
		"alluvial": 0.10,
	})

	seasons = newLookup("", map[string]string{
		"kharif":     "kharif",
		"rabi":       "rabi",
		"zaid":       "zaid",
		"year_round": "year_round",
	})

	cropTypes = newLookup("", map[string]string{
		"food_grain":   "food_grain",
		"cash_crop":    "cash_crop",
		"plantation":   "plantation",
		"horticulture": "horticulture",
		"spices":       "spices",
		"other":        "other",
	})
)

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return finite(v)
}

// finite maps NaN and ±Inf to 0. Every float in a result passes through it so
// the result always encodes as JSON.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
