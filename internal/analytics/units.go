package analytics

import "github.com/kisanmitra/farm-analytics-api/internal/models"

// Unit names understood by the converter
const (
	UnitAcres        = "acres"
	UnitHectares     = "hectares"
	UnitBigha        = "bigha"
	UnitGuntha       = "guntha"
	UnitSquareFeet   = "square_feet"
	UnitSquareMeters = "square_meters"
)

// Hectares are the common base unit. Unknown units are treated as hectares.
var (
	toHectareFactors = newLookup(1.0, map[string]float64{
		UnitAcres:        0.4047,
		UnitHectares:     1,
		UnitBigha:        0.25,
		UnitGuntha:       0.01,
		UnitSquareFeet:   0.0000929,
		UnitSquareMeters: 0.0001,
	})

	fromHectareFactors = newLookup(1.0, map[string]float64{
		UnitAcres:        2.471,
		UnitHectares:     1,
		UnitBigha:        4,
		UnitGuntha:       100,
		UnitSquareFeet:   10764,
		UnitSquareMeters: 10000,
	})
)

// ToHectares converts value in unit to hectares
func ToHectares(value float64, unit string) float64 {
	return value * toHectareFactors.value(unit)
}

// ConvertUnit converts value between two land units via hectares. It never
// fails; an unknown unit scales by 1.
func ConvertUnit(value float64, fromUnit, toUnit string) float64 {
	if normalizeKey(fromUnit) == normalizeKey(toUnit) {
		return value
	}
	return ToHectares(value, fromUnit) * fromHectareFactors.value(toUnit)
}

// IsKnownUnit reports whether unit has a conversion factor
func IsKnownUnit(unit string) bool {
	return toHectareFactors.has(unit)
}

// areaIn returns a's value expressed in unit. A crop area recorded without a
// unit is taken to be in the farm's own land unit.
func areaIn(a *models.Area, unit string) float64 {
	if a == nil {
		return 0
	}
	from := a.Unit
	if from == "" {
		from = unit
	}
	return ConvertUnit(nonNegative(a.Value), from, unit)
}

// hectaresOf converts a to hectares, falling back to landUnit when a has no unit.
func hectaresOf(a *models.Area, landUnit string) float64 {
	if a == nil {
		return 0
	}
	unit := a.Unit
	if unit == "" {
		unit = landUnit
	}
	return ToHectares(nonNegative(a.Value), unit)
}
