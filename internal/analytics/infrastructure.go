package analytics

import "github.com/kisanmitra/farm-analytics-api/internal/models"

// Infrastructure levels
const (
	InfraExcellent = "Excellent"
	InfraGood      = "Good"
	InfraFair      = "Fair"
	InfraPoor      = "Poor"
)

// ScoreInfrastructure adds up the facility points (capped at 100) and bands
// the total.
func ScoreInfrastructure(infra *models.FarmingInfrastructure, equipment *models.EquipmentInputs) models.InfrastructureScore {
	var b models.InfrastructureBreakdown

	if infra != nil {
		if infra.HasWarehouses {
			b.Storage = 15
			if infra.WarehouseCapacity != nil && *infra.WarehouseCapacity > 0 {
				b.Storage += 10
			}
		}
		if infra.HasProcessingUnits {
			b.Processing = 20
		}
		b.Electricity = electricityPoints.value(infra.Electricity)
		b.Roads = roadPoints.value(infra.FarmRoads)
		b.MarketAccess = marketAccessPoints(infra.NearestMarketDistance)
	}
	if equipment != nil {
		b.Equipment = equipmentPoints.value(equipment.TractorAccess) + equipmentPoints.value(equipment.PumpSetAccess)
	}

	score := clampScore(b.Storage + b.Processing + b.Electricity + b.Roads + b.MarketAccess + b.Equipment)
	return models.InfrastructureScore{
		Score:     score,
		Level:     infrastructureLevel(score),
		Breakdown: b,
	}
}

func marketAccessPoints(distanceKm *float64) int {
	if distanceKm == nil {
		return 0
	}
	switch d := *distanceKm; {
	case d <= 10:
		return 10
	case d <= 25:
		return 7
	case d <= 50:
		return 4
	default:
		return 0
	}
}

func infrastructureLevel(score int) string {
	switch {
	case score >= 80:
		return InfraExcellent
	case score >= 60:
		return InfraGood
	case score >= 40:
		return InfraFair
	default:
		return InfraPoor
	}
}
