package analytics

import (
	"math"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

// Weights for the overall efficiency blend
const (
	landWeight            = 0.25
	experienceWeight      = 0.30
	diversificationWeight = 0.25
	infrastructureWeight  = 0.20
)

// ScoreEfficiency computes the efficiency component scores and their blend.
// diversity is the CropDiversity band for the farm's active crops.
func ScoreEfficiency(p *models.FarmProfile, activeCount, diversity int) models.EfficiencyMetrics {
	totalLand, _ := landSize(p)

	land := 0
	if totalLand > 0 {
		land = clampScore(activeCount * 25)
	}

	experience := 0
	if p != nil && p.FarmingExperience != nil && p.FarmingExperience.YearsOfExperience != nil {
		years := nonNegative(*p.FarmingExperience.YearsOfExperience)
		experience = clampScore(roundInt(math.Min(years*5, 100)))
	}

	diversification := clampScore(diversity)
	infrastructure := localInfrastructureScore(p)

	overall := math.Round(float64(land)*landWeight +
		float64(experience)*experienceWeight +
		float64(diversification)*diversificationWeight +
		float64(infrastructure)*infrastructureWeight)

	var method, soilType string
	if p != nil && p.LandDetails != nil {
		soilType = p.LandDetails.SoilType
		if p.LandDetails.WaterIrrigation != nil {
			method = p.LandDetails.WaterIrrigation.Method
		}
	}

	return models.EfficiencyMetrics{
		OverallEfficiency:    clampScore(int(overall)),
		LandEfficiency:       land,
		ExperienceScore:      experience,
		DiversificationScore: diversification,
		InfrastructureScore:  infrastructure,
		WaterUsageEfficiency: waterUsageScores.value(method),
		SoilHealthScore:      SoilHealthScore(soilType),
	}
}

// localInfrastructureScore is the efficiency view of infrastructure. It is
// coarser than ScoreInfrastructure and only looks at four facilities.
func localInfrastructureScore(p *models.FarmProfile) int {
	if p == nil || p.LandDetails == nil || p.LandDetails.FarmingInfrastructure == nil {
		return 0
	}
	infra := p.LandDetails.FarmingInfrastructure
	score := 0
	if infra.HasWarehouses {
		score += 15
	}
	if infra.HasProcessingUnits {
		score += 10
	}
	if electricityPoints.value(infra.Electricity) == 20 {
		score += 20
	}
	if normalizeKey(infra.FarmRoads) == "good" {
		score += 10
	}
	return clampScore(score)
}
