package analytics

import (
	"fmt"
	"math"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

// Names reported in DataQuality.MissingData
const (
	MissingLandSize   = "Land size"
	MissingSoilType   = "Soil type"
	MissingCrops      = "Crop information"
	MissingCropArea   = "Crop area allocation"
	MissingExperience = "Farming experience"
	MissingDistrict   = "District"
)

const (
	completionWeight      = 0.6
	cropsPresentPoints    = 20
	cropAreaPresentPoints = 10
	districtPoints        = 10
)

// AssessDataQuality scores how complete the profile is. completion is the
// externally computed form completion percentage.
func AssessDataQuality(p *models.FarmProfile, completion float64) models.DataQuality {
	completion = clampPercent(completion)
	score := completionWeight * completion

	var crops []models.Crop
	if p != nil {
		crops = p.CropsGrown
	}
	if len(crops) > 0 {
		score += cropsPresentPoints
		for _, c := range crops {
			if c.AreaAllocated != nil {
				score += cropAreaPresentPoints
				break
			}
		}
	}
	if district(p) != "" {
		score += districtPoints
	}

	s := clampScore(int(math.Round(score)))
	return models.DataQuality{
		Score:                s,
		Level:                qualityLevel(s),
		CompletionPercentage: completion,
		MissingData:          missingData(p),
		UnrecognizedValues:   UnrecognizedValues(p),
	}
}

func qualityLevel(score int) string {
	switch {
	case score >= 90:
		return models.QualityExcellent
	case score >= 70:
		return models.QualityGood
	case score >= 50:
		return models.QualityFair
	default:
		return models.QualityPoor
	}
}

func missingData(p *models.FarmProfile) []string {
	missing := []string{}
	if total, _ := landSize(p); total <= 0 {
		missing = append(missing, MissingLandSize)
	}
	if p == nil || p.LandDetails == nil || p.LandDetails.SoilType == "" {
		missing = append(missing, MissingSoilType)
	}
	if p == nil || len(p.CropsGrown) == 0 {
		missing = append(missing, MissingCrops)
	} else {
		for _, c := range p.CropsGrown {
			if c.AreaAllocated == nil {
				missing = append(missing, MissingCropArea)
				break
			}
		}
	}
	if p == nil || p.FarmingExperience == nil || p.FarmingExperience.YearsOfExperience == nil {
		missing = append(missing, MissingExperience)
	}
	if district(p) == "" {
		missing = append(missing, MissingDistrict)
	}
	return missing
}

// UnrecognizedValues lists enum and unit values that fell back to a default.
// Scores are unaffected; the list only tells the caller something was
// approximated.
func UnrecognizedValues(p *models.FarmProfile) []string {
	out := []string{}
	if p == nil {
		return out
	}
	check := func(field, value string, known bool) {
		if value != "" && !known {
			out = append(out, fmt.Sprintf("%s: %s", field, value))
		}
	}

	if ld := p.LandDetails; ld != nil {
		if ld.TotalLandSize != nil {
			check("landDetails.totalLandSize.unit", ld.TotalLandSize.Unit, IsKnownUnit(ld.TotalLandSize.Unit))
		}
		check("landDetails.soilType", ld.SoilType, soilHealthScores.has(ld.SoilType))
		if w := ld.WaterIrrigation; w != nil {
			check("waterIrrigation.source", w.Source, irrigationSources.has(w.Source))
			check("waterIrrigation.method", w.Method, waterUsageScores.has(w.Method))
		}
		if i := ld.FarmingInfrastructure; i != nil {
			check("farmingInfrastructure.electricity", i.Electricity, electricityPoints.has(i.Electricity))
			check("farmingInfrastructure.farmRoads", i.FarmRoads, roadPoints.has(i.FarmRoads))
		}
		if e := ld.EquipmentInputs; e != nil {
			check("equipmentInputs.tractorAccess", e.TractorAccess, equipmentPoints.has(e.TractorAccess))
			check("equipmentInputs.pumpSetAccess", e.PumpSetAccess, equipmentPoints.has(e.PumpSetAccess))
		}
		if e := ld.EconomicInfo; e != nil {
			check("economicInfo.monthlyInputCosts", e.MonthlyInputCosts, monthlyCostEstimates.has(e.MonthlyInputCosts))
			check("economicInfo.marketingMethod", e.MarketingMethod, marketingEfficiency.has(e.MarketingMethod))
		}
	}
	for i, c := range p.CropsGrown {
		prefix := fmt.Sprintf("cropsGrown[%d]", i)
		check(prefix+".season", c.Season, seasons.has(c.Season))
		check(prefix+".cropType", c.CropType, cropTypes.has(c.CropType))
		if c.AreaAllocated != nil {
			check(prefix+".areaAllocated.unit", c.AreaAllocated.Unit, IsKnownUnit(c.AreaAllocated.Unit))
		}
	}
	return out
}

func district(p *models.FarmProfile) string {
	if p == nil || p.Location == nil {
		return ""
	}
	return p.Location.District
}
