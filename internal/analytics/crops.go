package analytics

import "github.com/kisanmitra/farm-analytics-api/internal/models"

// CropDiversity maps the active crop count onto four ordinal bands.
func CropDiversity(activeCount int) int {
	switch {
	case activeCount <= 0:
		return 0
	case activeCount == 1:
		return 25
	case activeCount <= 3:
		return 60
	default:
		return 90
	}
}

// SeasonalDistributionOf counts crops per season. A missing or unrecognized
// season counts as kharif.
func SeasonalDistributionOf(crops []models.Crop) models.SeasonalDistribution {
	var d models.SeasonalDistribution
	for _, c := range crops {
		season, ok := seasons.get(c.Season)
		if !ok {
			season = models.SeasonKharif
		}
		switch season {
		case models.SeasonRabi:
			d.Rabi++
		case models.SeasonZaid:
			d.Zaid++
		case models.SeasonYearRound:
			d.YearRound++
		default:
			d.Kharif++
		}
	}
	return d
}

// CropTypeDistributionOf counts crops per type. A missing or unrecognized type
// counts as other.
func CropTypeDistributionOf(crops []models.Crop) models.CropTypeDistribution {
	var d models.CropTypeDistribution
	for _, c := range crops {
		t, ok := cropTypes.get(c.CropType)
		if !ok {
			t = models.CropTypeOther
		}
		switch t {
		case models.CropTypeFoodGrain:
			d.FoodGrain++
		case models.CropTypeCashCrop:
			d.CashCrop++
		case models.CropTypePlantation:
			d.Plantation++
		case models.CropTypeHorticulture:
			d.Horticulture++
		case models.CropTypeSpices:
			d.Spices++
		default:
			d.Other++
		}
	}
	return d
}

// LandUtilizationOf sums the explicitly allocated crop areas in landUnit.
// Crops without an areaAllocated are left out; see EstimateYield for the
// imputing counterpart.
func LandUtilizationOf(crops []models.Crop, totalLand float64, landUnit string) models.LandUtilization {
	total := nonNegative(totalLand)
	var allocated float64
	for _, c := range crops {
		if c.AreaAllocated == nil {
			continue
		}
		allocated += areaIn(c.AreaAllocated, landUnit)
	}
	allocated = finite(allocated)

	u := models.LandUtilization{
		TotalLand:     total,
		AllocatedLand: allocated,
		AvailableLand: nonNegative(total - allocated),
		Unit:          landUnit,
	}
	if total > 0 {
		u.UtilizationPercentage = clampPercent(allocated / total * 100)
	}
	return u
}

// AnalyzeCrops builds the crop analytics for the active crops of a farm
func AnalyzeCrops(active []models.Crop, totalLand float64, landUnit string) models.CropAnalytics {
	return models.CropAnalytics{
		CropDiversity:        CropDiversity(len(active)),
		SeasonalDistribution: SeasonalDistributionOf(active),
		CropTypes:            CropTypeDistributionOf(active),
		LandUtilization:      LandUtilizationOf(active, totalLand, landUnit),
	}
}
