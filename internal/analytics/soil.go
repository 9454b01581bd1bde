package analytics

import (
	"fmt"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

// Thresholds that trigger soil recommendations
const (
	acidicPH           = 6.0
	alkalinePH         = 8.0
	lowOrganicCarbonPc = 0.5
)

// SoilHealthScore looks up the health score for a soil type (65 when unknown)
func SoilHealthScore(soilType string) int {
	return soilHealthScores.value(soilType)
}

// AnalyzeSoil echoes the recorded soil readings and adds corrective advice.
// No pH advice is given when pH was never recorded.
func AnalyzeSoil(soilType string, details *models.SoilDetails) models.SoilAnalysis {
	a := models.SoilAnalysis{
		SoilType:        soilType,
		HealthScore:     SoilHealthScore(soilType),
		Recommendations: []string{},
	}
	if a.SoilType == "" {
		a.SoilType = models.Unknown
	}
	if details == nil {
		return a
	}

	a.PH = models.NewReading(details.PHValue())
	a.OrganicCarbon = models.NewReading(details.OrganicCarbon)
	a.Nitrogen = models.NewReading(details.Nitrogen)
	a.Phosphorus = models.NewReading(details.Phosphorus)
	a.Potassium = models.NewReading(details.Potassium)

	if a.PH.Recorded {
		switch {
		case a.PH.Value < acidicPH:
			a.Recommendations = append(a.Recommendations,
				fmt.Sprintf("Soil is acidic (pH %.1f). Apply agricultural lime to raise the pH.", a.PH.Value))
		case a.PH.Value > alkalinePH:
			a.Recommendations = append(a.Recommendations,
				fmt.Sprintf("Soil is alkaline (pH %.1f). Add organic matter such as farmyard manure to bring the pH down.", a.PH.Value))
		}
	}
	if a.OrganicCarbon.Recorded && a.OrganicCarbon.Value < lowOrganicCarbonPc {
		a.Recommendations = append(a.Recommendations,
			"Organic carbon is low. Add compost or green manure to build soil organic matter.")
	}
	return a
}
