package analytics

import "github.com/kisanmitra/farm-analytics-api/internal/models"

// Cost optimization bands
const (
	CostPotentialHigh   = "High"
	CostPotentialMedium = "Medium"
	CostPotentialLow    = "Low"
)

// AnalyzeEconomics turns the economic form answers into cost and marketing
// estimates. An unmapped cost bucket is a monthly cost of 0.
func AnalyzeEconomics(info *models.EconomicInfo) models.EconomicAnalysis {
	var bucket, method string
	if info != nil {
		bucket = info.MonthlyInputCosts
		method = info.MarketingMethod
	}

	monthly := monthlyCostEstimates.value(bucket)

	a := models.EconomicAnalysis{
		MonthlyInputCostBucket:    bucket,
		MonthlyInputCosts:         monthly,
		AnnualCostEstimate:        monthly * 12,
		MarketingMethod:           method,
		MarketingEfficiency:       marketingEfficiency.value(method),
		CostOptimizationPotential: CostPotentialLow,
	}
	if a.MonthlyInputCostBucket == "" {
		a.MonthlyInputCostBucket = models.Unknown
	}
	if a.MarketingMethod == "" {
		a.MarketingMethod = models.Unknown
	}

	switch {
	case monthly > 40000:
		a.CostOptimizationPotential = CostPotentialHigh
	case monthly > 20000:
		a.CostOptimizationPotential = CostPotentialMedium
	}
	return a
}
