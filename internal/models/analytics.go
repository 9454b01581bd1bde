package models

import (
	"encoding/json"
	"strconv"
)

// AnalyticsResult is the derived analytics for one profile read. It is built
// fresh on every call and never mutated afterwards.
type AnalyticsResult struct {
	FarmMetrics         FarmMetrics         `json:"farmMetrics"`
	CropAnalytics       CropAnalytics       `json:"cropAnalytics"`
	YieldEstimates      YieldEstimates      `json:"yieldEstimates"`
	EfficiencyMetrics   EfficiencyMetrics   `json:"efficiencyMetrics"`
	SoilAnalysis        SoilAnalysis        `json:"soilAnalysis"`
	EconomicAnalysis    EconomicAnalysis    `json:"economicAnalysis"`
	InfrastructureScore InfrastructureScore `json:"infrastructureScore"`
	RecentActivities    []Activity          `json:"recentActivities"`
	Recommendations     []Recommendation    `json:"recommendations"`
	DataQuality         DataQuality         `json:"dataQuality"`
}

// FarmMetrics summarises the profile's headline facts
type FarmMetrics struct {
	FarmName          string  `json:"farmName"`
	TotalLand         float64 `json:"totalLand"`
	LandUnit          string  `json:"landUnit"`
	TotalLandHectares float64 `json:"totalLandHectares"`
	LandType          string  `json:"landType"`
	SoilType          string  `json:"soilType"`
	TotalCrops        int     `json:"totalCrops"`
	ActiveCrops       int     `json:"activeCrops"`
	FarmingExperience float64 `json:"farmingExperience"`
	FarmingType       string  `json:"farmingType"`
	State             string  `json:"state"`
	District          string  `json:"district"`
}

type CropAnalytics struct {
	CropDiversity        int                  `json:"cropDiversity"`
	SeasonalDistribution SeasonalDistribution `json:"seasonalDistribution"`
	CropTypes            CropTypeDistribution `json:"cropTypes"`
	LandUtilization      LandUtilization      `json:"landUtilization"`
}

type SeasonalDistribution struct {
	Kharif    int `json:"kharif"`
	Rabi      int `json:"rabi"`
	Zaid      int `json:"zaid"`
	YearRound int `json:"year_round"`
}

type CropTypeDistribution struct {
	FoodGrain    int `json:"food_grain"`
	CashCrop     int `json:"cash_crop"`
	Plantation   int `json:"plantation"`
	Horticulture int `json:"horticulture"`
	Spices       int `json:"spices"`
	Other        int `json:"other"`
}

// LandUtilization reports known allocation only; crops without an explicit
// area do not count towards AllocatedLand.
type LandUtilization struct {
	TotalLand             float64 `json:"totalLand"`
	AllocatedLand         float64 `json:"allocatedLand"`
	AvailableLand         float64 `json:"availableLand"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	Unit                  string  `json:"unit"`
}

// YieldEstimates holds per-crop and aggregate estimates. When Enhanced is set
// every yield and revenue has been scaled by InfrastructureMultiplier and the
// unscaled totals are kept in BaseTotal*.
type YieldEstimates struct {
	CropWiseEstimates        []CropYieldEstimate `json:"cropWiseEstimates"`
	TotalEstimatedYield      float64             `json:"totalEstimatedYield"`
	TotalEstimatedRevenue    float64             `json:"totalEstimatedRevenue"`
	BaseTotalYield           float64             `json:"baseTotalYield"`
	BaseTotalRevenue         float64             `json:"baseTotalRevenue"`
	InfrastructureMultiplier float64             `json:"infrastructureMultiplier"`
	InfrastructureBonus      int                 `json:"infrastructureBonus"`
	Enhanced                 bool                `json:"enhanced"`
}

type CropYieldEstimate struct {
	CropName         string  `json:"cropName"`
	AreaHectares     float64 `json:"areaHectares"`
	AreaImputed      bool    `json:"areaImputed"`
	YieldPerHectare  float64 `json:"yieldPerHectare"`
	YieldUnit        string  `json:"yieldUnit"`
	PricePerUnit     float64 `json:"pricePerUnit"`
	EstimatedYield   float64 `json:"estimatedYield"`
	EstimatedRevenue float64 `json:"estimatedRevenue"`
}

type EfficiencyMetrics struct {
	OverallEfficiency    int `json:"overallEfficiency"`
	LandEfficiency       int `json:"landEfficiency"`
	ExperienceScore      int `json:"experienceScore"`
	DiversificationScore int `json:"diversificationScore"`
	InfrastructureScore  int `json:"infrastructureScore"`
	WaterUsageEfficiency int `json:"waterUsageEfficiency"`
	SoilHealthScore      int `json:"soilHealthScore"`
}

type SoilAnalysis struct {
	SoilType        string   `json:"soilType"`
	HealthScore     int      `json:"healthScore"`
	PH              Reading  `json:"ph"`
	OrganicCarbon   Reading  `json:"organicCarbon"`
	Nitrogen        Reading  `json:"nitrogen"`
	Phosphorus      Reading  `json:"phosphorus"`
	Potassium       Reading  `json:"potassium"`
	Recommendations []string `json:"recommendations"`
}

type EconomicAnalysis struct {
	MonthlyInputCostBucket    string  `json:"monthlyInputCostBucket"`
	MonthlyInputCosts         float64 `json:"monthlyInputCosts"`
	AnnualCostEstimate        float64 `json:"annualCostEstimate"`
	MarketingMethod           string  `json:"marketingMethod"`
	MarketingEfficiency       int     `json:"marketingEfficiency"`
	CostOptimizationPotential string  `json:"costOptimizationPotential"`
}

type InfrastructureScore struct {
	Score     int                     `json:"score"`
	Level     string                  `json:"level"`
	Breakdown InfrastructureBreakdown `json:"breakdown"`
}

type InfrastructureBreakdown struct {
	Storage      int `json:"storage"`
	Processing   int `json:"processing"`
	Electricity  int `json:"electricity"`
	Roads        int `json:"roads"`
	MarketAccess int `json:"marketAccess"`
	Equipment    int `json:"equipment"`
}

// Activity is an illustrative timeline entry derived from the profile.
type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type DataQuality struct {
	Score                int      `json:"score"`
	Level                string   `json:"level"`
	CompletionPercentage float64  `json:"completionPercentage"`
	MissingData          []string `json:"missingData"`
	UnrecognizedValues   []string `json:"unrecognizedValues"`
}

// Recommendation priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Data quality levels
const (
	QualityExcellent = "excellent"
	QualityGood      = "good"
	QualityFair      = "fair"
	QualityPoor      = "poor"
)

// Unknown is the placeholder rendered for values that were never recorded.
const Unknown = "unknown"

// Reading is an optional measurement. It serialises as a number when recorded
// and as "unknown" otherwise.
type Reading struct {
	Value    float64
	Recorded bool
}

// NewReading converts an optional value into a Reading
func NewReading(v *float64) Reading {
	if v == nil {
		return Reading{}
	}
	return Reading{Value: *v, Recorded: true}
}

func (r Reading) MarshalJSON() ([]byte, error) {
	if !r.Recorded {
		return json.Marshal(Unknown)
	}
	return json.Marshal(r.Value)
}

func (r *Reading) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == Unknown || s == "" {
			*r = Reading{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*r = Reading{Value: v, Recorded: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Reading{Value: v, Recorded: true}
	return nil
}

func (r Reading) String() string {
	if !r.Recorded {
		return Unknown
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}
