// Package analytics derives farm analytics from a farmer's profile document.
//
// Everything in this package is pure: no I/O, no shared mutable state, no
// clock. Two calls with the same input return equal results and independent
// calls may run concurrently.
package analytics

import (
	"fmt"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

const maxActivities = 5

// Engine holds the reference tables the derivation runs against
type Engine struct {
	rates RateTable
	rules []Rule
}

// Option configures an Engine
type Option func(*Engine)

// WithRateTable replaces the built-in yield/price reference table
func WithRateTable(t RateTable) Option {
	return func(e *Engine) {
		e.rates = t
	}
}

// WithRules replaces the recommendation rule list
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		e.rules = append([]Rule(nil), rules...)
	}
}

// NewEngine creates an engine with the built-in tables unless overridden
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rates: DefaultRateTable(),
		rules: DefaultRules,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// CalculateAnalyticsFromProfile runs the default engine over profile
func CalculateAnalyticsFromProfile(profile *models.FarmProfile, completionPercentage float64) *models.AnalyticsResult {
	return defaultEngine.Calculate(profile, completionPercentage)
}

// Calculate derives the full analytics result. A nil profile, or one with
// neither land details nor crops, yields DefaultAnalytics.
func (e *Engine) Calculate(profile *models.FarmProfile, completionPercentage float64) *models.AnalyticsResult {
	if !HasFarmData(profile) {
		return DefaultAnalytics()
	}

	active := profile.ActiveCrops()
	totalLand, landUnit := landSize(profile)

	crops := AnalyzeCrops(active, totalLand, landUnit)

	base := EstimateYield(active, totalLand, landUnit, e.rates)
	yield := Enhance(base, InfrastructureMultiplier(profile))

	efficiency := ScoreEfficiency(profile, len(active), crops.CropDiversity)

	var (
		soilType  string
		soil      *models.SoilDetails
		economic  *models.EconomicInfo
		infra     *models.FarmingInfrastructure
		equipment *models.EquipmentInputs
	)
	if ld := profile.LandDetails; ld != nil {
		soilType = ld.SoilType
		soil = ld.SoilDetails
		economic = ld.EconomicInfo
		infra = ld.FarmingInfrastructure
		equipment = ld.EquipmentInputs
	}
	soilAnalysis := AnalyzeSoil(soilType, soil)
	economics := AnalyzeEconomics(economic)
	infrastructure := ScoreInfrastructure(infra, equipment)

	insights := &Insights{
		Profile:        profile,
		ActiveCrops:    active,
		TotalHectares:  ToHectares(totalLand, landUnit),
		Crops:          crops,
		Yield:          yield,
		Efficiency:     efficiency,
		Soil:           soilAnalysis,
		Economics:      economics,
		Infrastructure: infrastructure,
	}

	return &models.AnalyticsResult{
		FarmMetrics:         farmMetrics(profile, totalLand, landUnit, len(active)),
		CropAnalytics:       crops,
		YieldEstimates:      yield,
		EfficiencyMetrics:   efficiency,
		SoilAnalysis:        soilAnalysis,
		EconomicAnalysis:    economics,
		InfrastructureScore: infrastructure,
		RecentActivities:    recentActivities(profile, active),
		Recommendations:     Recommend(insights, e.rules),
		DataQuality:         AssessDataQuality(profile, completionPercentage),
	}
}

// HasFarmData reports whether profile carries land details or crops, the
// minimum the engine needs to derive anything
func HasFarmData(profile *models.FarmProfile) bool {
	return profile != nil && (profile.LandDetails != nil || len(profile.CropsGrown) > 0)
}

// DefaultAnalytics is the result served when no usable profile exists. All
// metrics are zero and the only recommendation is to complete the profile.
func DefaultAnalytics() *models.AnalyticsResult {
	return &models.AnalyticsResult{
		CropAnalytics: models.CropAnalytics{
			LandUtilization: models.LandUtilization{Unit: UnitHectares},
		},
		YieldEstimates: models.YieldEstimates{
			CropWiseEstimates:        []models.CropYieldEstimate{},
			InfrastructureMultiplier: 1,
		},
		SoilAnalysis: models.SoilAnalysis{
			SoilType:        models.Unknown,
			Recommendations: []string{},
		},
		EconomicAnalysis: models.EconomicAnalysis{
			MonthlyInputCostBucket:    models.Unknown,
			MarketingMethod:           models.Unknown,
			CostOptimizationPotential: CostPotentialLow,
		},
		InfrastructureScore: models.InfrastructureScore{Level: InfraPoor},
		RecentActivities:    []models.Activity{},
		Recommendations:     []models.Recommendation{setupRecommendation()},
		DataQuality: models.DataQuality{
			Level:              models.QualityPoor,
			MissingData:        missingData(nil),
			UnrecognizedValues: []string{},
		},
	}
}

// landSize returns the recorded total land and its unit. The unit defaults
// to hectares.
func landSize(p *models.FarmProfile) (float64, string) {
	if p == nil || p.LandDetails == nil || p.LandDetails.TotalLandSize == nil {
		return 0, UnitHectares
	}
	size := p.LandDetails.TotalLandSize
	unit := size.Unit
	if unit == "" {
		unit = UnitHectares
	}
	return nonNegative(size.Value), unit
}

func farmMetrics(p *models.FarmProfile, totalLand float64, landUnit string, activeCount int) models.FarmMetrics {
	m := models.FarmMetrics{
		TotalLand:         totalLand,
		LandUnit:          landUnit,
		TotalLandHectares: ToHectares(totalLand, landUnit),
		TotalCrops:        len(p.CropsGrown),
		ActiveCrops:       activeCount,
	}
	if ld := p.LandDetails; ld != nil {
		m.FarmName = ld.FarmName
		m.LandType = ld.LandType
		m.SoilType = ld.SoilType
	}
	if fe := p.FarmingExperience; fe != nil {
		if fe.YearsOfExperience != nil {
			m.FarmingExperience = nonNegative(*fe.YearsOfExperience)
		}
		m.FarmingType = fe.FarmingType
	}
	if loc := p.Location; loc != nil {
		m.State = loc.State
		m.District = loc.District
	}
	return m
}

// recentActivities builds an illustrative timeline from what the profile
// records. It carries no dates and is not an audit trail.
func recentActivities(p *models.FarmProfile, active []models.Crop) []models.Activity {
	out := []models.Activity{}
	add := func(kind, desc string) {
		if len(out) < maxActivities {
			out = append(out, models.Activity{Type: kind, Description: desc})
		}
	}

	if p.LandDetails != nil && p.LandDetails.FarmName != "" {
		add("profile", fmt.Sprintf("Farm profile set up for %s", p.LandDetails.FarmName))
	} else {
		add("profile", "Farm profile set up")
	}
	for _, c := range active {
		season, ok := seasons.get(c.Season)
		if !ok {
			season = models.SeasonKharif
		}
		add("crop", fmt.Sprintf("Growing %s in the %s season", c.CropName, season))
	}
	if p.LandDetails != nil {
		if ph := p.LandDetails.SoilDetails.PHValue(); ph != nil {
			add("soil", fmt.Sprintf("Soil test recorded (pH %.1f)", *ph))
		}
		if w := p.LandDetails.WaterIrrigation; w != nil && w.Method != "" {
			add("irrigation", fmt.Sprintf("Irrigation method: %s", w.Method))
		}
	}
	return out
}
