package analytics

import (
	"encoding/json"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasRecommendation(recs []models.Recommendation, kind string) bool {
	for _, r := range recs {
		if r.Type == kind {
			return true
		}
	}
	return false
}

func TestCalculate_SingleRiceCropOnFiveAcres(t *testing.T) {
	p := profileWithLand(5, "acres", crop("rice", "food_grain", "kharif", true))

	res := CalculateAnalyticsFromProfile(p, 40)

	assert.Equal(t, 25, res.CropAnalytics.CropDiversity)
	assert.Equal(t, 0.0, res.CropAnalytics.LandUtilization.AllocatedLand)
	assert.Equal(t, 0.0, res.CropAnalytics.LandUtilization.UtilizationPercentage)
	assert.Equal(t, 5.0, res.CropAnalytics.LandUtilization.AvailableLand)
	assert.InDelta(t, 7.08, res.YieldEstimates.TotalEstimatedYield, 0.01)
	assert.InDelta(t, 176925, res.YieldEstimates.TotalEstimatedRevenue, 500)
	assert.Equal(t, 1.0, res.YieldEstimates.InfrastructureMultiplier)
	assert.Equal(t, 0, res.YieldEstimates.InfrastructureBonus)
	assert.True(t, hasRecommendation(res.Recommendations, RecommendationDiversification))
	assert.Equal(t, 1, res.FarmMetrics.ActiveCrops)
	assert.InDelta(t, 2.0235, res.FarmMetrics.TotalLandHectares, 1e-9)
}

func TestCalculate_NoLandDetailsNoCrops(t *testing.T) {
	p := &models.FarmProfile{Location: &models.Location{State: "Kerala", District: "Idukki"}}

	res := CalculateAnalyticsFromProfile(p, 80)

	assert.Equal(t, DefaultAnalytics(), res)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, RecommendationSetup, res.Recommendations[0].Type)
	assert.Equal(t, 0, res.EfficiencyMetrics.OverallEfficiency)
	assert.Equal(t, models.QualityPoor, res.DataQuality.Level)
}

func TestCalculate_NilProfile(t *testing.T) {
	assert.Equal(t, DefaultAnalytics(), CalculateAnalyticsFromProfile(nil, 0))
}

func TestCalculate_SoilPHRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		soil     *models.SoilDetails
		contains string
		count    int
	}{
		{name: "acidic", soil: &models.SoilDetails{SoilPH: ptr(5.2)}, contains: "lime", count: 1},
		{name: "alkaline", soil: &models.SoilDetails{SoilPH: ptr(8.5)}, contains: "alkaline", count: 1},
		{name: "absent", soil: nil, count: 0},
		{name: "details without ph", soil: &models.SoilDetails{Nitrogen: ptr(200.0)}, count: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profileWithLand(2, "hectares", crop("wheat", "food_grain", "rabi", true))
			p.LandDetails.SoilDetails = tt.soil

			res := CalculateAnalyticsFromProfile(p, 60)

			require.Len(t, res.SoilAnalysis.Recommendations, tt.count)
			if tt.count > 0 {
				assert.Contains(t, res.SoilAnalysis.Recommendations[0], tt.contains)
				assert.False(t, hasRecommendation(res.Recommendations, RecommendationSoilHealth))
			} else {
				assert.True(t, hasRecommendation(res.Recommendations, RecommendationSoilHealth))
			}
		})
	}
}

func TestCalculate_KeralaSpiceRecommendation(t *testing.T) {
	p := profileWithLand(1, "hectares", crop("rice", "food_grain", "kharif", true))
	p.Location = &models.Location{State: "Kerala", District: "Thrissur"}

	res := CalculateAnalyticsFromProfile(p, 70)
	assert.True(t, hasRecommendation(res.Recommendations, RecommendationRegional))

	p.CropsGrown = append(p.CropsGrown, crop("pepper", "spices", "year_round", true))
	res = CalculateAnalyticsFromProfile(p, 70)
	assert.False(t, hasRecommendation(res.Recommendations, RecommendationRegional))

	p.CropsGrown[1].IsActive = false
	res = CalculateAnalyticsFromProfile(p, 70)
	assert.True(t, hasRecommendation(res.Recommendations, RecommendationRegional), "inactive spice does not count")
}

func TestCalculate_InactiveCropsAreIgnored(t *testing.T) {
	p := profileWithLand(4, "hectares",
		crop("rice", "food_grain", "kharif", true),
		crop("sugarcane", "cash_crop", "year_round", false),
	)

	res := CalculateAnalyticsFromProfile(p, 50)

	assert.Equal(t, 2, res.FarmMetrics.TotalCrops)
	assert.Equal(t, 1, res.FarmMetrics.ActiveCrops)
	assert.Len(t, res.YieldEstimates.CropWiseEstimates, 1)
	assert.Equal(t, 0, res.CropAnalytics.SeasonalDistribution.YearRound)
}

func TestCalculate_InfrastructureEnhancesYield(t *testing.T) {
	p := profileWithLand(1, "hectares", cropWithArea("rice", 1, "hectares"))
	p.LandDetails.SoilType = "loamy"
	p.LandDetails.WaterIrrigation = &models.WaterIrrigation{Source: "borewell", Method: "drip"}
	p.LandDetails.EquipmentInputs = &models.EquipmentInputs{TractorAccess: "own"}

	y := CalculateAnalyticsFromProfile(p, 50).YieldEstimates

	assert.True(t, y.Enhanced)
	assert.InDelta(t, 1.5, y.InfrastructureMultiplier, 1e-9)
	assert.Equal(t, 50, y.InfrastructureBonus)
	assert.InDelta(t, 3.5, y.BaseTotalYield, 1e-9)
	assert.InDelta(t, y.BaseTotalYield*y.InfrastructureMultiplier, y.TotalEstimatedYield, 1e-9)
	assert.InDelta(t, y.BaseTotalRevenue*y.InfrastructureMultiplier, y.TotalEstimatedRevenue, 1e-6)
}

func TestCalculate_CustomRateTable(t *testing.T) {
	e := NewEngine(WithRateTable(DefaultRateTable().With(map[string]Rate{
		"rice": {YieldPerHectare: 5, Unit: "tons", PricePerUnit: 10000},
	})))
	p := profileWithLand(1, "hectares", cropWithArea("rice", 1, "hectares"))

	y := e.Calculate(p, 0).YieldEstimates

	assert.InDelta(t, 5, y.TotalEstimatedYield, 1e-9)
	assert.InDelta(t, 50000, y.TotalEstimatedRevenue, 1e-9)
}

func TestCalculate_CustomRules(t *testing.T) {
	onlySoil := NewEngine(WithRules(RequestSoilTest))
	p := profileWithLand(1, "hectares", cropWithArea("rice", 1, "hectares"))

	recs := onlySoil.Calculate(p, 0).Recommendations
	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationSoilHealth, recs[0].Type)

	none := NewEngine(WithRules())
	assert.Empty(t, none.Calculate(p, 0).Recommendations)
}

func TestCalculate_ExtremeValuesStayEncodable(t *testing.T) {
	profiles := map[string]*models.FarmProfile{
		"huge total land":      profileWithLand(1e307, "hectares", crop("coconut", "", "", true)),
		"huge crop area":       profileWithLand(1, "hectares", cropWithArea("cardamom", 1e307, "hectares")),
		"area overflows unit":  profileWithLand(1, "acres", cropWithArea("rice", math.MaxFloat64, "hectares"), cropWithArea("wheat", math.MaxFloat64, "hectares")),
		"max float total land": profileWithLand(math.MaxFloat64, "acres", crop("pepper", "", "", true), crop("rubber", "", "", true)),
	}
	for name, p := range profiles {
		t.Run(name, func(t *testing.T) {
			p.LandDetails.WaterIrrigation = &models.WaterIrrigation{Source: "borewell", Method: "drip"}
			res := CalculateAnalyticsFromProfile(p, 50)

			_, err := json.Marshal(res)
			require.NoError(t, err)

			y := res.YieldEstimates
			for _, v := range []float64{y.TotalEstimatedYield, y.TotalEstimatedRevenue, y.BaseTotalYield, y.BaseTotalRevenue,
				res.CropAnalytics.LandUtilization.AllocatedLand, res.CropAnalytics.LandUtilization.UtilizationPercentage} {
				assert.False(t, math.IsInf(v, 0) || math.IsNaN(v))
			}
			for _, c := range y.CropWiseEstimates {
				assert.False(t, math.IsInf(c.EstimatedRevenue, 0) || math.IsNaN(c.EstimatedRevenue), c.CropName)
			}
		})
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	p := fullProfile()

	first, err := json.Marshal(CalculateAnalyticsFromProfile(p, 75))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = json.Marshal(CalculateAnalyticsFromProfile(p, 75))
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.JSONEq(t, string(first), string(r))
	}
}

func TestCalculate_UnrecognizedEnumsAreReported(t *testing.T) {
	p := profileWithLand(2, "hectares", crop("rice", "food_grain", "kharif", true))
	p.LandDetails.SoilType = "volcanic"

	res := CalculateAnalyticsFromProfile(p, 50)

	assert.Equal(t, 65, res.SoilAnalysis.HealthScore)
	assert.Contains(t, res.DataQuality.UnrecognizedValues, "landDetails.soilType: volcanic")
}

func TestCalculate_JSONShape(t *testing.T) {
	res := CalculateAnalyticsFromProfile(profileWithLand(1, "acres", crop("rice", "", "", true)), 10)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{
		"farmMetrics", "cropAnalytics", "yieldEstimates", "efficiencyMetrics", "soilAnalysis",
		"economicAnalysis", "infrastructureScore", "recentActivities", "recommendations", "dataQuality",
	} {
		assert.Contains(t, doc, key)
	}
	soil := doc["soilAnalysis"].(map[string]any)
	assert.Equal(t, "unknown", soil["ph"])
}

func TestCalculate_ScoresStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pick := func(opts ...string) string { return opts[rng.Intn(len(opts))] }
	maybe := func(v float64) *float64 {
		if rng.Intn(3) == 0 {
			return nil
		}
		return &v
	}

	for i := 0; i < 300; i++ {
		p := &models.FarmProfile{
			LandDetails: &models.LandDetails{
				TotalLandSize: &models.Area{Value: rng.Float64()*60 - 5, Unit: pick("acres", "hectares", "bigha", "", "cents")},
				SoilType:      pick("loamy", "clay", "", "volcanic"),
				SoilDetails:   &models.SoilDetails{PH: maybe(rng.Float64() * 14), OrganicCarbon: maybe(rng.Float64())},
				WaterIrrigation: &models.WaterIrrigation{
					Source: pick("borewell", "canal", "rainfed", ""),
					Method: pick("drip", "flood", "sprinkler", "bucket"),
				},
				FarmingInfrastructure: &models.FarmingInfrastructure{
					HasWarehouses:         rng.Intn(2) == 0,
					HasProcessingUnits:    rng.Intn(2) == 0,
					WarehouseCapacity:     maybe(rng.Float64() * 100),
					Electricity:           pick("24x7", "regular", "none", ""),
					FarmRoads:             pick("good", "fair", "poor", "mud"),
					NearestMarketDistance: maybe(rng.Float64() * 120),
				},
				EquipmentInputs: &models.EquipmentInputs{TractorAccess: pick("own", "rent", ""), PumpSetAccess: pick("own", "none")},
				EconomicInfo:    &models.EconomicInfo{MonthlyInputCosts: pick("under_5k", "above_50k", "?"), MarketingMethod: pick("mandi", "online", "")},
			},
			FarmingExperience: &models.FarmingExperience{YearsOfExperience: maybe(rng.Float64() * 60)},
		}
		for n := rng.Intn(7); n > 0; n-- {
			c := crop(pick("rice", "pepper", "x"), pick("spices", "food_grain", ""), pick("rabi", "zaid", ""), rng.Intn(4) != 0)
			if rng.Intn(2) == 0 {
				c.AreaAllocated = &models.Area{Value: rng.Float64() * 20, Unit: pick("acres", "", "guntha")}
			}
			p.CropsGrown = append(p.CropsGrown, c)
		}

		res := CalculateAnalyticsFromProfile(p, rng.Float64()*140-20)

		for name, v := range map[string]int{
			"overall":         res.EfficiencyMetrics.OverallEfficiency,
			"land":            res.EfficiencyMetrics.LandEfficiency,
			"experience":      res.EfficiencyMetrics.ExperienceScore,
			"diversification": res.EfficiencyMetrics.DiversificationScore,
			"infrastructure":  res.EfficiencyMetrics.InfrastructureScore,
			"water":           res.EfficiencyMetrics.WaterUsageEfficiency,
			"soil":            res.EfficiencyMetrics.SoilHealthScore,
			"infraScore":      res.InfrastructureScore.Score,
			"quality":         res.DataQuality.Score,
			"marketing":       res.EconomicAnalysis.MarketingEfficiency,
		} {
			assert.GreaterOrEqual(t, v, 0, name)
			assert.LessOrEqual(t, v, 100, name)
		}
		u := res.CropAnalytics.LandUtilization
		assert.GreaterOrEqual(t, u.UtilizationPercentage, 0.0)
		assert.LessOrEqual(t, u.UtilizationPercentage, 100.0)
		assert.GreaterOrEqual(t, u.AvailableLand, 0.0)
		assert.GreaterOrEqual(t, res.YieldEstimates.InfrastructureMultiplier, 1.0)
		assert.LessOrEqual(t, len(res.RecentActivities), 5)
		assert.GreaterOrEqual(t, res.YieldEstimates.TotalEstimatedYield, 0.0)
	}
}

func fullProfile() *models.FarmProfile {
	p := profileWithLand(6, "acres",
		models.Crop{CropName: "coconut", CropType: "plantation", Season: "year_round", IsActive: true, AreaAllocated: &models.Area{Value: 2, Unit: "acres"}},
		models.Crop{CropName: "banana", CropType: "horticulture", Season: "kharif", IsActive: true},
		models.Crop{CropName: "ginger", CropType: "spices", Season: "rabi", IsActive: true, AreaAllocated: &models.Area{Value: 50, Unit: "guntha"}},
	)
	p.LandDetails.FarmName = "Green Acres"
	p.LandDetails.SoilType = "laterite"
	p.LandDetails.SoilDetails = &models.SoilDetails{PH: ptr(5.6), OrganicCarbon: ptr(0.4)}
	p.LandDetails.WaterIrrigation = &models.WaterIrrigation{Source: "well", Method: "sprinkler"}
	p.LandDetails.FarmingInfrastructure = &models.FarmingInfrastructure{Electricity: "regular", FarmRoads: "fair"}
	p.FarmingExperience = &models.FarmingExperience{YearsOfExperience: ptr(12.0), FarmingType: "organic"}
	p.Location = &models.Location{State: "Kerala", District: "Wayanad"}
	return p
}
