package analytics

import (
	"testing"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendationTypes(recs []models.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Type)
	}
	return out
}

func TestRecommend_KeepsRuleOrder(t *testing.T) {
	in := &Insights{Profile: &models.FarmProfile{}, TotalHectares: 5}

	recs := Recommend(in, DefaultRules)

	assert.Equal(t, []string{
		RecommendationDiversification,
		RecommendationLandUse,
		RecommendationInfrastructure,
		RecommendationWater,
		RecommendationSoilHealth,
	}, recommendationTypes(recs))
}

func TestRecommend_NoRulesFire(t *testing.T) {
	in := &Insights{
		Profile: &models.FarmProfile{
			LandDetails: &models.LandDetails{
				FarmingInfrastructure: &models.FarmingInfrastructure{HasWarehouses: true},
				WaterIrrigation:       &models.WaterIrrigation{Method: "drip"},
			},
		},
		ActiveCrops:   []models.Crop{crop("rice", "", "", true), crop("wheat", "", "", true), crop("gram", "", "", true)},
		TotalHectares: 10,
		Soil:          models.SoilAnalysis{PH: models.NewReading(ptr(6.8))},
	}

	recs := Recommend(in, DefaultRules)

	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestUseIdleLand(t *testing.T) {
	tests := []struct {
		name     string
		hectares float64
		crops    int
		fires    bool
	}{
		{name: "small farm", hectares: 2, crops: 1, fires: false},
		{name: "large farm few crops", hectares: 2.5, crops: 2, fires: true},
		{name: "large farm enough crops", hectares: 10, crops: 3, fires: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Insights{TotalHectares: tt.hectares, ActiveCrops: make([]models.Crop, tt.crops)}
			_, ok := UseIdleLand(in)
			assert.Equal(t, tt.fires, ok)
		})
	}
}

func TestGrowRegionalSpices(t *testing.T) {
	kerala := &models.FarmProfile{Location: &models.Location{State: "Kerala"}}

	tests := []struct {
		name    string
		profile *models.FarmProfile
		active  []models.Crop
		fires   bool
	}{
		{name: "kerala without spices", profile: kerala, active: []models.Crop{crop("rice", "food_grain", "", true)}, fires: true},
		{name: "kerala with spice type", profile: kerala, active: []models.Crop{crop("pepper", "spices", "", true)}, fires: false},
		{name: "kerala with spice in name", profile: kerala, active: []models.Crop{crop("Mixed Spice Garden", "", "", true)}, fires: false},
		{name: "state is case insensitive", profile: &models.FarmProfile{Location: &models.Location{State: " KERALA "}}, fires: true},
		{name: "other state", profile: &models.FarmProfile{Location: &models.Location{State: "Punjab"}}, fires: false},
		{name: "no location", profile: &models.FarmProfile{}, fires: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := GrowRegionalSpices(&Insights{Profile: tt.profile, ActiveCrops: tt.active})
			assert.Equal(t, tt.fires, ok)
			if ok {
				assert.Equal(t, RecommendationRegional, rec.Type)
				assert.Equal(t, models.PriorityMedium, rec.Priority)
			}
		})
	}
}

func TestImproveIrrigation(t *testing.T) {
	withMethod := func(m string) *Insights {
		return &Insights{Profile: &models.FarmProfile{
			LandDetails: &models.LandDetails{WaterIrrigation: &models.WaterIrrigation{Method: m}},
		}}
	}

	_, ok := ImproveIrrigation(withMethod("Flood"))
	assert.True(t, ok)
	_, ok = ImproveIrrigation(withMethod(""))
	assert.True(t, ok)
	_, ok = ImproveIrrigation(withMethod("sprinkler"))
	assert.False(t, ok)
	_, ok = ImproveIrrigation(&Insights{})
	assert.True(t, ok)
}

func TestRecommend_CustomRules(t *testing.T) {
	always := func(*Insights) (models.Recommendation, bool) {
		return models.Recommendation{Type: "custom", Priority: models.PriorityLow}, true
	}

	recs := Recommend(&Insights{}, []Rule{always, RequestSoilTest})

	assert.Equal(t, []string{"custom", RecommendationSoilHealth}, recommendationTypes(recs))
}
