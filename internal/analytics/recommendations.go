package analytics

import (
	"strings"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
)

// Recommendation types
const (
	RecommendationDiversification = "diversification"
	RecommendationLandUse         = "land_use"
	RecommendationRegional        = "regional"
	RecommendationInfrastructure  = "infrastructure"
	RecommendationWater           = "water_management"
	RecommendationSoilHealth      = "soil_health"
	RecommendationSetup           = "setup"
)

// Insights is the intermediate analytics a Rule can inspect
type Insights struct {
	Profile        *models.FarmProfile
	ActiveCrops    []models.Crop
	TotalHectares  float64
	Crops          models.CropAnalytics
	Yield          models.YieldEstimates
	Efficiency     models.EfficiencyMetrics
	Soil           models.SoilAnalysis
	Economics      models.EconomicAnalysis
	Infrastructure models.InfrastructureScore
}

// Rule yields at most one recommendation
type Rule func(in *Insights) (models.Recommendation, bool)

// DefaultRules are evaluated in this order; output keeps the order.
var DefaultRules = []Rule{
	DiversifyCrops,
	UseIdleLand,
	GrowRegionalSpices,
	AddStorage,
	ImproveIrrigation,
	RequestSoilTest,
}

// Recommend runs every rule and collects what fires. Rules are independent:
// there is no de-duplication or re-ranking.
func Recommend(in *Insights, rules []Rule) []models.Recommendation {
	out := []models.Recommendation{}
	for _, rule := range rules {
		if rec, ok := rule(in); ok {
			out = append(out, rec)
		}
	}
	return out
}

// DiversifyCrops fires when fewer than two crops are active
func DiversifyCrops(in *Insights) (models.Recommendation, bool) {
	if len(in.ActiveCrops) >= 2 {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Type:        RecommendationDiversification,
		Priority:    models.PriorityHigh,
		Title:       "Diversify your crops",
		Description: "Growing a single crop exposes the farm to price swings and pest outbreaks.",
		Action:      "Add at least one crop from a different season or crop type.",
	}, true
}

// UseIdleLand fires for holdings over 2 hectares carrying fewer than three
// active crops
func UseIdleLand(in *Insights) (models.Recommendation, bool) {
	if in.TotalHectares <= 2 || len(in.ActiveCrops) >= 3 {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Type:        RecommendationLandUse,
		Priority:    models.PriorityMedium,
		Title:       "Make better use of your land",
		Description: "Your holding is larger than 2 hectares but carries fewer than 3 crops.",
		Action:      "Consider intercropping or a short-duration crop on unused land.",
	}, true
}

// GrowRegionalSpices fires for Kerala farms with no spice crop
func GrowRegionalSpices(in *Insights) (models.Recommendation, bool) {
	p := in.Profile
	if p == nil || p.Location == nil || !strings.EqualFold(strings.TrimSpace(p.Location.State), "kerala") {
		return models.Recommendation{}, false
	}
	for _, c := range in.ActiveCrops {
		if isSpice(c) {
			return models.Recommendation{}, false
		}
	}
	return models.Recommendation{
		Type:        RecommendationRegional,
		Priority:    models.PriorityMedium,
		Title:       "Consider spice cultivation",
		Description: "Kerala's climate suits high-value spices such as pepper and cardamom.",
		Action:      "Talk to the local Krishi Bhavan about spice planting material.",
	}, true
}

// AddStorage fires unless the farm records warehouses
func AddStorage(in *Insights) (models.Recommendation, bool) {
	p := in.Profile
	if p != nil && p.LandDetails != nil && p.LandDetails.FarmingInfrastructure != nil &&
		p.LandDetails.FarmingInfrastructure.HasWarehouses {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Type:        RecommendationInfrastructure,
		Priority:    models.PriorityMedium,
		Title:       "Add storage capacity",
		Description: "Without storage, produce has to be sold at harvest-time prices.",
		Action:      "Look into warehouse subsidies or shared cooperative storage.",
	}, true
}

// ImproveIrrigation fires when the irrigation method is flood or unrecorded
func ImproveIrrigation(in *Insights) (models.Recommendation, bool) {
	var method string
	if p := in.Profile; p != nil && p.LandDetails != nil && p.LandDetails.WaterIrrigation != nil {
		method = normalizeKey(p.LandDetails.WaterIrrigation.Method)
	}
	if method != "" && method != "flood" {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Type:        RecommendationWater,
		Priority:    models.PriorityHigh,
		Title:       "Switch to efficient irrigation",
		Description: "Flood irrigation wastes water and leaches nutrients.",
		Action:      "Consider drip or sprinkler irrigation; micro-irrigation subsidies are available.",
	}, true
}

// RequestSoilTest fires when no soil pH is on record
func RequestSoilTest(in *Insights) (models.Recommendation, bool) {
	if in.Soil.PH.Recorded {
		return models.Recommendation{}, false
	}
	return models.Recommendation{
		Type:        RecommendationSoilHealth,
		Priority:    models.PriorityMedium,
		Title:       "Get your soil tested",
		Description: "No soil pH is on record, so fertilizer advice is generic.",
		Action:      "Collect a soil sample for a Soil Health Card test.",
	}, true
}

func isSpice(c models.Crop) bool {
	if normalizeKey(c.CropType) == models.CropTypeSpices {
		return true
	}
	return strings.Contains(strings.ToLower(c.CropName), "spice")
}

func setupRecommendation() models.Recommendation {
	return models.Recommendation{
		Type:        RecommendationSetup,
		Priority:    models.PriorityHigh,
		Title:       "Complete your farm profile",
		Description: "Add your land, crop and soil details to unlock farm analytics.",
		Action:      "Open your profile and fill in the land details and crops you grow.",
	}
}
