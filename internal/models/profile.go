package models

import (
	"encoding/json"
	"time"
)

// FarmerProfile is the persisted profile row. The profile itself is stored as a
// JSON document so partially filled forms round-trip untouched.
type FarmerProfile struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	FarmerID             uint            `gorm:"not null;uniqueIndex" json:"farmer_id"`
	Document             json.RawMessage `gorm:"type:jsonb" json:"document"`
	CompletionPercentage float64         `gorm:"default:0" json:"completion_percentage"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TableName specifies the table name for FarmerProfile
func (FarmerProfile) TableName() string {
	return "farmer_profiles"
}

// Decode parses the stored document. An empty document yields a nil profile.
func (p *FarmerProfile) Decode() (*FarmProfile, error) {
	if len(p.Document) == 0 || string(p.Document) == "null" {
		return nil, nil
	}
	var doc FarmProfile
	if err := json.Unmarshal(p.Document, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FarmProfile is the farmer's raw profile document. Every field is optional.
type FarmProfile struct {
	LandDetails       *LandDetails       `json:"landDetails,omitempty"`
	CropsGrown        []Crop             `json:"cropsGrown,omitempty"`
	FarmingExperience *FarmingExperience `json:"farmingExperience,omitempty"`
	Location          *Location          `json:"location,omitempty"`
}

type LandDetails struct {
	TotalLandSize         *Area                  `json:"totalLandSize,omitempty"`
	LandType              string                 `json:"landType,omitempty"`
	SoilType              string                 `json:"soilType,omitempty"`
	FarmName              string                 `json:"farmName,omitempty"`
	SoilDetails           *SoilDetails           `json:"soilDetails,omitempty"`
	WaterIrrigation       *WaterIrrigation       `json:"waterIrrigation,omitempty"`
	FarmingInfrastructure *FarmingInfrastructure `json:"farmingInfrastructure,omitempty"`
	EquipmentInputs       *EquipmentInputs       `json:"equipmentInputs,omitempty"`
	EconomicInfo          *EconomicInfo          `json:"economicInfo,omitempty"`
}

// Area is a land measurement in a named unit (acres, hectares, bigha, ...).
type Area struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type SoilDetails struct {
	PH            *float64 `json:"ph,omitempty"`
	SoilPH        *float64 `json:"soilPh,omitempty"`
	OrganicCarbon *float64 `json:"organicCarbon,omitempty"`
	Nitrogen      *float64 `json:"nitrogen,omitempty"`
	Phosphorus    *float64 `json:"phosphorus,omitempty"`
	Potassium     *float64 `json:"potassium,omitempty"`
}

// PHValue returns the recorded pH, preferring "ph" over the legacy "soilPh" key.
func (s *SoilDetails) PHValue() *float64 {
	if s == nil {
		return nil
	}
	if s.PH != nil {
		return s.PH
	}
	return s.SoilPH
}

type WaterIrrigation struct {
	Source       string `json:"source,omitempty"`
	Method       string `json:"method,omitempty"`
	Availability string `json:"availability,omitempty"`
}

type FarmingInfrastructure struct {
	HasWarehouses         bool     `json:"hasWarehouses"`
	HasProcessingUnits    bool     `json:"hasProcessingUnits"`
	WarehouseCapacity     *float64 `json:"warehouseCapacity,omitempty"`
	Electricity           string   `json:"electricity,omitempty"`
	FarmRoads             string   `json:"farmRoads,omitempty"`
	NearestMarketDistance *float64 `json:"nearestMarketDistance,omitempty"`
}

type EquipmentInputs struct {
	TractorAccess string `json:"tractorAccess,omitempty"`
	PumpSetAccess string `json:"pumpSetAccess,omitempty"`
}

type EconomicInfo struct {
	MonthlyInputCosts string `json:"monthlyInputCosts,omitempty"`
	MarketingMethod   string `json:"marketingMethod,omitempty"`
}

type Crop struct {
	CropName      string `json:"cropName"`
	CropType      string `json:"cropType,omitempty"`
	Season        string `json:"season,omitempty"`
	AreaAllocated *Area  `json:"areaAllocated,omitempty"`
	IsActive      bool   `json:"isActive"`
}

type FarmingExperience struct {
	YearsOfExperience *float64 `json:"yearsOfExperience,omitempty"`
	FarmingType       string   `json:"farmingType,omitempty"`
}

type Location struct {
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
}

// Crop type constants
const (
	CropTypeFoodGrain    = "food_grain"
	CropTypeCashCrop     = "cash_crop"
	CropTypePlantation   = "plantation"
	CropTypeHorticulture = "horticulture"
	CropTypeSpices       = "spices"
	CropTypeOther        = "other"
)

// Season constants
const (
	SeasonKharif    = "kharif"
	SeasonRabi      = "rabi"
	SeasonZaid      = "zaid"
	SeasonYearRound = "year_round"
)

// ActiveCrops returns the crops flagged active, in document order.
func (p *FarmProfile) ActiveCrops() []Crop {
	if p == nil {
		return nil
	}
	active := make([]Crop, 0, len(p.CropsGrown))
	for _, c := range p.CropsGrown {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active
}
