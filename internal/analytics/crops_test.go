package analytics

import (
	"testing"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCropDiversity_Bands(t *testing.T) {
	tests := []struct {
		count    int
		expected int
	}{
		{0, 0}, {1, 25}, {2, 60}, {3, 60}, {4, 90}, {12, 90}, {-1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CropDiversity(tt.count), "count=%d", tt.count)
	}
}

func TestCropDiversity_Monotonic(t *testing.T) {
	prev := CropDiversity(0)
	for n := 1; n <= 20; n++ {
		cur := CropDiversity(n)
		assert.GreaterOrEqual(t, cur, prev, "n=%d", n)
		prev = cur
	}
}

func TestSeasonalDistribution_DefaultsToKharif(t *testing.T) {
	crops := []models.Crop{
		crop("rice", "", "kharif", true),
		crop("wheat", "", "rabi", true),
		crop("cucumber", "", "zaid", true),
		crop("coconut", "", "year_round", true),
		crop("millet", "", "", true),
		crop("onion", "", "monsoon-ish", true),
	}

	d := SeasonalDistributionOf(crops)
	assert.Equal(t, models.SeasonalDistribution{Kharif: 3, Rabi: 1, Zaid: 1, YearRound: 1}, d)
}

func TestCropTypeDistribution_DefaultsToOther(t *testing.T) {
	crops := []models.Crop{
		crop("rice", "food_grain", "", true),
		crop("cotton", "cash_crop", "", true),
		crop("rubber", "plantation", "", true),
		crop("mango", "horticulture", "", true),
		crop("pepper", "spices", "", true),
		crop("mystery", "", "", true),
		crop("fodder", "fodder", "", true),
	}

	d := CropTypeDistributionOf(crops)
	assert.Equal(t, models.CropTypeDistribution{
		FoodGrain: 1, CashCrop: 1, Plantation: 1, Horticulture: 1, Spices: 1, Other: 2,
	}, d)
}

func TestLandUtilization(t *testing.T) {
	tests := []struct {
		name              string
		crops             []models.Crop
		total             float64
		unit              string
		expectedAllocated float64
		expectedAvailable float64
		expectedPct       float64
	}{
		{
			name:              "crops without area are excluded",
			crops:             []models.Crop{crop("rice", "", "", true)},
			total:             5,
			unit:              "acres",
			expectedAllocated: 0,
			expectedAvailable: 5,
			expectedPct:       0,
		},
		{
			name:              "explicit areas are summed in the land unit",
			crops:             []models.Crop{cropWithArea("rice", 2, "acres"), cropWithArea("banana", 1, "acres")},
			total:             5,
			unit:              "acres",
			expectedAllocated: 3,
			expectedAvailable: 2,
			expectedPct:       60,
		},
		{
			name:              "area without unit inherits the land unit",
			crops:             []models.Crop{cropWithArea("rice", 1, "")},
			total:             4,
			unit:              "bigha",
			expectedAllocated: 1,
			expectedAvailable: 3,
			expectedPct:       25,
		},
		{
			name:              "over allocation clamps",
			crops:             []models.Crop{cropWithArea("rice", 8, "acres")},
			total:             5,
			unit:              "acres",
			expectedAllocated: 8,
			expectedAvailable: 0,
			expectedPct:       100,
		},
		{
			name:              "no land recorded",
			crops:             []models.Crop{cropWithArea("rice", 1, "acres")},
			total:             0,
			unit:              "acres",
			expectedAllocated: 1,
			expectedAvailable: 0,
			expectedPct:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := LandUtilizationOf(tt.crops, tt.total, tt.unit)
			assert.InDelta(t, tt.expectedAllocated, u.AllocatedLand, 1e-9)
			assert.InDelta(t, tt.expectedAvailable, u.AvailableLand, 1e-9)
			assert.InDelta(t, tt.expectedPct, u.UtilizationPercentage, 1e-9)
			assert.Equal(t, tt.unit, u.Unit)
			if u.AllocatedLand <= u.TotalLand {
				assert.InDelta(t, u.TotalLand, u.AllocatedLand+u.AvailableLand, 1e-9)
			}
		})
	}
}

func TestLandUtilization_MixedUnits(t *testing.T) {
	crops := []models.Crop{cropWithArea("rice", 1, "hectares")}
	u := LandUtilizationOf(crops, 5, "acres")
	assert.InDelta(t, 2.471, u.AllocatedLand, 1e-9)
	assert.InDelta(t, 49.42, u.UtilizationPercentage, 1e-9)
}
