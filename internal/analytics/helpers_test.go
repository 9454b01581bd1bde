package analytics

import "github.com/kisanmitra/farm-analytics-api/internal/models"

func ptr[T any](v T) *T {
	return &v
}

func crop(name, cropType, season string, active bool) models.Crop {
	return models.Crop{CropName: name, CropType: cropType, Season: season, IsActive: active}
}

func cropWithArea(name string, value float64, unit string) models.Crop {
	return models.Crop{
		CropName:      name,
		IsActive:      true,
		AreaAllocated: &models.Area{Value: value, Unit: unit},
	}
}

func profileWithLand(value float64, unit string, crops ...models.Crop) *models.FarmProfile {
	return &models.FarmProfile{
		LandDetails: &models.LandDetails{
			TotalLandSize: &models.Area{Value: value, Unit: unit},
		},
		CropsGrown: crops,
	}
}
