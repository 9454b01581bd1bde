package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository reads and writes stored farmer profile documents
type ProfileRepository interface {
	FindByFarmerID(ctx context.Context, farmerID uint) (*models.FarmerProfile, error)
	Upsert(ctx context.Context, farmerID uint, document json.RawMessage, completion float64) (*models.FarmerProfile, error)
	List(ctx context.Context, query *ListQuery) ([]models.FarmerProfile, int64, error)
	// Each streams every profile in primary key order, batchSize rows at a
	// time, stopping at the first error fn returns.
	Each(ctx context.Context, batchSize int, fn func(profiles []models.FarmerProfile) error) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

var profileSortable = map[string]bool{
	"farmer_id":             true,
	"completion_percentage": true,
	"updated_at":            true,
	"created_at":            true,
}

func (r *profileRepository) FindByFarmerID(ctx context.Context, farmerID uint) (*models.FarmerProfile, error) {
	var profile models.FarmerProfile
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, farmerID uint, document json.RawMessage, completion float64) (*models.FarmerProfile, error) {
	now := time.Now()
	profile := models.FarmerProfile{
		FarmerID:             farmerID,
		Document:             document,
		CompletionPercentage: completion,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "farmer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "completion_percentage", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return r.FindByFarmerID(ctx, farmerID)
}

func (r *profileRepository) List(ctx context.Context, query *ListQuery) ([]models.FarmerProfile, int64, error) {
	var profiles []models.FarmerProfile
	var total int64

	db := r.db.WithContext(ctx).Model(&models.FarmerProfile{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.apply(db, profileSortable, "farmer_id").Find(&profiles).Error
	return profiles, total, err
}

func (r *profileRepository) Each(ctx context.Context, batchSize int, fn func(profiles []models.FarmerProfile) error) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	var batch []models.FarmerProfile
	return r.db.WithContext(ctx).
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}
