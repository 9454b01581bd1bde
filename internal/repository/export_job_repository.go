package repository

import (
	"context"

	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"gorm.io/gorm"
)

// ExportJobRepository persists batch export jobs
type ExportJobRepository interface {
	Create(ctx context.Context, job *models.ExportJob) error
	FindByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, job *models.ExportJob) error
	List(ctx context.Context, query *ListQuery) ([]models.ExportJob, int64, error)
	FindByStatus(ctx context.Context, status string) ([]models.ExportJob, error)
}

type exportJobRepository struct {
	db *gorm.DB
}

// NewExportJobRepository creates a new export job repository
func NewExportJobRepository(db *gorm.DB) ExportJobRepository {
	return &exportJobRepository{db: db}
}

var exportJobSortable = map[string]bool{
	"created_at":   true,
	"completed_at": true,
	"status":       true,
}

func (r *exportJobRepository) Create(ctx context.Context, job *models.ExportJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *exportJobRepository) FindByID(ctx context.Context, id string) (*models.ExportJob, error) {
	var job models.ExportJob
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *exportJobRepository) Update(ctx context.Context, job *models.ExportJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *exportJobRepository) List(ctx context.Context, query *ListQuery) ([]models.ExportJob, int64, error) {
	var jobs []models.ExportJob
	var total int64

	db := r.db.WithContext(ctx).Model(&models.ExportJob{})

	// Apply status filter
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["format"] != "" {
		db = db.Where("format = ?", query.Filters["format"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.apply(db, exportJobSortable, "created_at DESC").Find(&jobs).Error
	return jobs, total, err
}

func (r *exportJobRepository) FindByStatus(ctx context.Context, status string) ([]models.ExportJob, error) {
	var jobs []models.ExportJob
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at").
		Find(&jobs).Error
	return jobs, err
}
