package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/kisanmitra/farm-analytics-api/internal/jobs"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"gorm.io/gorm"
)

// In-memory ProfileRepository
type mockProfileRepository struct {
	repository.ProfileRepository
	mu       sync.Mutex
	rows     map[uint]*models.FarmerProfile
	findErr  error
	eachErr  error
	upserted []uint
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{rows: map[uint]*models.FarmerProfile{}}
}

func (m *mockProfileRepository) put(farmerID uint, document string, completion float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[farmerID] = &models.FarmerProfile{
		ID:                   farmerID,
		FarmerID:             farmerID,
		Document:             json.RawMessage(document),
		CompletionPercentage: completion,
	}
}

func (m *mockProfileRepository) FindByFarmerID(ctx context.Context, farmerID uint) (*models.FarmerProfile, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[farmerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *mockProfileRepository) Upsert(ctx context.Context, farmerID uint, document json.RawMessage, completion float64) (*models.FarmerProfile, error) {
	m.put(farmerID, string(document), completion)
	m.mu.Lock()
	m.upserted = append(m.upserted, farmerID)
	m.mu.Unlock()
	return m.FindByFarmerID(ctx, farmerID)
}

func (m *mockProfileRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.FarmerProfile, int64, error) {
	var out []models.FarmerProfile
	err := m.Each(ctx, 100, func(batch []models.FarmerProfile) error {
		out = append(out, batch...)
		return nil
	})
	return out, int64(len(out)), err
}

func (m *mockProfileRepository) Each(ctx context.Context, batchSize int, fn func(profiles []models.FarmerProfile) error) error {
	if m.eachErr != nil {
		return m.eachErr
	}
	m.mu.Lock()
	all := make([]models.FarmerProfile, 0, len(m.rows))
	for _, r := range m.rows {
		all = append(all, *r)
	}
	m.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	for start := 0; start < len(all); start += batchSize {
		end := start + batchSize
		if end > len(all) {
			end = len(all)
		}
		if err := fn(all[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// In-memory ExportJobRepository
type mockExportJobRepository struct {
	repository.ExportJobRepository
	mu      sync.Mutex
	jobs    map[string]models.ExportJob
	updates []string
	listErr error
}

func newMockExportJobRepository() *mockExportJobRepository {
	return &mockExportJobRepository{jobs: map[string]models.ExportJob{}}
}

func (m *mockExportJobRepository) Create(ctx context.Context, job *models.ExportJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	return nil
}

func (m *mockExportJobRepository) FindByID(ctx context.Context, id string) (*models.ExportJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &job, nil
}

func (m *mockExportJobRepository) FindByStatus(ctx context.Context, status string) ([]models.ExportJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ExportJob
	for _, job := range m.jobs {
		if job.Status == status {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockExportJobRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.ExportJob, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ExportJob
	for _, job := range m.jobs {
		if st := query.Filters["status"]; st != "" && job.Status != st {
			continue
		}
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *mockExportJobRepository) Update(ctx context.Context, job *models.ExportJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	m.updates = append(m.updates, job.Status)
	return nil
}

// Records audit entries
type mockAuditRepository struct {
	repository.AuditRepository
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *mockAuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *log)
	return nil
}

// Collects enqueued jobs so tests run them explicitly
type mockQueue struct {
	names []string
	jobs  []jobs.Job
	err   error
}

func (q *mockQueue) Enqueue(name string, job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.names = append(q.names, name)
	q.jobs = append(q.jobs, job)
	return nil
}

// FileStore whose uploads always fail
type failingStore struct {
	FileStore
}

func (failingStore) UploadFromBytes(data []byte, filename string, subDir string) (string, error) {
	return "", errors.New("disk full")
}
