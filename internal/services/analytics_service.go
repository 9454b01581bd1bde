package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/kisanmitra/farm-analytics-api/internal/analytics"
	"github.com/kisanmitra/farm-analytics-api/internal/models"
	"github.com/kisanmitra/farm-analytics-api/internal/remote"
	"github.com/kisanmitra/farm-analytics-api/internal/repository"
	"github.com/kisanmitra/farm-analytics-api/pkg/logger"
	"gorm.io/gorm"
)

// Where an analytics result came from
const (
	SourceRemote  = "remote"
	SourceLocal   = "local"
	SourceDefault = "default"
)

// AnalyticsReport is a result plus the path that produced it. The result has
// the same shape whatever the source.
type AnalyticsReport struct {
	Analytics *models.AnalyticsResult `json:"analytics"`
	Source    string                  `json:"source"`
}

// ErrorReporter forwards unexpected but recovered failures to error tracking
type ErrorReporter func(ctx context.Context, err error)

// SentryReporter reports to the request's Sentry hub, or the global one.
// Without a configured DSN both are no-ops.
func SentryReporter(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

type AnalyticsService struct {
	profiles repository.ProfileRepository
	remote   remote.Client
	engine   *analytics.Engine
	report   ErrorReporter
}

func NewAnalyticsService(profiles repository.ProfileRepository, remoteClient remote.Client, engine *analytics.Engine) *AnalyticsService {
	if remoteClient == nil {
		remoteClient = remote.NewDisabled()
	}
	if engine == nil {
		engine = analytics.NewEngine()
	}
	return &AnalyticsService{
		profiles: profiles,
		remote:   remoteClient,
		engine:   engine,
		report:   SentryReporter,
	}
}

// WithReporter replaces the error reporter; tests use it to observe reports
func (s *AnalyticsService) WithReporter(r ErrorReporter) *AnalyticsService {
	s.report = r
	return s
}

// GetFarmerAnalytics resolves analytics for a farmer: the remote provider
// first, then the local engine over the stored profile, then the default
// result when nothing usable is stored. Remote failures are logged and
// reported but never returned.
func (s *AnalyticsService) GetFarmerAnalytics(ctx context.Context, farmerID uint) (*AnalyticsReport, error) {
	if s.remote.Enabled() {
		res, err := s.remote.FetchAnalytics(ctx, farmerID)
		if err == nil {
			return &AnalyticsReport{Analytics: res, Source: SourceRemote}, nil
		}
		if !errors.Is(err, remote.ErrDisabled) {
			logger.Warn("[AnalyticsService] Remote analytics failed, computing locally",
				"farmer_id", farmerID, "error", err)
			s.report(ctx, fmt.Errorf("remote analytics for farmer %d: %w", farmerID, err))
		}
	}

	profile, completion, err := s.loadProfile(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return s.computeReport(profile, completion), nil
}

// ComputeLocal runs the local engine over a caller-supplied profile
func (s *AnalyticsService) ComputeLocal(profile *models.FarmProfile, completion float64) *AnalyticsReport {
	return s.computeReport(profile, completion)
}

// GetProfile returns the stored profile row for a farmer
func (s *AnalyticsService) GetProfile(ctx context.Context, farmerID uint) (*models.FarmerProfile, error) {
	row, err := s.profiles.FindByFarmerID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return row, nil
}

// ListProfiles pages through stored profiles
func (s *AnalyticsService) ListProfiles(ctx context.Context, query *repository.ListQuery) ([]models.FarmerProfile, int64, error) {
	return s.profiles.List(ctx, query)
}

// SaveProfile stores a farmer's profile document. The document must be a
// non-empty JSON object that decodes as a profile; missing fields are fine.
func (s *AnalyticsService) SaveProfile(ctx context.Context, farmerID uint, document json.RawMessage, completion float64) (*models.FarmerProfile, error) {
	document = bytes.TrimSpace(document)
	if len(document) == 0 || bytes.Equal(document, []byte("null")) {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidProfile)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(document, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidProfile)
	}
	var doc models.FarmProfile
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if completion < 0 || completion > 100 {
		return nil, fmt.Errorf("%w: completionPercentage must be between 0 and 100", ErrInvalidProfile)
	}

	row, err := s.profiles.Upsert(ctx, farmerID, document, completion)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	logger.Info("[AnalyticsService] Profile saved", "farmer_id", farmerID, "completion", completion)
	return row, nil
}

// loadProfile returns the decoded profile, or nil when none is stored. A
// stored document that no longer decodes is treated as absent.
func (s *AnalyticsService) loadProfile(ctx context.Context, farmerID uint) (*models.FarmProfile, float64, error) {
	row, err := s.profiles.FindByFarmerID(ctx, farmerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to load profile for farmer %d: %w", farmerID, err)
	}
	profile, err := row.Decode()
	if err != nil {
		logger.Warn("[AnalyticsService] Stored profile does not decode, using defaults",
			"farmer_id", farmerID, "error", err)
		return nil, row.CompletionPercentage, nil
	}
	return profile, row.CompletionPercentage, nil
}

func (s *AnalyticsService) computeReport(profile *models.FarmProfile, completion float64) *AnalyticsReport {
	source := SourceLocal
	if !analytics.HasFarmData(profile) {
		source = SourceDefault
	}
	return &AnalyticsReport{
		Analytics: s.engine.Calculate(profile, completion),
		Source:    source,
	}
}
