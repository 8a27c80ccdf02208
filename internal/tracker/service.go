// Package tracker contains the transport-agnostic orchestration for the
// application tracker: every read flows store-or-cache → filter → sort →
// paginate (or → analytics), and every write flows guard → rate limiter →
// store → cache invalidation.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobtrack/internal/analytics"
	"jobtrack/internal/cache"
	"jobtrack/internal/logging"
	"jobtrack/internal/pipeline"
	"jobtrack/internal/ratelimit"
	"jobtrack/internal/security"
	"jobtrack/internal/store"
	"jobtrack/pkg/models"
)

var (
	// ErrRateLimited is returned when a mutation exceeds its sliding-window
	// budget. Raised before any store call, so no partial writes occur.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidInput is returned for payloads that pass transport
	// validation but fail domain rules (unknown status, bad date).
	ErrInvalidInput = errors.New("invalid input")
)

// maxTextLen bounds free-text fields on input.
const maxTextLen = 120

// Limiter keys: budgets are per operation, so a burst of creates can't
// starve deletes.
const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Service wires the core components together. Construct one per process and
// inject fresh instances in tests; nothing here is a package-level singleton.
type Service struct {
	store    store.Store
	cache    *cache.SnapshotCache
	limiter  *ratelimit.Limiter
	logger   logging.Logger
	pageSize int
	maxPage  int
	now      func() time.Time
}

// Options configures a Service.
type Options struct {
	Store       store.Store
	Cache       *cache.SnapshotCache
	Limiter     *ratelimit.Limiter
	Logger      logging.Logger
	PageSize    int
	MaxPageSize int
	Now         func() time.Time
}

// NewService returns a configured Service.
func NewService(opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobalLogger()
	}
	return &Service{
		store:    opts.Store,
		cache:    opts.Cache,
		limiter:  opts.Limiter,
		logger:   opts.Logger,
		pageSize: opts.PageSize,
		maxPage:  opts.MaxPageSize,
		now:      opts.Now,
	}
}

// ListOptions carries the display-path parameters from the UI.
type ListOptions struct {
	Criteria models.FilterCriteria
	Sort     models.SortMode
	Page     int
	PageSize int
}

// ListResult is the filtered, sorted page plus its pagination state.
type ListResult struct {
	Records    []models.Application
	Pagination models.PaginationState
	FromCache  bool
}

// List runs the display pipeline over the current snapshot.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	records, fromCache, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if pageSize > s.maxPage {
		pageSize = s.maxPage
	}

	now := s.now()
	filtered := pipeline.ApplyFilters(records, opts.Criteria, now)
	sorted := pipeline.SortRecords(filtered, opts.Sort)
	state := pipeline.Paginate(len(sorted), pageSize, opts.Page)

	return &ListResult{
		Records:    pipeline.Slice(sorted, state),
		Pagination: state,
		FromCache:  fromCache,
	}, nil
}

// Analytics computes metrics and insights over the current snapshot.
func (s *Service) Analytics(ctx context.Context) (models.Metrics, []string, bool, error) {
	records, fromCache, err := s.snapshot(ctx)
	if err != nil {
		return models.Metrics{}, nil, false, err
	}

	metrics := analytics.ComputeMetrics(records, s.now())
	return metrics, analytics.GenerateInsights(metrics), fromCache, nil
}

// Get returns one record by id, validating the identifier first.
func (s *Service) Get(ctx context.Context, id string) (*models.Application, error) {
	path, err := security.RecordPath(security.CollectionApplications, id)
	if err != nil {
		return nil, err
	}
	_ = path // the redis store addresses records as collection+field

	return s.store.Get(ctx, security.CollectionApplications, id)
}

// Create validates, sanitizes and stores a new application.
func (s *Service) Create(ctx context.Context, req models.CreateApplicationRequest) (*models.Application, error) {
	app, err := s.buildRecord(req)
	if err != nil {
		return nil, err
	}

	if !s.limiter.IsAllowed(opCreate) {
		return nil, fmt.Errorf("%w: too many creates", ErrRateLimited)
	}

	id, err := s.store.Create(ctx, security.CollectionApplications, *app)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	created, err := s.store.Get(ctx, security.CollectionApplications, id)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(map[string]interface{}{
		"record_id": id,
		"company":   created.Company,
	}).Info("Application created")
	return created, nil
}

// Update applies a partial update after guard and limiter checks. The store
// confirms existence before writing.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateApplicationRequest) (*models.Application, error) {
	if _, err := security.RecordPath(security.CollectionApplications, id); err != nil {
		return nil, err
	}

	patch, err := s.buildPatch(req)
	if err != nil {
		return nil, err
	}

	if !s.limiter.IsAllowed(opUpdate) {
		return nil, fmt.Errorf("%w: too many updates", ErrRateLimited)
	}

	if err := s.store.Update(ctx, security.CollectionApplications, id, *patch); err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	return s.store.Get(ctx, security.CollectionApplications, id)
}

// Delete removes a record after confirming it exists.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := security.RecordPath(security.CollectionApplications, id); err != nil {
		return err
	}

	if !s.limiter.IsAllowed(opDelete) {
		return fmt.Errorf("%w: too many deletes", ErrRateLimited)
	}

	if _, err := s.store.Get(ctx, security.CollectionApplications, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, security.CollectionApplications, id); err != nil {
		return err
	}
	s.cache.Invalidate()

	s.logger.WithField("record_id", id).Info("Application deleted")
	return nil
}

// CacheStatus exposes cache freshness for diagnostics.
func (s *Service) CacheStatus() cache.Status {
	return s.cache.Status()
}

// Ping reports store reachability.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Run subscribes to the store's snapshot stream and keeps the cache warm
// until ctx is cancelled. Intended to run in its own goroutine.
func (s *Service) Run(ctx context.Context) error {
	snapshots, err := s.store.Subscribe(ctx, security.CollectionApplications)
	if err != nil {
		return err
	}

	s.logger.Info("Snapshot subscription started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Snapshot subscription stopped")
			return ctx.Err()
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			s.cache.Save(snapshot)
			s.logger.WithField("records", len(snapshot)).Debug("Cache refreshed from store event")
		}
	}
}

// snapshot serves the freshest record set available: a valid cache entry
// wins, otherwise the store is read and the cache repopulated.
func (s *Service) snapshot(ctx context.Context) ([]models.Application, bool, error) {
	if records, ok := s.cache.Load(); ok {
		return records, true, nil
	}

	records, err := s.store.List(ctx, security.CollectionApplications)
	if err != nil {
		return nil, false, err
	}
	s.cache.Save(records)
	return records, false, nil
}

func (s *Service) buildRecord(req models.CreateApplicationRequest) (*models.Application, error) {
	status := models.StatusApplied
	if req.Status != "" {
		parsed, err := models.ParseStatus(req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = parsed
	}

	company := security.SanitizeText(req.Company, maxTextLen)
	role := security.SanitizeText(req.Role, maxTextLen)
	if company == "" || role == "" {
		return nil, fmt.Errorf("%w: company and role must not be empty after sanitization", ErrInvalidInput)
	}

	tags, err := sanitizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	return &models.Application{
		Company:         company,
		Role:            role,
		DateApplied:     req.DateApplied,
		Status:          status,
		VisaSponsorship: req.VisaSponsorship,
		Tags:            tags,
	}, nil
}

func (s *Service) buildPatch(req models.UpdateApplicationRequest) (*models.ApplicationPatch, error) {
	patch := &models.ApplicationPatch{
		DateApplied:     req.DateApplied,
		VisaSponsorship: req.VisaSponsorship,
	}

	if req.Company != nil {
		company := security.SanitizeText(*req.Company, maxTextLen)
		if company == "" {
			return nil, fmt.Errorf("%w: company must not be empty after sanitization", ErrInvalidInput)
		}
		patch.Company = &company
	}
	if req.Role != nil {
		role := security.SanitizeText(*req.Role, maxTextLen)
		if role == "" {
			return nil, fmt.Errorf("%w: role must not be empty after sanitization", ErrInvalidInput)
		}
		patch.Role = &role
	}
	if req.Status != nil {
		parsed, err := models.ParseStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patch.Status = &parsed
	}
	if req.Tags != nil {
		tags, err := sanitizeTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		patch.Tags = &tags
	}
	return patch, nil
}

func sanitizeTags(tags []models.Tag) ([]models.Tag, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	out := make([]models.Tag, 0, len(tags))
	for _, tag := range tags {
		if err := security.ValidateID(tag.ID); err != nil {
			return nil, err
		}
		tag.Label = security.SanitizeText(tag.Label, maxTextLen)
		out = append(out, tag)
	}
	return out, nil
}
