package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/logger"
	"github.com/straye-as/estimate-api/internal/mapper"
	"github.com/straye-as/estimate-api/internal/pricing"
)

// OutputBuilder runs the estimate pipeline
type OutputBuilder interface {
	BuildOutput(ctx context.Context, in domain.Inputs) (domain.Output, error)
}

// EstimateStore persists estimate records. GetByID returns
// gorm.ErrRecordNotFound for unknown ids; Delete reports whether a row existed.
type EstimateStore interface {
	GetByID(ctx context.Context, id string) (*domain.EstimateRecord, error)
	List(ctx context.Context) ([]domain.EstimateSummary, error)
	Upsert(ctx context.Context, rec *domain.EstimateRecord) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ArchivePurger drops stored exports of a deleted estimate
type ArchivePurger interface {
	Purge(ctx context.Context, estimateID string) error
}

// EstimateService handles business logic for estimates
type EstimateService struct {
	estimateRepo EstimateStore
	builder      OutputBuilder
	archive      ArchivePurger
	logger       *zap.Logger
	newID        func() string
}

// NewEstimateService creates a new estimate service instance. archive may be
// nil when exports are not archived.
func NewEstimateService(
	estimateRepo EstimateStore,
	builder OutputBuilder,
	archive ArchivePurger,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
		estimateRepo: estimateRepo,
		builder:      builder,
		archive:      archive,
		logger:       logger,
		newID:        func() string { return "est-" + uuid.NewString() },
	}
}

// Generate runs the pipeline without storing anything
func (s *EstimateService) Generate(ctx context.Context, in domain.Inputs) (*domain.GenerateResponse, error) {
	out, err := s.builder.BuildOutput(ctx, in)
	if err != nil {
		return nil, err
	}
	return &domain.GenerateResponse{Outputs: out}, nil
}

// GenerateAndSave runs the pipeline and stores the result under a new id.
// Nothing is written unless a complete Output was produced and the caller is
// still waiting for it.
func (s *EstimateService) GenerateAndSave(ctx context.Context, req *domain.GenerateAndSaveRequest) (*domain.EstimateDTO, error) {
	if err := domain.Validate(req.Customer); err != nil {
		return nil, prefixFields(err, "customer")
	}

	out, err := s.builder.BuildOutput(ctx, req.Inputs)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := &domain.EstimateRecord{
		ID:       s.newID(),
		Title:    req.Inputs.JobTitle,
		Zip:      req.Inputs.Zip,
		Trade:    req.Inputs.Trade,
		Customer: req.Customer,
		Inputs:   req.Inputs,
		Outputs:  out,
	}
	if err := s.estimateRepo.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save estimate: %w", err)
	}

	logger.WithEstimate(s.logger, rec.ID).Info("Estimate generated and saved",
		zap.String("trade", string(rec.Trade)),
		zap.Float64("price", out.Totals.Price),
	)
	return s.GetByID(ctx, rec.ID)
}

// Save creates or replaces an estimate. The creation time of an existing
// estimate is kept.
func (s *EstimateService) Save(ctx context.Context, req *domain.SaveEstimateRequest) (*domain.EstimateDTO, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	rec := mapper.FromSaveRequest(req)
	if err := s.estimateRepo.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save estimate: %w", err)
	}

	logger.WithEstimate(s.logger, rec.ID).Info("Estimate saved")
	return s.GetByID(ctx, rec.ID)
}

// GetByID retrieves a stored estimate
func (s *EstimateService) GetByID(ctx context.Context, id string) (*domain.EstimateDTO, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToEstimateDTO(rec)
	return &dto, nil
}

func (s *EstimateService) getRecord(ctx context.Context, id string) (*domain.EstimateRecord, error) {
	rec, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstimateNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	return rec, nil
}

// List returns all estimate summaries, most recently updated first
func (s *EstimateService) List(ctx context.Context) (*domain.EstimateListResponse, error) {
	items, err := s.estimateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	resp := mapper.ToEstimateListResponse(items)
	return &resp, nil
}

// Delete removes an estimate and its archived exports
func (s *EstimateService) Delete(ctx context.Context, id string) error {
	existed, err := s.estimateRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete estimate: %w", err)
	}
	if !existed {
		return ErrEstimateNotFound
	}

	if s.archive != nil {
		// A leftover archive entry is harmless; the prune job removes it later
		if err := s.archive.Purge(ctx, id); err != nil {
			logger.WithEstimate(s.logger, id).Warn("Failed to purge archived exports", zap.Error(err))
		}
	}

	logger.WithEstimate(s.logger, id).Info("Estimate deleted")
	return nil
}

// PricingPreview computes totals without any network call
func (s *EstimateService) PricingPreview(in domain.Inputs) (*domain.Totals, error) {
	if err := domain.ValidateInputs(in); err != nil {
		return nil, err
	}
	totals := pricing.ComputeTotals(in)
	return &totals, nil
}

// Defaults returns the values a new estimate starts from
func (s *EstimateService) Defaults() *domain.DefaultsDTO {
	return &domain.DefaultsDTO{
		Inputs:   domain.DefaultInputs(),
		Customer: domain.Customer{},
		Trades:   append([]domain.Trade(nil), domain.Trades...),
	}
}

// prefixFields moves validation paths under a parent field
func prefixFields(err error, parent string) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	fields := make(map[string]string, len(verr.Fields))
	for k, v := range verr.Fields {
		fields[parent+"."+k] = v
	}
	return &domain.ValidationError{Fields: fields}
}
