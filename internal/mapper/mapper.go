package mapper

import (
	"time"

	"github.com/straye-as/estimate-api/internal/domain"
)

// timestampLayout is ISO 8601 in UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ToEstimateDTO converts an EstimateRecord to EstimateDTO
func ToEstimateDTO(rec *domain.EstimateRecord) domain.EstimateDTO {
	return domain.EstimateDTO{
		ID:        rec.ID,
		CreatedAt: formatTime(rec.CreatedAt),
		UpdatedAt: formatTime(rec.UpdatedAt),
		Title:     rec.Title,
		Zip:       rec.Zip,
		Trade:     rec.Trade,
		Customer:  rec.Customer,
		Inputs:    rec.Inputs,
		Outputs:   rec.Outputs,
	}
}

// ToEstimateSummaryDTO converts an EstimateSummary to its DTO
func ToEstimateSummaryDTO(s domain.EstimateSummary) domain.EstimateSummaryDTO {
	return domain.EstimateSummaryDTO{
		ID:        s.ID,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
		Title:     s.Title,
		Zip:       s.Zip,
		Trade:     s.Trade,
	}
}

// ToEstimateListResponse converts summaries to the list body. An empty list
// is encoded as [] rather than null.
func ToEstimateListResponse(items []domain.EstimateSummary) domain.EstimateListResponse {
	dtos := make([]domain.EstimateSummaryDTO, len(items))
	for i, s := range items {
		dtos[i] = ToEstimateSummaryDTO(s)
	}
	return domain.EstimateListResponse{Items: dtos}
}

// FromSaveRequest builds the record stored for a save request
func FromSaveRequest(req *domain.SaveEstimateRequest) *domain.EstimateRecord {
	return &domain.EstimateRecord{
		ID:       req.ID,
		Title:    req.Title,
		Zip:      req.Zip,
		Trade:    req.Trade,
		Customer: req.Customer,
		Inputs:   req.Inputs,
		Outputs:  req.Outputs,
	}
}
