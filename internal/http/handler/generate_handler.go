package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/service"
)

// GenerateHandler serves the stateless pipeline endpoints
type GenerateHandler struct {
	estimateService *service.EstimateService
	logger          *zap.Logger
}

// NewGenerateHandler creates a new generate handler instance
func NewGenerateHandler(estimateService *service.EstimateService, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		estimateService: estimateService,
		logger:          logger,
	}
}

// Generate godoc
// @Summary Generate estimate outputs
// @Description Price the job, look up its location and ask the model for scope, assumptions, exclusions, BOM and permit guidance. Nothing is stored.
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body domain.GenerateRequest true "Job inputs"
// @Success 200 {object} domain.GenerateResponse
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError "Model answer unusable"
// @Failure 503 {object} domain.APIError "Model unavailable"
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /ai/generate [post]
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.estimateService.Generate(r.Context(), req.Inputs)
	if err != nil {
		respondServiceError(w, h.logger, err, "generate estimate")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// PricingPreview godoc
// @Summary Preview pricing
// @Description Compute totals for the inputs without calling the model
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body domain.PricingPreviewRequest true "Job inputs"
// @Success 200 {object} domain.Totals
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /pricing/preview [post]
func (h *GenerateHandler) PricingPreview(w http.ResponseWriter, r *http.Request) {
	var req domain.PricingPreviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	totals, err := h.estimateService.PricingPreview(req.Inputs)
	if err != nil {
		respondServiceError(w, h.logger, err, "preview pricing")
		return
	}
	respondJSON(w, http.StatusOK, totals)
}
