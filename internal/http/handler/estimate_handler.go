package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/service"
)

// EstimateHandler handles HTTP requests for stored estimates
type EstimateHandler struct {
	estimateService *service.EstimateService
	logger          *zap.Logger
}

// NewEstimateHandler creates a new estimate handler instance
func NewEstimateHandler(estimateService *service.EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		logger:          logger,
	}
}

// List godoc
// @Summary List estimates
// @Description List saved estimates, most recently updated first
// @Tags Estimates
// @Produce json
// @Success 200 {object} domain.EstimateListResponse
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates [get]
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.estimateService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list estimates")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get estimate
// @Description Get a saved estimate with its customer, inputs and outputs
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} domain.EstimateDTO
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id} [get]
func (h *EstimateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	dto, err := h.estimateService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get estimate")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// Save godoc
// @Summary Save estimate
// @Description Create an estimate or replace the one with the same id. The original creation time is kept.
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.SaveEstimateRequest true "Estimate"
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates [post]
func (h *EstimateHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveEstimateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	dto, err := h.estimateService.Save(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "save estimate")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// Delete godoc
// @Summary Delete estimate
// @Description Delete a saved estimate and its archived exports
// @Tags Estimates
// @Param id path string true "Estimate ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id} [delete]
func (h *EstimateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.estimateService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "delete estimate")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Defaults godoc
// @Summary Wizard defaults
// @Description Starting inputs and an empty customer for a new estimate, plus the list of trades
// @Tags Estimates
// @Produce json
// @Success 200 {object} domain.DefaultsDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/defaults [get]
func (h *EstimateHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.estimateService.Defaults())
}

// GenerateAndSave godoc
// @Summary Generate and save estimate
// @Description Run the full estimate pipeline and store the result under a new id. Nothing is stored if generation fails.
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.GenerateAndSaveRequest true "Inputs and customer"
// @Success 201 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError "Model answer unusable"
// @Failure 503 {object} domain.APIError "Model unavailable"
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/generate [post]
func (h *EstimateHandler) GenerateAndSave(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateAndSaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	dto, err := h.estimateService.GenerateAndSave(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "generate estimate")
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}
