package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/export"
	"github.com/straye-as/estimate-api/internal/service"
)

// ExportHandler serves estimate downloads
type ExportHandler struct {
	exportService *service.ExportService
	logger        *zap.Logger
}

// NewExportHandler creates a new export handler instance
func NewExportHandler(exportService *service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// BOM godoc
// @Summary Download bill of materials
// @Description The estimate's BOM as CSV with a name,qty,unit,notes header
// @Tags Export
// @Produce text/csv
// @Param id path string true "Estimate ID"
// @Success 200 {file} file
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /export/bom/{id} [get]
func (h *ExportHandler) BOM(w http.ResponseWriter, r *http.Request) {
	art, err := h.exportService.BOMCSV(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "export bill of materials")
		return
	}
	writeArtifact(w, art)
}

// Proposal godoc
// @Summary Download proposal
// @Description A one-page US Letter PDF proposal with customer, price summary, scope, assumptions and exclusions
// @Tags Export
// @Produce application/pdf
// @Param id path string true "Estimate ID"
// @Success 200 {file} file
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /export/pdf/{id} [get]
func (h *ExportHandler) Proposal(w http.ResponseWriter, r *http.Request) {
	art, err := h.exportService.ProposalPDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "export proposal")
		return
	}
	writeArtifact(w, art)
}

func writeArtifact(w http.ResponseWriter, art *service.Artifact) {
	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", export.ContentDisposition(art.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Body)
}
