package handlers

import (
	"net/http"
	"strconv"

	"crane-backend/internal/metrics"
	"crane-backend/internal/middleware"
	"crane-backend/internal/models"
	"crane-backend/internal/services"
)

// maxImportSize caps legacy spreadsheet uploads at 20 MB.
const maxImportSize = 20 << 20

type ImportHandler struct {
	Service *services.ImportService
}

func NewImportHandler(s *services.ImportService) *ImportHandler {
	return &ImportHandler{Service: s}
}

// Upload accepts a multipart "file" field holding a .csv or .xlsx export.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "Invalid multipart form or file too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	email, _ := middleware.GetEmailFromContext(r.Context())

	result, err := h.Service.Upload(r.Context(), header.Filename, file, email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.ImportedRowsTotal.WithLabelValues("imported").Add(float64(result.SuccessCount))
	metrics.ImportedRowsTotal.WithLabelValues("rejected").Add(float64(result.TotalRecords - result.SuccessCount))

	writeJSON(w, http.StatusOK, result)
}

func (h *ImportHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.Service.History(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*models.ImportRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
