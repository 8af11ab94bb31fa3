package handlers

import (
	"net/http"

	"crane-backend/internal/services"
)

type ExportHandler struct {
	Service *services.ExportService
}

func NewExportHandler(s *services.ExportService) *ExportHandler {
	return &ExportHandler{Service: s}
}

// Excel downloads the filtered order list as an .xlsx workbook.
func (h *ExportHandler) Excel(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.OrdersExcel(r.Context(), parseOrderFilter(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendFile(w, data, services.ExportFilename("orders", "xlsx"), xlsxContentType)
}

// PDF downloads the filtered order list as a PDF table.
func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.OrdersPDF(r.Context(), parseOrderFilter(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendFile(w, data, services.ExportFilename("orders", "pdf"), pdfContentType)
}

// GoogleSheets uploads the workbook to object storage and returns a link
// instead of streaming the file.
func (h *ExportHandler) GoogleSheets(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.UploadOrdersSheet(r.Context(), parseOrderFilter(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
