package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crane-backend/internal/models"
	"crane-backend/internal/services"
	"crane-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
	Export  *services.ExportService
}

func NewReportHandler(s *services.ReportService, export *services.ExportService) *ReportHandler {
	return &ReportHandler{Service: s, Export: export}
}

// parseMonthQuery reads ?year=&month=, defaulting to the current IST month.
func parseMonthQuery(r *http.Request) (models.MonthQuery, error) {
	now := timeutil.Now()
	q := models.MonthQuery{Year: now.Year(), Month: now.Month()}

	if s := r.URL.Query().Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil || year < 2000 || year > 2100 {
			return q, fmt.Errorf("invalid year %q", s)
		}
		q.Year = year
	}
	if s := r.URL.Query().Get("month"); s != "" {
		month, err := strconv.Atoi(s)
		if err != nil || month < 1 || month > 12 {
			return q, fmt.Errorf("invalid month %q", s)
		}
		q.Month = time.Month(month)
	}
	return q, nil
}

func sendFile(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

func (h *ReportHandler) ExpenseByDriver(w http.ResponseWriter, r *http.Request) {
	q, err := parseMonthQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, err := h.Service.ExpenseByDriver(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []*models.ExpenseByDriverRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

var expenseByDriverColumns = []models.ReportColumn{
	{ID: "driver_name", Label: "Driver"},
	{ID: "order_count", Label: "Orders"},
	{ID: "total_toll", Label: "Toll", Numeric: true},
	{ID: "total_diesel", Label: "Diesel", Numeric: true},
	{ID: "total_incentive", Label: "Incentive", Numeric: true},
	{ID: "default_salary", Label: "Salary", Numeric: true},
	{ID: "total_expense", Label: "Total Expense", Numeric: true},
}

func (h *ReportHandler) ExportExpenseByDriver(w http.ResponseWriter, r *http.Request) {
	q, err := parseMonthQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, err := h.Service.ExpenseByDriver(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	table := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		table[i] = map[string]interface{}{
			"driver_name":     row.DriverName,
			"order_count":     row.OrderCount,
			"total_toll":      row.TotalToll,
			"total_diesel":    row.TotalDiesel,
			"total_incentive": row.TotalIncentive,
			"default_salary":  row.DefaultSalary,
			"total_expense":   row.TotalExpense,
		}
	}
	h.sendTable(w, r, "Driver Expenses", "expense_by_driver", expenseByDriverColumns, table)
}

var revenueByServiceTypeColumns = []models.ReportColumn{
	{ID: "service_type", Label: "Service Type"},
	{ID: "order_count", Label: "Orders"},
	{ID: "total_revenue", Label: "Revenue", Numeric: true},
	{ID: "total_profit", Label: "Profit", Numeric: true},
}

func (h *ReportHandler) RevenueByVehicleType(w http.ResponseWriter, r *http.Request) {
	q, err := parseMonthQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, err := h.Service.RevenueByServiceType(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []*models.RevenueByServiceTypeRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) ExportRevenueByVehicleType(w http.ResponseWriter, r *http.Request) {
	q, err := parseMonthQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, err := h.Service.RevenueByServiceType(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	table := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		table[i] = map[string]interface{}{
			"service_type":  row.ServiceType,
			"order_count":   row.OrderCount,
			"total_revenue": row.TotalRevenue,
			"total_profit":  row.TotalProfit,
		}
	}
	h.sendTable(w, r, "Revenue by Service Type", "revenue_by_vehicle_type", revenueByServiceTypeColumns, table)
}

var revenueByTowingVehicleColumns = []models.ReportColumn{
	{ID: "towing_vehicle", Label: "Towing Vehicle"},
	{ID: "order_count", Label: "Orders"},
	{ID: "total_revenue", Label: "Revenue", Numeric: true},
	{ID: "total_profit", Label: "Profit", Numeric: true},
}

func (h *ReportHandler) RevenueByTowingVehicle(w http.ResponseWriter, r *http.Request) {
	q, err := parseMonthQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, err := h.Service.RevenueByTowingVehicle(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []*models.RevenueByTowingVehicleRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) ExportRevenueByTowingVehicle(w http.ResponseWriter, r *http.Request) {
	q, err := parseMonthQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, err := h.Service.RevenueByTowingVehicle(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	table := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		table[i] = map[string]interface{}{
			"towing_vehicle": row.TowingVehicle,
			"order_count":    row.OrderCount,
			"total_revenue":  row.TotalRevenue,
			"total_profit":   row.TotalProfit,
		}
	}
	h.sendTable(w, r, "Revenue by Towing Vehicle", "revenue_by_towing_vehicle", revenueByTowingVehicleColumns, table)
}

// dailySummaryWindow resolves ?start_date/?end_date to IST day starts so
// the window lines up with the report's per-day grouping. The end day is
// inclusive; defaults cover the last 30 days.
func dailySummaryWindow(q url.Values) (from, to time.Time, err error) {
	now := timeutil.Now()
	from = timeutil.StartOfDay(now.AddDate(0, 0, -30))
	to = timeutil.StartOfDay(now)

	if s := q.Get("start_date"); s != "" {
		ft, perr := models.ParseFlexTime(s)
		if perr != nil {
			return from, to, perr
		}
		from = timeutil.StartOfDay(*ft.Ptr())
	}
	if s := q.Get("end_date"); s != "" {
		ft, perr := models.ParseFlexTime(s)
		if perr != nil {
			return from, to, perr
		}
		to = timeutil.StartOfDay(*ft.Ptr())
	}
	return from, to, nil
}

func (h *ReportHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := dailySummaryWindow(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.Service.DailySummary(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []*models.DailySummaryRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) AvailableColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.AvailableColumns())
}

func (h *ReportHandler) CustomReport(w http.ResponseWriter, r *http.Request) {
	var req models.CustomReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.Service.CustomReport(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ExportCustomReport renders a custom report as a downloadable file. The
// format comes from the query (?format=excel|pdf) or the route suffix.
func (h *ReportHandler) ExportCustomReport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CustomReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		report, err := h.Service.CustomReport(r.Context(), &req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		want := format
		if want == "" {
			want = r.URL.Query().Get("format")
		}
		switch want {
		case "pdf":
			data, err := h.Export.TablePDF("Custom Report", report.Columns, report.Rows)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			sendFile(w, data, services.ExportFilename("custom_report", "pdf"), pdfContentType)
		default:
			data, err := h.Export.TableExcel("Report", report.Columns, report.Rows)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			sendFile(w, data, services.ExportFilename("custom_report", "xlsx"), xlsxContentType)
		}
	}
}

func (h *ReportHandler) sendTable(w http.ResponseWriter, r *http.Request, title, prefix string, cols []models.ReportColumn, rows []map[string]interface{}) {
	switch r.URL.Query().Get("format") {
	case "pdf":
		data, err := h.Export.TablePDF(title, cols, rows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sendFile(w, data, services.ExportFilename(prefix, "pdf"), pdfContentType)
	default:
		data, err := h.Export.TableExcel(title, cols, rows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sendFile(w, data, services.ExportFilename(prefix, "xlsx"), xlsxContentType)
	}
}
