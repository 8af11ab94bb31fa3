package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crane-backend/internal/authz"
	"crane-backend/internal/handlers"
	"crane-backend/internal/middleware"
	"crane-backend/internal/ws"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	userHandler *handlers.UserHandler,
	orderHandler *handlers.OrderHandler,
	exportHandler *handlers.ExportHandler,
	auditLogHandler *handlers.AuditLogHandler,
	rateHandler *handlers.RateHandler,
	reportHandler *handlers.ReportHandler,
	driverHandler *handlers.DriverHandler,
	importHandler *handlers.ImportHandler,
	healthHandler *handlers.HealthHandler,
	hub *ws.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Ops endpoints, outside /api and unauthenticated
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.Handle("/auth/me", authMiddleware.Authenticate(http.HandlerFunc(authHandler.Me))).Methods("GET")
	api.Handle("/auth/change-password", authMiddleware.Authenticate(http.HandlerFunc(authHandler.ChangePassword))).Methods("PUT")
	api.Handle("/auth/register",
		authMiddleware.RequirePermission(authz.ActionManageUsers)(http.HandlerFunc(userHandler.CreateUser))).Methods("POST")

	// 2FA enrollment, super_admin accounts only
	totpAPI := api.PathPrefix("/auth/totp").Subrouter()
	totpAPI.Use(authMiddleware.RequirePermission(authz.ActionManageTOTP))
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/verify", totpHandler.Verify).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	// Users
	usersAPI := api.PathPrefix("/users").Subrouter()
	usersAPI.Handle("", authMiddleware.RequirePermission(authz.ActionViewUsers)(http.HandlerFunc(userHandler.ListUsers))).Methods("GET")
	usersAPI.Handle("", authMiddleware.RequirePermission(authz.ActionManageUsers)(http.HandlerFunc(userHandler.CreateUser))).Methods("POST")
	usersAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionViewUsers)(http.HandlerFunc(userHandler.GetUser))).Methods("GET")
	usersAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionManageUsers)(http.HandlerFunc(userHandler.UpdateUser))).Methods("PUT")
	usersAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionDeleteUser)(http.HandlerFunc(userHandler.DeleteUser))).Methods("DELETE")
	usersAPI.Handle("/{id}/reset-password", authMiddleware.RequirePermission(authz.ActionResetUserPassword)(http.HandlerFunc(userHandler.ResetPassword))).Methods("PUT")

	// Orders. Literal paths register before the {id} catch-alls.
	ordersAPI := api.PathPrefix("/orders").Subrouter()
	ordersAPI.Handle("", authMiddleware.RequirePermission(authz.ActionViewOrders)(http.HandlerFunc(orderHandler.ListOrders))).Methods("GET")
	ordersAPI.Handle("", authMiddleware.RequirePermission(authz.ActionCreateOrder)(http.HandlerFunc(orderHandler.CreateOrder))).Methods("POST")
	ordersAPI.Handle("/bulk-delete", authMiddleware.RequirePermission(authz.ActionBulkDeleteOrders)(http.HandlerFunc(orderHandler.BulkDelete))).Methods("POST")
	ordersAPI.Handle("/delete-all", authMiddleware.RequirePermission(authz.ActionDeleteAllOrders)(http.HandlerFunc(orderHandler.DeleteAll))).Methods("DELETE")
	ordersAPI.Handle("/stats/summary", authMiddleware.RequirePermission(authz.ActionViewOrders)(http.HandlerFunc(orderHandler.StatsSummary))).Methods("GET")
	ordersAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionViewOrders)(http.HandlerFunc(orderHandler.GetOrder))).Methods("GET")
	ordersAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionEditOrder)(http.HandlerFunc(orderHandler.UpdateOrder))).Methods("PUT")
	ordersAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionDeleteOrder)(http.HandlerFunc(orderHandler.DeleteOrder))).Methods("DELETE")
	ordersAPI.Handle("/{id}/financials", authMiddleware.RequirePermission(authz.ActionViewFinancials)(http.HandlerFunc(orderHandler.Financials))).Methods("GET")
	ordersAPI.Handle("/{id}/payment-link", authMiddleware.RequirePermission(authz.ActionCreatePaymentLink)(http.HandlerFunc(orderHandler.CreatePaymentLink))).Methods("POST")

	// Exports
	exportAPI := api.PathPrefix("/export").Subrouter()
	exportAPI.Use(authMiddleware.RequirePermission(authz.ActionExportData))
	exportAPI.HandleFunc("/excel", exportHandler.Excel).Methods("GET")
	exportAPI.HandleFunc("/pdf", exportHandler.PDF).Methods("GET")
	exportAPI.HandleFunc("/googlesheets", exportHandler.GoogleSheets).Methods("GET")

	// Audit trail
	api.Handle("/audit-logs",
		authMiddleware.RequirePermission(authz.ActionViewAuditLogs)(http.HandlerFunc(auditLogHandler.List))).Methods("GET")

	// Rates
	ratesAPI := api.PathPrefix("/rates").Subrouter()
	ratesAPI.Handle("", authMiddleware.RequirePermission(authz.ActionViewRates)(http.HandlerFunc(rateHandler.List))).Methods("GET")
	ratesAPI.Handle("", authMiddleware.RequirePermission(authz.ActionManageRates)(http.HandlerFunc(rateHandler.Create))).Methods("POST")
	ratesAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionManageRates)(http.HandlerFunc(rateHandler.Update))).Methods("PUT")
	ratesAPI.Handle("/{id}", authMiddleware.RequirePermission(authz.ActionManageRates)(http.HandlerFunc(rateHandler.Delete))).Methods("DELETE")

	// Reports
	reportsAPI := api.PathPrefix("/reports").Subrouter()
	reportsAPI.Use(authMiddleware.RequirePermission(authz.ActionViewReports))
	reportsAPI.HandleFunc("/expense-by-driver", reportHandler.ExpenseByDriver).Methods("GET")
	reportsAPI.HandleFunc("/expense-by-driver/export", reportHandler.ExportExpenseByDriver).Methods("GET")
	reportsAPI.HandleFunc("/revenue-by-vehicle-type", reportHandler.RevenueByVehicleType).Methods("GET")
	reportsAPI.HandleFunc("/revenue-by-vehicle-type/export", reportHandler.ExportRevenueByVehicleType).Methods("GET")
	reportsAPI.HandleFunc("/revenue-by-towing-vehicle", reportHandler.RevenueByTowingVehicle).Methods("GET")
	reportsAPI.HandleFunc("/revenue-by-towing-vehicle/export", reportHandler.ExportRevenueByTowingVehicle).Methods("GET")
	reportsAPI.HandleFunc("/daily-summary", reportHandler.DailySummary).Methods("GET")
	reportsAPI.HandleFunc("/available-columns", reportHandler.AvailableColumns).Methods("GET")
	reportsAPI.HandleFunc("/custom", reportHandler.CustomReport).Methods("POST")
	reportsAPI.Handle("/custom/export", reportHandler.ExportCustomReport("")).Methods("POST")
	reportsAPI.HandleFunc("/custom-columns", reportHandler.CustomReport).Methods("POST")
	reportsAPI.Handle("/custom-columns/export/excel", reportHandler.ExportCustomReport("excel")).Methods("POST")
	reportsAPI.Handle("/custom-columns/export/pdf", reportHandler.ExportCustomReport("pdf")).Methods("POST")

	// Drivers
	driversAPI := api.PathPrefix("/drivers").Subrouter()
	driversAPI.Use(authMiddleware.RequirePermission(authz.ActionManageDrivers))
	driversAPI.HandleFunc("/list", driverHandler.List).Methods("GET")
	driversAPI.HandleFunc("/default-salary", driverHandler.SetDefaultSalary).Methods("POST")
	driversAPI.HandleFunc("/bulk-default-salary", driverHandler.BulkSetDefaultSalary).Methods("POST")

	// Legacy import
	importAPI := api.PathPrefix("/import").Subrouter()
	importAPI.Use(authMiddleware.RequirePermission(authz.ActionImportData))
	importAPI.HandleFunc("/upload", importHandler.Upload).Methods("POST")
	importAPI.HandleFunc("/history", importHandler.History).Methods("GET")

	// Live order events for the dashboard
	r.Handle("/ws/orders",
		authMiddleware.RequirePermission(authz.ActionViewOrders)(http.HandlerFunc(hub.HandleUpgrade))).Methods("GET")

	return r
}
