package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
	"crane-backend/internal/timeutil"
)

var (
	ErrNoColumns     = errors.New("at least one column is required")
	ErrUnknownColumn = errors.New("unknown report column")
	ErrBadDateRange  = errors.New("start_date and end_date are required")
)

type ReportService struct {
	Orders  *repositories.OrderRepository
	Rates   *repositories.RateRepository
	Drivers *repositories.DriverRepository
}

func NewReportService(orders *repositories.OrderRepository, rates *repositories.RateRepository, drivers *repositories.DriverRepository) *ReportService {
	return &ReportService{Orders: orders, Rates: rates, Drivers: drivers}
}

func rateKey(firm, company, service string) string {
	return strings.ToLower(firm) + "|" + strings.ToLower(company) + "|" + strings.ToLower(service)
}

// rateMap preloads all rates so monthly aggregation doesn't hit the
// database once per order.
func (s *ReportService) rateMap(ctx context.Context) (map[string]*models.Rate, error) {
	rates, err := s.Rates.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*models.Rate, len(rates))
	for _, r := range rates {
		m[rateKey(r.NameOfFirm, r.CompanyName, r.ServiceType)] = r
	}
	return m, nil
}

func orderRate(o *models.Order, rates map[string]*models.Rate) *models.Rate {
	if o.OrderType != models.OrderTypeCompany {
		return nil
	}
	var firm, company, service string
	if o.NameOfFirm != nil {
		firm = *o.NameOfFirm
	}
	if o.CompanyName != nil {
		company = *o.CompanyName
	}
	if o.ServiceType != nil {
		service = *o.ServiceType
	}
	return rates[rateKey(firm, company, service)]
}

// ExpenseByDriver totals each driver's toll, diesel and incentive for the
// month, then adds their default salary on top.
func (s *ReportService) ExpenseByDriver(ctx context.Context, q models.MonthQuery) ([]*models.ExpenseByDriverRow, error) {
	from, to := timeutil.MonthRange(q.Year, q.Month)
	orders, err := s.Orders.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	salaries, err := s.Drivers.SalaryMap(ctx)
	if err != nil {
		return nil, err
	}

	byDriver := make(map[string]*models.ExpenseByDriverRow)
	for _, o := range orders {
		if o.DriverName == nil || *o.DriverName == "" {
			continue
		}
		row, ok := byDriver[*o.DriverName]
		if !ok {
			row = &models.ExpenseByDriverRow{
				DriverName:    *o.DriverName,
				DefaultSalary: salaries[*o.DriverName],
			}
			byDriver[*o.DriverName] = row
		}
		row.OrderCount++
		if o.Toll != nil {
			row.TotalToll += *o.Toll
		}
		if o.DieselCost != nil {
			row.TotalDiesel += *o.DieselCost
		}
		if o.IncentiveAmount != nil {
			row.TotalIncentive += *o.IncentiveAmount
		}
	}

	rows := make([]*models.ExpenseByDriverRow, 0, len(byDriver))
	for _, row := range byDriver {
		row.TotalExpense = row.TotalToll + row.TotalDiesel + row.TotalIncentive + row.DefaultSalary
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DriverName < rows[j].DriverName })
	return rows, nil
}

// RevenueByServiceType groups the month's revenue and profit by service type.
func (s *ReportService) RevenueByServiceType(ctx context.Context, q models.MonthQuery) ([]*models.RevenueByServiceTypeRow, error) {
	from, to := timeutil.MonthRange(q.Year, q.Month)
	orders, err := s.Orders.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateMap(ctx)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*models.RevenueByServiceTypeRow)
	for _, o := range orders {
		key := "unspecified"
		if o.ServiceType != nil && *o.ServiceType != "" {
			key = *o.ServiceType
		}
		row, ok := byType[key]
		if !ok {
			row = &models.RevenueByServiceTypeRow{ServiceType: key}
			byType[key] = row
		}
		revenue := Revenue(o, orderRate(o, rates))
		row.OrderCount++
		row.TotalRevenue += revenue
		row.TotalProfit += revenue - Expenses(o)
	}

	rows := make([]*models.RevenueByServiceTypeRow, 0, len(byType))
	for _, row := range byType {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TotalRevenue > rows[j].TotalRevenue })
	return rows, nil
}

// RevenueByTowingVehicle groups the month's revenue and profit by towing
// vehicle.
func (s *ReportService) RevenueByTowingVehicle(ctx context.Context, q models.MonthQuery) ([]*models.RevenueByTowingVehicleRow, error) {
	from, to := timeutil.MonthRange(q.Year, q.Month)
	orders, err := s.Orders.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateMap(ctx)
	if err != nil {
		return nil, err
	}

	byVehicle := make(map[string]*models.RevenueByTowingVehicleRow)
	for _, o := range orders {
		key := "unspecified"
		if o.TowingVehicle != nil && *o.TowingVehicle != "" {
			key = *o.TowingVehicle
		}
		row, ok := byVehicle[key]
		if !ok {
			row = &models.RevenueByTowingVehicleRow{TowingVehicle: key}
			byVehicle[key] = row
		}
		revenue := Revenue(o, orderRate(o, rates))
		row.OrderCount++
		row.TotalRevenue += revenue
		row.TotalProfit += revenue - Expenses(o)
	}

	rows := make([]*models.RevenueByTowingVehicleRow, 0, len(byVehicle))
	for _, row := range byVehicle {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TotalRevenue > rows[j].TotalRevenue })
	return rows, nil
}

// DailySummary breaks a date range into business-timezone calendar days.
// The end date is inclusive.
func (s *ReportService) DailySummary(ctx context.Context, from, to time.Time) ([]*models.DailySummaryRow, error) {
	orders, err := s.Orders.ListBetween(ctx, from, to.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	rates, err := s.rateMap(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*models.DailySummaryRow)
	for _, o := range orders {
		day := timeutil.ToIST(o.DateTime).Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &models.DailySummaryRow{Date: day}
			byDay[day] = row
		}
		row.OrderCount++
		switch o.OrderType {
		case models.OrderTypeCash:
			row.CashOrders++
		case models.OrderTypeCompany:
			row.CompanyOrders++
		}
		row.TotalRevenue += Revenue(o, orderRate(o, rates))
		row.TotalExpenses += Expenses(o)
	}

	rows := make([]*models.DailySummaryRow, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

// reportColumn pairs the column metadata with its value extractor. Derived
// money columns need the rate map.
type reportColumn struct {
	meta    models.ReportColumn
	extract func(o *models.Order, rates map[string]*models.Rate) interface{}
}

func strCol(p *string) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

func numCol(p *float64) interface{} {
	if p == nil {
		return 0.0
	}
	return *p
}

func timeCol(p *time.Time) interface{} {
	if p == nil {
		return ""
	}
	return timeutil.ToIST(*p).Format("2006-01-02 15:04")
}

var customColumns = []reportColumn{
	{models.ReportColumn{ID: "customer_name", Label: "Customer Name"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return o.CustomerName }},
	{models.ReportColumn{ID: "phone", Label: "Phone"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return o.Phone }},
	{models.ReportColumn{ID: "order_type", Label: "Order Type"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return o.OrderType }},
	{models.ReportColumn{ID: "date_time", Label: "Date & Time"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return timeCol(&o.DateTime) }},
	{models.ReportColumn{ID: "trip_from", Label: "Trip From"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.TripFrom) }},
	{models.ReportColumn{ID: "trip_to", Label: "Trip To"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.TripTo) }},
	{models.ReportColumn{ID: "vehicle_name", Label: "Vehicle Name"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.VehicleName) }},
	{models.ReportColumn{ID: "vehicle_number", Label: "Vehicle Number"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.VehicleNumber) }},
	{models.ReportColumn{ID: "service_type", Label: "Service Type"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.ServiceType) }},
	{models.ReportColumn{ID: "towing_vehicle", Label: "Towing Vehicle"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.TowingVehicle) }},
	{models.ReportColumn{ID: "driver_name", Label: "Driver Name"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.DriverName) }},
	{models.ReportColumn{ID: "kms_travelled", Label: "KMs Travelled", Numeric: true}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return numCol(o.KmsTravelled) }},
	{models.ReportColumn{ID: "toll", Label: "Toll", Numeric: true}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return numCol(o.Toll) }},
	{models.ReportColumn{ID: "diesel_cost", Label: "Diesel Cost", Numeric: true}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return numCol(o.DieselCost) }},
	{models.ReportColumn{ID: "diesel_refill_location", Label: "Diesel Refill Location"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.DieselRefillLocation) }},
	{models.ReportColumn{ID: "amount_received", Label: "Amount Received", Numeric: true, OrderType: models.OrderTypeCash}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return numCol(o.AmountReceived) }},
	{models.ReportColumn{ID: "advance_amount", Label: "Advance Amount", Numeric: true, OrderType: models.OrderTypeCash}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return numCol(o.AdvanceAmount) }},
	{models.ReportColumn{ID: "care_off", Label: "Care Off", OrderType: models.OrderTypeCash}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.CareOff) }},
	{models.ReportColumn{ID: "care_off_amount", Label: "Care Off Amount", Numeric: true, OrderType: models.OrderTypeCash}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return numCol(o.CareOffAmount) }},
	{models.ReportColumn{ID: "name_of_firm", Label: "Name of Firm", OrderType: models.OrderTypeCompany}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.NameOfFirm) }},
	{models.ReportColumn{ID: "company_name", Label: "Company Name", OrderType: models.OrderTypeCompany}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.CompanyName) }},
	{models.ReportColumn{ID: "case_id_file_number", Label: "Case ID / File Number", OrderType: models.OrderTypeCompany}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return strCol(o.CaseIDFileNumber) }},
	{models.ReportColumn{ID: "reach_time", Label: "Reach Time", OrderType: models.OrderTypeCompany}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return timeCol(o.ReachTime) }},
	{models.ReportColumn{ID: "drop_time", Label: "Drop Time", OrderType: models.OrderTypeCompany}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return timeCol(o.DropTime) }},
	{models.ReportColumn{ID: "incentive_amount", Label: "Incentive", Numeric: true}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return numCol(o.IncentiveAmount) }},
	{models.ReportColumn{ID: "revenue", Label: "Revenue", Numeric: true}, func(o *models.Order, rates map[string]*models.Rate) interface{} { return Revenue(o, orderRate(o, rates)) }},
	{models.ReportColumn{ID: "expenses", Label: "Expenses", Numeric: true}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return Expenses(o) }},
	{models.ReportColumn{ID: "profit", Label: "Profit", Numeric: true}, func(o *models.Order, rates map[string]*models.Rate) interface{} { return Revenue(o, orderRate(o, rates)) - Expenses(o) }},
	{models.ReportColumn{ID: "created_by", Label: "Created By"}, func(o *models.Order, _ map[string]*models.Rate) interface{} { return o.CreatedBy }},
}

// AvailableColumns lists every column the custom report builder offers.
func (s *ReportService) AvailableColumns() []models.ReportColumn {
	cols := make([]models.ReportColumn, len(customColumns))
	for i, c := range customColumns {
		cols[i] = c.meta
	}
	return cols
}

func findColumn(id string) (reportColumn, bool) {
	for _, c := range customColumns {
		if c.meta.ID == id {
			return c, true
		}
	}
	return reportColumn{}, false
}

// CustomReport builds an ad-hoc report over a date window with the caller's
// chosen columns.
func (s *ReportService) CustomReport(ctx context.Context, req *models.CustomReportRequest) (*models.CustomReport, error) {
	if len(req.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if !req.StartDate.IsSet() || !req.EndDate.IsSet() {
		return nil, ErrBadDateRange
	}

	selected := make([]reportColumn, 0, len(req.Columns))
	for _, id := range req.Columns {
		col, ok := findColumn(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, id)
		}
		selected = append(selected, col)
	}

	// End date is inclusive: extend to the end of that day.
	from := *req.StartDate.Ptr()
	to := req.EndDate.Ptr().Add(24 * time.Hour)

	orders, err := s.Orders.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateMap(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.CustomReport{Columns: make([]models.ReportColumn, len(selected))}
	for i, col := range selected {
		report.Columns[i] = col.meta
	}

	for _, o := range orders {
		if req.OrderType != "" && o.OrderType != req.OrderType {
			continue
		}
		row := make(map[string]interface{}, len(selected))
		for _, col := range selected {
			row[col.meta.ID] = col.extract(o, rates)
		}
		report.Rows = append(report.Rows, row)
	}
	report.Total = len(report.Rows)

	s.sortRows(report, req.SortBy, req.SortOrder)
	return report, nil
}

func (s *ReportService) sortRows(report *models.CustomReport, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	found := false
	for _, c := range report.Columns {
		if c.ID == sortBy {
			found = true
			break
		}
	}
	if !found {
		return
	}
	desc := strings.EqualFold(sortOrder, "desc")
	sort.SliceStable(report.Rows, func(i, j int) bool {
		a, b := report.Rows[i][sortBy], report.Rows[j][sortBy]
		switch av := a.(type) {
		case float64:
			bv, _ := b.(float64)
			if desc {
				return av > bv
			}
			return av < bv
		case string:
			bv, _ := b.(string)
			if desc {
				return av > bv
			}
			return av < bv
		}
		return false
	})
}
