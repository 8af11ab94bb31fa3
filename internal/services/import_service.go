package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
)

var ErrUnsupportedFile = errors.New("unsupported file type, expected .csv or .xlsx")

const (
	importErrorCap  = 50
	importSampleCap = 5
)

type ImportService struct {
	Orders  *OrderService
	Records *repositories.ImportRecordRepository
	log     zerolog.Logger
}

func NewImportService(orders *OrderService, records *repositories.ImportRecordRepository, log zerolog.Logger) *ImportService {
	return &ImportService{Orders: orders, Records: records, log: log}
}

// normalizeHeader maps a spreadsheet header to a canonical field name.
// Legacy exports prefixed variant fields ("cash_amount_received",
// "company_driver_name"); those prefixes are stripped.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "/", "_")
	h = strings.TrimPrefix(h, "cash_")
	h = strings.TrimPrefix(h, "company_")
	return h
}

// rowToInput builds an order input from one spreadsheet row.
func rowToInput(row map[string]string) (*models.OrderInput, error) {
	in := &models.OrderInput{
		CustomerName:         row["customer_name"],
		Phone:                row["phone"],
		OrderType:            strings.ToLower(strings.TrimSpace(row["order_type"])),
		TripFrom:             row["trip_from"],
		TripTo:               row["trip_to"],
		VehicleName:          row["vehicle_name"],
		VehicleNumber:        row["vehicle_number"],
		ServiceType:          row["service_type"],
		TowingVehicle:        row["towing_vehicle"],
		DriverName:           row["driver_name"],
		DieselRefillLocation: row["diesel_refill_location"],
		CareOff:              row["care_off"],
		NameOfFirm:           row["name_of_firm"],
		CompanyName:          row["company_name"],
		CaseIDFileNumber:     row["case_id_file_number"],
	}

	var err error
	for field, dst := range map[string]*models.Amount{
		"kms_travelled":   &in.KmsTravelled,
		"toll":            &in.Toll,
		"diesel_cost":     &in.DieselCost,
		"amount_received": &in.AmountReceived,
		"advance_amount":  &in.AdvanceAmount,
		"care_off_amount": &in.CareOffAmount,
	} {
		if *dst, err = models.ParseAmount(row[field]); err != nil {
			return nil, models.ValidationError{Field: field, Message: err.Error()}
		}
	}
	for field, dst := range map[string]*models.FlexTime{
		"date_time":  &in.DateTime,
		"reach_time": &in.ReachTime,
		"drop_time":  &in.DropTime,
	} {
		if *dst, err = models.ParseFlexTime(row[field]); err != nil {
			return nil, models.ValidationError{Field: field, Message: err.Error()}
		}
	}
	return in, nil
}

func parseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	for i := range header {
		header[i] = normalizeHeader(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, v := range record {
			if i < len(header) {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseXLSX(r io.Reader) ([]map[string]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	raw, err := file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	header := raw[0]
	for i := range header {
		header[i] = normalizeHeader(header[i])
	}

	var rows []map[string]string
	for _, record := range raw[1:] {
		row := make(map[string]string, len(header))
		for i, v := range record {
			if i < len(header) {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Upload parses a legacy spreadsheet and inserts its rows as orders. Rows
// validate independently; one bad row never sinks the batch. Imported orders
// carry a system marker as creator so they are distinguishable from manual
// entry.
func (s *ImportService) Upload(ctx context.Context, filename string, r io.Reader, actorEmail string) (*models.ImportResult, error) {
	var rows []map[string]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSV(r)
	case ".xlsx":
		rows, err = parseXLSX(r)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		Filename:     filename,
		TotalRecords: len(rows),
	}
	var sample []map[string]interface{}

	for i, row := range rows {
		rowNum := i + 2 // 1-based plus header

		in, err := rowToInput(row)
		if err == nil {
			err = ValidateInput(in)
		}
		var order *models.Order
		if err == nil {
			order, err = s.Orders.BuildOrder(in, models.CreatedBySystemImport, "")
		}
		if err == nil {
			err = s.Orders.Repo.Create(ctx, order)
		}
		if err != nil {
			if len(result.Errors) < importErrorCap {
				rowErr := models.ImportRowError{Row: rowNum, Message: err.Error()}
				var ve models.ValidationError
				if errors.As(err, &ve) {
					rowErr.Field = ve.Field
					rowErr.Message = ve.Message
				}
				result.Errors = append(result.Errors, rowErr)
			}
			continue
		}

		result.SuccessCount++
		switch order.OrderType {
		case models.OrderTypeCash:
			result.CashOrders++
		case models.OrderTypeCompany:
			result.CompanyOrders++
		}
		if len(sample) < importSampleCap {
			sample = append(sample, map[string]interface{}{
				"customer_name": order.CustomerName,
				"phone":         order.Phone,
				"order_type":    order.OrderType,
				"date_time":     order.DateTime,
			})
		}
	}

	record := &models.ImportRecord{
		Filename:        filename,
		TotalRecords:    result.TotalRecords,
		SuccessCount:    result.SuccessCount,
		CashOrders:      result.CashOrders,
		CompanyOrders:   result.CompanyOrders,
		ImportedByEmail: actorEmail,
		SampleData:      sample,
	}
	if err := s.Records.Create(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("filename", filename).
		Int("total", result.TotalRecords).
		Int("imported", result.SuccessCount).
		Int("rejected", result.TotalRecords-result.SuccessCount).
		Str("imported_by", actorEmail).
		Msg("legacy import finished")

	return result, nil
}

// History lists previous import runs.
func (s *ImportService) History(ctx context.Context, limit int) ([]*models.ImportRecord, error) {
	return s.Records.List(ctx, limit)
}
