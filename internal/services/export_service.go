package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"

	"crane-backend/internal/config"
	"crane-backend/internal/models"
	"crane-backend/internal/timeutil"
)

// SheetUploadResult is the response for a spreadsheet export to object
// storage.
type SheetUploadResult struct {
	SpreadsheetURL string `json:"spreadsheet_url"`
	WorksheetName  string `json:"worksheet_name"`
	Message        string `json:"message"`
}

type ExportService struct {
	Reports *ReportService
	cfg     *config.Config
}

func NewExportService(reports *ReportService, cfg *config.Config) *ExportService {
	return &ExportService{Reports: reports, cfg: cfg}
}

// orderExportColumns is the fixed column set for full order exports, drawn
// from the custom report registry so derived money columns stay consistent.
var orderExportColumns = []string{
	"date_time", "order_type", "customer_name", "phone",
	"trip_from", "trip_to", "vehicle_name", "vehicle_number",
	"service_type", "towing_vehicle", "driver_name",
	"kms_travelled", "toll", "diesel_cost",
	"amount_received", "advance_amount", "care_off", "care_off_amount",
	"name_of_firm", "company_name", "case_id_file_number",
	"incentive_amount", "revenue", "expenses", "profit", "created_by",
}

func (s *ExportService) orderTable(ctx context.Context, f models.OrderFilter) ([]models.ReportColumn, []map[string]interface{}, error) {
	orders, err := s.Reports.Orders.List(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	rates, err := s.Reports.rateMap(ctx)
	if err != nil {
		return nil, nil, err
	}

	cols := make([]models.ReportColumn, 0, len(orderExportColumns))
	extractors := make([]reportColumn, 0, len(orderExportColumns))
	for _, id := range orderExportColumns {
		col, ok := findColumn(id)
		if !ok {
			continue
		}
		cols = append(cols, col.meta)
		extractors = append(extractors, col)
	}

	rows := make([]map[string]interface{}, 0, len(orders))
	for _, o := range orders {
		row := make(map[string]interface{}, len(extractors))
		for _, col := range extractors {
			row[col.meta.ID] = col.extract(o, rates)
		}
		rows = append(rows, row)
	}
	return cols, rows, nil
}

// TableExcel renders a generic tabular sheet with a totals row under the
// numeric columns.
func (s *ExportService) TableExcel(sheetName string, cols []models.ReportColumn, rows []map[string]interface{}) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheetName, cell, col.Label)
		file.SetCellStyle(sheetName, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		file.SetColWidth(sheetName, colName, colName, 16)
	}

	totals := make(map[string]float64)
	for r, row := range rows {
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			v := row[col.ID]
			file.SetCellValue(sheetName, cell, v)
			if col.Numeric {
				if f, ok := v.(float64); ok {
					totals[col.ID] += f
				}
			}
		}
	}

	if len(rows) > 0 {
		totalRow := len(rows) + 2
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, totalRow)
			if c == 0 {
				file.SetCellValue(sheetName, cell, "Total")
				file.SetCellStyle(sheetName, cell, cell, headerStyle)
				continue
			}
			if col.Numeric {
				file.SetCellValue(sheetName, cell, totals[col.ID])
				file.SetCellStyle(sheetName, cell, cell, headerStyle)
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TablePDF renders a generic landscape table.
func (s *ExportService) TablePDF(title string, cols []models.ReportColumn, rows []map[string]interface{}) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(277, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	colWidth := 277.0 / float64(len(cols))
	if colWidth < 18 {
		colWidth = 18
	}

	header := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(200, 200, 200)
		for _, col := range cols {
			pdf.CellFormat(colWidth, 7, col.Label, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	pdf.SetFont("Arial", "", 8)
	totals := make(map[string]float64)
	for _, row := range rows {
		if pdf.GetY() > 180 {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 8)
		}
		for _, col := range cols {
			v := row[col.ID]
			var text string
			switch val := v.(type) {
			case float64:
				text = fmt.Sprintf("%.2f", val)
				if col.Numeric {
					totals[col.ID] += val
				}
			case int:
				text = fmt.Sprintf("%d", val)
			default:
				text = fmt.Sprintf("%v", val)
				if len(text) > 22 {
					text = text[:20] + ".."
				}
			}
			pdf.CellFormat(colWidth, 6, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) > 0 {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range cols {
			text := ""
			if i == 0 {
				text = "Total"
			} else if col.Numeric {
				text = fmt.Sprintf("%.2f", totals[col.ID])
			}
			pdf.CellFormat(colWidth, 6, text, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OrdersExcel exports filtered orders as an .xlsx workbook.
func (s *ExportService) OrdersExcel(ctx context.Context, f models.OrderFilter) ([]byte, error) {
	cols, rows, err := s.orderTable(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.TableExcel("Orders", cols, rows)
}

// OrdersPDF exports filtered orders as a PDF table. PDF pages are narrow, so
// only the key columns go in.
func (s *ExportService) OrdersPDF(ctx context.Context, f models.OrderFilter) ([]byte, error) {
	cols, rows, err := s.orderTable(ctx, f)
	if err != nil {
		return nil, err
	}
	keep := map[string]bool{
		"date_time": true, "order_type": true, "customer_name": true, "phone": true,
		"driver_name": true, "towing_vehicle": true, "kms_travelled": true,
		"revenue": true, "expenses": true, "profit": true,
	}
	var narrow []models.ReportColumn
	for _, c := range cols {
		if keep[c.ID] {
			narrow = append(narrow, c)
		}
	}
	return s.TablePDF("Orders Report", narrow, rows)
}

func (s *ExportService) storageClient(ctx context.Context) (*s3.Client, error) {
	st := s.cfg.Storage
	if st.Endpoint == "" || st.AccessKey == "" || st.SecretKey == "" || st.Bucket == "" {
		return nil, fmt.Errorf("object storage is not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			st.AccessKey,
			st.SecretKey,
			"",
		)),
		awsconfig.WithRegion(st.Region),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(st.Endpoint)
	}), nil
}

// UploadOrdersSheet builds the orders workbook and uploads it to object
// storage, returning a shareable link.
func (s *ExportService) UploadOrdersSheet(ctx context.Context, f models.OrderFilter) (*SheetUploadResult, error) {
	client, err := s.storageClient(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.OrdersExcel(ctx, f)
	if err != nil {
		return nil, err
	}

	worksheet := fmt.Sprintf("orders_%s", timeutil.Now().Format("20060102_150405"))
	key := fmt.Sprintf("sheets/%s.xlsx", worksheet)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Storage.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
	})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(s.cfg.Storage.PublicBaseURL, "/") + "/" + key
	return &SheetUploadResult{
		SpreadsheetURL: url,
		WorksheetName:  worksheet,
		Message:        "Export uploaded",
	}, nil
}

// ExportFilename builds a timestamped download name.
func ExportFilename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}
