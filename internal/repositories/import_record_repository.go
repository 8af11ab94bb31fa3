package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crane-backend/internal/models"
)

type ImportRecordRepository struct {
	DB *pgxpool.Pool
}

func NewImportRecordRepository(db *pgxpool.Pool) *ImportRecordRepository {
	return &ImportRecordRepository{DB: db}
}

func (r *ImportRecordRepository) Create(ctx context.Context, rec *models.ImportRecord) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO import_records(filename, total_records, success_count, cash_orders, company_orders, imported_by_email, sample_data)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, imported_at`,
		rec.Filename, rec.TotalRecords, rec.SuccessCount, rec.CashOrders,
		rec.CompanyOrders, rec.ImportedByEmail, rec.SampleData,
	).Scan(&rec.ID, &rec.ImportedAt)
}

// List returns import runs newest first.
func (r *ImportRecordRepository) List(ctx context.Context, limit int) ([]*models.ImportRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, filename, total_records, success_count, cash_orders, company_orders, imported_by_email, sample_data, imported_at
         FROM import_records ORDER BY imported_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ImportRecord
	for rows.Next() {
		var rec models.ImportRecord
		err := rows.Scan(&rec.ID, &rec.Filename, &rec.TotalRecords, &rec.SuccessCount,
			&rec.CashOrders, &rec.CompanyOrders, &rec.ImportedByEmail, &rec.SampleData, &rec.ImportedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
