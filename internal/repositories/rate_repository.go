package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crane-backend/internal/models"
)

type RateRepository struct {
	DB *pgxpool.Pool
}

func NewRateRepository(db *pgxpool.Pool) *RateRepository {
	return &RateRepository{DB: db}
}

func (r *RateRepository) Create(ctx context.Context, rate *models.Rate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO rates(name_of_firm, company_name, service_type, base_rate, base_distance_km, rate_per_km_beyond)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		rate.NameOfFirm, rate.CompanyName, rate.ServiceType,
		rate.BaseRate, rate.BaseDistanceKm, rate.RatePerKmBeyond,
	).Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt)
}

func (r *RateRepository) Get(ctx context.Context, id int) (*models.Rate, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name_of_firm, company_name, service_type, base_rate, base_distance_km, rate_per_km_beyond, created_at, updated_at
         FROM rates WHERE id=$1`, id)
	var rate models.Rate
	err := row.Scan(&rate.ID, &rate.NameOfFirm, &rate.CompanyName, &rate.ServiceType,
		&rate.BaseRate, &rate.BaseDistanceKm, &rate.RatePerKmBeyond, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// Lookup finds the rate row for a company order's billing tuple,
// case-insensitively. Returns pgx.ErrNoRows when no rate is configured.
func (r *RateRepository) Lookup(ctx context.Context, nameOfFirm, companyName, serviceType string) (*models.Rate, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name_of_firm, company_name, service_type, base_rate, base_distance_km, rate_per_km_beyond, created_at, updated_at
         FROM rates
         WHERE LOWER(name_of_firm)=LOWER($1) AND LOWER(company_name)=LOWER($2) AND LOWER(service_type)=LOWER($3)`,
		nameOfFirm, companyName, serviceType)
	var rate models.Rate
	err := row.Scan(&rate.ID, &rate.NameOfFirm, &rate.CompanyName, &rate.ServiceType,
		&rate.BaseRate, &rate.BaseDistanceKm, &rate.RatePerKmBeyond, &rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *RateRepository) List(ctx context.Context) ([]*models.Rate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name_of_firm, company_name, service_type, base_rate, base_distance_km, rate_per_km_beyond, created_at, updated_at
         FROM rates ORDER BY name_of_firm, company_name, service_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*models.Rate
	for rows.Next() {
		var rate models.Rate
		err := rows.Scan(&rate.ID, &rate.NameOfFirm, &rate.CompanyName, &rate.ServiceType,
			&rate.BaseRate, &rate.BaseDistanceKm, &rate.RatePerKmBeyond, &rate.CreatedAt, &rate.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rates = append(rates, &rate)
	}
	return rates, rows.Err()
}

func (r *RateRepository) Update(ctx context.Context, rate *models.Rate) error {
	return r.DB.QueryRow(ctx,
		`UPDATE rates SET name_of_firm=$1, company_name=$2, service_type=$3,
		        base_rate=$4, base_distance_km=$5, rate_per_km_beyond=$6, updated_at=NOW()
         WHERE id=$7
         RETURNING updated_at`,
		rate.NameOfFirm, rate.CompanyName, rate.ServiceType,
		rate.BaseRate, rate.BaseDistanceKm, rate.RatePerKmBeyond, rate.ID,
	).Scan(&rate.UpdatedAt)
}

func (r *RateRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM rates WHERE id=$1`, id)
	return err
}
