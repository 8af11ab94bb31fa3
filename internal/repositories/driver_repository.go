package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crane-backend/internal/models"
)

type DriverRepository struct {
	DB *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{DB: db}
}

// ListFromOrders returns every distinct driver seen on orders, with their
// order count and stored default salary (zero when none is set).
func (r *DriverRepository) ListFromOrders(ctx context.Context) ([]*models.DriverListEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT o.driver_name, COUNT(*), COALESCE(d.default_salary, 0)
         FROM orders o
         LEFT JOIN drivers d ON d.driver_name = o.driver_name
         WHERE o.driver_name IS NOT NULL AND o.driver_name <> ''
         GROUP BY o.driver_name, d.default_salary
         ORDER BY o.driver_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*models.DriverListEntry
	for rows.Next() {
		var d models.DriverListEntry
		if err := rows.Scan(&d.DriverName, &d.OrderCount, &d.DefaultSalary); err != nil {
			return nil, err
		}
		drivers = append(drivers, &d)
	}
	return drivers, rows.Err()
}

// SetDefaultSalary upserts one driver's default salary.
func (r *DriverRepository) SetDefaultSalary(ctx context.Context, driverName string, salary float64) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO drivers(driver_name, default_salary)
         VALUES($1, $2)
         ON CONFLICT (driver_name) DO UPDATE SET default_salary=EXCLUDED.default_salary, updated_at=NOW()`,
		driverName, salary)
	return err
}

// SalaryMap returns driver_name -> default_salary for every stored driver.
func (r *DriverRepository) SalaryMap(ctx context.Context) (map[string]float64, error) {
	rows, err := r.DB.Query(ctx, `SELECT driver_name, default_salary FROM drivers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	salaries := make(map[string]float64)
	for rows.Next() {
		var name string
		var salary float64
		if err := rows.Scan(&name, &salary); err != nil {
			return nil, err
		}
		salaries[name] = salary
	}
	return salaries, rows.Err()
}
