package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crane-backend/internal/models"
)

const orderColumns = `id, unique_id, customer_name, phone, order_type, date_time, created_by,
	trip_from, trip_to, vehicle_name, vehicle_number, service_type, towing_vehicle,
	driver_name, kms_travelled, toll, diesel_cost, diesel_refill_location,
	amount_received, advance_amount, care_off, care_off_amount,
	name_of_firm, company_name, case_id_file_number, reach_time, drop_time,
	incentive_amount, incentive_reason, incentive_added_by, incentive_added_at,
	created_at, updated_at`

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UniqueID, &o.CustomerName, &o.Phone, &o.OrderType,
		&o.DateTime, &o.CreatedBy,
		&o.TripFrom, &o.TripTo, &o.VehicleName, &o.VehicleNumber, &o.ServiceType,
		&o.TowingVehicle, &o.DriverName, &o.KmsTravelled, &o.Toll, &o.DieselCost,
		&o.DieselRefillLocation,
		&o.AmountReceived, &o.AdvanceAmount, &o.CareOff, &o.CareOffAmount,
		&o.NameOfFirm, &o.CompanyName, &o.CaseIDFileNumber, &o.ReachTime, &o.DropTime,
		&o.IncentiveAmount, &o.IncentiveReason, &o.IncentiveAddedBy, &o.IncentiveAddedAt,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.UniqueID == "" {
		o.UniqueID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO orders(
			id, unique_id, customer_name, phone, order_type, date_time, created_by,
			trip_from, trip_to, vehicle_name, vehicle_number, service_type, towing_vehicle,
			driver_name, kms_travelled, toll, diesel_cost, diesel_refill_location,
			amount_received, advance_amount, care_off, care_off_amount,
			name_of_firm, company_name, case_id_file_number, reach_time, drop_time,
			incentive_amount, incentive_reason, incentive_added_by, incentive_added_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
		        $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31)
		 RETURNING created_at, updated_at`,
		o.ID, o.UniqueID, o.CustomerName, o.Phone, o.OrderType, o.DateTime, o.CreatedBy,
		o.TripFrom, o.TripTo, o.VehicleName, o.VehicleNumber, o.ServiceType, o.TowingVehicle,
		o.DriverName, o.KmsTravelled, o.Toll, o.DieselCost, o.DieselRefillLocation,
		o.AmountReceived, o.AdvanceAmount, o.CareOff, o.CareOffAmount,
		o.NameOfFirm, o.CompanyName, o.CaseIDFileNumber, o.ReachTime, o.DropTime,
		o.IncentiveAmount, o.IncentiveReason, o.IncentiveAddedBy, o.IncentiveAddedAt,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	return scanOrder(r.DB.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
}

// List returns orders newest first. Name and phone filter as case-insensitive
// substrings, order_type as an exact match.
func (r *OrderRepository) List(ctx context.Context, f models.OrderFilter) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var conds []string
	var args []interface{}

	if f.OrderType != "" {
		args = append(args, f.OrderType)
		conds = append(conds, fmt.Sprintf("order_type=$%d", len(args)))
	}
	if f.CustomerName != "" {
		args = append(args, "%"+f.CustomerName+"%")
		conds = append(conds, fmt.Sprintf("customer_name ILIKE $%d", len(args)))
	}
	if f.Phone != "" {
		args = append(args, "%"+f.Phone+"%")
		conds = append(conds, fmt.Sprintf("phone ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date_time DESC"

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if f.Skip > 0 {
		args = append(args, f.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListBetween returns orders whose date_time falls in [from, to), oldest
// first. Reports aggregate over this.
func (r *OrderRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE date_time >= $1 AND date_time < $2
		 ORDER BY date_time ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	return r.DB.QueryRow(ctx,
		`UPDATE orders SET
			customer_name=$1, phone=$2, order_type=$3, date_time=$4,
			trip_from=$5, trip_to=$6, vehicle_name=$7, vehicle_number=$8,
			service_type=$9, towing_vehicle=$10, driver_name=$11,
			kms_travelled=$12, toll=$13, diesel_cost=$14, diesel_refill_location=$15,
			amount_received=$16, advance_amount=$17, care_off=$18, care_off_amount=$19,
			name_of_firm=$20, company_name=$21, case_id_file_number=$22,
			reach_time=$23, drop_time=$24,
			incentive_amount=$25, incentive_reason=$26,
			incentive_added_by=$27, incentive_added_at=$28,
			updated_at=NOW()
		 WHERE id=$29
		 RETURNING updated_at`,
		o.CustomerName, o.Phone, o.OrderType, o.DateTime,
		o.TripFrom, o.TripTo, o.VehicleName, o.VehicleNumber,
		o.ServiceType, o.TowingVehicle, o.DriverName,
		o.KmsTravelled, o.Toll, o.DieselCost, o.DieselRefillLocation,
		o.AmountReceived, o.AdvanceAmount, o.CareOff, o.CareOffAmount,
		o.NameOfFirm, o.CompanyName, o.CaseIDFileNumber,
		o.ReachTime, o.DropTime,
		o.IncentiveAmount, o.IncentiveReason,
		o.IncentiveAddedBy, o.IncentiveAddedAt,
		o.ID,
	).Scan(&o.UpdatedAt)
}

// Delete removes one order. Returns pgx.ErrNoRows when the id is unknown so
// handlers can 404.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteAll wipes the orders table and reports how many rows went.
func (r *OrderRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// StatsSummary counts orders overall and inside today's window. The caller
// passes the window so "today" follows the business timezone.
func (r *OrderRepository) StatsSummary(ctx context.Context, dayStart, dayEnd time.Time) (*models.StatsSummary, error) {
	var s models.StatsSummary
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE order_type='cash'),
		        COUNT(*) FILTER (WHERE order_type='company'),
		        COUNT(*) FILTER (WHERE date_time >= $1 AND date_time <= $2)
		 FROM orders`, dayStart, dayEnd).
		Scan(&s.TotalOrders, &s.CashOrders, &s.CompanyOrders, &s.OrdersToday)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
