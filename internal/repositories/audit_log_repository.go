package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"crane-backend/internal/models"
)

type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Record(ctx context.Context, userEmail, action, resourceType, resourceID string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO audit_logs(user_email, action, resource_type, resource_id)
         VALUES($1, $2, $3, $4)`,
		userEmail, action, resourceType, resourceID)
	return err
}

// List returns audit entries newest first.
func (r *AuditLogRepository) List(ctx context.Context, f models.AuditLogFilter) ([]*models.AuditLogEntry, error) {
	query := `SELECT id, timestamp, user_email, action, resource_type, resource_id FROM audit_logs`
	var conds []string
	var args []interface{}

	if f.ResourceType != "" {
		args = append(args, f.ResourceType)
		conds = append(conds, fmt.Sprintf("resource_type=$%d", len(args)))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		conds = append(conds, fmt.Sprintf("action=$%d", len(args)))
	}
	if f.UserEmail != "" {
		args = append(args, "%"+f.UserEmail+"%")
		conds = append(conds, fmt.Sprintf("user_email ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		err := rows.Scan(&e.ID, &e.Timestamp, &e.UserEmail, &e.Action, &e.ResourceType, &e.ResourceID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
