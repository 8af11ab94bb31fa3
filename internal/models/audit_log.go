package models

import "time"

// Audit actions
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionLogout = "LOGOUT"
)

// Audit resource types
const (
	AuditResourceUser  = "USER"
	AuditResourceOrder = "ORDER"
)

type AuditLogEntry struct {
	ID           int       `json:"id" db:"id"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	UserEmail    string    `json:"user_email" db:"user_email"`
	Action       string    `json:"action" db:"action"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	ResourceID   string    `json:"resource_id" db:"resource_id"`
}

// AuditLogFilter narrows the audit listing. UserEmail matches as a
// case-insensitive substring.
type AuditLogFilter struct {
	ResourceType string
	Action       string
	UserEmail    string
	Limit        int
}
