// Package authz holds the single role→permission table. Every handler and
// middleware consults this table; permission rules are never re-derived
// inline.
package authz

// Role names, ascending privilege: data_entry < admin < super_admin.
const (
	RoleDataEntry  = "data_entry"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Action is something a user can attempt against the API.
type Action string

const (
	ActionViewOrders        Action = "view_orders"
	ActionCreateOrder       Action = "create_order"
	ActionEditOrder         Action = "edit_order"
	ActionDeleteOrder       Action = "delete_order"
	ActionBulkDeleteOrders  Action = "bulk_delete_orders"
	ActionDeleteAllOrders   Action = "delete_all_orders"
	ActionViewUsers         Action = "view_users"
	ActionManageUsers       Action = "manage_users"
	ActionDeleteUser        Action = "delete_user"
	ActionResetUserPassword Action = "reset_user_password"
	ActionViewAuditLogs     Action = "view_audit_logs"
	ActionImportData        Action = "import_data"
	ActionViewReports       Action = "view_reports"
	ActionExportData        Action = "export_data"
	ActionViewRates         Action = "view_rates"
	ActionManageRates       Action = "manage_rates"
	ActionViewFinancials    Action = "view_financials"
	ActionSetIncentive      Action = "set_incentive"
	ActionCreatePaymentLink Action = "create_payment_link"
	ActionManageDrivers     Action = "manage_drivers"
	ActionManageTOTP        Action = "manage_totp"
)

var anyRole = []string{RoleDataEntry, RoleAdmin, RoleSuperAdmin}
var adminUp = []string{RoleAdmin, RoleSuperAdmin}
var superOnly = []string{RoleSuperAdmin}

// policy is the authoritative permission table.
var policy = map[Action][]string{
	ActionViewOrders:  anyRole,
	ActionCreateOrder: anyRole,
	ActionEditOrder:   anyRole,
	ActionViewRates:   anyRole,

	ActionDeleteOrder:       adminUp,
	ActionBulkDeleteOrders:  adminUp,
	ActionViewUsers:         adminUp,
	ActionManageUsers:       adminUp,
	ActionViewAuditLogs:     adminUp,
	ActionImportData:        adminUp,
	ActionViewReports:       adminUp,
	ActionExportData:        adminUp,
	ActionManageRates:       adminUp,
	ActionViewFinancials:    adminUp,
	ActionSetIncentive:      adminUp,
	ActionCreatePaymentLink: adminUp,
	ActionManageDrivers:     adminUp,

	ActionDeleteUser:        superOnly,
	ActionResetUserPassword: superOnly,
	ActionDeleteAllOrders:   superOnly,
	ActionManageTOTP:        superOnly,
}

// Can reports whether a role may perform an action. Unknown roles and
// unknown actions are denied.
func Can(role string, action Action) bool {
	allowed, ok := policy[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Actions returns every action in the policy table.
func Actions() []Action {
	actions := make([]Action, 0, len(policy))
	for a := range policy {
		actions = append(actions, a)
	}
	return actions
}

// HasRole reports whether role is one of the given roles. A single empty
// role (unauthenticated caller) never matches.
func HasRole(role string, roles ...string) bool {
	if role == "" {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidRole reports whether the given string is a known role name.
func ValidRole(role string) bool {
	return role == RoleDataEntry || role == RoleAdmin || role == RoleSuperAdmin
}
