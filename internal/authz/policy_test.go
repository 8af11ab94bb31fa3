package authz

import "testing"

// TestPolicyTable enumerates every (role, action) pair against the expected
// permission matrix.
func TestPolicyTable(t *testing.T) {
	anyRole := []string{RoleDataEntry, RoleAdmin, RoleSuperAdmin}
	adminUp := []string{RoleAdmin, RoleSuperAdmin}
	superOnly := []string{RoleSuperAdmin}

	expected := map[Action][]string{
		ActionViewOrders:        anyRole,
		ActionCreateOrder:       anyRole,
		ActionEditOrder:         anyRole,
		ActionViewRates:         anyRole,
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

	if len(expected) != len(Actions()) {
		t.Fatalf("policy table has %d actions, test expects %d", len(Actions()), len(expected))
	}

	roles := []string{RoleDataEntry, RoleAdmin, RoleSuperAdmin}
	for action, allowedRoles := range expected {
		allowed := make(map[string]bool)
		for _, r := range allowedRoles {
			allowed[r] = true
		}
		for _, role := range roles {
			got := Can(role, action)
			if got != allowed[role] {
				t.Errorf("Can(%q, %q) = %v, want %v", role, action, got, allowed[role])
			}
		}
	}
}

func TestCanDeniesUnknown(t *testing.T) {
	if Can("", ActionViewOrders) {
		t.Error("empty role should be denied")
	}
	if Can("accountant", ActionViewOrders) {
		t.Error("unknown role should be denied")
	}
	if Can(RoleSuperAdmin, Action("launch_rockets")) {
		t.Error("unknown action should be denied")
	}
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		roles []string
		want  bool
	}{
		{"unauthenticated never matches", "", []string{RoleAdmin}, false},
		{"single role match", RoleAdmin, []string{RoleAdmin}, true},
		{"single role mismatch", RoleDataEntry, []string{RoleAdmin}, false},
		{"role set match", RoleAdmin, []string{RoleSuperAdmin, RoleAdmin}, true},
		{"role set mismatch", RoleDataEntry, []string{RoleSuperAdmin, RoleAdmin}, false},
		{"empty set", RoleAdmin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRole(tt.role, tt.roles...); got != tt.want {
				t.Errorf("HasRole(%q, %v) = %v, want %v", tt.role, tt.roles, got, tt.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleDataEntry, RoleAdmin, RoleSuperAdmin} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "root", "employee"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}
