package models

import "testing"

func TestProvisionRole(t *testing.T) {
	tests := []struct {
		name        string
		isSuperuser bool
		isStaff     bool
		requested   string
		want        string
	}{
		{"superuser and staff", true, true, RoleStudent, RoleSuperSuper},
		{"superuser only", true, false, RoleAdmin, RoleSuper},
		{"valid requested role", false, false, RoleMentor, RoleMentor},
		{"staff flag alone grants nothing", false, true, RoleRecruiter, RoleRecruiter},
		{"unknown role falls back", false, false, "overlord", RoleStudent},
		{"empty role falls back", false, false, "", RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProvisionRole(tt.isSuperuser, tt.isStaff, tt.requested); got != tt.want {
				t.Errorf("ProvisionRole(%v, %v, %q) = %q, want %q",
					tt.isSuperuser, tt.isStaff, tt.requested, got, tt.want)
			}
		})
	}
}

func TestIsElevated(t *testing.T) {
	for role, want := range map[string]bool{
		RoleSuperSuper: true,
		RoleSuper:      true,
		RoleAdmin:      false,
		RoleStudent:    false,
	} {
		u := User{Role: role}
		if got := u.IsElevated(); got != want {
			t.Errorf("IsElevated() with role %q = %v, want %v", role, got, want)
		}
	}
}
