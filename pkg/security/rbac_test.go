package security

import (
	"errors"
	"testing"
)

func TestSuspendedIdentityHasNoCapabilities(t *testing.T) {
	// suspension wins over every tier, including superadmin
	for _, role := range []AdminRole{AdminRoleNone, AdminRoleOperator, AdminRoleManager, AdminRoleSuper} {
		id := &Identity{ID: 7, Role: RoleUser, AdminRole: role, Status: StatusSuspended}
		if _, err := NewContext(id); !errors.Is(err, ErrSuspended) {
			t.Fatalf("role %s: expected ErrSuspended, got %v", role, err)
		}
	}
}

func TestWildcardGrantsEverything(t *testing.T) {
	sc, err := NewContext(&Identity{ID: 1, Role: RoleStaff, AdminRole: AdminRoleSuper, Status: StatusActive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, perm := range []string{CapTemplatesWrite, CapUsersManage, "anything:else"} {
		if !sc.HasCapability(perm) {
			t.Fatalf("superadmin should hold %q via wildcard", perm)
		}
	}
}

func TestExplicitCapabilityMatching(t *testing.T) {
	sc, err := NewContext(&Identity{ID: 2, Role: RoleStaff, AdminRole: AdminRoleOperator, Status: StatusActive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sc.HasCapability(CapTemplatesWrite) {
		t.Fatalf("operator should hold templates:write")
	}
	if sc.HasCapability(CapUsersManage) {
		t.Fatalf("operator must not hold users:manage")
	}
}

func TestParseAdminRoleRoundTrip(t *testing.T) {
	for _, role := range []AdminRole{AdminRoleNone, AdminRoleOperator, AdminRoleManager, AdminRoleSuper} {
		if got := ParseAdminRole(role.String()); got != role {
			t.Fatalf("round trip for %v: got %v", role, got)
		}
	}
	if ParseAdminRole("garbage") != AdminRoleNone {
		t.Fatalf("unknown strings must parse to AdminRoleNone")
	}
}
