package security

import "errors"

// Role is the coarse account role.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
)

// AdminRole is the closed set of administrative tiers. The zero value is a
// regular account with no administrative capabilities.
type AdminRole int

const (
	AdminRoleNone AdminRole = iota
	AdminRoleOperator
	AdminRoleManager
	AdminRoleSuper
)

func ParseAdminRole(s string) AdminRole {
	switch s {
	case "operator":
		return AdminRoleOperator
	case "manager":
		return AdminRoleManager
	case "superadmin":
		return AdminRoleSuper
	default:
		return AdminRoleNone
	}
}

func (r AdminRole) String() string {
	switch r {
	case AdminRoleOperator:
		return "operator"
	case AdminRoleManager:
		return "manager"
	case AdminRoleSuper:
		return "superadmin"
	default:
		return "none"
	}
}

// Capability strings checked by the permission middleware.
const (
	CapWildcard       = "*"
	CapTemplatesWrite = "templates:write"
	CapProfilesWrite  = "profiles:write"
	CapCoversRender   = "covers:render"
	CapUsersView      = "users:view"
	CapUsersManage    = "users:manage"
)

// capabilityTable maps each administrative tier to its capability set. It is
// written once here and only ever read afterwards.
var capabilityTable = map[AdminRole][]string{
	AdminRoleNone:     {CapProfilesWrite, CapCoversRender},
	AdminRoleOperator: {CapProfilesWrite, CapCoversRender, CapTemplatesWrite},
	AdminRoleManager:  {CapProfilesWrite, CapCoversRender, CapTemplatesWrite, CapUsersView},
	AdminRoleSuper:    {CapWildcard},
}

// ResolveCapabilities returns the capability set for an administrative tier.
// The returned slice is shared and must not be mutated.
func ResolveCapabilities(role AdminRole) []string {
	return capabilityTable[role]
}

// SecurityContext is the per-request result of identity resolution. It lives
// for one request only.
type SecurityContext struct {
	UserID       uint
	Role         Role
	AdminRole    AdminRole
	Capabilities []string
}

// ErrSuspended is returned when building a context for a suspended identity.
// A suspended account has no capabilities regardless of tier.
var ErrSuspended = errors.New("account suspended")

// NewContext resolves an identity into a request security context. Suspension
// denies before any capability resolution happens.
func NewContext(id *Identity) (*SecurityContext, error) {
	if id.Status == StatusSuspended {
		return nil, ErrSuspended
	}
	return &SecurityContext{
		UserID:       id.ID,
		Role:         id.Role,
		AdminRole:    id.AdminRole,
		Capabilities: ResolveCapabilities(id.AdminRole),
	}, nil
}

// HasCapability reports whether the context grants perm, either via the
// wildcard or an exact match.
func (sc *SecurityContext) HasCapability(perm string) bool {
	for _, granted := range sc.Capabilities {
		if granted == CapWildcard || granted == perm {
			return true
		}
	}
	return false
}
