package access

import "strings"

// Role values match the numeric roles stored on users.
type Role int16

const (
	RoleAdmin Role = iota
	RoleDesigner
	RoleReception
	RoleSuperDesigner
	RolePrinter
)

var roleNames = map[Role]string{
	RoleAdmin:         "Admin",
	RoleDesigner:      "Designer",
	RoleReception:     "Reception",
	RoleSuperDesigner: "SuperDesigner",
	RolePrinter:       "Printer",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

func (r Role) Known() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, bool) {
	for role, name := range roleNames {
		if strings.EqualFold(name, s) {
			return role, true
		}
	}
	return 0, false
}

// Principal is the authenticated caller.
type Principal struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}

func (p Principal) Admin() bool {
	return p.IsAdmin || p.Role == RoleAdmin
}

func (p Principal) designer() bool {
	return p.Role == RoleDesigner || p.Role == RoleSuperDesigner
}

// CanCreateOrder reports whether p may create orders through v.
func CanCreateOrder(p Principal, v View) bool {
	switch v {
	case ViewOrders:
		return p.Admin() || p.designer()
	case ViewReceptionToday:
		return p.Role == RoleReception
	default:
		return false
	}
}

// AssignsDesigner reports whether orders created by p are owned by p.
func AssignsDesigner(p Principal) bool {
	return p.designer()
}

func CanManageReception(p Principal) bool {
	return p.Admin() || p.Role == RoleReception
}

func CanManageCatalog(p Principal) bool {
	return p.Admin() || p.designer()
}

func CanManageUsers(p Principal) bool {
	return p.Admin()
}
