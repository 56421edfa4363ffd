package entity

// Role represents a user role in the system
type Role struct {
	ID          RoleKind `gorm:"primaryKey" json:"id"`
	RoleName    string   `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleKind is the closed set of roles a user can hold.
// Values match the seeded roles.id column.
type RoleKind int

const (
	RoleAdmin RoleKind = iota + 1
	RoleDoctor
	RolePatient
	RoleReceptionist
)

// Role names as stored in roles.role_name
const (
	RoleNameAdmin        = "admin"
	RoleNameDoctor       = "doctor"
	RoleNamePatient      = "patient"
	RoleNameReceptionist = "receptionist"
)

func (k RoleKind) String() string {
	switch k {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleDoctor:
		return RoleNameDoctor
	case RolePatient:
		return RoleNamePatient
	case RoleReceptionist:
		return RoleNameReceptionist
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known roles
func (k RoleKind) Valid() bool {
	return k >= RoleAdmin && k <= RoleReceptionist
}
