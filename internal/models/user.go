package models

import "gorm.io/gorm"

// Roles a back-office account can hold. Admins are provisioned at startup
// or by another admin; self-registration always yields RoleUser.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents a back-office user. Only users with the Admin role may
// manage inventory or change order statuses.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(20)" validate:"omitempty,oneof=Admin User"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
