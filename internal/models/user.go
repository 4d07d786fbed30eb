package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the profile row for every account. The auth identity lives in
// Credential; the two share the same ID.
type User struct {
	ID                 string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	Role               string    `json:"role" gorm:"not null"` // super_admin, salesman, retailer
	OwnerName          string    `json:"owner_name" gorm:"not null"`
	BusinessName       *string   `json:"business_name"`
	Phone              *string   `json:"phone"`
	Address            *string   `json:"address"`
	GST                *string   `json:"gst" gorm:"column:gst"`
	AssignedSalesmanID *string   `json:"assigned_salesman_id" gorm:"type:uuid"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type UserRole string

const (
	SuperAdmin UserRole = "super_admin"
	Salesman   UserRole = "salesman"
	Retailer   UserRole = "retailer"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch UserRole(role) {
	case SuperAdmin, Salesman, Retailer:
		return true
	}
	return false
}

// HomePath returns the route prefix a role is allowed under.
func HomePath(role string) string {
	switch UserRole(role) {
	case SuperAdmin:
		return "/admin"
	case Salesman:
		return "/salesman"
	default:
		return "/retailer"
	}
}
