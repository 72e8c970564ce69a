package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOperator UserRole = "operator"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"userId" gorm:"size:50;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'operator';check:role IN ('operator','admin')"`
	// No default tag: GORM drops zero-valued fields that carry one, which
	// would store true for accounts created inactive. Set explicitly on create.
	IsActive bool `json:"is_active"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleOperator
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsOperator checks if the user is an operator
func (u *User) IsOperator() bool {
	return u.Role == RoleOperator
}
