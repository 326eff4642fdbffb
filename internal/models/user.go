package models

import "time"

const (
	RoleAdmin        = "ROLE_ADMIN"
	RoleCashRegister = "ROLE_CASH_REGISTER"
)

// User represents an operator of the back office or a cash register.
type User struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	Role      string    `json:"role" gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
