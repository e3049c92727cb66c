package entity

import "time"

// AccountRole is the role an account holds in the platform.
type AccountRole string

const (
	RolePatient AccountRole = "patient"
	RoleDoctor  AccountRole = "doctor"
	RoleAdmin   AccountRole = "admin"
)

func (r AccountRole) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Account is the identity record shared by patients, doctors and admins.
// Credentials are checked here, but session handling belongs to the external identity provider.
type Account struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string      `gorm:"type:text;not null" json:"-"`
	Name       string      `gorm:"type:varchar(255);not null" json:"name"`
	Phone      string      `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Role       AccountRole `gorm:"type:varchar(20);not null;index" json:"role"`
	IsVerified bool        `gorm:"not null;index" json:"is_verified"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) IsPatient() bool {
	return a.Role == RolePatient
}

func (a *Account) IsDoctor() bool {
	return a.Role == RoleDoctor
}
