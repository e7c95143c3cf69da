package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	gorm.Model
	Name        string
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	Role        string `gorm:"not null;default:'user'"`
	LoginTokens []LoginToken
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
