package domain

import "time"

// User is a login identity. Role is carried as a token claim; mutating
// endpoints require "Admin".
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null;index" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:User" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	FindByUsername(username string) (*User, error)
	Create(u *User) error
	Update(u *User) error
}
