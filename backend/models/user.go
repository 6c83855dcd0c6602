package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName     string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:student"` // student, staff
	Plan         string `gorm:"default:free"`    // free, individual, business
	Phone        string
	Country      string
}

type SupportTicket struct {
	gorm.Model
	UserID  uint
	Message string
	Status  string `gorm:"default:open"` // open, resolved
}

type AuditLog struct {
	gorm.Model
	Action  string
	User    string // actor email
	Details string
}
