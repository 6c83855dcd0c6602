package models

import "gorm.io/gorm"

// Payment is a manually reviewed payment claim. Status moves one way,
// pending -> approved or rejected; approval overwrites the user's plan.
type Payment struct {
	gorm.Model
	UserID   uint
	Plan     string // requested tier: free, individual, business
	PlanName string
	Amount   float64
	Method   string // Credit Card, Payment App
	Details  string // free-text payment reference
	Status   string `gorm:"default:pending"` // pending, approved, rejected
}
