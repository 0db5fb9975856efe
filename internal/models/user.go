package models

import "gorm.io/gorm"

// User represents a registered member of the expense group.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	MobileNumber string `json:"mobileNumber" gorm:"uniqueIndex;type:varchar(10)" validate:"required,len=10,number"`
	Password     string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
