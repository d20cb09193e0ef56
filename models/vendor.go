package models

import "time"

type Vendor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name        string    `json:"name" gorm:"not null"`
	Address     string    `json:"address" gorm:"not null"`
	City        string    `json:"city"`
	Phone       string    `json:"phone" gorm:"not null"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	Menus       []Menu    `json:"menus,omitempty" gorm:"foreignKey:VendorID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
