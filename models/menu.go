package models

import "time"

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Menu struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	VendorID    uint      `json:"vendor_id" gorm:"not null;index"`
	Vendor      Vendor    `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Calories    int       `json:"calories"`
	Available   bool      `json:"available" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
