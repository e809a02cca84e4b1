package models

import "gorm.io/gorm"

// CoffeeType is a category a coffee belongs to (e.g. "Arabica", "Robusta").
type CoffeeType struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	TypeName   string `json:"type_name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Coffee represents a coffee product in the inventory.
type Coffee struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string      `json:"name" validate:"required,min=3,max=100"`
	CoffeeTypeID    string      `json:"coffee_type_id" gorm:"type:varchar(36)" validate:"required,uuid"`
	CoffeeType      *CoffeeType `json:"coffee_type,omitempty" gorm:"foreignKey:CoffeeTypeID"`
	Description     string      `json:"description" validate:"omitempty,max=500"`
	PricePerKg      float64     `json:"price_per_kg" validate:"required,gt=0"`
	QuantityInStock int         `json:"quantity_in_stock" validate:"gte=0"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
