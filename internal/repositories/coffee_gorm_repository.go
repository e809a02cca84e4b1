package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// GORMCoffeeRepository is a GORM implementation of CoffeeRepository.
type GORMCoffeeRepository struct {
	db *gorm.DB
}

// NewGORMCoffeeRepository creates a new instance of GORMCoffeeRepository.
func NewGORMCoffeeRepository(db *gorm.DB) *GORMCoffeeRepository {
	return &GORMCoffeeRepository{
		db: db,
	}
}

// GetAll retrieves every coffee, with its type preloaded, ordered by name.
func (r *GORMCoffeeRepository) GetAll() ([]models.Coffee, error) {
	var coffees []models.Coffee
	if err := r.db.Preload("CoffeeType").Order("name asc").Find(&coffees).Error; err != nil {
		return nil, fmt.Errorf("failed to get all coffees: %w", err)
	}
	return coffees, nil
}

// GetAvailable retrieves coffees with stock on hand, ordered by name.
func (r *GORMCoffeeRepository) GetAvailable() ([]models.Coffee, error) {
	var coffees []models.Coffee
	if err := r.db.Preload("CoffeeType").
		Where("quantity_in_stock > 0").
		Order("name asc").
		Find(&coffees).Error; err != nil {
		return nil, fmt.Errorf("failed to get available coffees: %w", err)
	}
	return coffees, nil
}

// GetByID retrieves a single coffee by its ID.
func (r *GORMCoffeeRepository) GetByID(id string) (*models.Coffee, error) {
	var coffee models.Coffee
	if err := r.db.Preload("CoffeeType").First(&coffee, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("coffee with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coffee by ID %s: %w", id, err)
	}
	return &coffee, nil
}

// Create creates a new coffee in the database.
func (r *GORMCoffeeRepository) Create(coffee *models.Coffee) error {
	if coffee.ID == "" {
		coffee.ID = uuid.New().String()
	}
	if err := r.db.Create(coffee).Error; err != nil {
		return fmt.Errorf("failed to create coffee: %w", err)
	}
	return nil
}

// Update updates an existing coffee. Already-persisted order lines keep
// their captured unit price; only the coffee row changes.
func (r *GORMCoffeeRepository) Update(coffee *models.Coffee) error {
	res := r.db.Save(coffee) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update coffee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound when no rows were
		// touched, so we check RowsAffected.
		return fmt.Errorf("coffee with ID %s for update: %w", coffee.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a coffee and, first, any order lines referencing it.
// Both happen in one transaction; coffee IDs are never reused afterwards.
func (r *GORMCoffeeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("coffee_id = ?", id).Delete(&models.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("failed to clear order lines for coffee %s: %w", id, ErrReferentialConflict)
		}
		res := tx.Delete(&models.Coffee{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete coffee: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("coffee with ID %s for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}

// GetTypes retrieves all coffee types ordered by name.
func (r *GORMCoffeeRepository) GetTypes() ([]models.CoffeeType, error) {
	var types []models.CoffeeType
	if err := r.db.Order("type_name asc").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to get coffee types: %w", err)
	}
	return types, nil
}

// CreateType creates a new coffee type.
func (r *GORMCoffeeRepository) CreateType(coffeeType *models.CoffeeType) error {
	if coffeeType.ID == "" {
		coffeeType.ID = uuid.New().String()
	}
	if err := r.db.Create(coffeeType).Error; err != nil {
		return fmt.Errorf("failed to create coffee type: %w", err)
	}
	return nil
}
