package repositories

import (
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// CoffeeRepository defines the interface for coffee inventory data access.
type CoffeeRepository interface {
	GetAll() ([]models.Coffee, error)
	// GetAvailable returns only coffees with stock on hand, ordered by name,
	// for building the order cart.
	GetAvailable() ([]models.Coffee, error)
	GetByID(id string) (*models.Coffee, error)
	Create(coffee *models.Coffee) error
	Update(coffee *models.Coffee) error
	// Delete removes a coffee together with any order lines referencing it.
	Delete(id string) error

	GetTypes() ([]models.CoffeeType, error)
	CreateType(coffeeType *models.CoffeeType) error
}
