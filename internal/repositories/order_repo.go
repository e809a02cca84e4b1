package repositories

import (
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetAll returns orders newest first, details included.
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	// Place persists the order with its details and decrements each
	// referenced coffee's stock, all in one atomic unit. Stock is
	// re-checked inside the commit; a shortage fails the whole placement
	// with ErrInsufficientStock and nothing is applied.
	Place(order *models.Order) error
	UpdateStatus(id string, status string) error
}
