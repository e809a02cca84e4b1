package services

import (
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/repositories"
)

// InventoryService handles business logic for the coffee catalog.
type InventoryService struct {
	repo repositories.CoffeeRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.CoffeeRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// GetAllCoffees retrieves every coffee in the catalog.
func (s *InventoryService) GetAllCoffees() ([]models.Coffee, error) {
	return s.repo.GetAll()
}

// GetAvailableCoffees retrieves the coffees a cart can be built from:
// stock on hand, ordered by name.
func (s *InventoryService) GetAvailableCoffees() ([]models.Coffee, error) {
	return s.repo.GetAvailable()
}

// GetCoffeeByID retrieves a single coffee by its ID.
func (s *InventoryService) GetCoffeeByID(id string) (*models.Coffee, error) {
	return s.repo.GetByID(id)
}

// CreateCoffee adds a new coffee to the catalog.
func (s *InventoryService) CreateCoffee(coffee *models.Coffee) error {
	return s.repo.Create(coffee)
}

// UpdateCoffee updates a coffee's catalog fields. Order lines already
// placed keep the unit price they captured at submission time.
func (s *InventoryService) UpdateCoffee(coffee *models.Coffee) error {
	return s.repo.Update(coffee)
}

// DeleteCoffee removes a coffee, cascading over the order lines that
// reference it. The coffee's ID is retired, never reissued.
func (s *InventoryService) DeleteCoffee(id string) error {
	return s.repo.Delete(id)
}

// GetCoffeeTypes retrieves the coffee type vocabulary ordered by name.
func (s *InventoryService) GetCoffeeTypes() ([]models.CoffeeType, error) {
	return s.repo.GetTypes()
}

// CreateCoffeeType adds a new coffee type.
func (s *InventoryService) CreateCoffeeType(coffeeType *models.CoffeeType) error {
	return s.repo.CreateType(coffeeType)
}
