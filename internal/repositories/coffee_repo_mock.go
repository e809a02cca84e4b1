package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// MockCoffeeRepository is an in-memory implementation of CoffeeRepository.
type MockCoffeeRepository struct {
	coffees map[string]models.Coffee
	types   map[string]models.CoffeeType
	mu      sync.RWMutex
}

// NewMockCoffeeRepository creates a new instance of MockCoffeeRepository.
func NewMockCoffeeRepository() *MockCoffeeRepository {
	return &MockCoffeeRepository{
		coffees: make(map[string]models.Coffee),
		types:   make(map[string]models.CoffeeType),
	}
}

// GetAll returns all coffees ordered by name.
func (r *MockCoffeeRepository) GetAll() ([]models.Coffee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coffeeList := make([]models.Coffee, 0, len(r.coffees))
	for _, c := range r.coffees {
		coffeeList = append(coffeeList, c)
	}
	sort.Slice(coffeeList, func(i, j int) bool { return coffeeList[i].Name < coffeeList[j].Name })
	return coffeeList, nil
}

// GetAvailable returns coffees with stock on hand, ordered by name.
func (r *MockCoffeeRepository) GetAvailable() ([]models.Coffee, error) {
	all, _ := r.GetAll()
	available := make([]models.Coffee, 0, len(all))
	for _, c := range all {
		if c.QuantityInStock > 0 {
			available = append(available, c)
		}
	}
	return available, nil
}

// GetByID returns a coffee by its ID.
func (r *MockCoffeeRepository) GetByID(id string) (*models.Coffee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coffee, ok := r.coffees[id]
	if !ok {
		return nil, fmt.Errorf("coffee with ID %s: %w", id, ErrNotFound)
	}
	return &coffee, nil
}

// Create adds a new coffee.
func (r *MockCoffeeRepository) Create(coffee *models.Coffee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coffee.ID == "" {
		coffee.ID = uuid.New().String()
	}
	r.coffees[coffee.ID] = *coffee
	return nil
}

// Update modifies an existing coffee.
func (r *MockCoffeeRepository) Update(coffee *models.Coffee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.coffees[coffee.ID]
	if !ok {
		return fmt.Errorf("coffee with ID %s for update: %w", coffee.ID, ErrNotFound)
	}
	r.coffees[coffee.ID] = *coffee
	return nil
}

// Delete removes a coffee by its ID.
func (r *MockCoffeeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.coffees[id]
	if !ok {
		return fmt.Errorf("coffee with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.coffees, id)
	return nil
}

// GetTypes returns all coffee types ordered by name.
func (r *MockCoffeeRepository) GetTypes() ([]models.CoffeeType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeList := make([]models.CoffeeType, 0, len(r.types))
	for _, t := range r.types {
		typeList = append(typeList, t)
	}
	sort.Slice(typeList, func(i, j int) bool { return typeList[i].TypeName < typeList[j].TypeName })
	return typeList, nil
}

// CreateType adds a new coffee type, rejecting duplicate names.
func (r *MockCoffeeRepository) CreateType(coffeeType *models.CoffeeType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.types {
		if t.TypeName == coffeeType.TypeName {
			return fmt.Errorf("coffee type %q already exists", coffeeType.TypeName)
		}
	}
	if coffeeType.ID == "" {
		coffeeType.ID = uuid.New().String()
	}
	r.types[coffeeType.ID] = *coffeeType
	return nil
}
