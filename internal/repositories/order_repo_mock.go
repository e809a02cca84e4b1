package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It shares a MockCoffeeRepository so placements decrement the same stock
// the catalog reads, simulating the database's atomic commit.
type MockOrderRepository struct {
	orders  map[string]models.Order
	coffees *MockCoffeeRepository
	mu      sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository
// backed by the given coffee repository.
func NewMockOrderRepository(coffees *MockCoffeeRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:  make(map[string]models.Order),
		coffees: coffees,
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].OrderDate.After(orderList[j].OrderDate)
	})
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// Place stores the order and decrements stock. All lines are checked
// before anything is applied, mirroring the transactional all-or-nothing
// behavior of the GORM implementation.
func (r *MockOrderRepository) Place(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check every line first so a late shortage cannot leave a partial
	// decrement behind.
	for _, detail := range order.Details {
		coffee, err := r.coffees.GetByID(detail.CoffeeID)
		if err != nil {
			return err
		}
		if coffee.QuantityInStock < detail.Quantity {
			return fmt.Errorf("coffee %s: %w", detail.CoffeeID, ErrInsufficientStock)
		}
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Details {
		if order.Details[i].ID == "" {
			order.Details[i].ID = uuid.New().String()
		}
		order.Details[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	for _, detail := range order.Details {
		coffee, _ := r.coffees.GetByID(detail.CoffeeID)
		coffee.QuantityInStock -= detail.Quantity
		if err := r.coffees.Update(coffee); err != nil {
			return err
		}
	}

	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s for status update: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
