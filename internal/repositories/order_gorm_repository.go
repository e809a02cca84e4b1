package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders, newest first, with their details.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Details").Order("order_date desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its details.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Details").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Place writes the order, its details and the stock decrements in a single
// transaction. Each decrement is a guarded UPDATE that only applies while
// enough stock remains, so concurrent placements against the same coffee
// serialize on the row and stock can never go negative; on a shortage the
// transaction rolls back and no partial state survives.
func (r *GORMOrderRepository) Place(order *models.Order) error {
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

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, detail := range order.Details {
			res := tx.Model(&models.Coffee{}).
				Where("id = ? AND quantity_in_stock >= ?", detail.CoffeeID, detail.Quantity).
				UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", detail.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for coffee %s: %w", detail.CoffeeID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("coffee %s: %w", detail.CoffeeID, ErrInsufficientStock)
			}
		}
		return nil
	})
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s for status update: %w", id, ErrNotFound)
	}
	return nil
}
