package services

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/cart"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/repositories"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]+$`)
)

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService handles order placement and status tracking.
type OrderService struct {
	orderRepo  repositories.OrderRepository
	coffeeRepo repositories.CoffeeRepository
	publisher  EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case events are skipped.
func NewOrderService(orderRepo repositories.OrderRepository, coffeeRepo repositories.CoffeeRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		coffeeRepo: coffeeRepo,
		publisher:  publisher,
	}
}

// ValidateCustomer checks the customer fields collected at the counter.
// Names allow letters and spaces only; phone numbers allow digits only.
// Pure validation, no side effects.
func ValidateCustomer(name, phone string) error {
	if strings.TrimSpace(name) == "" || !nameRe.MatchString(name) {
		return ErrInvalidName
	}
	if phone == "" || !phoneRe.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// PlaceOrder validates the cart and customer fields, then persists the
// order header, its lines and the stock decrements as one atomic unit.
// Line unit prices come from the cart's snapshot, not from a re-read of
// the coffee, so a price change between cart build and checkout never
// drifts the total. On any failure nothing is persisted.
func (s *OrderService) PlaceOrder(lines []cart.Line, customerName, customerPhone, notes string) (*models.Order, error) {
	selected := make([]cart.Line, 0, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			selected = append(selected, line)
		}
	}
	if len(selected) == 0 {
		return nil, ErrEmptyCart
	}

	if err := ValidateCustomer(customerName, customerPhone); err != nil {
		return nil, err
	}

	var totalPrice float64
	details := make([]models.OrderDetail, 0, len(selected))
	for _, line := range selected {
		details = append(details, models.OrderDetail{
			CoffeeID:  line.CoffeeID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		totalPrice += line.Subtotal()
	}

	newOrder := &models.Order{
		OrderDate:    time.Now(),
		Status:       models.StatusPending,
		CustomerName: strings.TrimSpace(customerName),
		PhoneNumber:  strings.TrimSpace(customerPhone),
		Notes:        notes,
		TotalPrice:   totalPrice,
		Details:      details,
	}

	if err := s.orderRepo.Place(newOrder); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID":  newOrder.ID,
		"customer": newOrder.CustomerName,
		"status":   newOrder.Status,
		"total":    newOrder.TotalPrice,
	})

	return newOrder, nil
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus moves an order to a new status, enforcing the
// transition rules (terminal orders stay terminal).
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !models.CanTransition(order.Status, status) {
		return fmt.Errorf("%s -> %s: %w", order.Status, status, ErrInvalidTransition)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishEvent("order.status_changed", map[string]interface{}{
		"orderID": id,
		"status":  status,
	})

	return nil
}

// InvoiceLine is one printable line of an invoice.
type InvoiceLine struct {
	CoffeeID   string  `json:"coffee_id"`
	CoffeeName string  `json:"coffee_name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Subtotal   float64 `json:"subtotal"`
}

// Invoice is the printable view of an order: its lines with per-line
// subtotals and the order total.
type Invoice struct {
	OrderID      string        `json:"order_id"`
	OrderDate    time.Time     `json:"order_date"`
	CustomerName string        `json:"customer_name"`
	PhoneNumber  string        `json:"phone_number"`
	Notes        string        `json:"notes"`
	Lines        []InvoiceLine `json:"lines"`
	Total        float64       `json:"total"`
}

// GetInvoice builds the invoice view for an order. Coffee names are
// resolved from the catalog; a coffee removed since the order was placed
// keeps its line with the captured price and a placeholder name.
func (s *OrderService) GetInvoice(id string) (*Invoice, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	invoice := &Invoice{
		OrderID:      order.ID,
		OrderDate:    order.OrderDate,
		CustomerName: order.CustomerName,
		PhoneNumber:  order.PhoneNumber,
		Notes:        order.Notes,
		Lines:        make([]InvoiceLine, 0, len(order.Details)),
		Total:        order.TotalPrice,
	}
	for _, detail := range order.Details {
		name := "(no longer in catalog)"
		if coffee, err := s.coffeeRepo.GetByID(detail.CoffeeID); err == nil {
			name = coffee.Name
		}
		invoice.Lines = append(invoice.Lines, InvoiceLine{
			CoffeeID:   detail.CoffeeID,
			CoffeeName: name,
			Quantity:   detail.Quantity,
			UnitPrice:  detail.UnitPrice,
			Subtotal:   detail.Subtotal(),
		})
	}
	return invoice, nil
}

// publishEvent sends an order event to the broker. Publication is best
// effort: a broker failure is logged and never fails the operation.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
