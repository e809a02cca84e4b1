package models

import "time"

// Order statuses. Pending is the initial state; Completed and Cancelled
// are terminal.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

var validNextStatus = map[string]map[string]bool{
	StatusPending:   {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is part of the order status vocabulary.
func ValidStatus(s string) bool {
	_, ok := validNextStatus[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	return validNextStatus[from][to]
}

// OrderDetail is a single line within an order. UnitPrice is the price
// captured in the cart at submission time, independent of later changes
// to the coffee's price.
type OrderDetail struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	CoffeeID  string  `json:"coffee_id" gorm:"index;type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal returns the line amount for this detail.
func (d OrderDetail) Subtotal() float64 {
	return float64(d.Quantity) * d.UnitPrice
}

// Order represents a customer order together with its line items.
// An order owns its details: they are created and deleted with it.
type Order struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderDate    time.Time     `json:"order_date"`
	Status       string        `json:"status"`
	CustomerName string        `json:"customer_name"`
	PhoneNumber  string        `json:"phone_number"`
	Notes        string        `json:"notes"`
	TotalPrice   float64       `json:"total_price"`
	Details      []OrderDetail `json:"details" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
