// Package cart holds the in-memory order-building state: one line per
// available coffee, each carrying a unit-price and max-quantity snapshot
// taken when the catalog was loaded. Nothing here touches storage; the
// cart becomes durable only when the order service places it.
package cart

import (
	"errors"
	"sync"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// ErrStockLimitExceeded is reported when an increase would push a line
// past the stock snapshot. It blocks the single mutation and nothing else.
var ErrStockLimitExceeded = errors.New("cannot order more than available stock")

// Line is an unsaved selection of a coffee and a requested quantity.
// UnitPrice and MaxQuantity are snapshots from catalog load time and are
// not re-read afterwards.
type Line struct {
	CoffeeID    string  `json:"coffee_id"`
	CoffeeName  string  `json:"coffee_name"`
	UnitPrice   float64 `json:"unit_price"`
	MaxQuantity int     `json:"max_quantity"`
	Quantity    int     `json:"quantity"`
}

// Subtotal returns the line amount at the snapshot price.
func (l Line) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Cart accumulates selections plus the customer fields collected alongside
// them. All methods are safe for concurrent use; a background catalog load
// never races a mutation.
type Cart struct {
	mu           sync.RWMutex
	lines        []Line
	total        float64
	customerName string
	phone        string
	notes        string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Load replaces the cart contents with one zero-quantity line per catalog
// coffee, snapshotting price and available stock. Any previous selections
// are discarded.
func (c *Cart) Load(coffees []models.Coffee) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make([]Line, 0, len(coffees))
	for _, coffee := range coffees {
		c.lines = append(c.lines, Line{
			CoffeeID:    coffee.ID,
			CoffeeName:  coffee.Name,
			UnitPrice:   coffee.PricePerKg,
			MaxQuantity: coffee.QuantityInStock,
		})
	}
	c.recompute()
}

// IncreaseQuantity adds one unit to the line for the given coffee. It
// returns ErrStockLimitExceeded when the line is already at its stock
// snapshot, leaving the quantity unchanged.
func (c *Cart) IncreaseQuantity(coffeeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.find(coffeeID)
	if line == nil {
		return errors.New("coffee is not in the cart")
	}
	if line.Quantity >= line.MaxQuantity {
		return ErrStockLimitExceeded
	}
	line.Quantity++
	c.recompute()
	return nil
}

// DecreaseQuantity removes one unit from the line; a line already at zero
// is left alone.
func (c *Cart) DecreaseQuantity(coffeeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.find(coffeeID)
	if line == nil || line.Quantity == 0 {
		return
	}
	line.Quantity--
	c.recompute()
}

// RemoveLine resets the line's quantity to zero.
func (c *Cart) RemoveLine(coffeeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line := c.find(coffeeID); line != nil {
		line.Quantity = 0
		c.recompute()
	}
}

// Clear resets every line to zero quantity and wipes the customer fields.
// Callers are expected to confirm with the user before invoking this.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		c.lines[i].Quantity = 0
	}
	c.customerName = ""
	c.phone = ""
	c.notes = ""
	c.recompute()
}

// SetCustomer records the customer fields collected alongside the
// selections.
func (c *Cart) SetCustomer(name, phone, notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.customerName = name
	c.phone = phone
	c.notes = notes
}

// Customer returns the recorded customer fields.
func (c *Cart) Customer() (name, phone, notes string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.customerName, c.phone, c.notes
}

// Lines returns a copy of the lines with a positive quantity, in catalog
// order. This is the set that will be submitted.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	selected := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		if l.Quantity > 0 {
			selected = append(selected, l)
		}
	}
	return selected
}

// Total returns the derived order total. It is recomputed after every
// mutation and is not stored until submission.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

func (c *Cart) find(coffeeID string) *Line {
	for i := range c.lines {
		if c.lines[i].CoffeeID == coffeeID {
			return &c.lines[i]
		}
	}
	return nil
}

// recompute refreshes the derived total. Callers must hold the lock.
func (c *Cart) recompute() {
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	c.total = total
}
