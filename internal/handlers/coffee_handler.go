package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/repositories"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CoffeeHandler handles HTTP requests for the coffee catalog.
type CoffeeHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewCoffeeHandler creates a new CoffeeHandler.
func NewCoffeeHandler(service *services.InventoryService) *CoffeeHandler {
	return &CoffeeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. mutating is the route
// group carrying the admin gate; reads stay on the plain group.
func (h *CoffeeHandler) RegisterRoutes(router fiber.Router, mutating fiber.Router) {
	coffeeRoutes := router.Group("/coffees")
	coffeeRoutes.Get("/", h.HandleGetCoffees)
	coffeeRoutes.Get("/available", h.HandleGetAvailableCoffees)
	coffeeRoutes.Get("/:id", h.HandleGetCoffeeByID)

	typeRoutes := router.Group("/coffee-types")
	typeRoutes.Get("/", h.HandleGetCoffeeTypes)

	adminCoffees := mutating.Group("/coffees")
	adminCoffees.Post("/", h.HandleCreateCoffee)
	adminCoffees.Put("/:id", h.HandleUpdateCoffee)
	adminCoffees.Delete("/:id", h.HandleDeleteCoffee)

	adminTypes := mutating.Group("/coffee-types")
	adminTypes.Post("/", h.HandleCreateCoffeeType)
}

// HandleGetCoffees retrieves the whole catalog.
func (h *CoffeeHandler) HandleGetCoffees(c *fiber.Ctx) error {
	coffees, err := h.service.GetAllCoffees()
	if err != nil {
		log.Printf("Error getting all coffees: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve coffees",
			"error":   err.Error(),
		})
	}
	return c.JSON(coffees)
}

// HandleGetAvailableCoffees retrieves the coffees a cart can be built from.
func (h *CoffeeHandler) HandleGetAvailableCoffees(c *fiber.Ctx) error {
	coffees, err := h.service.GetAvailableCoffees()
	if err != nil {
		log.Printf("Error getting available coffees: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve available coffees",
			"error":   err.Error(),
		})
	}
	return c.JSON(coffees)
}

// HandleGetCoffeeByID retrieves a single coffee.
func (h *CoffeeHandler) HandleGetCoffeeByID(c *fiber.Ctx) error {
	coffeeID := c.Params("id")
	coffee, err := h.service.GetCoffeeByID(coffeeID)
	if err != nil {
		log.Printf("Error getting coffee by ID %s: %v", coffeeID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Coffee with ID %s not found", coffeeID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve coffee",
			"error":   err.Error(),
		})
	}
	return c.JSON(coffee)
}

// HandleCreateCoffee adds a new coffee to the catalog.
func (h *CoffeeHandler) HandleCreateCoffee(c *fiber.Ctx) error {
	var coffee models.Coffee
	if err := c.BodyParser(&coffee); err != nil {
		log.Printf("Error parsing coffee request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(coffee); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateCoffee(&coffee); err != nil {
		log.Printf("Error creating coffee: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create coffee",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(coffee)
}

// HandleUpdateCoffee updates an existing coffee's catalog fields.
func (h *CoffeeHandler) HandleUpdateCoffee(c *fiber.Ctx) error {
	coffeeID := c.Params("id")

	var coffee models.Coffee
	if err := c.BodyParser(&coffee); err != nil {
		log.Printf("Error parsing coffee update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	coffee.ID = coffeeID

	if err := h.validate.Struct(coffee); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.UpdateCoffee(&coffee); err != nil {
		log.Printf("Error updating coffee %s: %v", coffeeID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Coffee with ID %s not found", coffeeID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update coffee",
			"error":   err.Error(),
		})
	}
	return c.JSON(coffee)
}

// HandleDeleteCoffee removes a coffee and its referencing order lines.
func (h *CoffeeHandler) HandleDeleteCoffee(c *fiber.Ctx) error {
	coffeeID := c.Params("id")
	if err := h.service.DeleteCoffee(coffeeID); err != nil {
		log.Printf("Error deleting coffee %s: %v", coffeeID, err)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Coffee with ID %s not found", coffeeID),
			})
		case errors.Is(err, repositories.ErrReferentialConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Coffee is still referenced by existing orders",
				"error":   err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not delete coffee",
				"error":   err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Coffee %s deleted successfully", coffeeID),
	})
}

// HandleGetCoffeeTypes retrieves the coffee type vocabulary.
func (h *CoffeeHandler) HandleGetCoffeeTypes(c *fiber.Ctx) error {
	types, err := h.service.GetCoffeeTypes()
	if err != nil {
		log.Printf("Error getting coffee types: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve coffee types",
			"error":   err.Error(),
		})
	}
	return c.JSON(types)
}

// HandleCreateCoffeeType adds a new coffee type.
func (h *CoffeeHandler) HandleCreateCoffeeType(c *fiber.Ctx) error {
	var coffeeType models.CoffeeType
	if err := c.BodyParser(&coffeeType); err != nil {
		log.Printf("Error parsing coffee type body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(coffeeType); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateCoffeeType(&coffeeType); err != nil {
		log.Printf("Error creating coffee type: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create coffee type",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(coffeeType)
}
