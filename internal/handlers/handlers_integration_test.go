package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/handlers"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/middleware"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/repositories"
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services wired the way main does it.
func setupApp(t *testing.T) (*fiber.App, *repositories.GORMCoffeeRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.CoffeeType{},
		&models.Coffee{},
		&models.Order{},
		&models.OrderDetail{},
		&models.User{},
	); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	coffeeRepo := repositories.NewGORMCoffeeRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	inventoryService := services.NewInventoryService(coffeeRepo)
	orderService := services.NewOrderService(orderRepo, coffeeRepo, nil) // nil publisher: no broker in tests
	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	if err := authService.EnsureAdminAccount("shopadmin", "shopadmin@example.com", "password123"); err != nil {
		t.Fatalf("failed to provision admin account: %v", err)
	}

	coffeeHandler := handlers.NewCoffeeHandler(inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	admin := protected.Group("", middleware.AdminOnly())

	coffeeHandler.RegisterRoutes(protected, admin)
	orderHandler.RegisterRoutes(protected, admin)

	return app, coffeeRepo
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	return resp
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return login(t, app, username)
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()

	token, _ := loginResp["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestOrderPlacementFlow(t *testing.T) {
	app, coffeeRepo := setupApp(t)
	adminToken := login(t, app, "shopadmin")

	// Admin creates a type and a coffee
	resp := doJSON(t, app, http.MethodPost, "/api/v1/coffee-types", adminToken, map[string]string{
		"type_name": "Arabica",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var createdType models.CoffeeType
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&createdType))
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/coffees", adminToken, map[string]interface{}{
		"name":              "Ethiopian Yirgacheffe",
		"coffee_type_id":    createdType.ID,
		"description":       "Floral, citrus-forward single origin",
		"price_per_kg":      12.50,
		"quantity_in_stock": 10,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var createdCoffee models.Coffee
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&createdCoffee))
	resp.Body.Close()

	// The coffee shows up in the cart catalog
	resp = doJSON(t, app, http.MethodGet, "/api/v1/coffees/available", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var available []models.Coffee
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&available))
	resp.Body.Close()
	assert.Len(t, available, 1)

	// Place an order for three kilos
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", adminToken, map[string]interface{}{
		"customer_name": "Jane Doe",
		"phone_number":  "5551234",
		"notes":         "extra fine grind",
		"items": []map[string]interface{}{
			{"coffee_id": createdCoffee.ID, "unit_price": 12.50, "max_quantity": 10, "quantity": 3},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var placed models.Order
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&placed))
	resp.Body.Close()
	assert.InDelta(t, 37.50, placed.TotalPrice, 0.001)
	assert.Equal(t, models.StatusPending, placed.Status)

	// Stock dropped from 10 to 7
	coffee, err := coffeeRepo.GetByID(createdCoffee.ID)
	assert.NoError(t, err)
	assert.Equal(t, 7, coffee.QuantityInStock)

	// The invoice reconstructs the line subtotals
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+placed.ID+"/invoice", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var invoice services.Invoice
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&invoice))
	resp.Body.Close()
	assert.Len(t, invoice.Lines, 1)
	assert.InDelta(t, 37.50, invoice.Lines[0].Subtotal, 0.001)
	assert.InDelta(t, 37.50, invoice.Total, 0.001)

	// Admin moves the order along
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/orders/"+placed.ID+"/status", adminToken, map[string]string{
		"status": models.StatusPreparing,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderPlacementValidation(t *testing.T) {
	app, coffeeRepo := setupApp(t)
	token := registerAndLogin(t, app, "counterstaff")

	coffee := &models.Coffee{Name: "House Espresso Blend", PricePerKg: 15.25, QuantityInStock: 2}
	assert.NoError(t, coffeeRepo.Create(coffee))

	// Empty cart with valid customer fields
	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"customer_name": "Jane Doe",
		"phone_number":  "5551234",
		"items":         []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Name with a digit
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"customer_name": "J4ne",
		"phone_number":  "5551234",
		"items": []map[string]interface{}{
			{"coffee_id": coffee.ID, "unit_price": 15.25, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// A stale cart that outgrew the stock fails atomically
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"customer_name": "Jane Doe",
		"phone_number":  "5551234",
		"items": []map[string]interface{}{
			{"coffee_id": coffee.ID, "unit_price": 15.25, "quantity": 5},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	unchanged, err := coffeeRepo.GetByID(coffee.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, unchanged.QuantityInStock)
}

func TestAdminGate(t *testing.T) {
	app, _ := setupApp(t)
	userToken := registerAndLogin(t, app, "regular")

	// A regular user can read the catalog
	resp := doJSON(t, app, http.MethodGet, "/api/v1/coffees", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// But cannot mutate it
	resp = doJSON(t, app, http.MethodPost, "/api/v1/coffee-types", userToken, map[string]string{
		"type_name": "Robusta",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// And no token at all is rejected outright
	resp = doJSON(t, app, http.MethodGet, "/api/v1/coffees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterCannotClaimAdminRole(t *testing.T) {
	app, _ := setupApp(t)

	// A role key in the register payload is ignored
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "randomstranger",
		"email":    "randomstranger@example.com",
		"password": "password123",
		"role":     "Admin",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var registerResp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&registerResp))
	resp.Body.Close()
	assert.Equal(t, models.RoleUser, registerResp.User.Role)

	// And the resulting token does not open the admin routes
	token := login(t, app, "randomstranger")
	resp = doJSON(t, app, http.MethodPost, "/api/v1/coffee-types", token, map[string]string{
		"type_name": "Blend",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
