package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"mesa-backend/internal/config"
	"mesa-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:        strings.Repeat("s", 32),
		CORSOrigins:      "http://localhost:5173",
		ProductImagePath: t.TempDir(),
		Env:              "development",
	}
	return New(cfg)
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func register(t *testing.T, app *fiber.App, name, username string) (string, float64) {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/establishments", "", fiber.Map{
		"establishment": fiber.Map{"name": name, "service_tax": 10},
		"admin":         fiber.Map{"username": username, "password": "secret123"},
	})
	require.Equal(t, http.StatusCreated, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	estabID, _ := body["establishment_id"].(float64)
	require.NotZero(t, estabID)
	return token, estabID
}

func TestOrderLifecycleScenario(t *testing.T) {
	app := setupApp(t)
	token, estabID := register(t, app, "Cantina da Praça", "dona.rosa")

	status, _ := do(t, app, http.MethodPost, "/api/waiters", token, fiber.Map{
		"name": "Ana", "password": "waiterpass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, product := do(t, app, http.MethodPost, "/api/products", token, fiber.Map{
		"name": "Feijoada", "price": 10.00,
	})
	require.Equal(t, http.StatusCreated, status)
	productID := product["id"].(float64)

	// Open table "5".
	status, table1 := do(t, app, http.MethodPost, "/api/tables", "", fiber.Map{
		"establishment_id": estabID, "number": "5",
	})
	require.Equal(t, http.StatusOK, status)
	table1ID := table1["id"].(float64)
	assert.Equal(t, true, table1["open"])

	// Submit an order: 2 × 10.00.
	status, order := do(t, app, http.MethodPost, "/api/orders", "", fiber.Map{
		"establishment_id": estabID,
		"table_number":     "5",
		"items":            []fiber.Map{{"product_id": productID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 20.00, order["total"])
	items := order["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, 10.00, item["unit_price"])

	// Bump the quantity to 3.
	itemID := item["id"].(float64)
	status, updated := do(t, app, http.MethodPatch,
		fmt.Sprintf("/api/orders/items/%.0f", itemID), "", fiber.Map{"quantity": 3})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 30.00, updated["total"])

	// Close the table: bill is 30, fee paid.
	status, closed := do(t, app, http.MethodPost, "/api/tables/5/close", token, fiber.Map{
		"service_fee_paid": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 30.00, closed["total"])
	assert.Equal(t, true, closed["service_fee_paid"])

	// Reopening number "5" yields a different table identity.
	status, table2 := do(t, app, http.MethodPost, "/api/tables", "", fiber.Map{
		"establishment_id": estabID, "number": "5",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEqual(t, table1ID, table2["id"].(float64))
}

func TestCloseTableForbiddenAcrossEstablishments(t *testing.T) {
	app := setupApp(t)
	_, estabID := register(t, app, "First", "first.admin")
	otherToken, _ := register(t, app, "Second", "second.admin")

	status, table := do(t, app, http.MethodPost, "/api/tables", "", fiber.Map{
		"establishment_id": estabID, "number": "1",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPost,
		fmt.Sprintf("/api/tables/%.0f/close", table["id"].(float64)), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/establishments/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodPost, "/api/waiters", "", fiber.Map{"name": "x", "password": "y"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminLoginAndMe(t *testing.T) {
	app := setupApp(t)
	_, estabID := register(t, app, "Login Test", "the.admin")

	status, body := do(t, app, http.MethodPost, "/api/auth/admin", "", fiber.Map{
		"username": "the.admin", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)

	status, me := do(t, app, http.MethodGet, "/api/establishments/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, estabID, me["id"].(float64))

	status, _ = do(t, app, http.MethodPost, "/api/auth/admin", "", fiber.Map{
		"username": "the.admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOrderStatusTransitionOverHTTP(t *testing.T) {
	app := setupApp(t)
	token, estabID := register(t, app, "Status Test", "status.admin")

	status, _ := do(t, app, http.MethodPost, "/api/waiters", token, fiber.Map{
		"name": "Bia", "password": "waiterpass",
	})
	require.Equal(t, http.StatusCreated, status)
	status, product := do(t, app, http.MethodPost, "/api/products", token, fiber.Map{
		"name": "Coffee", "price": 3.50,
	})
	require.Equal(t, http.StatusCreated, status)

	status, order := do(t, app, http.MethodPost, "/api/orders", "", fiber.Map{
		"establishment_id": estabID,
		"table_number":     "2",
		"items":            []fiber.Map{{"product_id": product["id"], "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, status)
	orderID := order["id"].(float64)

	status, updated := do(t, app, http.MethodPatch,
		fmt.Sprintf("/api/orders/%.0f/status", orderID), "", fiber.Map{"status": "SERVED"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SERVED", updated["status"])

	status, _ = do(t, app, http.MethodPatch,
		fmt.Sprintf("/api/orders/%.0f/status", orderID), "", fiber.Map{"status": "BURNED"})
	assert.Equal(t, http.StatusBadRequest, status)
}
