package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Everilll/CateringKita/database"
	"github.com/Everilll/CateringKita/handlers"
	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/repository"
	"github.com/Everilll/CateringKita/routes"
	"github.com/Everilll/CateringKita/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	log := zerolog.Nop()
	catalogRepo := repository.NewCatalogRepository(db)
	identityRepo := repository.NewIdentityRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := services.NewAuthService(identityRepo, log)
	catalogService := services.NewCatalogService(catalogRepo, identityRepo, log)
	orderService := services.NewOrderService(orderRepo, catalogRepo, identityRepo, log)
	auth := middleware.NewAuthMiddleware("test_secret", 1)

	r := gin.New()
	routes.Setup(r, auth, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, auth),
		Orders:   handlers.NewOrderHandler(orderService),
		Vendors:  handlers.NewVendorHandler(catalogService, orderService),
		Menus:    handlers.NewMenuHandler(catalogService),
		Category: handlers.NewCategoryHandler(catalogService),
		Admin:    handlers.NewAdminHandler(orderService, catalogService, identityRepo),
	})
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	}
	return w, parsed
}

func registerVendor(t *testing.T, r *gin.Engine, tag string) string {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":           "Vendor " + tag,
		"email":          "vendor-" + tag + "@example.com",
		"password":       "rahasia123",
		"role":           "VENDOR",
		"vendor_name":    "Katering " + tag,
		"vendor_address": "Jl. Mawar 2",
		"vendor_city":    "Bandung",
		"vendor_phone":   "0813" + tag,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body["access_token"].(string)
}

func registerCustomer(t *testing.T, r *gin.Engine, tag string) string {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Customer " + tag,
		"email":    "customer-" + tag + "@example.com",
		"password": "rahasia123",
		"role":     "CUSTOMER",
		"phone":    "0812" + tag,
		"address":  "Jl. Melati 1",
		"city":     "Bandung",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body["access_token"].(string)
}

func createMenu(t *testing.T, r *gin.Engine, vendorToken, name string, price float64, available bool) uint {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/menus", vendorToken, gin.H{
		"name":      name,
		"price":     price,
		"available": available,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	menu := body["menu"].(map[string]interface{})
	return uint(menu["id"].(float64))
}

func placeOrder(t *testing.T, r *gin.Engine, customerToken string, vendorID, menuID uint) uint {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/orders", customerToken, gin.H{
		"vendorId": vendorID,
		"items":    []gin.H{{"menuId": menuID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := body["order"].(map[string]interface{})
	return uint(order["id"].(float64))
}

func firstVendorID(t *testing.T, r *gin.Engine) uint {
	t.Helper()
	w, body := do(t, r, http.MethodGet, "/api/vendors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	vendors := body["vendors"].([]interface{})
	require.NotEmpty(t, vendors)
	v := vendors[len(vendors)-1].(map[string]interface{})
	return uint(v["id"].(float64))
}

func TestOrders_RequireAuth(t *testing.T) {
	r := newTestServer(t)
	w, _ := do(t, r, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrders_RoleGuard(t *testing.T) {
	r := newTestServer(t)
	vendorToken := registerVendor(t, r, "a")

	// A vendor cannot place orders.
	w, _ := do(t, r, http.MethodPost, "/api/orders", vendorToken, gin.H{
		"vendorId": 1,
		"items":    []gin.H{{"menuId": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPlaceOrder_ReturnsCreatedOrder(t *testing.T) {
	r := newTestServer(t)
	vendorToken := registerVendor(t, r, "a")
	customerToken := registerCustomer(t, r, "a")
	menuID := createMenu(t, r, vendorToken, "Nasi Goreng", 10000, true)
	vendorID := firstVendorID(t, r)

	w, body := do(t, r, http.MethodPost, "/api/orders", customerToken, gin.H{
		"vendorId":     vendorID,
		"items":        []gin.H{{"menuId": menuID, "quantity": 2}},
		"delivery_fee": 5000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := body["order"].(map[string]interface{})
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, float64(25000), order["total"])
	items := order["items"].([]interface{})
	require.Len(t, items, 1)
}

func TestPlaceOrder_UnavailableMenuIsNamed(t *testing.T) {
	r := newTestServer(t)
	vendorToken := registerVendor(t, r, "a")
	customerToken := registerCustomer(t, r, "a")
	goodID := createMenu(t, r, vendorToken, "Nasi Goreng", 10000, true)
	badID := createMenu(t, r, vendorToken, "Sate Ayam", 5000, false)
	vendorID := firstVendorID(t, r)

	w, body := do(t, r, http.MethodPost, "/api/orders", customerToken, gin.H{
		"vendorId": vendorID,
		"items": []gin.H{
			{"menuId": goodID, "quantity": 2},
			{"menuId": badID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"].(string), "Sate Ayam")
}

func TestGetOrder_CrossTenantGets403(t *testing.T) {
	r := newTestServer(t)
	vendorToken := registerVendor(t, r, "a")
	ownerToken := registerCustomer(t, r, "a")
	strangerToken := registerCustomer(t, r, "b")
	menuID := createMenu(t, r, vendorToken, "Nasi Goreng", 10000, true)
	vendorID := firstVendorID(t, r)
	orderID := placeOrder(t, r, ownerToken, vendorID, menuID)

	w, _ := do(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/orders/99999", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFlow_OverHTTP(t *testing.T) {
	r := newTestServer(t)
	vendorToken := registerVendor(t, r, "a")
	customerToken := registerCustomer(t, r, "a")
	menuID := createMenu(t, r, vendorToken, "Nasi Goreng", 10000, true)
	vendorID := firstVendorID(t, r)
	orderID := placeOrder(t, r, customerToken, vendorID, menuID)
	statusPath := fmt.Sprintf("/api/orders/%d/status", orderID)

	// Skipping a step is a 422.
	w, _ := do(t, r, http.MethodPatch, statusPath, vendorToken, gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, body := do(t, r, http.MethodPatch, statusPath, vendorToken, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "confirmed", order["status"])

	// Customers cannot hit the status endpoint at all.
	w, _ = do(t, r, http.MethodPatch, statusPath, customerToken, gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancel_OverHTTP(t *testing.T) {
	r := newTestServer(t)
	vendorToken := registerVendor(t, r, "a")
	customerToken := registerCustomer(t, r, "a")
	menuID := createMenu(t, r, vendorToken, "Nasi Goreng", 10000, true)
	vendorID := firstVendorID(t, r)

	orderID := placeOrder(t, r, customerToken, vendorID, menuID)
	orderPath := fmt.Sprintf("/api/orders/%d", orderID)

	w, body := do(t, r, http.MethodDelete, orderPath, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "cancelled", order["status"])

	// Past the window: vendor confirms a fresh order, advances to preparing,
	// then neither side may cancel.
	orderID = placeOrder(t, r, customerToken, vendorID, menuID)
	orderPath = fmt.Sprintf("/api/orders/%d", orderID)
	statusPath := orderPath + "/status"
	for _, s := range []string{"confirmed", "preparing"} {
		w, _ = do(t, r, http.MethodPatch, statusPath, vendorToken, gin.H{"status": s})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, _ = do(t, r, http.MethodDelete, orderPath, customerToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w, _ = do(t, r, http.MethodDelete, orderPath, vendorToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListOrders_ScopedPerCaller(t *testing.T) {
	r := newTestServer(t)
	vendorToken := registerVendor(t, r, "a")
	customerA := registerCustomer(t, r, "a")
	customerB := registerCustomer(t, r, "b")
	menuID := createMenu(t, r, vendorToken, "Nasi Goreng", 10000, true)
	vendorID := firstVendorID(t, r)

	placeOrder(t, r, customerA, vendorID, menuID)
	placeOrder(t, r, customerA, vendorID, menuID)
	placeOrder(t, r, customerB, vendorID, menuID)

	_, body := do(t, r, http.MethodGet, "/api/orders", customerA, nil)
	assert.Equal(t, float64(2), body["count"])

	_, body = do(t, r, http.MethodGet, "/api/orders", customerB, nil)
	assert.Equal(t, float64(1), body["count"])

	_, body = do(t, r, http.MethodGet, "/api/orders", vendorToken, nil)
	assert.Equal(t, float64(3), body["count"])
}
