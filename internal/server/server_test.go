package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techstore-api/internal/auth"
	"techstore-api/internal/client"
	"techstore-api/internal/config"
	"techstore-api/internal/model"
	"techstore-api/internal/repository"
	"techstore-api/internal/service"
)

func newTestServer(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	require.NoError(t, productRepo.Seed(context.Background(), []model.Product{
		{ID: "LAP-001", Slug: "laptop", Name: "Laptop", Price: 10000, CountInStock: 5},
	}))

	// the gateway clients are never reached by the routes under test
	paypalClient := client.NewPaypalClient(&config.Paypal{BaseApiURL: "http://127.0.0.1:1"})
	paynowClient := client.NewPaynowClient(&config.Paynow{BaseApiURL: "http://127.0.0.1:1"})
	braintreeClient := client.NewBraintreeClient(&config.Braintree{})

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	srv := NewServer(
		issuer, "error",
		service.NewOrderService(db, orderRepo, productRepo, userRepo),
		service.NewPaymentService(db, "http://localhost:8080", paypalClient, paynowClient, braintreeClient, orderRepo, paymentRepo),
		service.NewCatalogService(productRepo),
		service.NewBannerService(bannerRepo),
		service.NewUserService(userRepo, issuer),
	)

	return srv.Handler(), db
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, h http.Handler, name, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func registerAdmin(t *testing.T, h http.Handler, db *gorm.DB, email string) string {
	t.Helper()

	registerUser(t, h, "Admin", email)
	require.NoError(t, db.Model(&model.User{}).
		Where("email = ?", email).
		Update("is_admin", true).Error)

	// re-login so the token carries the admin claim
	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func orderPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{{"product_id": "LAP-001", "qty": 1}},
		"shipping_address": map[string]string{
			"full_name": "Jo Buyer", "address": "1 Main St", "city": "Harare",
			"postal_code": "0000", "country": "ZW",
		},
		"payment_method": model.PaymentMethodPayPal,
		"items_price":    10000,
		"tax_price":      500,
		"shipping_price": 0,
		"total_price":    10500,
	}
}

func createOrder(t *testing.T, h http.Handler, token string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/orders", token, orderPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.NotEmpty(t, order.ID)
	return order.ID
}

func TestServer_Health(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_PublicCatalog(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/products/laptop", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_OrdersRequireAuth(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", "", orderPayload())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/orders", "not-a-token", orderPayload())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_OrderLifecycle(t *testing.T) {
	h, db := newTestServer(t)

	buyerToken := registerUser(t, h, "Jo Buyer", "jo@example.com")
	otherToken := registerUser(t, h, "Sam Other", "sam@example.com")
	adminToken := registerAdmin(t, h, db, "admin@example.com")

	orderID := createOrder(t, h, buyerToken)

	// owner and admin can read, a stranger cannot
	rec := doJSON(t, h, http.MethodGet, "/api/orders/"+orderID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/orders/"+orderID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/orders/"+orderID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/orders/missing", buyerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// back-office routes refuse non-admin tokens
	rec = doJSON(t, h, http.MethodGet, "/api/admin/orders", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/admin/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// delivery transition, then a replay
	path := fmt.Sprintf("/api/admin/orders/%s/deliver", orderID)
	rec = doJSON(t, h, http.MethodPut, path, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPut, path, adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_CashPayment(t *testing.T) {
	h, db := newTestServer(t)

	buyerToken := registerUser(t, h, "Jo Buyer", "jo@example.com")
	adminToken := registerAdmin(t, h, db, "admin@example.com")

	payload := orderPayload()
	payload["payment_method"] = model.PaymentMethodCash
	rec := doJSON(t, h, http.MethodPost, "/api/orders", buyerToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	// buyers cannot use the back-office pay route
	path := fmt.Sprintf("/api/admin/orders/%s/pay", order.ID)
	rec = doJSON(t, h, http.MethodPost, path, buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, path, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var paid struct {
		IsPaid bool `json:"is_paid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paid))
	assert.True(t, paid.IsPaid)

	rec = doJSON(t, h, http.MethodPost, path, adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
