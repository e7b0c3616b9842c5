package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/catalog"
	"github.com/safar/localkirana/internal/filestore"
	"github.com/safar/localkirana/internal/service"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log, _ := test.NewNullLogger()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	backend, err := filestore.Open(t.TempDir(), hasher, log)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	svc := service.New(backend, hasher, catalog.Default(), service.NewLogNotifier(log), log)
	return Router(svc, backend, log)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Body.Len() == 0 {
		return rec, nil
	}
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestRegisterShopWithCategoryDefaults(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/register-shop", `{
		"shopName": "Anand Kirana",
		"ownerName": "Anand",
		"phone": "+91 1111111111",
		"email": "a@b.com",
		"category": "Grocery",
		"password": "secret1"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Shop registered successfully", body["message"])
	shopID := body["shop_id"]
	require.NotNil(t, shopID)

	_, body = do(t, h, http.MethodGet, "/api/stores", "")
	stores := body["stores"].([]interface{})
	var registered map[string]interface{}
	for _, s := range stores {
		store := s.(map[string]interface{})
		assert.NotContains(t, store, "password")
		assert.NotContains(t, store, "passwordHash")
		if store["id"] == shopID {
			registered = store
		}
	}
	require.NotNil(t, registered)
	assert.Equal(t, "grocery", registered["category"])
	assert.Equal(t, "active", registered["status"])

	products := registered["products"].([]interface{})
	require.Len(t, products, 4)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Rice (1kg)", first["name"])
	assert.Equal(t, "₹80", first["price"])
	assert.Equal(t, true, first["available"])

	rec, body = do(t, h, http.MethodPost, "/api/register-shop", `{
		"shopName": "Copy", "phone": "+91 1111111111", "email": "other@b.com", "password": "x"
	}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Phone number already registered", body["message"])
}

func TestRegisterShopMissingField(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/register-shop", `{"shopName": "A", "phone": "1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: email", body["message"])
}

func TestRegisterShopRejectsInvalidProduct(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/register-shop", `{
		"shopName": "Bad Stock", "phone": "+91 4444444444", "email": "bad@stock.in", "password": "pw",
		"products": [{"name": "", "price": "free"}]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required field: name", body["message"])

	_, body = do(t, h, http.MethodGet, "/api/stores", "")
	assert.Len(t, body["stores"], 3)
}

func TestUpdateStoreNormalizesCategory(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/update-store", `{"id": 2, "category": "  MEDICAL "}`)
	require.Equal(t, http.StatusOK, rec.Code, body)

	_, body = do(t, h, http.MethodGet, "/api/stores", "")
	store := body["stores"].([]interface{})[1].(map[string]interface{})
	assert.Equal(t, "medical", store["category"])
}

func TestCustomerLogin(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/customer-register", `{
		"name": "Asha", "phone": "+91 2222222222", "email": "asha@example.com",
		"location": "Pune", "password": "right"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Customer registered successfully", body["message"])
	assert.NotNil(t, body["customer_id"])

	rec, body = do(t, h, http.MethodPost, "/api/customer-login", `{"phone": "+91 2222222222", "password": "wrong"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid phone number or password", body["message"])

	rec, body = do(t, h, http.MethodPost, "/api/customer-login", `{"phone": "+91 2222222222", "password": "right"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Asha", user["name"])
	assert.NotContains(t, user, "password")
}

func TestShopkeeperLoginWithSeededStore(t *testing.T) {
	h := newTestRouter(t)

	_, body := do(t, h, http.MethodPost, "/api/shopkeeper-login", `{"phone": "+91 9876543210", "password": "password123"}`)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Sharma General Store", user["shopName"])
}

func TestBookingFlow(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/book-item", `{
		"customerId": "1", "storeId": 1, "itemName": "Rice (1kg)"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, body)
	assert.Equal(t, "Item booked successfully", body["message"])
	bookingID := body["booking_id"]

	rec, body = do(t, h, http.MethodPost, "/api/update-booking-status", `{"bookingId": `+jsonNumber(bookingID)+`, "status": "confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code, body)
	assert.Equal(t, "Booking status updated successfully", body["message"])

	_, body = do(t, h, http.MethodGet, "/api/bookings", "")
	bookings := body["bookings"].([]interface{})
	require.Len(t, bookings, 1)
	booking := bookings[0].(map[string]interface{})
	assert.Equal(t, "confirmed", booking["status"])
	assert.Equal(t, "John Doe", booking["customerName"])
	assert.NotNil(t, booking["statusUpdatedDate"])

	rec, body = do(t, h, http.MethodPost, "/api/update-booking-status", `{"bookingId": 999, "status": "confirmed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Booking not found", body["message"])

	rec, body = do(t, h, http.MethodPost, "/api/update-booking-status", `{"bookingId": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Booking ID and status required", body["message"])
}

func TestRequestItem(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/request-item", `{"customerId": 1, "itemName": "Soap", "quantity": 2}`)
	require.Equal(t, http.StatusOK, rec.Code, body)
	assert.Equal(t, "Item request sent successfully", body["message"])

	_, body = do(t, h, http.MethodGet, "/api/requests", "")
	requests := body["requests"].([]interface{})
	require.Len(t, requests, 1)
	request := requests[0].(map[string]interface{})
	assert.Equal(t, "2", request["quantity"])
	assert.Equal(t, "All Stores", request["targetStore"])
	assert.Equal(t, "pending", request["status"])
}

func TestProductLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/add-product", `{
		"storeId": 1, "product": {"name": "Atta (5kg)", "price": 240}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, body)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, "240", product["price"])
	assert.Equal(t, true, product["available"])

	rec, body = do(t, h, http.MethodPost, "/api/update-product", `{
		"storeId": 1, "productIndex": 0, "product": {"name": "Rice (1kg)", "price": "₹85", "available": false}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, body)

	rec, _ = do(t, h, http.MethodPost, "/api/delete-product", `{"storeId": 1, "productId": `+jsonNumber(product["id"])+`}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = do(t, h, http.MethodPost, "/api/delete-product", `{"storeId": 1, "productIndex": 40}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", body["message"])

	_, body = do(t, h, http.MethodGet, "/api/stores", "")
	store := body["stores"].([]interface{})[0].(map[string]interface{})
	products := store["products"].([]interface{})
	require.Len(t, products, 4)
	rice := products[0].(map[string]interface{})
	assert.Equal(t, "₹85", rice["price"])
	assert.Equal(t, false, rice["available"])
}

func TestUpdateStore(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/api/update-store", `{"id": 1, "shop_name": "Sharma Mart", "password": "ignored"}`)
	require.Equal(t, http.StatusOK, rec.Code, body)
	assert.Equal(t, "Store updated successfully", body["message"])

	_, body = do(t, h, http.MethodPost, "/api/shopkeeper-login", `{"phone": "+91 9876543210", "password": "password123"}`)
	assert.Equal(t, "Sharma Mart", body["user"].(map[string]interface{})["shopName"])

	rec, body = do(t, h, http.MethodPost, "/api/update-store", `{"id": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", body["message"])

	rec, _ = do(t, h, http.MethodPost, "/api/update-store", `{"id": 77, "address": "x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveChatTwice(t *testing.T) {
	h := newTestRouter(t)

	for _, msg := range []string{"hello", "is rice in stock?"} {
		rec, body := do(t, h, http.MethodPost, "/api/save-chat", `{
			"chatId": "customer_1_store_2", "senderId": 1, "senderType": "customer", "message": "`+msg+`"
		}`)
		require.Equal(t, http.StatusOK, rec.Code, body)
		assert.Equal(t, "Chat saved successfully", body["message"])
	}

	_, body := do(t, h, http.MethodGet, "/api/chats", "")
	chats := body["chats"].([]interface{})
	require.Len(t, chats, 1)
	chat := chats[0].(map[string]interface{})
	assert.Equal(t, "customer_1_store_2", chat["chatId"])
	assert.Equal(t, "is rice in stock?", chat["lastMessage"])
	assert.Equal(t, map[string]interface{}{"type": "store", "id": float64(2)}, chat["participant2"])

	messages := chat["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].(map[string]interface{})["message"])

	rec, body := do(t, h, http.MethodPost, "/api/save-chat", `{"chatId": "customer_1_store_2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required chat data", body["message"])
}

func TestInvalidJSON(t *testing.T) {
	h := newTestRouter(t)

	for _, raw := range []string{"", "{not json", "[1, 2", `{"phone": "x"} trailing`, `{"phone": "x"}{}`} {
		rec, body := do(t, h, http.MethodPost, "/api/book-item", raw)
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid JSON", body["message"])
	}
}

func TestPreflight(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodOptions, "/api/anything", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body)
	assertCORS(t, rec)
}

func TestNotFound(t *testing.T) {
	h := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nowhere"},
		{http.MethodPost, "/api/stores"},
		{http.MethodGet, "/api/register-shop"},
	} {
		rec, body := do(t, h, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Not found", body["message"])
		assertCORS(t, rec)
	}
}

func TestHealthAndRequestID(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func assertCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func jsonNumber(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
