package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"printo/internal/http/middleware"
	"printo/internal/model"
	"printo/internal/service"
	serviceMocks "printo/internal/service/mocks"
)

// asUser injects authenticated identity into locals, standing in for
// middleware.RequireAuth in handler-level tests.
func asUser(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDLocalKey, userID)
		c.Locals(middleware.UserRoleLocalKey, role)
		return c.Next()
	}
}

func TestHealth(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, db, Services{})

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	t.Run("liveness", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestAuthHandler(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	h := NewAuthHandler(mockSvc)

	app := fiber.New()
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)

	t.Run("register success", func(t *testing.T) {
		expected := &model.User{ID: uuid.NewString(), Name: "Asha", Email: "asha@example.com", Role: model.RoleCustomer}
		mockSvc.On("Register", mock.Anything, "Asha", "asha@example.com", "secret123", "").
			Return(expected, nil).Once()

		body, _ := json.Marshal(map[string]string{"name": "Asha", "email": "asha@example.com", "password": "secret123"})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.User
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("register missing fields", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "x@example.com"})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "MISSING_FIELDS", res.Error.Code)
	})

	t.Run("register admin rejected", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "Mallory", "mallory@example.com", "secret123", model.RoleAdmin).
			Return(nil, service.ErrRoleNotAllowed).Once()

		body, _ := json.Marshal(map[string]string{
			"name": "Mallory", "email": "mallory@example.com", "password": "secret123", "role": model.RoleAdmin,
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ROLE_NOT_ALLOWED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("register email taken", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "Asha", "asha@example.com", "secret123", "").
			Return(nil, service.ErrEmailTaken).Once()

		body, _ := json.Marshal(map[string]string{"name": "Asha", "email": "asha@example.com", "password": "secret123"})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("login success", func(t *testing.T) {
		u := &model.User{ID: uuid.NewString(), Email: "asha@example.com"}
		mockSvc.On("Login", mock.Anything, "asha@example.com", "secret123").
			Return("signed.jwt.token", u, nil).Once()

		body, _ := json.Marshal(map[string]string{"email": "asha@example.com", "password": "secret123"})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]json.RawMessage
		json.NewDecoder(resp.Body).Decode(&result)
		assert.JSONEq(t, `"signed.jwt.token"`, string(result["token"]))
		mockSvc.AssertExpectations(t)
	})

	t.Run("login bad credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "asha@example.com", "wrong").
			Return("", nil, service.ErrInvalidCredential).Once()

		body, _ := json.Marshal(map[string]string{"email": "asha@example.com", "password": "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestProductHandler_Get(t *testing.T) {
	mockSvc := new(serviceMocks.MockProductService)
	h := NewProductHandler(mockSvc, nil)

	app := fiber.New()
	app.Get("/products/:id", h.Get)

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		expected := &model.Product{ID: id, Name: "Business cards", Category: "stationery"}
		mockSvc.On("Get", mock.Anything, id).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/products/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Product
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/products/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestProductHandler_Create(t *testing.T) {
	mockProducts := new(serviceMocks.MockProductService)
	mockSellers := new(serviceMocks.MockSellerService)
	h := NewProductHandler(mockProducts, mockSellers)

	userID := uuid.NewString()
	sellerID := uuid.NewString()

	app := fiber.New()
	app.Post("/products", asUser(userID, model.RoleSeller), h.Create)

	t.Run("success", func(t *testing.T) {
		mockSellers.On("GetByUser", mock.Anything, userID).
			Return(&model.Seller{ID: sellerID, UserID: userID, Verification: model.VerificationVerified}, nil).Once()

		created := &model.Product{ID: uuid.NewString(), SellerID: sellerID, Name: "Mug", Category: "home-decor"}
		mockProducts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
			return p.SellerID == sellerID && p.Name == "Mug"
		})).Return(created, nil).Once()

		body, _ := json.Marshal(map[string]any{"name": "Mug", "category": "home-decor", "price": "249.00", "stock": 5})
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockProducts.AssertExpectations(t)
		mockSellers.AssertExpectations(t)
	})

	t.Run("seller not verified", func(t *testing.T) {
		mockSellers.On("GetByUser", mock.Anything, userID).
			Return(&model.Seller{ID: sellerID, UserID: userID, Verification: model.VerificationPending}, nil).Once()
		mockProducts.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrSellerNotVerified).Once()

		body, _ := json.Marshal(map[string]any{"name": "Mug", "category": "home-decor", "price": "249.00"})
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "SELLER_NOT_VERIFIED", res.Error.Code)
	})
}

func TestProductHandler_UploadImage(t *testing.T) {
	mockProducts := new(serviceMocks.MockProductService)
	mockSellers := new(serviceMocks.MockSellerService)
	h := NewProductHandler(mockProducts, mockSellers)

	userID := uuid.NewString()
	sellerID := uuid.NewString()
	productID := uuid.NewString()

	app := fiber.New()
	app.Post("/products/:id/images", asUser(userID, model.RoleSeller), h.UploadImage)

	t.Run("success", func(t *testing.T) {
		mockProducts.On("Get", mock.Anything, productID).
			Return(&model.Product{ID: productID, SellerID: sellerID}, nil).Once()
		mockSellers.On("GetByUser", mock.Anything, userID).
			Return(&model.Seller{ID: sellerID, UserID: userID}, nil).Once()
		mockProducts.On("UploadImage", mock.Anything, productID, mock.Anything, "front.png", mock.Anything, mock.Anything).
			Return("products/"+productID+"/abc.png", nil).Once()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("image", "front.png")
		part.Write([]byte("png bytes"))
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/products/"+productID+"/images", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockProducts.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		mockProducts.On("Get", mock.Anything, productID).
			Return(&model.Product{ID: productID, SellerID: sellerID}, nil).Once()
		mockSellers.On("GetByUser", mock.Anything, userID).
			Return(&model.Seller{ID: sellerID, UserID: userID}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/products/"+productID+"/images", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("not the owner", func(t *testing.T) {
		mockProducts.On("Get", mock.Anything, productID).
			Return(&model.Product{ID: productID, SellerID: uuid.NewString()}, nil).Once()
		mockSellers.On("GetByUser", mock.Anything, userID).
			Return(&model.Seller{ID: sellerID, UserID: userID}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/products/"+productID+"/images", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestOrderHandler_Create(t *testing.T) {
	mockOrders := new(serviceMocks.MockOrderService)
	mockAuth := new(serviceMocks.MockAuthService)
	h := NewOrderHandler(mockOrders, nil, mockAuth)

	userID := uuid.NewString()

	app := fiber.New()
	app.Post("/orders", asUser(userID, model.RoleCustomer), h.Create)

	t.Run("success", func(t *testing.T) {
		productID := uuid.NewString()
		mockAuth.On("Profile", mock.Anything, userID).
			Return(&model.User{ID: userID, Email: "asha@example.com"}, nil).Once()

		created := &model.Order{ID: uuid.NewString(), UserID: userID, Status: model.OrderStatusCreated}
		mockOrders.On("Create", mock.Anything, mock.MatchedBy(func(r *service.CreateOrderRequest) bool {
			return r.UserID == userID &&
				r.UserEmail == "asha@example.com" &&
				r.IdempotencyKey == "key-1" &&
				len(r.Items) == 1 && r.Items[0].ProductID == productID
		})).Return(created, nil).Once()

		body, _ := json.Marshal(map[string]any{
			"items":            []map[string]any{{"product_id": productID, "quantity": 2}},
			"shipping_address": "12 MG Road, Pune",
		})
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockOrders.AssertExpectations(t)
	})

	t.Run("empty order", func(t *testing.T) {
		mockAuth.On("Profile", mock.Anything, userID).
			Return(&model.User{ID: userID, Email: "asha@example.com"}, nil).Once()
		mockOrders.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrEmptyOrder).Once()

		body, _ := json.Marshal(map[string]any{"items": []map[string]any{}})
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "EMPTY_ORDER", res.Error.Code)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		mockAuth.On("Profile", mock.Anything, userID).
			Return(&model.User{ID: userID, Email: "asha@example.com"}, nil).Once()
		mockOrders.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrInsufficientStock).Once()

		body, _ := json.Marshal(map[string]any{
			"items": []map[string]any{{"product_id": uuid.NewString(), "quantity": 99}},
		})
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestOrderHandler_Get(t *testing.T) {
	mockOrders := new(serviceMocks.MockOrderService)
	h := NewOrderHandler(mockOrders, nil, nil)

	ownerID := uuid.NewString()
	orderID := uuid.NewString()

	t.Run("owner can read", func(t *testing.T) {
		app := fiber.New()
		app.Get("/orders/:id", asUser(ownerID, model.RoleCustomer), h.Get)

		mockOrders.On("Get", mock.Anything, orderID).
			Return(&model.Order{ID: orderID, UserID: ownerID}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		app := fiber.New()
		app.Get("/orders/:id", asUser(uuid.NewString(), model.RoleCustomer), h.Get)

		mockOrders.On("Get", mock.Anything, orderID).
			Return(&model.Order{ID: orderID, UserID: ownerID}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin can read", func(t *testing.T) {
		app := fiber.New()
		app.Get("/orders/:id", asUser(uuid.NewString(), model.RoleAdmin), h.Get)

		mockOrders.On("Get", mock.Anything, orderID).
			Return(&model.Order{ID: orderID, UserID: ownerID}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	orderID := uuid.NewString()
	sellerUserID := uuid.NewString()
	sellerID := uuid.NewString()

	orderWithLine := &model.Order{
		ID:     orderID,
		Status: model.OrderStatusPaid,
		Items:  []model.OrderItem{{ProductID: uuid.NewString(), SellerID: sellerID}},
	}
	body, _ := json.Marshal(map[string]string{"status": model.OrderStatusShipped})

	t.Run("seller with a line may advance", func(t *testing.T) {
		mockOrders := new(serviceMocks.MockOrderService)
		mockSellers := new(serviceMocks.MockSellerService)
		h := NewOrderHandler(mockOrders, mockSellers, nil)

		app := fiber.New()
		app.Patch("/orders/:id/status", asUser(sellerUserID, model.RoleSeller), h.UpdateStatus)

		mockOrders.On("Get", mock.Anything, orderID).Return(orderWithLine, nil).Once()
		mockSellers.On("GetByUser", mock.Anything, sellerUserID).
			Return(&model.Seller{ID: sellerID}, nil).Once()
		mockOrders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusShipped).
			Return(&model.Order{ID: orderID, Status: model.OrderStatusShipped}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockOrders.AssertExpectations(t)
	})

	t.Run("unrelated seller is rejected", func(t *testing.T) {
		mockOrders := new(serviceMocks.MockOrderService)
		mockSellers := new(serviceMocks.MockSellerService)
		h := NewOrderHandler(mockOrders, mockSellers, nil)

		strangerUserID := uuid.NewString()
		app := fiber.New()
		app.Patch("/orders/:id/status", asUser(strangerUserID, model.RoleSeller), h.UpdateStatus)

		mockOrders.On("Get", mock.Anything, orderID).Return(orderWithLine, nil).Once()
		mockSellers.On("GetByUser", mock.Anything, strangerUserID).
			Return(&model.Seller{ID: uuid.NewString()}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin bypasses the line check", func(t *testing.T) {
		mockOrders := new(serviceMocks.MockOrderService)
		h := NewOrderHandler(mockOrders, nil, nil)

		app := fiber.New()
		app.Patch("/orders/:id/status", asUser(uuid.NewString(), model.RoleAdmin), h.UpdateStatus)

		mockOrders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusShipped).
			Return(&model.Order{ID: orderID, Status: model.OrderStatusShipped}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockOrders.AssertExpectations(t)
	})
}

func TestPaymentHandler_Create(t *testing.T) {
	ownerID := uuid.NewString()
	orderID := uuid.NewString()
	body, _ := json.Marshal(map[string]string{"order_id": orderID})

	t.Run("owner opens checkout", func(t *testing.T) {
		mockPayments := new(serviceMocks.MockPaymentService)
		mockOrders := new(serviceMocks.MockOrderService)
		h := NewPaymentHandler(mockPayments, mockOrders, nil)

		app := fiber.New()
		app.Post("/payments", asUser(ownerID, model.RoleCustomer), h.Create)

		mockOrders.On("Get", mock.Anything, orderID).
			Return(&model.Order{ID: orderID, UserID: ownerID, Status: model.OrderStatusCreated}, nil).Once()
		mockPayments.On("CreateGatewayOrder", mock.Anything, orderID).
			Return(&model.Payment{ID: uuid.NewString(), OrderID: orderID, Status: model.PaymentStatusPending}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockPayments.AssertExpectations(t)
	})

	t.Run("stranger cannot pay someone else's order", func(t *testing.T) {
		mockPayments := new(serviceMocks.MockPaymentService)
		mockOrders := new(serviceMocks.MockOrderService)
		h := NewPaymentHandler(mockPayments, mockOrders, nil)

		app := fiber.New()
		app.Post("/payments", asUser(uuid.NewString(), model.RoleCustomer), h.Create)

		mockOrders.On("Get", mock.Anything, orderID).
			Return(&model.Order{ID: orderID, UserID: ownerID, Status: model.OrderStatusCreated}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockPayments.AssertNotCalled(t, "CreateGatewayOrder", mock.Anything, mock.Anything)
	})
}

func TestPaymentHandler_Verify(t *testing.T) {
	mockPayments := new(serviceMocks.MockPaymentService)
	mockAuth := new(serviceMocks.MockAuthService)
	h := NewPaymentHandler(mockPayments, nil, mockAuth)

	userID := uuid.NewString()

	app := fiber.New()
	app.Post("/payments/verify", asUser(userID, model.RoleCustomer), h.Verify)

	t.Run("success", func(t *testing.T) {
		mockAuth.On("Profile", mock.Anything, userID).
			Return(&model.User{ID: userID, Email: "asha@example.com"}, nil).Once()

		captured := &model.Payment{ID: uuid.NewString(), Status: model.PaymentStatusSuccess}
		mockPayments.On("VerifyAndCapture", mock.Anything, mock.MatchedBy(func(r *service.VerifyPaymentRequest) bool {
			return r.GatewayOrderID == "order_xyz" && r.Signature == "sig"
		})).Return(captured, nil).Once()

		body, _ := json.Marshal(map[string]string{
			"gateway_order_id":   "order_xyz",
			"gateway_payment_id": "pay_abc",
			"signature":          "sig",
		})
		req := httptest.NewRequest(http.MethodPost, "/payments/verify", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockPayments.AssertExpectations(t)
	})

	t.Run("signature mismatch", func(t *testing.T) {
		mockAuth.On("Profile", mock.Anything, userID).
			Return(&model.User{ID: userID, Email: "asha@example.com"}, nil).Once()
		mockPayments.On("VerifyAndCapture", mock.Anything, mock.Anything).
			Return(nil, service.ErrPaymentSignature).Once()

		body, _ := json.Marshal(map[string]string{
			"gateway_order_id":   "order_xyz",
			"gateway_payment_id": "pay_abc",
			"signature":          "tampered",
		})
		req := httptest.NewRequest(http.MethodPost, "/payments/verify", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "SIGNATURE_MISMATCH", res.Error.Code)
	})
}

func TestBannerHandler_List(t *testing.T) {
	t.Run("public list is always active-only", func(t *testing.T) {
		mockBanners := new(serviceMocks.MockBannerService)
		h := NewBannerHandler(mockBanners)

		app := fiber.New()
		app.Get("/banners", h.List)

		mockBanners.On("List", mock.Anything, true).
			Return([]model.Banner{{ID: uuid.NewString(), Active: true, ImageKey: "banners/a.png"}}, nil).Once()
		mockBanners.On("ImageURL", mock.Anything, "banners/a.png").
			Return("https://cdn.example.com/banners/a.png", nil).Once()

		// The query parameter must not widen the listing.
		req := httptest.NewRequest(http.MethodGet, "/banners?active=false", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockBanners.AssertExpectations(t)
	})

	t.Run("admin listing includes inactive", func(t *testing.T) {
		mockBanners := new(serviceMocks.MockBannerService)
		h := NewBannerHandler(mockBanners)

		app := fiber.New()
		app.Get("/admin/banners", asUser(uuid.NewString(), model.RoleAdmin), h.ListAll)

		mockBanners.On("List", mock.Anything, false).
			Return([]model.Banner{{ID: uuid.NewString(), Active: false, ImageKey: "banners/b.png"}}, nil).Once()
		mockBanners.On("ImageURL", mock.Anything, "banners/b.png").
			Return("https://cdn.example.com/banners/b.png", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/admin/banners", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockBanners.AssertExpectations(t)
	})
}

func TestCommissionHandler_Set(t *testing.T) {
	mockSvc := new(serviceMocks.MockCommissionService)
	h := NewCommissionHandler(mockSvc)

	app := fiber.New()
	app.Put("/commissions", asUser(uuid.NewString(), model.RoleAdmin), h.Set)

	t.Run("success", func(t *testing.T) {
		expected := &model.CategoryCommission{ID: uuid.NewString(), Category: "apparel", Percent: decimal.NewFromInt(12)}
		mockSvc.On("Set", mock.Anything, "apparel", decimal.NewFromInt(12)).
			Return(expected, nil).Once()

		body, _ := json.Marshal(map[string]any{"category": "apparel", "percent": 12})
		req := httptest.NewRequest(http.MethodPut, "/commissions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("percent out of range", func(t *testing.T) {
		mockSvc.On("Set", mock.Anything, "apparel", decimal.NewFromInt(120)).
			Return(nil, service.ErrInvalidPercent).Once()

		body, _ := json.Marshal(map[string]any{"category": "apparel", "percent": 120})
		req := httptest.NewRequest(http.MethodPut, "/commissions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_PERCENT", res.Error.Code)
	})
}

func TestNotificationHandler(t *testing.T) {
	mockSvc := new(serviceMocks.MockNotificationService)
	h := NewNotificationHandler(mockSvc)

	userID := uuid.NewString()

	app := fiber.New()
	app.Get("/notifications", asUser(userID, model.RoleCustomer), h.List)
	app.Get("/notifications/unread-count", asUser(userID, model.RoleCustomer), h.UnreadCount)
	app.Patch("/notifications/:id/read", asUser(userID, model.RoleCustomer), h.MarkRead)

	t.Run("list", func(t *testing.T) {
		res := &service.NotificationListResult{
			Items: []model.Notification{{ID: uuid.NewString(), UserID: userID, Title: "Order placed"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, userID, 10, 0).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unread count", func(t *testing.T) {
		mockSvc.On("UnreadCount", mock.Anything, userID).Return(3, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]int
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, 3, body["unread"])
	})

	t.Run("mark read not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("MarkRead", mock.Anything, id, userID).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPatch, "/notifications/"+id+"/read", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})

	mockAuth := new(serviceMocks.MockAuthService)
	RegisterRoutes(app, db, Services{Auth: mockAuth})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("auth required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNAUTHORIZED", res.Error.Code)
	})
}
