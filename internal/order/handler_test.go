package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gagan41/ecom/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) PlaceCOD(ctx context.Context, userID uint, input PlaceOrderInput) (uint, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockService) InitiateGatewayPayment(ctx context.Context, userID uint, input GatewayOrderInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}

func (m *MockService) VerifyGatewayPayment(ctx context.Context, transactionID string, userID uint) (*VerifyResult, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VerifyResult), args.Error(1)
}

func (m *MockService) ListAll(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockService) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func newTestMux(svc Service) *http.ServeMux {
	h := NewHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /list", h.ListOrders)
	mux.HandleFunc("POST /status", h.UpdateStatus)
	mux.HandleFunc("POST /place", h.PlaceOrder)
	mux.HandleFunc("POST /phonepePG", h.PlacePhonePG)
	mux.HandleFunc("POST /userorders", h.UserOrders)
	mux.HandleFunc("POST /verifyPhonePG/{transactionId}", h.VerifyPhonePG)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, path, body string, userID uint) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(utils.SetUserContext(req.Context(), userID, "user"))
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return rec, parsed
}

func TestHandler_PlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlaceCOD", mock.Anything, uint(1), mock.MatchedBy(func(in PlaceOrderInput) bool {
			return in.Amount.Equal(decimal.NewFromInt(500))
		})).Return(uint(42), nil)

		rec, body := doRequest(t, newTestMux(svc),
			"/place", `{"items":[{"productId":"p1"}],"amount":500,"address":{"city":"Delhi"}}`, 1)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Order Placed", body["message"])
	})

	t.Run("FailureStaysHTTP200", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlaceCOD", mock.Anything, uint(1), mock.Anything).
			Return(uint(0), errors.New("db down"))

		rec, body := doRequest(t, newTestMux(svc),
			"/place", `{"items":[],"amount":500,"address":{}}`, 1)

		// Failures are in-band: the HTTP status is still 200.
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "db down", body["message"])
	})

	t.Run("MissingUserContext", func(t *testing.T) {
		svc := new(MockService)

		rec, body := doRequest(t, newTestMux(svc), "/place", `{}`, 0)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		svc.AssertNotCalled(t, "PlaceCOD", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandler_PlacePhonePG(t *testing.T) {
	t.Run("ReturnsRedirectURL", func(t *testing.T) {
		svc := new(MockService)
		svc.On("InitiateGatewayPayment", mock.Anything, uint(1), mock.MatchedBy(func(in GatewayOrderInput) bool {
			return in.MobileNumber == "8888888888"
		})).Return("https://pay.test/redirect", nil)

		rec, body := doRequest(t, newTestMux(svc),
			"/phonepePG", `{"items":[],"amount":500,"address":{},"mobileNumber":"8888888888"}`, 1)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "https://pay.test/redirect", body["redirectUrl"])
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("InitiateGatewayPayment", mock.Anything, uint(1), mock.Anything).
			Return("", errors.New("phonepe auth failed: down"))

		rec, body := doRequest(t, newTestMux(svc), "/phonepePG", `{"items":[],"amount":500}`, 1)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["message"], "phonepe auth failed")
	})
}

func TestHandler_VerifyPhonePG(t *testing.T) {
	t.Run("Confirmed", func(t *testing.T) {
		svc := new(MockService)
		svc.On("VerifyGatewayPayment", mock.Anything, "T1", uint(1)).
			Return(&VerifyResult{
				Confirmed: true,
				Gateway:   json.RawMessage(`{"code":"PAYMENT_SUCCESS"}`),
			}, nil)

		rec, body := doRequest(t, newTestMux(svc), "/verifyPhonePG/T1", ``, 1)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Payment Successful", body["message"])
		assert.Equal(t, "PAYMENT_SUCCESS", body["data"].(map[string]any)["code"])
	})

	t.Run("PendingOrFailed", func(t *testing.T) {
		svc := new(MockService)
		svc.On("VerifyGatewayPayment", mock.Anything, "T1", uint(1)).
			Return(&VerifyResult{
				Confirmed: false,
				Gateway:   json.RawMessage(`{"code":"PAYMENT_PENDING"}`),
			}, nil)

		rec, body := doRequest(t, newTestMux(svc), "/verifyPhonePG/T1", ``, 1)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Payment Failed or Pending", body["message"])
		assert.Equal(t, "PAYMENT_PENDING", body["data"].(map[string]any)["code"])
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("VerifyGatewayPayment", mock.Anything, "T1", uint(1)).
			Return(nil, ErrInvalidTransactionID)

		rec, body := doRequest(t, newTestMux(svc), "/verifyPhonePG/T1", ``, 1)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "invalid transaction id", body["message"])
	})
}

func TestHandler_AdminEndpoints(t *testing.T) {
	t.Run("ListOrders", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListAll", mock.Anything).Return([]*Order{{ID: 1, UserID: 5, Status: DefaultStatus}}, nil)

		rec, body := doRequest(t, newTestMux(svc), "/list", ``, 0)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["orders"], 1)
	})

	t.Run("ListOrdersEmpty", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListAll", mock.Anything).Return([]*Order(nil), nil)

		_, body := doRequest(t, newTestMux(svc), "/list", ``, 0)

		// An empty store serializes as [] rather than null.
		assert.Equal(t, []any{}, body["orders"])
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		svc := new(MockService)
		svc.On("UpdateStatus", mock.Anything, uint(7), "Shipped").Return(nil)

		rec, body := doRequest(t, newTestMux(svc), "/status", `{"orderId":7,"status":"Shipped"}`, 0)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Status Updated", body["message"])
	})

	t.Run("UpdateStatusNotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("UpdateStatus", mock.Anything, uint(99), "Shipped").Return(ErrOrderNotFound)

		rec, body := doRequest(t, newTestMux(svc), "/status", `{"orderId":99,"status":"Shipped"}`, 0)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "order not found", body["message"])
	})
}

func TestHandler_UserOrders(t *testing.T) {
	svc := new(MockService)
	svc.On("ListForUser", mock.Anything, uint(5)).Return([]*Order{{ID: 1, UserID: 5}}, nil)

	rec, body := doRequest(t, newTestMux(svc), "/userorders", ``, 5)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["orders"], 1)
}
