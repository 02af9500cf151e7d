package order

import (
	"encoding/json"
	"net/http"

	"github.com/Gagan41/ecom/internal/transport"
	"github.com/Gagan41/ecom/internal/utils"
	"github.com/shopspring/decimal"
)

// Handler exposes the order operations over HTTP. Every endpoint answers
// HTTP 200 and reports failure in-band via the success flag; see
// transport.Envelope.
type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type placeOrderRequest struct {
	Items        json.RawMessage `json:"items"`
	Amount       decimal.Decimal `json:"amount"`
	Address      json.RawMessage `json:"address"`
	MobileNumber string          `json:"mobileNumber"`
}

type updateStatusRequest struct {
	OrderID uint   `json:"orderId"`
	Status  string `json:"status"`
}

func callerID(r *http.Request) (uint, bool) {
	return utils.GetUserIDFromContext(r.Context())
}

// ListOrders handles POST /list (admin).
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAll(r.Context())
	if err != nil {
		transport.Failure(w, err.Error())
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	transport.Success(w, transport.Envelope{"orders": orders})
}

// UpdateStatus handles POST /status (admin).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Failure(w, "invalid request body")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), req.OrderID, req.Status); err != nil {
		transport.Failure(w, err.Error())
		return
	}
	transport.Success(w, transport.Envelope{"message": "Status Updated"})
}

// PlaceOrder handles POST /place, the cash-on-delivery flow.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		transport.Failure(w, "Not Authorized Login Again")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Failure(w, "invalid request body")
		return
	}

	if _, err := h.svc.PlaceCOD(r.Context(), userID, PlaceOrderInput{
		Items:   req.Items,
		Amount:  req.Amount,
		Address: req.Address,
	}); err != nil {
		transport.Failure(w, err.Error())
		return
	}

	transport.Success(w, transport.Envelope{"message": "Order Placed"})
}

// PlacePhonePG handles POST /phonepePG and returns the pay-page redirect URL.
func (h *Handler) PlacePhonePG(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		transport.Failure(w, "Not Authorized Login Again")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Failure(w, "invalid request body")
		return
	}

	redirectURL, err := h.svc.InitiateGatewayPayment(r.Context(), userID, GatewayOrderInput{
		PlaceOrderInput: PlaceOrderInput{
			Items:   req.Items,
			Amount:  req.Amount,
			Address: req.Address,
		},
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		transport.Failure(w, err.Error())
		return
	}

	transport.Success(w, transport.Envelope{"redirectUrl": redirectURL})
}

// UserOrders handles POST /userorders.
func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		transport.Failure(w, "Not Authorized Login Again")
		return
	}

	orders, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		transport.Failure(w, err.Error())
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	transport.Success(w, transport.Envelope{"orders": orders})
}

// VerifyPhonePG handles POST /verifyPhonePG/{transactionId}. A confirmed
// payment and a failed-or-pending one both come back with the gateway's raw
// payload attached; only the success flag differs.
func (h *Handler) VerifyPhonePG(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		transport.Failure(w, "Not Authorized Login Again")
		return
	}

	transactionID := r.PathValue("transactionId")

	result, err := h.svc.VerifyGatewayPayment(r.Context(), transactionID, userID)
	if err != nil {
		transport.Failure(w, err.Error())
		return
	}

	if !result.Confirmed {
		transport.Respond(w, transport.Envelope{
			"success": false,
			"message": "Payment Failed or Pending",
			"data":    result.Gateway,
		})
		return
	}

	transport.Success(w, transport.Envelope{
		"message": "Payment Successful",
		"data":    result.Gateway,
	})
}
