package order

import (
	"context"
	"strconv"
	"time"

	"github.com/Gagan41/ecom/internal/cart"
	"github.com/Gagan41/ecom/internal/logger"
	"github.com/Gagan41/ecom/internal/phonepe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	PlaceCOD(ctx context.Context, userID uint, input PlaceOrderInput) (uint, error)
	InitiateGatewayPayment(ctx context.Context, userID uint, input GatewayOrderInput) (string, error)
	VerifyGatewayPayment(ctx context.Context, transactionID string, userID uint) (*VerifyResult, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
}

type service struct {
	repo    Repository
	carts   cart.Repository
	gateway phonepe.Gateway
}

func NewService(repo Repository, carts cart.Repository, gateway phonepe.Gateway) Service {
	return &service{
		repo:    repo,
		carts:   carts,
		gateway: gateway,
	}
}

// PlaceCOD persists a cash-on-delivery order and clears the cart right away.
// The payment flag stays false until someone settles it out-of-band.
func (s *service) PlaceCOD(ctx context.Context, userID uint, input PlaceOrderInput) (uint, error) {
	o := &Order{
		UserID:        userID,
		Items:         input.Items,
		Address:       input.Address,
		Amount:        input.Amount,
		PaymentMethod: MethodCOD,
		Payment:       false,
		Status:        DefaultStatus,
		CreatedAt:     time.Now(),
	}

	id, err := s.repo.Create(ctx, o)
	if err != nil {
		return 0, err
	}

	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return 0, err
	}

	return id, nil
}

// InitiateGatewayPayment creates a pending PhonePG order and exchanges it for
// a hosted pay-page redirect URL.
//
// The order row is written before the gateway call so the transaction id is
// durably recorded first. If the gateway call then fails, the order stays in
// the store as a pending record with no payment attached; that orphan is an
// accepted failure mode and is only logged, never rolled back.
func (s *service) InitiateGatewayPayment(ctx context.Context, userID uint, input GatewayOrderInput) (string, error) {
	transactionID := uuid.NewString()

	o := &Order{
		UserID:        userID,
		Items:         input.Items,
		Address:       input.Address,
		Amount:        input.Amount,
		PaymentMethod: MethodPhonePG,
		Payment:       false,
		TransactionID: &transactionID,
		Status:        DefaultStatus,
		CreatedAt:     time.Now(),
	}

	orderID, err := s.repo.Create(ctx, o)
	if err != nil {
		return "", err
	}

	redirectURL, err := s.gateway.CreatePayPage(ctx, phonepe.PayPageParams{
		TransactionID: transactionID,
		UserID:        strconv.FormatUint(uint64(userID), 10),
		Amount:        input.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
		MobileNumber:  input.MobileNumber,
	})
	if err != nil {
		logger.FromCtx(ctx).Error("payment initiation failed, order left pending",
			zap.Uint("order_id", orderID),
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		return "", err
	}

	return redirectURL, nil
}

// VerifyGatewayPayment polls the gateway for the transaction and finalizes
// the order on success. Anything other than the gateway's success code comes
// back as Confirmed=false with the raw payload so the caller can poll again;
// failed and pending are indistinguishable at this layer.
//
// The operation is idempotent: verifying an already-confirmed transaction
// re-issues the same update and clears an already-empty cart.
func (s *service) VerifyGatewayPayment(ctx context.Context, transactionID string, userID uint) (*VerifyResult, error) {
	if transactionID == "" {
		return nil, ErrInvalidTransactionID
	}

	status, err := s.gateway.TransactionStatus(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !status.Succeeded() {
		return &VerifyResult{Confirmed: false, Gateway: status.Raw}, nil
	}

	if err := s.repo.ConfirmPaymentByTransactionID(ctx, transactionID); err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment confirmed",
		zap.String("transaction_id", transactionID),
		zap.Uint("user_id", userID),
	)

	return &VerifyResult{Confirmed: true, Gateway: status.Raw}, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if status == "" {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}
