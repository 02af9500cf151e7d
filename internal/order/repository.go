package order

import (
	"context"
	"database/sql"

	"github.com/Gagan41/ecom/internal/logger"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) (uint, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
	ConfirmPaymentByTransactionID(ctx context.Context, transactionID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, items, address, amount, payment_method, payment, transaction_id, status, created_at`

func (r *repository) Create(ctx context.Context, o *Order) (uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", o.UserID),
		zap.String("payment_method", string(o.PaymentMethod)),
	)

	query := `
		INSERT INTO orders (
			user_id, items, address, amount,
			payment_method, payment, transaction_id, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`

	var id uint
	err := r.db.QueryRowContext(ctx, query,
		o.UserID,
		[]byte(o.Items),
		[]byte(o.Address),
		o.Amount,
		o.PaymentMethod,
		o.Payment,
		o.TransactionID,
		o.Status,
		o.CreatedAt,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	log.Info("order persisted", zap.Uint("order_id", id))
	return id, nil
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			(*[]byte)(&o.Items),
			(*[]byte)(&o.Address),
			&o.Amount,
			&o.PaymentMethod,
			&o.Payment,
			&o.TransactionID,
			&o.Status,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ConfirmPaymentByTransactionID flips the payment flag by the gateway
// correlation key. Re-running after success affects the same row again, so
// the operation stays idempotent.
func (r *repository) ConfirmPaymentByTransactionID(ctx context.Context, transactionID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment = true WHERE transaction_id = $1`,
		transactionID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
