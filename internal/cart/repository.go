package cart

import (
	"context"
	"database/sql"

	"github.com/Gagan41/ecom/internal/logger"
	"go.uber.org/zap"
)

// Repository is the slice of cart behavior the order flows depend on. The
// COD flow clears the cart at order time; the gateway flow defers clearing
// until the payment verifies.
type Repository interface {
	ClearCart(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// ClearCart removes every cart row for the user. Clearing an already-empty
// cart is a no-op, which keeps payment verification idempotent.
func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	rowsAffected, _ := res.RowsAffected()
	logger.FromCtx(ctx).Debug("cart cleared",
		zap.Uint("user_id", userID),
		zap.Int64("rows", rowsAffected),
	)

	return nil
}
