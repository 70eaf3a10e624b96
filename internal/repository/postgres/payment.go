package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/repository"
)

type paymentOrderRepository struct {
	db *sql.DB
}

func NewPaymentOrderRepository(db *sql.DB) repository.PaymentOrderRepository {
	return &paymentOrderRepository{db: db}
}

func (r *paymentOrderRepository) Create(ctx context.Context, order *domain.PaymentOrder) error {
	query := `INSERT INTO payment_orders (order_id, booking_reference, user_id, amount, currency, receipt, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, order.OrderID, order.BookingReference, order.UserID,
		order.Amount, order.Currency, order.Receipt, order.Status, now, now).Scan(&order.ID)
}

func (r *paymentOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	order := &domain.PaymentOrder{}
	var createdOn, updatedOn time.Time
	query := `SELECT id, order_id, booking_reference, user_id, amount, currency, receipt, status, created_on, updated_on
	          FROM payment_orders WHERE order_id = $1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&order.ID, &order.OrderID, &order.BookingReference,
		&order.UserID, &order.Amount, &order.Currency, &order.Receipt, &order.Status, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	order.CreatedOn = createdOn.Format(time.RFC3339)
	order.UpdatedOn = updatedOn.Format(time.RFC3339)
	return order, nil
}

func (r *paymentOrderRepository) Update(ctx context.Context, order *domain.PaymentOrder) error {
	query := `UPDATE payment_orders SET status=$1, updated_on=$2 WHERE order_id=$3`
	_, err := r.db.ExecContext(ctx, query, order.Status, time.Now(), order.OrderID)
	return err
}

func (r *paymentOrderRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.PaymentOrder, int, error) {
	offset := (page - 1) * pageSize

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payment_orders WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, order_id, booking_reference, user_id, amount, currency, receipt, status, created_on, updated_on
	          FROM payment_orders WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.PaymentOrder
	for rows.Next() {
		var o domain.PaymentOrder
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&o.ID, &o.OrderID, &o.BookingReference, &o.UserID, &o.Amount,
			&o.Currency, &o.Receipt, &o.Status, &createdOn, &updatedOn); err != nil {
			return nil, 0, err
		}
		o.CreatedOn = createdOn.Format(time.RFC3339)
		o.UpdatedOn = updatedOn.Format(time.RFC3339)
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}
