package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(ctx context.Context, cfg *models.DatabaseConfig) (*AuditRepository, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to audit database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping audit database: %w", err)
	}
	return &AuditRepository{pool: pool}, nil
}

func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS simulated_orders (
			id TEXT PRIMARY KEY,
			employee_id TEXT NOT NULL,
			customer_id TEXT,
			dining_option TEXT NOT NULL,
			meal_period TEXT NOT NULL,
			party_size INT NOT NULL,
			subtotal BIGINT NOT NULL,
			tax_amount BIGINT NOT NULL,
			tip_amount BIGINT NOT NULL,
			service_charge BIGINT NOT NULL,
			discount_type TEXT,
			discount_amount BIGINT NOT NULL DEFAULT 0,
			line_items JSONB NOT NULL,
			state TEXT NOT NULL,
			refunded_amount BIGINT NOT NULL DEFAULT 0,
			refund_reason TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS simulated_payments (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES simulated_orders(id),
			tender_id TEXT,
			tender_label TEXT,
			amount BIGINT NOT NULL,
			tip_amount BIGINT NOT NULL,
			tax_amount BIGINT NOT NULL,
			split_percentage INT NOT NULL DEFAULT 0,
			gift_card_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS daily_summaries (
			date DATE PRIMARY KEY,
			report JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure audit schema: %w", err)
		}
	}
	return nil
}

func (r *AuditRepository) InsertOrder(ctx context.Context, order *models.SimulatedOrder) error {
	lineItems, err := json.Marshal(order.LineItems)
	if err != nil {
		return err
	}

	discountType := ""
	var discountAmount int64
	if order.Discount != nil {
		discountType = order.Discount.Type
		discountAmount = order.Discount.Amount
	}

	query := `
        INSERT INTO simulated_orders (
            id, employee_id, customer_id, dining_option, meal_period,
            party_size, subtotal, tax_amount, tip_amount, service_charge,
            discount_type, discount_amount, line_items, state, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
        )
        ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state
    `
	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.EmployeeID,
		order.CustomerID,
		order.DiningOption,
		string(order.Meta.Period),
		order.Meta.PartySize,
		order.Subtotal,
		order.TaxAmount,
		order.TipAmount,
		order.ServiceCharge,
		discountType,
		discountAmount,
		lineItems,
		order.State,
		order.CreatedAt,
	)
	return err
}

func (r *AuditRepository) InsertPayment(ctx context.Context, orderID string, payment models.Payment) error {
	query := `
        INSERT INTO simulated_payments (
            id, order_id, tender_id, tender_label, amount,
            tip_amount, tax_amount, split_percentage, gift_card_id
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		orderID,
		payment.TenderID,
		payment.Label,
		payment.Amount,
		payment.TipAmount,
		payment.TaxAmount,
		payment.Percentage,
		payment.GiftCardID,
	)
	return err
}

func (r *AuditRepository) InsertRefund(ctx context.Context, orderID string, amount int64, reason string) error {
	query := `
        UPDATE simulated_orders
        SET refunded_amount = refunded_amount + $2,
            refund_reason = $3
        WHERE id = $1
    `
	_, err := r.pool.Exec(ctx, query, orderID, amount, reason)
	return err
}

func (r *AuditRepository) InsertSummary(ctx context.Context, summary *models.DailySummary) error {
	report, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO daily_summaries (date, report)
        VALUES ($1, $2)
        ON CONFLICT (date) DO UPDATE SET report = EXCLUDED.report, created_at = NOW()
    `
	_, err = r.pool.Exec(ctx, query, summary.Date, report)
	return err
}

func (r *AuditRepository) Close() error {
	r.pool.Close()
	return nil
}
