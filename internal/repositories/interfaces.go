package repositories

import (
	"context"

	"github.com/dan1d/clover-sandbox-simulator/internal/models"
)

// AuditRepository persists the local mirror of simulated activity. The
// platform holds the canonical records; this store exists so generated data
// can be inspected and reconciled without API calls.
type AuditRepository interface {
	EnsureSchema(ctx context.Context) error
	InsertOrder(ctx context.Context, order *models.SimulatedOrder) error
	InsertPayment(ctx context.Context, orderID string, payment models.Payment) error
	InsertRefund(ctx context.Context, orderID string, amount int64, reason string) error
	InsertSummary(ctx context.Context, summary *models.DailySummary) error
	Close() error
}
