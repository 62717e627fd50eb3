package output

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/gateways"
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/dan1d/clover-sandbox-simulator/internal/repositories/postgres"
)

// Audit topics. File and parquet destinations use them as directory names,
// Kafka as topic names, Postgres as table routing.
const (
	TopicOrders    = "simulated_orders"
	TopicPayments  = "simulated_payments"
	TopicRefunds   = "simulated_refunds"
	TopicSummaries = "daily_summaries"
)

// Destination is a raw byte-stream audit target. The recorder adapts the
// typed AuditSink calls onto it.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// NewAuditSink builds the audit sink selected by audit_destination. "none"
// returns nil, nil; the simulator treats a nil sink as auditing disabled.
func NewAuditSink(ctx context.Context, cfg *models.Config) (gateways.AuditSink, error) {
	switch cfg.AuditDestination {
	case "", "none":
		return nil, nil
	case "console":
		return &recorder{dest: &ConsoleDestination{}}, nil
	case "file":
		return &recorder{dest: NewJSONDestination(cfg.OutputPath, cfg.OutputFolder)}, nil
	case "kafka":
		dest, err := NewKafkaDestination(cfg)
		if err != nil {
			return nil, err
		}
		return &recorder{dest: dest}, nil
	case "parquet":
		dest, err := NewParquetDestination(cfg)
		if err != nil {
			return nil, err
		}
		return &recorder{dest: dest}, nil
	case "postgres":
		repo, err := postgres.NewAuditRepository(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		return &PostgresSink{repo: repo}, nil
	default:
		return nil, fmt.Errorf("unsupported audit destination: %s", cfg.AuditDestination)
	}
}

// recorder flattens simulated activity into JSON messages for stream-style
// destinations. Every message carries a unix "timestamp" used for
// partitioning.
type recorder struct {
	dest Destination
}

func (r *recorder) RecordSimulatedOrder(ctx context.Context, order *models.SimulatedOrder) error {
	record := map[string]interface{}{
		"timestamp":        order.CreatedAt.Unix(),
		"order_id":         order.ID,
		"created_at":       order.CreatedAt.Format(time.RFC3339),
		"employee_id":      order.EmployeeID,
		"customer_id":      order.CustomerID,
		"dining_option":    order.DiningOption,
		"order_type":       order.Meta.OrderTypeLabel,
		"meal_period":      string(order.Meta.Period),
		"party_size":       order.Meta.PartySize,
		"subtotal":         order.Subtotal,
		"tax_amount":       order.TaxAmount,
		"tip_amount":       order.TipAmount,
		"service_charge":   order.ServiceCharge,
		"discount_type":    order.Meta.DiscountType,
		"discount_amount":  order.Meta.DiscountAmount,
		"line_item_count":  len(order.LineItems),
		"modifier_count":   order.Meta.ModifierCount,
		"modifier_amount":  order.Meta.ModifierAmount,
		"state":            order.State,
	}
	return r.write(TopicOrders, record)
}

func (r *recorder) RecordSimulatedPayment(ctx context.Context, orderID string, payment models.Payment) error {
	record := map[string]interface{}{
		"timestamp":        time.Now().Unix(),
		"order_id":         orderID,
		"payment_id":       payment.ID,
		"tender_id":        payment.TenderID,
		"tender_label":     payment.Label,
		"amount":           payment.Amount,
		"tip_amount":       payment.TipAmount,
		"tax_amount":       payment.TaxAmount,
		"split_percentage": payment.Percentage,
		"gift_card_id":     payment.GiftCardID,
	}
	return r.write(TopicPayments, record)
}

func (r *recorder) MarkRefunded(ctx context.Context, orderID string, amount int64, reason string) error {
	record := map[string]interface{}{
		"timestamp": time.Now().Unix(),
		"order_id":  orderID,
		"amount":    amount,
		"reason":    reason,
	}
	return r.write(TopicRefunds, record)
}

func (r *recorder) RecordDailySummary(ctx context.Context, summary *models.DailySummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	var record map[string]interface{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return err
	}
	day, err := time.Parse("2006-01-02", summary.Date)
	if err != nil {
		day = time.Now()
	}
	record["timestamp"] = day.Unix()
	return r.write(TopicSummaries, record)
}

func (r *recorder) Close() error {
	return r.dest.Close()
}

func (r *recorder) write(topic string, record map[string]interface{}) error {
	msg, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.dest.WriteMessage(topic, msg)
}

// PostgresSink mirrors activity into the relational audit store instead of a
// message stream.
type PostgresSink struct {
	repo *postgres.AuditRepository
}

func (p *PostgresSink) RecordSimulatedOrder(ctx context.Context, order *models.SimulatedOrder) error {
	return p.repo.InsertOrder(ctx, order)
}

func (p *PostgresSink) RecordSimulatedPayment(ctx context.Context, orderID string, payment models.Payment) error {
	return p.repo.InsertPayment(ctx, orderID, payment)
}

func (p *PostgresSink) MarkRefunded(ctx context.Context, orderID string, amount int64, reason string) error {
	return p.repo.InsertRefund(ctx, orderID, amount, reason)
}

func (p *PostgresSink) RecordDailySummary(ctx context.Context, summary *models.DailySummary) error {
	return p.repo.InsertSummary(ctx, summary)
}

func (p *PostgresSink) Close() error {
	return p.repo.Close()
}
