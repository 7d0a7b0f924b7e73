package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// Ticket is the message the kitchen display receives for a submitted order.
type Ticket struct {
	OrderID    int          `json:"order_id"`
	EmployeeID int          `json:"employee_id"`
	Location   string       `json:"location"`
	PlacedAt   time.Time    `json:"placed_at"`
	Total      string       `json:"total"`
	Items      []TicketItem `json:"items"`
}

// TicketItem is one drink on a ticket.
type TicketItem struct {
	Drink       string   `json:"drink"`
	Description string   `json:"description"`
	Without     []string `json:"without,omitempty"`
	With        []string `json:"with,omitempty"`
}

// NewTicket renders order as a kitchen ticket.
func NewTicket(order models.Order) Ticket {
	t := Ticket{
		OrderID:    order.ID,
		EmployeeID: order.EmployeeID,
		Location:   order.Location,
		PlacedAt:   order.PlacedAt,
		Total:      order.Total().StringFixed(2),
		Items:      make([]TicketItem, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		item := TicketItem{Drink: line.DrinkName, Description: line.Description, Without: line.Removed}
		for _, e := range line.Extras {
			item.With = append(item.With, e.Name)
		}
		t.Items = append(t.Items, item)
	}
	return t
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends tickets to a durable topic exchange, routed by location.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *zap.Logger
	mu       sync.Mutex
}

// Dial connects to the broker and declares exchange.
func Dial(url, exchange string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := newPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{ch: ch, exchange: exchange, logger: logger}
}

// PublishTicket sends the order to the kitchen. Tickets are persistent.
func (p *Publisher) PublishTicket(ctx context.Context, order models.Order) error {
	if order.ID == 0 {
		return errors.New("order has no id yet")
	}
	body, err := json.Marshal(NewTicket(order))
	if err != nil {
		return fmt.Errorf("encode ticket: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(order), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    fmt.Sprintf("order-%d", order.ID),
		Timestamp:    order.PlacedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish ticket %d: %w", order.ID, err)
	}
	p.logger.Debug("kitchen ticket published", zap.Int("order_id", order.ID), zap.String("exchange", p.exchange))
	return nil
}

// RoutingKey is "kitchen.<location>" with spaces folded to dashes.
func RoutingKey(order models.Order) string {
	key := []rune(order.Location)
	for i, r := range key {
		if r == ' ' || r == '.' {
			key[i] = '-'
		}
	}
	if len(key) == 0 {
		return "kitchen.default"
	}
	return "kitchen." + string(key)
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
