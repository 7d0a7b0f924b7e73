package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleOrder() models.Order {
	return models.Order{
		ID:         12,
		EmployeeID: 2,
		Location:   "College Station",
		PlacedAt:   time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC),
		Lines: []models.OrderLine{
			{
				DrinkName:   "Classic Milk Tea",
				Description: "Classic Milk Tea [-Ice +Boba ]",
				Removed:     []string{"Ice"},
				Extras:      []models.Extra{{Name: "Boba", Surcharge: decimal.RequireFromString("0.50")}},
				Price:       decimal.RequireFromString("4.50"),
			},
		},
	}
}

func TestPublishTicket(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "kitchen_tickets", nil)

	require.NoError(t, p.PublishTicket(context.Background(), sampleOrder()))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "kitchen_tickets", sent.exchange)
	assert.Equal(t, "kitchen.College-Station", sent.key)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "order-12", sent.msg.MessageId)

	var ticket Ticket
	require.NoError(t, json.Unmarshal(sent.msg.Body, &ticket))
	assert.Equal(t, "4.50", ticket.Total)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, []string{"Ice"}, ticket.Items[0].Without)
	assert.Equal(t, []string{"Boba"}, ticket.Items[0].With)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublishTicketErrors(t *testing.T) {
	p := newPublisher(&fakeChannel{}, "kitchen_tickets", nil)
	unsaved := sampleOrder()
	unsaved.ID = 0
	assert.Error(t, p.PublishTicket(context.Background(), unsaved))

	boom := errors.New("channel/connection is not open")
	p = newPublisher(&fakeChannel{err: boom}, "kitchen_tickets", nil)
	assert.ErrorIs(t, p.PublishTicket(context.Background(), sampleOrder()), boom)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "kitchen.default", RoutingKey(models.Order{}))
	assert.Equal(t, "kitchen.Austin-Downtown", RoutingKey(models.Order{Location: "Austin Downtown"}))
}
