//go:build unit

package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
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

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by topic as a persistent json message", func(t *testing.T) {
		ch := &fakeChannel{}
		p := newPublisherWithChannel(ch, "parking.events")
		id := uuid.New()

		err := p.Publish(ctx, "booking.created", id, []byte(`{"booking_id":"x"}`))

		require.NoError(t, err)
		require.Len(t, ch.sent, 1)
		sent := ch.sent[0]
		assert.Equal(t, "parking.events", sent.exchange)
		assert.Equal(t, "booking.created", sent.key)
		assert.Equal(t, "application/json", sent.msg.ContentType)
		assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
		assert.Equal(t, id.String(), sent.msg.MessageId)
		assert.Equal(t, "booking.created", sent.msg.Type)
		assert.JSONEq(t, `{"booking_id":"x"}`, string(sent.msg.Body))
		assert.False(t, sent.msg.Timestamp.IsZero())
	})

	t.Run("wraps broker errors", func(t *testing.T) {
		ch := &fakeChannel{err: amqp.ErrClosed}
		p := newPublisherWithChannel(ch, "parking.events")

		err := p.Publish(ctx, "payment.failed", uuid.New(), nil)

		require.Error(t, err)
		assert.True(t, errors.Is(err, amqp.ErrClosed))
		assert.Contains(t, err.Error(), "payment.failed")
	})

	t.Run("close closes the channel", func(t *testing.T) {
		ch := &fakeChannel{}
		p := newPublisherWithChannel(ch, "parking.events")

		require.NoError(t, p.Close())
		assert.True(t, ch.closed)
	})
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), "booking.created", uuid.New(), []byte("{}")))
	assert.NoError(t, p.Close())
}
