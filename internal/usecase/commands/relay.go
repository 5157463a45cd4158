package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// EventPublisher delivers an outbox message to the broker. Delivery is at least once.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, messageID uuid.UUID, payload []byte) error
}

type RelayResult struct {
	Published int
	Retried   int
	Dead      int
}

type OutboxRelay interface {
	Run(ctx context.Context) (RelayResult, error)
}

type outboxRelayImpl struct {
	uow         shared.UnitOfWork
	publisher   EventPublisher
	clock       clock.Clock
	batchSize   int
	maxAttempts int
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher EventPublisher, clk clock.Clock, batchSize, maxAttempts int) OutboxRelay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &outboxRelayImpl{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

// Run claims due messages, publishes them and refreshes the availability hints
// of the slots that booking events touched.
func (r *outboxRelayImpl) Run(ctx context.Context) (RelayResult, error) {
	var result RelayResult

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = RelayResult{}
		now := r.clock.Now()

		messages, err := tx.Outbox().ClaimDue(ctx, now, r.batchSize)
		if err != nil {
			return err
		}

		for _, msg := range messages {
			if pubErr := r.publisher.Publish(ctx, msg.Topic, msg.ID, msg.Payload); pubErr != nil {
				attempts := msg.Attempts + 1
				dead := attempts >= r.maxAttempts
				if err := tx.Outbox().MarkRetry(ctx, msg.ID, pubErr.Error(), now.Add(retryDelay(attempts)), dead, now); err != nil {
					return err
				}
				if dead {
					result.Dead++
					slog.Error("outbox message dead-lettered",
						"message_id", msg.ID,
						"topic", msg.Topic,
						"attempts", attempts,
						"error", pubErr.Error())
				} else {
					result.Retried++
				}
				continue
			}

			if err := tx.Outbox().MarkPublished(ctx, msg.ID, now); err != nil {
				return err
			}
			if err := refreshHint(ctx, tx, msg, now); err != nil {
				return err
			}
			result.Published++
		}
		return nil
	})
	if err != nil {
		return RelayResult{}, shared.StoreError(err, "relay outbox")
	}
	return result, nil
}

func refreshHint(ctx context.Context, tx shared.Tx, msg shared.OutboxMessage, now time.Time) error {
	if !strings.HasPrefix(msg.Topic, "booking.") {
		return nil
	}

	var event BookingEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		slog.Warn("skipping availability refresh for unreadable event",
			"message_id", msg.ID,
			"error", err.Error())
		return nil
	}
	return tx.Slots().RefreshAvailability(ctx, event.SlotID, event.LocationID, now)
}

// retryDelay backs off exponentially from 5s and caps at 10 minutes.
func retryDelay(attempts int) time.Duration {
	const (
		base     = 5 * time.Second
		maxDelay = 10 * time.Minute
	)
	if attempts < 1 {
		attempts = 1
	}
	if attempts > 10 {
		return maxDelay
	}
	delay := base << (attempts - 1)
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}
