package repository

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	outboxStatusPending = "pending"
	outboxStatusFailed  = "failed"
)

type OutboxQueries interface {
	CreateOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOutboxEventParams) error
	ClaimDueOutboxEvents(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueOutboxEventsParams) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventPublished(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventPublishedParams) error
	MarkOutboxEventRetry(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventRetryParams) error
}

type OutboxRepository struct {
	queries OutboxQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, msg shared.OutboxMessage) error {
	params := sqlc.CreateOutboxEventParams{
		ID:          msg.ID,
		AggregateID: msg.AggregateID,
		Topic:       msg.Topic,
		Payload:     msg.Payload,
		RunAt:       pgconv.TimeToPgtype(msg.RunAt),
		CreatedAt:   pgconv.TimeToPgtype(msg.CreatedAt),
	}

	if err := r.queries.CreateOutboxEvent(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}

	return nil
}

// ClaimDue locks due rows with SKIP LOCKED so concurrent relays never share work.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.OutboxMessage, error) {
	rows, err := r.queries.ClaimDueOutboxEvents(ctx, r.db, sqlc.ClaimDueOutboxEventsParams{
		Now:       pgconv.TimeToPgtype(now),
		BatchSize: pgconv.IntToInt32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}

	result := make([]shared.OutboxMessage, len(rows))
	for i, row := range rows {
		result[i] = shared.OutboxMessage{
			ID:          row.ID,
			AggregateID: row.AggregateID,
			Topic:       row.Topic,
			Payload:     row.Payload,
			Attempts:    int(row.Attempts),
			RunAt:       pgconv.TimeFromPgtype(row.RunAt),
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}

	return result, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, now time.Time) error {
	err := r.queries.MarkOutboxEventPublished(ctx, r.db, sqlc.MarkOutboxEventPublishedParams{
		ID:        id,
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event published", err)
	}
	return nil
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id uuid.UUID, lastErr string, nextRunAt time.Time, dead bool, now time.Time) error {
	status := outboxStatusPending
	if dead {
		status = outboxStatusFailed
	}

	err := r.queries.MarkOutboxEventRetry(ctx, r.db, sqlc.MarkOutboxEventRetryParams{
		ID:        id,
		Status:    status,
		LastError: pgtype.Text{String: lastErr, Valid: lastErr != ""},
		RunAt:     pgconv.TimeToPgtype(nextRunAt),
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event retry", err)
	}
	return nil
}
