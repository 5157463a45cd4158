//go:build integration || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal interface the fixtures need.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type LocationSeed struct {
	OwnerID      uuid.UUID
	Name         string
	PricePerHour float64
	IsActive     bool
}

func CreateLocation(t *testing.T, db DBLike, seed LocationSeed) uuid.UUID {
	t.Helper()

	if seed.Name == "" {
		seed.Name = "Test Location " + uuid.NewString()[:8]
	}
	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO parking_locations (owner_id, name, address, city, price_per_hour, is_approved, is_active)
		VALUES ($1, $2, '1 Test Street', 'Pune', $3, true, $4)
		RETURNING id`,
		seed.OwnerID, seed.Name, seed.PricePerHour, seed.IsActive,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateSlot(t *testing.T, db DBLike, locationID uuid.UUID, number string, active bool) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	var id uuid.UUID
	err := db.QueryRow(ctx, `
		INSERT INTO parking_slots (parking_location_id, slot_number, slot_type, is_active)
		VALUES ($1, $2, 'standard', $3)
		RETURNING id`,
		locationID, number, active,
	).Scan(&id)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		UPDATE parking_locations
		SET total_slots = total_slots + 1,
		    available_slots = available_slots + CASE WHEN $2 THEN 1 ELSE 0 END
		WHERE id = $1`, locationID, active)
	require.NoError(t, err)
	return id
}

var (
	truncateOnce sync.Once
	truncateSQL  string
	truncateErr  error
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	truncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateErr = err
			return
		}
		tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			truncateErr = err
			return
		}
		if len(tables) == 0 {
			truncateSQL = "SELECT 1"
			return
		}
		truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	})
	if truncateErr != nil {
		return fmt.Errorf("failed to build TRUNCATE SQL: %w", truncateErr)
	}

	_, err := pool.Exec(ctx, truncateSQL)
	return err
}
