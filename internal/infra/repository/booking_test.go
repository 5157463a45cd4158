//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/repository"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	repositorymock "parking-booking/internal/mock/repository"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/testutil/builder"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, *booking.Booking, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking created",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateBookingParams) error {
						assert.Equal(t, b.ID(), arg.ID)
						assert.Equal(t, "active", arg.Status)
						assert.True(t, arg.StartTime.Valid)
						assert.InDelta(t, b.TotalCost(), arg.TotalCost, 1e-9)
						assert.Equal(t, "near the lift", arg.Notes.String)
						return nil
					})
			},
		},
		{
			name: "error: overlapping active booking",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				excl := &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_active_overlap"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(excl)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: unknown slot",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				fk := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(fk)
			},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b, err := builder.NewBookingBuilder().BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, b, mockDB)

			actualError := repo.Create(ctx, b)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Update Booking Status Tests
// =============================================================================

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	cancelled := func(t *testing.T) *booking.Booking {
		b := builder.NewBookingBuilder().MustBuildDomain()
		actor := user.NewActor(b.UserID(), user.RoleUser)
		require.NoError(t, b.Cancel(actor, b.UserID(), booking.CancelReasonRequested, builder.At(9, 0)))
		return b
	}

	t.Run("success: cancellation fields are written", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewBookingRepository(mockQueries, mockDB)
		b := cancelled(t)

		mockQueries.EXPECT().UpdateBookingStatus(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpdateBookingStatusParams) (int64, error) {
				assert.Equal(t, b.ID(), arg.ID)
				assert.Equal(t, "cancelled", arg.Status)
				assert.True(t, arg.CancelledBy.Valid)
				assert.Equal(t, "requested", arg.CancelReason.String)
				return 1, nil
			})

		require.NoError(t, repo.UpdateStatus(ctx, b))
	})

	t.Run("error: row no longer active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		repo := repository.NewBookingRepository(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().UpdateBookingStatus(ctx, gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := repo.UpdateStatus(ctx, cancelled(t))
		require.Error(t, err)
		assert.True(t, errs.Is(err, booking.ErrNotActive))
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		repo := repository.NewBookingRepository(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().UpdateBookingStatus(ctx, gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

		err := repo.UpdateStatus(ctx, cancelled(t))
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

// =============================================================================
// Create Payment Tests
// =============================================================================

func TestPaymentRepository_Create(t *testing.T) {
	ctx := context.Background()

	settled := func() *payment.Payment {
		b := builder.NewBookingBuilder().MustBuildDomain()
		p := payment.NewPayment(b.ID(), b.UserID(), b.TotalCost(), "usd", payment.MethodUPI, builder.At(8, 0))
		_ = p.Settle("simulated", payment.AuthorizeResult{
			Outcome:       payment.OutcomeSuccess,
			TransactionID: "TXN-42",
			Metadata:      map[string]any{"simulated": true},
		}, builder.At(8, 0))
		return p
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewPaymentRepository(mockQueries, mockDB)
		p := settled()

		mockQueries.EXPECT().CreatePayment(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreatePaymentParams) error {
				assert.Equal(t, p.ID(), arg.ID)
				assert.Equal(t, p.BookingID(), arg.BookingID)
				assert.Equal(t, "success", arg.Status)
				assert.JSONEq(t, `{"simulated":true}`, string(arg.Metadata))
				return nil
			})

		require.NoError(t, repo.Create(ctx, p))
	})

	t.Run("error: duplicate payment id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
		repo := repository.NewPaymentRepository(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().CreatePayment(ctx, gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.Create(ctx, settled())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func TestPaymentRepository_Settle(t *testing.T) {
	ctx := context.Background()

	declined := func() *payment.Payment {
		b := builder.NewBookingBuilder().MustBuildDomain()
		p := payment.NewPayment(b.ID(), b.UserID(), b.TotalCost(), "usd", payment.MethodCard, builder.At(8, 0))
		_ = p.Settle("stripe", payment.AuthorizeResult{
			Outcome: payment.OutcomeFailed,
			Reason:  "card_declined",
		}, builder.At(8, 1))
		return p
	}

	testCases := []struct {
		name      string
		setupMock func(*repositorymock.MockPaymentWriteQueries, *payment.Payment)
		wantErr   error
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name: "success: the pending row takes the outcome",
			setupMock: func(mock *repositorymock.MockPaymentWriteQueries, p *payment.Payment) {
				mock.EXPECT().SettlePayment(ctx, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.SettlePaymentParams) (int64, error) {
						assert.Equal(t, p.ID(), arg.ID)
						assert.Equal(t, "failed", arg.Status)
						assert.Equal(t, "stripe", arg.Gateway)
						assert.Equal(t, "card_declined", arg.FailureReason.String)
						assert.False(t, arg.TransactionID.Valid)
						return 1, nil
					})
			},
		},
		{
			name: "error: the row was already settled",
			setupMock: func(mock *repositorymock.MockPaymentWriteQueries, _ *payment.Payment) {
				mock.EXPECT().SettlePayment(ctx, gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantErr: payment.ErrAlreadySettled,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockPaymentWriteQueries, _ *payment.Payment) {
				mock.EXPECT().SettlePayment(ctx, gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
			repo := repository.NewPaymentRepository(mockQueries, &mockDBTX{})
			p := declined()
			tc.setupMock(mockQueries, p)

			err := repo.Settle(ctx, p)

			switch {
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
			case tc.wantKind != "":
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.wantKind), "got %v", err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
