package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

func TestValidateBooking(t *testing.T) {
	f := newFixture()
	svc := NewBookingService(f.bookings, f.users, zap.NewNop())

	owner := f.addUser("customer-1", "owner@example.com", domain.RoleCustomer)
	other := f.addUser("customer-2", "other@example.com", domain.RoleCustomer)
	booking := &domain.Booking{ID: "booking-1", UserID: owner.ID, Reference: "BK-1001"}
	require.NoError(t, f.bookings.Create(context.Background(), booking))

	ctx := context.Background()

	valid, err := svc.ValidateBooking(ctx, owner.ID, booking.ID)
	require.NoError(t, err)
	assert.True(t, valid)

	t.Run("foreign booking forbidden", func(t *testing.T) {
		_, err := svc.ValidateBooking(ctx, other.ID, booking.ID)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.ValidateBooking(ctx, owner.ID, "missing")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ValidateBooking(ctx, "missing", booking.ID)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	})
}
