package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// BookingService validates booking ownership before a POSTBOOKING
// ticket references it.
type BookingService struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
	logger   *zap.Logger
}

// NewBookingService constructs the service.
func NewBookingService(bookings repository.BookingRepository, users repository.UserRepository, logger *zap.Logger) *BookingService {
	return &BookingService{bookings: bookings, users: users, logger: logger}
}

// ValidateBooking confirms the booking exists and belongs to the user.
func (s *BookingService) ValidateBooking(ctx context.Context, userID, bookingID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, lookupError(err, "user", userID)
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return false, lookupError(err, "booking", bookingID)
	}
	if booking.UserID != user.ID {
		return false, apperrors.NewForbidden("user is not authorized to access this booking")
	}

	s.logger.Info("booking validated",
		zap.String("user_id", userID),
		zap.String("booking_id", bookingID),
	)
	return true, nil
}
