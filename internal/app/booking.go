package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chakronwork/SmartStay/internal/adapters/observability"
	"github.com/chakronwork/SmartStay/internal/domain"
)

// BookingService owns the checkout flow and the booking listings.
type BookingService struct {
	rooms    domain.RoomRepository
	bookings domain.BookingRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewBookingService(r domain.RoomRepository, b domain.BookingRepository, c domain.Cache, ttl time.Duration) *BookingService {
	return &BookingService{rooms: r, bookings: b, cache: c, cacheTTL: ttl, now: time.Now}
}

// Quote returns the total for a stay in the given room without booking it.
func (s *BookingService) Quote(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (float64, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	return domain.TotalPrice(checkIn, checkOut, room.PricePerNight), nil
}

// Create books a room for the user. The nightly price is re-read from the
// room row, never trusted from the caller; payment is simulated and the
// booking is stored as paid. Overlapping bookings for the same room are
// rejected with domain.ErrConflict.
func (s *BookingService) Create(ctx context.Context, userID, roomID int64, checkIn, checkOut time.Time) (domain.Booking, error) {
	if userID == 0 {
		return domain.Booking{}, domain.ErrUnauthorized
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("load room %d: %w", roomID, err)
	}

	b := domain.Booking{
		UserID:     userID,
		RoomID:     room.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: domain.TotalPrice(checkIn, checkOut, room.PricePerNight),
		Status:     domain.StatusPaid, // mock payment, see checkout flow
		CreatedAt:  s.now().UTC(),
	}
	id, err := s.bookings.CreateBooking(ctx, b)
	if err != nil {
		return domain.Booking{}, err
	}
	b.ID = id
	observability.ObserveBooking(b.Status)

	_ = s.cache.Del(ctx, keyUserBookings(userID), keyAllBookings())
	return b, nil
}

// ListMine returns the caller's bookings, newest first. Strictly scoped
// to one user id; cross-user reads go through ListAll.
func (s *BookingService) ListMine(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	key := keyUserBookings(userID)
	var out []domain.BookingView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	bs, err := s.bookings.ListUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, bs, s.cacheTTL)
	return bs, nil
}

// ListAll spans every user and is reachable only through the admin gate.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	key := keyAllBookings()
	var out []domain.BookingView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	bs, err := s.bookings.ListAllBookings(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, bs, s.cacheTTL)
	return bs, nil
}
