package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	UpsertHotel(ctx context.Context, h Hotel) error
}

type RoomRepository interface {
	// ListAvailableRooms returns a hotel's available rooms, cheapest first.
	ListAvailableRooms(ctx context.Context, hotelID int64) ([]Room, error)
	// ListAllRooms returns every room joined with its hotel name, newest first.
	ListAllRooms(ctx context.Context) ([]AdminRoom, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	CreateRoom(ctx context.Context, r Room) (int64, error)
	DeleteRoom(ctx context.Context, id int64) error
}

type BookingRepository interface {
	// CreateBooking inserts b and returns its id. ErrConflict when the
	// room already has a non-cancelled booking overlapping the dates.
	CreateBooking(ctx context.Context, b Booking) (int64, error)
	// ListUserBookings is strictly scoped to one user, newest first.
	ListUserBookings(ctx context.Context, userID int64) ([]BookingView, error)
	// ListAllBookings spans every user, joined with profile and room/hotel
	// names, newest first.
	ListAllBookings(ctx context.Context) ([]BookingView, error)
}

type ProfileRepository interface {
	CreateProfile(ctx context.Context, p Profile) (int64, error)
	GetProfileByEmail(ctx context.Context, email string) (Profile, error)
	GetProfile(ctx context.Context, id int64) (Profile, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Assistant is the Remote Completion Service boundary: one prompt in,
// one generated text out.
type Assistant interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
