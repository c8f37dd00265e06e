package domain

import (
	"math"
	"time"
)

const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

type Booking struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	RoomID     int64     `json:"room_id"`
	CheckIn    time.Time `json:"check_in_date"`
	CheckOut   time.Time `json:"check_out_date"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingView is a booking joined with room/hotel names for listings.
// UserEmail and UserName are only populated on the admin listing.
type BookingView struct {
	Booking
	RoomName      string  `json:"room_name"`
	RoomImageURL  *string `json:"room_image_url"`
	HotelName     string  `json:"hotel_name"`
	HotelLocation *string `json:"hotel_location"`
	UserEmail     *string `json:"user_email,omitempty"`
	UserName      *string `json:"user_name,omitempty"`
}

// Nights returns the number of billable nights between checkIn and
// checkOut, rounding partial days up. Zero or negative spans return 0.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// TotalPrice computes the stay total: nights × nightly price, falling
// back to exactly one night's price when the span is zero or inverted.
func TotalPrice(checkIn, checkOut time.Time, nightly float64) float64 {
	n := Nights(checkIn, checkOut)
	if n <= 0 {
		return nightly
	}
	return float64(n) * nightly
}
