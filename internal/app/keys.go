package app

import "fmt"

// Cache keys are shared across services because mutations in one service
// invalidate listings served by another.

func keyHotelsList() string            { return "hotels:list" }
func keyHotelDetail(id int64) string   { return fmt.Sprintf("hotel:%d", id) }
func keyAdminRooms() string            { return "rooms:admin" }
func keyUserBookings(uid int64) string { return fmt.Sprintf("bookings:user:%d", uid) }
func keyAllBookings() string           { return "bookings:all" }
func keyChatSession(id string) string  { return "chat:sess:" + id }
