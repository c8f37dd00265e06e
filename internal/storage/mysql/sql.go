package mysql

// -----------------------------------------------------------------------------
// HOTELS
// -----------------------------------------------------------------------------

const listHotelsSQL = `
SELECT id, name, description, location, address, image_url, starting_price, rating
FROM hotels
ORDER BY id
`

const getHotelSQL = `
SELECT id, name, description, location, address, image_url, starting_price, rating
FROM hotels
WHERE id = ?
`

// Seeder writes through this; the API itself never mutates hotels.
const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, description, location, address, image_url, starting_price, rating)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name           = VALUES(name),
  description    = VALUES(description),
  location       = VALUES(location),
  address        = VALUES(address),
  image_url      = VALUES(image_url),
  starting_price = VALUES(starting_price),
  rating         = VALUES(rating),
  updated_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

const listAvailableRoomsSQL = `
SELECT id, hotel_id, name, price_per_night, capacity, image_url, facilities, is_available
FROM rooms
WHERE hotel_id = ? AND is_available = 1
ORDER BY price_per_night ASC, id ASC
`

const listAllRoomsSQL = `
SELECT r.id, r.hotel_id, r.name, r.price_per_night, r.capacity, r.image_url, r.facilities, r.is_available,
       h.name
FROM rooms r
JOIN hotels h ON h.id = r.hotel_id
ORDER BY r.id DESC
`

const getRoomSQL = `
SELECT id, hotel_id, name, price_per_night, capacity, image_url, facilities, is_available
FROM rooms
WHERE id = ?
`

const insertRoomSQL = `
INSERT INTO rooms (hotel_id, name, price_per_night, capacity, image_url, facilities, is_available)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const deleteRoomSQL = `
DELETE FROM rooms WHERE id = ?
`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

// Row lock on the overlap check keeps two concurrent inserts for the
// same room from both passing; the insert runs in the same transaction.
const countOverlapSQL = `
SELECT COUNT(*)
FROM bookings
WHERE room_id = ?
  AND status <> 'cancelled'
  AND check_in_date  < ?
  AND check_out_date > ?
FOR UPDATE
`

const insertBookingSQL = `
INSERT INTO bookings (user_id, room_id, check_in_date, check_out_date, total_price, status)
VALUES (?, ?, ?, ?, ?, ?)
`

const listUserBookingsSQL = `
SELECT b.id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.total_price, b.status, b.created_at,
       r.name, r.image_url,
       h.name, h.location
FROM bookings b
JOIN rooms  r ON r.id = b.room_id
JOIN hotels h ON h.id = r.hotel_id
WHERE b.user_id = ?
ORDER BY b.created_at DESC, b.id DESC
`

const listAllBookingsSQL = `
SELECT b.id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.total_price, b.status, b.created_at,
       r.name, r.image_url,
       h.name, h.location,
       p.email, p.first_name, p.last_name
FROM bookings b
JOIN rooms    r ON r.id = b.room_id
JOIN hotels   h ON h.id = r.hotel_id
LEFT JOIN profiles p ON p.id = b.user_id
ORDER BY b.created_at DESC, b.id DESC
`

// -----------------------------------------------------------------------------
// PROFILES
// -----------------------------------------------------------------------------

const insertProfileSQL = `
INSERT INTO profiles (email, password_hash, first_name, last_name, role)
VALUES (?, ?, ?, ?, ?)
`

const getProfileByEmailSQL = `
SELECT id, email, password_hash, first_name, last_name, role, created_at
FROM profiles
WHERE email = ?
`

const getProfileSQL = `
SELECT id, email, password_hash, first_name, last_name, role, created_at
FROM profiles
WHERE id = ?
`
