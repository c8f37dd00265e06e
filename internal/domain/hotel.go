package domain

// Hotel is read-only from this service: there is no editing surface,
// rows come in through the seeder.
type Hotel struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location"`
	Address       *string  `json:"address"`
	ImageURL      *string  `json:"image_url"`
	StartingPrice float64  `json:"starting_price"`
	Rating        *float64 `json:"rating"`
}

type Room struct {
	ID            int64    `json:"id"`
	HotelID       int64    `json:"hotel_id"`
	Name          string   `json:"name"`
	PricePerNight float64  `json:"price_per_night"`
	Capacity      int      `json:"capacity"`
	ImageURL      *string  `json:"image_url"`
	Facilities    []string `json:"facilities"`
	IsAvailable   bool     `json:"is_available"`
}

// HotelDetail is the hotel page read model: the hotel plus its
// available rooms ordered by ascending price.
type HotelDetail struct {
	Hotel Hotel  `json:"hotel"`
	Rooms []Room `json:"rooms"`
}

// AdminRoom is a room joined with its hotel's name for the management list.
type AdminRoom struct {
	Room
	HotelName string `json:"hotel_name"`
}

// NewRoom carries the create-room form. Facilities arrive as one
// comma-separated string and are split by the service.
type NewRoom struct {
	HotelID       int64
	Name          string
	PricePerNight float64
	Capacity      int
	ImageURL      *string
	Facilities    string
}
