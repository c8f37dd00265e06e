package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chakronwork/SmartStay/internal/domain"
)

// RoomAdminService manages room inventory: create and hard delete only,
// there is no update-in-place operation.
type RoomAdminService struct {
	rooms    domain.RoomRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewRoomAdminService(r domain.RoomRepository, c domain.Cache, ttl time.Duration) *RoomAdminService {
	return &RoomAdminService{rooms: r, cache: c, cacheTTL: ttl}
}

func (s *RoomAdminService) List(ctx context.Context) ([]domain.AdminRoom, error) {
	key := keyAdminRooms()
	var out []domain.AdminRoom
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rs, err := s.rooms.ListAllRooms(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, rs, s.cacheTTL)
	return rs, nil
}

// Create validates the form, splits the facilities string and inserts the
// room as available. Catalog caches for the owning hotel are invalidated.
func (s *RoomAdminService) Create(ctx context.Context, in domain.NewRoom) (domain.Room, error) {
	if in.HotelID == 0 {
		return domain.Room{}, fmt.Errorf("%w: hotel is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Room{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.PricePerNight <= 0 {
		return domain.Room{}, fmt.Errorf("%w: price_per_night must be positive", domain.ErrInvalidInput)
	}
	if in.Capacity <= 0 {
		in.Capacity = 2
	}

	r := domain.Room{
		HotelID:       in.HotelID,
		Name:          strings.TrimSpace(in.Name),
		PricePerNight: in.PricePerNight,
		Capacity:      in.Capacity,
		ImageURL:      in.ImageURL,
		Facilities:    ParseFacilities(in.Facilities),
		IsAvailable:   true,
	}
	id, err := s.rooms.CreateRoom(ctx, r)
	if err != nil {
		return domain.Room{}, err
	}
	r.ID = id

	s.invalidate(ctx, r.HotelID)
	return r, nil
}

// Delete hard-deletes a room. The room is loaded first so the owning
// hotel's detail cache can be invalidated too.
func (s *RoomAdminService) Delete(ctx context.Context, id int64) error {
	r, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, r.HotelID)
	return nil
}

func (s *RoomAdminService) invalidate(ctx context.Context, hotelID int64) {
	_ = s.cache.Del(ctx, keyAdminRooms(), keyHotelsList(), keyHotelDetail(hotelID))
}

// ParseFacilities splits a comma-separated facilities string, trimming
// whitespace and dropping empty entries from stray commas.
func ParseFacilities(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
