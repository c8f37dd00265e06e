package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chakronwork/SmartStay/internal/domain"
)

// CatalogService serves the public read-only screens: the hotel listing
// and the hotel detail page.
type CatalogService struct {
	hotels   domain.HotelRepository
	rooms    domain.RoomRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(h domain.HotelRepository, r domain.RoomRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{hotels: h, rooms: r, cache: c, cacheTTL: ttl}
}

// ListHotels returns every hotel ordered by ascending id.
func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	key := keyHotelsList()
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	hs, err := s.hotels.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, hs, s.cacheTTL)
	return hs, nil
}

// GetHotelDetail returns one hotel with its available rooms, cheapest
// first. Hotel and rooms are fetched concurrently; an unknown id yields
// domain.ErrNotFound.
func (s *CatalogService) GetHotelDetail(ctx context.Context, id int64) (domain.HotelDetail, error) {
	key := keyHotelDetail(id)
	var out domain.HotelDetail
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var hotel domain.Hotel
	var rooms []domain.Room
	g.Go(func() error {
		var err error
		hotel, err = s.hotels.GetHotel(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.rooms.ListAvailableRooms(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.HotelDetail{}, err
	}

	out = domain.HotelDetail{Hotel: hotel, Rooms: rooms}
	_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	return out, nil
}
