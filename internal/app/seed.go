package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/chakronwork/SmartStay/internal/domain"
)

// SeedService loads the catalog fixture into storage. Hotels are
// upserted; rooms are only inserted when the hotel has none yet, and
// seeded rooms are always available, so a rerun sees them and skips.
type SeedService struct {
	hotels   domain.HotelRepository
	rooms    domain.RoomRepository
	profiles domain.ProfileRepository
	cache    domain.Cache
}

func NewSeedService(h domain.HotelRepository, r domain.RoomRepository, p domain.ProfileRepository, c domain.Cache) *SeedService {
	return &SeedService{hotels: h, rooms: r, profiles: p, cache: c}
}

func (s *SeedService) SeedHotel(ctx context.Context, h domain.Hotel, rooms []domain.NewRoom) error {
	if err := s.hotels.UpsertHotel(ctx, h); err != nil {
		return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
	}

	existing, err := s.rooms.ListAvailableRooms(ctx, h.ID)
	if err != nil {
		return fmt.Errorf("list rooms of hotel %d: %w", h.ID, err)
	}
	if len(existing) == 0 {
		for _, nr := range rooms {
			capacity := nr.Capacity
			if capacity <= 0 {
				capacity = 2
			}
			room := domain.Room{
				HotelID:       h.ID,
				Name:          nr.Name,
				PricePerNight: nr.PricePerNight,
				Capacity:      capacity,
				ImageURL:      nr.ImageURL,
				Facilities:    ParseFacilities(nr.Facilities),
				IsAvailable:   true,
			}
			if _, err := s.rooms.CreateRoom(ctx, room); err != nil {
				return fmt.Errorf("create room %q in hotel %d: %w", nr.Name, h.ID, err)
			}
		}
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, keyHotelsList(), keyHotelDetail(h.ID), keyAdminRooms())
	}
	return nil
}

// EnsureAdmin provisions the management account. An existing profile is
// left untouched, whatever its role.
func (s *SeedService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: admin email and password are required", domain.ErrInvalidInput)
	}
	if _, err := s.profiles.GetProfileByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.profiles.CreateProfile(ctx, domain.Profile{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	return err
}
