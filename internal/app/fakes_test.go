package app_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chakronwork/SmartStay/internal/domain"
)

// ---- fakes ----

type fakeHotels struct {
	hotels map[int64]domain.Hotel
	list   []domain.Hotel
	calls  int
}

func (f *fakeHotels) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.calls++
	return f.list, nil
}
func (f *fakeHotels) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}
func (f *fakeHotels) UpsertHotel(ctx context.Context, h domain.Hotel) error { return nil }

type fakeRooms struct {
	rooms     map[int64]domain.Room
	admin     []domain.AdminRoom
	nextID    int64
	created   []domain.Room
	deleted   []int64
	listCalls int
}

func (f *fakeRooms) ListAvailableRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var out []domain.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID && r.IsAvailable {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRooms) ListAllRooms(ctx context.Context) ([]domain.AdminRoom, error) {
	f.listCalls++
	return f.admin, nil
}
func (f *fakeRooms) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}
func (f *fakeRooms) CreateRoom(ctx context.Context, r domain.Room) (int64, error) {
	f.nextID++
	r.ID = f.nextID
	if f.rooms == nil {
		f.rooms = map[int64]domain.Room{}
	}
	f.rooms[r.ID] = r
	f.created = append(f.created, r)
	return r.ID, nil
}
func (f *fakeRooms) DeleteRoom(ctx context.Context, id int64) error {
	if _, ok := f.rooms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rooms, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookings struct {
	nextID   int64
	inserted []domain.Booking
	mine     []domain.BookingView
	all      []domain.BookingView
	err      error
}

func (f *fakeBookings) CreateBooking(ctx context.Context, b domain.Booking) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	b.ID = f.nextID
	f.inserted = append(f.inserted, b)
	return b.ID, nil
}
func (f *fakeBookings) ListUserBookings(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	return f.mine, nil
}
func (f *fakeBookings) ListAllBookings(ctx context.Context) ([]domain.BookingView, error) {
	return f.all, nil
}

type fakeProfiles struct {
	nextID   int64
	byEmail  map[string]domain.Profile
	inserted []domain.Profile
}

func (f *fakeProfiles) CreateProfile(ctx context.Context, p domain.Profile) (int64, error) {
	if f.byEmail == nil {
		f.byEmail = map[string]domain.Profile{}
	}
	if _, ok := f.byEmail[p.Email]; ok {
		return 0, domain.ErrDuplicateEmail
	}
	f.nextID++
	p.ID = f.nextID
	f.byEmail[p.Email] = p
	f.inserted = append(f.inserted, p)
	return p.ID, nil
}
func (f *fakeProfiles) GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error) {
	p, ok := f.byEmail[email]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}
func (f *fakeProfiles) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	for _, p := range f.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Profile{}, domain.ErrNotFound
}

// fakeCache stores marshalled JSON so any dst type round-trips.
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}
func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.store, k)
		c.dels = append(c.dels, k)
	}
	return nil
}

type fakeAssistant struct {
	prompts []string
	reply   string
	err     error
}

func (a *fakeAssistant) Generate(ctx context.Context, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

// ---- tiny helpers ----

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
