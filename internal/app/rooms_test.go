package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakronwork/SmartStay/internal/app"
	"github.com/chakronwork/SmartStay/internal/domain"
)

func TestParseFacilities(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Wifi, Pool, แอร์", []string{"Wifi", "Pool", "แอร์"}},
		{"Wifi,,Pool,", []string{"Wifi", "Pool"}},
		{"  อาหารเช้า  ", []string{"อาหารเช้า"}},
		{"", nil},
		{" , , ", nil},
	}
	for _, c := range cases {
		got := app.ParseFacilities(c.in)
		if len(c.want) == 0 {
			assert.Empty(t, got, "input %q", c.in)
			continue
		}
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestCreateRoom_DefaultsAndSplitting(t *testing.T) {
	rooms := &fakeRooms{}
	svc := app.NewRoomAdminService(rooms, &fakeCache{}, time.Minute)

	r, err := svc.Create(context.Background(), domain.NewRoom{
		HotelID:       3,
		Name:          " Deluxe Sea View ",
		PricePerNight: 2500,
		Facilities:    "Wifi, Pool, แอร์,",
	})
	require.NoError(t, err)

	assert.Equal(t, "Deluxe Sea View", r.Name)
	assert.True(t, r.IsAvailable, "availability must default to true")
	assert.Equal(t, 2, r.Capacity, "capacity must default to 2")
	assert.Equal(t, []string{"Wifi", "Pool", "แอร์"}, r.Facilities)
	require.Len(t, rooms.created, 1)
}

func TestCreateRoom_RequiresHotelSelection(t *testing.T) {
	rooms := &fakeRooms{}
	svc := app.NewRoomAdminService(rooms, &fakeCache{}, time.Minute)

	_, err := svc.Create(context.Background(), domain.NewRoom{Name: "x", PricePerNight: 100})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, rooms.created)
}

func TestDeleteRoom_RemovedFromListings(t *testing.T) {
	ctx := context.Background()
	rooms := &fakeRooms{rooms: map[int64]domain.Room{
		4: {ID: 4, HotelID: 9, Name: "Standard", PricePerNight: 900, IsAvailable: true},
	}}
	cache := &fakeCache{}
	svc := app.NewRoomAdminService(rooms, cache, time.Minute)

	// warm the admin listing cache, then delete
	rooms.admin = []domain.AdminRoom{{Room: domain.Room{ID: 4}, HotelName: "ริมทะเล"}}
	_, err := svc.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 4))
	assert.Equal(t, []int64{4}, rooms.deleted)

	// cache invalidated: second List re-reads the repo
	rooms.admin = nil
	out, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, cache.dels, "hotel:9", "owning hotel's detail cache must be dropped")
}

func TestDeleteRoom_Unknown(t *testing.T) {
	svc := app.NewRoomAdminService(&fakeRooms{}, &fakeCache{}, time.Minute)
	err := svc.Delete(context.Background(), 12345)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
