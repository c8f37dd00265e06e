//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/chakronwork/SmartStay/internal/domain"
	mysqlrepo "github.com/chakronwork/SmartStay/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func migrationsDir(t *testing.T) string {
	t.Helper()
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=smartstay",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/smartstay?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_CatalogBookingFlow(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Seed a hotel the way the seeder does.
	h := domain.Hotel{
		ID:            501,
		Name:          "SmartStay Riverside",
		Description:   pstr("ติดแม่น้ำ เดินทางสะดวก"),
		Location:      pstr("Bangkok"),
		Address:       pstr("99 Rim Nam Rd."),
		StartingPrice: 900,
		Rating:        pfloat(4.5),
	}
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}

	// Rooms: cheap available, pricey available, and one hidden.
	cheapID, err := repo.CreateRoom(ctx, domain.Room{
		HotelID: 501, Name: "Standard", PricePerNight: 900, Capacity: 2,
		Facilities: []string{"Wifi", "แอร์"}, IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("CreateRoom standard: %v", err)
	}
	priceyID, err := repo.CreateRoom(ctx, domain.Room{
		HotelID: 501, Name: "Suite", PricePerNight: 4200, Capacity: 4,
		Facilities: []string{"Wifi", "Pool"}, IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("CreateRoom suite: %v", err)
	}
	if _, err := repo.CreateRoom(ctx, domain.Room{
		HotelID: 501, Name: "Closed wing", PricePerNight: 100, IsAvailable: false,
	}); err != nil {
		t.Fatalf("CreateRoom hidden: %v", err)
	}

	avail, err := repo.ListAvailableRooms(ctx, 501)
	if err != nil {
		t.Fatalf("ListAvailableRooms: %v", err)
	}
	if len(avail) != 2 || avail[0].ID != cheapID || avail[1].ID != priceyID {
		t.Fatalf("expected [standard, suite] cheapest first, got %+v", avail)
	}
	if len(avail[0].Facilities) != 2 || avail[0].Facilities[1] != "แอร์" {
		t.Fatalf("facilities did not round-trip: %+v", avail[0].Facilities)
	}

	all, err := repo.ListAllRooms(ctx)
	if err != nil {
		t.Fatalf("ListAllRooms: %v", err)
	}
	if len(all) != 3 || all[0].HotelName != "SmartStay Riverside" {
		t.Fatalf("admin room list wrong: %+v", all)
	}

	// Profiles: create, duplicate email, fetch.
	uid, err := repo.CreateProfile(ctx, domain.Profile{
		Email: "guest@test.com", PasswordHash: "x", FirstName: pstr("Guest"), Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if _, err := repo.CreateProfile(ctx, domain.Profile{
		Email: "guest@test.com", PasswordHash: "y", Role: domain.RoleUser,
	}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	p, err := repo.GetProfileByEmail(ctx, "guest@test.com")
	if err != nil || p.ID != uid {
		t.Fatalf("GetProfileByEmail: %+v %v", p, err)
	}

	// Bookings: insert, overlap rejected, disjoint accepted.
	in := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)
	if _, err := repo.CreateBooking(ctx, domain.Booking{
		UserID: uid, RoomID: cheapID, CheckIn: in, CheckOut: out, TotalPrice: 2700, Status: domain.StatusPaid,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := repo.CreateBooking(ctx, domain.Booking{
		UserID: uid, RoomID: cheapID, CheckIn: in.AddDate(0, 0, 1), CheckOut: out.AddDate(0, 0, 1),
		TotalPrice: 2700, Status: domain.StatusPaid,
	}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected overlap conflict, got %v", err)
	}
	if _, err := repo.CreateBooking(ctx, domain.Booking{
		UserID: uid, RoomID: cheapID, CheckIn: out, CheckOut: out.AddDate(0, 0, 2),
		TotalPrice: 1800, Status: domain.StatusPaid,
	}); err != nil {
		t.Fatalf("back-to-back booking should pass: %v", err)
	}

	mine, err := repo.ListUserBookings(ctx, uid)
	if err != nil {
		t.Fatalf("ListUserBookings: %v", err)
	}
	if len(mine) != 2 || mine[0].RoomName != "Standard" || mine[0].HotelName != "SmartStay Riverside" {
		t.Fatalf("user booking list wrong: %+v", mine)
	}

	admin, err := repo.ListAllBookings(ctx)
	if err != nil {
		t.Fatalf("ListAllBookings: %v", err)
	}
	if len(admin) != 2 || admin[0].UserEmail == nil || *admin[0].UserEmail != "guest@test.com" {
		t.Fatalf("admin booking list wrong: %+v", admin)
	}
	if admin[0].UserName == nil || *admin[0].UserName != "Guest" {
		t.Fatalf("admin booking user name wrong: %+v", admin[0])
	}
}

func TestRepo_MySQL_DeleteRoomIsolation(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if err := repo.UpsertHotel(ctx, domain.Hotel{ID: 601, Name: "SmartStay Annex", StartingPrice: 500}); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}
	keepID, err := repo.CreateRoom(ctx, domain.Room{HotelID: 601, Name: "Keep", PricePerNight: 500, IsAvailable: true})
	if err != nil {
		t.Fatalf("CreateRoom keep: %v", err)
	}
	dropID, err := repo.CreateRoom(ctx, domain.Room{HotelID: 601, Name: "Drop", PricePerNight: 600, IsAvailable: true})
	if err != nil {
		t.Fatalf("CreateRoom drop: %v", err)
	}

	if err := repo.DeleteRoom(ctx, dropID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if err := repo.DeleteRoom(ctx, dropID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}

	avail, err := repo.ListAvailableRooms(ctx, 601)
	if err != nil {
		t.Fatalf("ListAvailableRooms: %v", err)
	}
	if len(avail) != 1 || avail[0].ID != keepID {
		t.Fatalf("only the kept room should remain: %+v", avail)
	}
	if _, err := repo.GetRoom(ctx, dropID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetRoom after delete: %v", err)
	}
}
