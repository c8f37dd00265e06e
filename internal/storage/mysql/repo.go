package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/chakronwork/SmartStay/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	s := ns.String
	return &s
}
func f64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

const mysqlErrDupEntry = 1062

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- hotels ----

func scanHotel(s interface{ Scan(...any) error }) (domain.Hotel, error) {
	var h domain.Hotel
	var desc, loc, addr, img sql.NullString
	var rating sql.NullFloat64
	if err := s.Scan(&h.ID, &h.Name, &desc, &loc, &addr, &img, &h.StartingPrice, &rating); err != nil {
		return domain.Hotel{}, err
	}
	h.Description = strPtr(desc)
	h.Location = strPtr(loc)
	h.Address = strPtr(addr)
	h.ImageURL = strPtr(img)
	h.Rating = f64Ptr(rating)
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		valStr(h.Description),
		valStr(h.Location),
		valStr(h.Address),
		valStr(h.ImageURL),
		h.StartingPrice,
		valF64(h.Rating),
	)
	return err
}

// ---- rooms ----

func scanRoom(s interface{ Scan(...any) error }, extra ...any) (domain.Room, error) {
	var rm domain.Room
	var img sql.NullString
	var facJSON []byte
	dst := []any{&rm.ID, &rm.HotelID, &rm.Name, &rm.PricePerNight, &rm.Capacity, &img, &facJSON, &rm.IsAvailable}
	dst = append(dst, extra...)
	if err := s.Scan(dst...); err != nil {
		return domain.Room{}, err
	}
	rm.ImageURL = strPtr(img)
	_ = json.Unmarshal(facJSON, &rm.Facilities)
	return rm, nil
}

func (r *Repo) ListAvailableRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listAvailableRoomsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) ListAllRooms(ctx context.Context) ([]domain.AdminRoom, error) {
	rows, err := r.db.QueryContext(ctx, listAllRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AdminRoom
	for rows.Next() {
		var hotelName string
		rm, err := scanRoom(rows, &hotelName)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.AdminRoom{Room: rm, HotelName: hotelName})
	}
	return out, rows.Err()
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, getRoomSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Room{}, domain.ErrNotFound
	}
	return rm, err
}

func (r *Repo) CreateRoom(ctx context.Context, rm domain.Room) (int64, error) {
	fac, _ := json.Marshal(rm.Facilities)
	res, err := r.db.ExecContext(ctx, insertRoomSQL,
		rm.HotelID,
		rm.Name,
		rm.PricePerNight,
		rm.Capacity,
		valStr(rm.ImageURL),
		string(fac),
		rm.IsAvailable,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) DeleteRoom(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteRoomSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- bookings ----

// CreateBooking inserts inside a transaction after a locking overlap
// check, so two concurrent requests for the same room and dates cannot
// both land.
func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var overlapping int
	if err := tx.QueryRowContext(ctx, countOverlapSQL, b.RoomID, b.CheckOut, b.CheckIn).Scan(&overlapping); err != nil {
		return 0, err
	}
	if overlapping > 0 {
		return 0, fmt.Errorf("%w: room %d already booked", domain.ErrConflict, b.RoomID)
	}

	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.UserID, b.RoomID, b.CheckIn, b.CheckOut, b.TotalPrice, b.Status,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func (r *Repo) listBookings(ctx context.Context, query string, withUser bool, args ...any) ([]domain.BookingView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingView
	for rows.Next() {
		var v domain.BookingView
		var roomImg, hotelLoc sql.NullString
		dst := []any{
			&v.ID, &v.UserID, &v.RoomID, &v.CheckIn, &v.CheckOut, &v.TotalPrice, &v.Status, &v.CreatedAt,
			&v.RoomName, &roomImg,
			&v.HotelName, &hotelLoc,
		}
		var email, first, last sql.NullString
		if withUser {
			dst = append(dst, &email, &first, &last)
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		v.RoomImageURL = strPtr(roomImg)
		v.HotelLocation = strPtr(hotelLoc)
		if withUser {
			v.UserEmail = strPtr(email)
			if name := joinName(first, last); name != "" {
				v.UserName = &name
			}
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func joinName(first, last sql.NullString) string {
	parts := make([]string, 0, 2)
	if s := strPtr(first); s != nil {
		parts = append(parts, *s)
	}
	if s := strPtr(last); s != nil {
		parts = append(parts, *s)
	}
	return strings.Join(parts, " ")
}

func (r *Repo) ListUserBookings(ctx context.Context, userID int64) ([]domain.BookingView, error) {
	return r.listBookings(ctx, listUserBookingsSQL, false, userID)
}

func (r *Repo) ListAllBookings(ctx context.Context) ([]domain.BookingView, error) {
	return r.listBookings(ctx, listAllBookingsSQL, true)
}

// ---- profiles ----

func (r *Repo) CreateProfile(ctx context.Context, p domain.Profile) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertProfileSQL,
		p.Email, p.PasswordHash, valStr(p.FirstName), valStr(p.LastName), p.Role,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDupEntry {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, err
	}
	return res.LastInsertId()
}

func scanProfile(s interface{ Scan(...any) error }) (domain.Profile, error) {
	var p domain.Profile
	var first, last sql.NullString
	if err := s.Scan(&p.ID, &p.Email, &p.PasswordHash, &first, &last, &p.Role, &p.CreatedAt); err != nil {
		return domain.Profile{}, err
	}
	p.FirstName = strPtr(first)
	p.LastName = strPtr(last)
	return p, nil
}

func (r *Repo) GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, getProfileByEmailSQL, email))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, err
}

func (r *Repo) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, getProfileSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, err
}
