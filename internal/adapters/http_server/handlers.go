package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/chakronwork/SmartStay/internal/app"
	"github.com/chakronwork/SmartStay/internal/domain"
)

type Handlers struct {
	Catalog  *app.CatalogService
	Bookings *app.BookingService
	Rooms    *app.RoomAdminService
	Auth     *app.AuthService
	Chat     *app.ChatService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const dateLayout = "2006-01-02"

// chatFailMsg matches the original storefront's generic chat failure notice.
const chatFailMsg = "คุยกับ AI ไม่รู้เรื่องชั่วคราว"

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// public catalog + auth + chat
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Post("/v1/auth/signup", h.signup)
	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Post("/api/chat", h.chat)

	// session required
	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.Auth.Verify))
		r.Get("/v1/auth/me", h.me)
		r.Post("/v1/bookings", h.createBooking)
		r.Get("/v1/bookings/quote", h.quoteBooking)
		r.Get("/v1/bookings/my", h.myBookings)

		// admin role required
		r.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			ar.Get("/v1/admin/bookings", h.adminBookings)
			ar.Get("/v1/admin/rooms", h.adminRooms)
			ar.Post("/v1/admin/rooms", h.createRoom)
			ar.Delete("/v1/admin/rooms/{id}", h.deleteRoom)
		})
	})
}

// ---- shared helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// respondError maps domain sentinels onto problem responses. Unknown
// errors are logged and reported generically.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", "room is already booked for those dates")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeProblem(w, http.StatusConflict, "Conflict", "email already registered")
	case errors.Is(err, domain.ErrBadCredentials), errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "not allowed")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "something went wrong")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ---- catalog ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Catalog.ListHotels(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeCached(w, r, hs)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	d, err := h.Catalog.GetHotelDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeCached(w, r, d)
}

// ---- auth ----

type credentialsBody struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var in credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	sess, err := h.Auth.SignUp(r.Context(), in.Email, in.Password, in.FirstName, in.LastName)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	sess, err := h.Auth.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	writeJSON(w, http.StatusOK, id)
}

// ---- bookings ----

type createBookingBody struct {
	RoomID   int64  `json:"room_id"`
	CheckIn  string `json:"check_in_date"`
	CheckOut string `json:"check_out_date"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	var in createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	checkIn, err1 := time.Parse(dateLayout, in.CheckIn)
	checkOut, err2 := time.Parse(dateLayout, in.CheckOut)
	if in.RoomID == 0 || err1 != nil || err2 != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Input", "room_id, check_in_date and check_out_date (YYYY-MM-DD) are required")
		return
	}

	b, err := h.Bookings.Create(r.Context(), id.UserID, in.RoomID, checkIn, checkOut)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// quoteBooking prices a stay without creating it, so the checkout form
// can show the total as dates change.
func (h *Handlers) quoteBooking(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(r.URL.Query().Get("room_id"), 10, 64)
	checkIn, err1 := time.Parse(dateLayout, r.URL.Query().Get("check_in_date"))
	checkOut, err2 := time.Parse(dateLayout, r.URL.Query().Get("check_out_date"))
	if err != nil || err1 != nil || err2 != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Input", "room_id, check_in_date and check_out_date (YYYY-MM-DD) are required")
		return
	}

	total, err := h.Bookings.Quote(r.Context(), roomID, checkIn, checkOut)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total_price": total})
}

func (h *Handlers) myBookings(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	bs, err := h.Bookings.ListMine(r.Context(), id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

// ---- admin ----

func (h *Handlers) adminBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Bookings.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bs)
}

func (h *Handlers) adminRooms(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Rooms.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

type createRoomBody struct {
	HotelID       int64   `json:"hotel_id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	ImageURL      *string `json:"image_url"`
	Facilities    string  `json:"facilities"`
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var in createRoomBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	room, err := h.Rooms.Create(r.Context(), domain.NewRoom{
		HotelID:       in.HotelID,
		Name:          in.Name,
		PricePerNight: in.PricePerNight,
		Capacity:      in.Capacity,
		ImageURL:      in.ImageURL,
		Facilities:    in.Facilities,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Rooms.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- chat relay ----

type chatBody struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatReply struct {
	Reply     string `json:"reply,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var in chatBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Message == "" {
		writeJSON(w, http.StatusBadRequest, chatReply{Error: "message is required"})
		return
	}

	reply, sid, err := h.Chat.Reply(r.Context(), in.SessionID, in.Message)
	if err != nil {
		if errors.Is(err, app.ErrNoAssistant) {
			writeJSON(w, http.StatusInternalServerError, chatReply{Error: "Missing API Key"})
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, chatReply{Error: "message is required"})
			return
		}
		// upstream detail stays in the log, caller gets the fixed notice
		log.Error().Err(err).Msg("chat relay failed")
		writeJSON(w, http.StatusInternalServerError, chatReply{Error: chatFailMsg})
		return
	}
	writeJSON(w, http.StatusOK, chatReply{Reply: reply, SessionID: sid})
}
