package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hostel_manager/internal/app"
	"hostel_manager/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/logout", h.logout)

	s.mux.Get("/v1/me/hotels", h.myHotels)
	s.mux.Get("/v1/me/rooms", h.myRooms)
	s.mux.Get("/v1/me/reservations", h.myReservations)
	s.mux.Get("/v1/owner/reservations", h.hotelReservations)

	s.mux.Get("/v1/reservations/{id}/details", h.reservationDetails)
	s.mux.Get("/v1/rooms/{id}/availability", h.roomAvailability)
	s.mux.Post("/v1/reservations", h.createReservation)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// requireUser rejects with 401 when nobody is logged in.
func (h *Handlers) requireUser(w http.ResponseWriter) *domain.User {
	u := h.Q.Session.CurrentUser()
	if u == nil {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "login required")
	}
	return u
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON with email and password")
		return
	}
	if !h.Q.Session.Login(r.Context(), in.Email, in.Password) {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, h.Q.Session.CurrentUser())
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a user object")
		return
	}
	created, err := h.Q.Session.Register(r.Context(), u)
	if err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Registration failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.Q.Session.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) myHotels(w http.ResponseWriter, r *http.Request) {
	if h.requireUser(w) == nil {
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(h.Q.MyHotels()))
}

func (h *Handlers) myRooms(w http.ResponseWriter, r *http.Request) {
	if h.requireUser(w) == nil {
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(h.Q.MyRooms()))
}

func (h *Handlers) myReservations(w http.ResponseWriter, r *http.Request) {
	if h.requireUser(w) == nil {
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(h.Q.MyReservations()))
}

// hotelReservations is already role-gated by the query layer: non-owners
// get an empty list, not an error.
func (h *Handlers) hotelReservations(w http.ResponseWriter, r *http.Request) {
	if h.requireUser(w) == nil {
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(h.Q.HotelReservations()))
}

func (h *Handlers) reservationDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, ok := h.Q.ReservationDetails(id)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) roomAvailability(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	start, err := domain.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid start", "start must be YYYY-MM-DD")
		return
	}
	end, err := domain.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid end", "end must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		writeProblem(w, http.StatusBadRequest, "Invalid range", "end must not precede start")
		return
	}
	exclude := r.URL.Query().Get("exclude")
	writeJSON(w, http.StatusOK, map[string]bool{
		"available": h.Q.IsRoomAvailable(roomID, start, end, exclude),
	})
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	u := h.requireUser(w)
	if u == nil {
		return
	}
	var res domain.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a reservation object")
		return
	}
	if res.RoomID == "" || res.StartDate.IsZero() || res.EndDate.IsZero() {
		writeProblem(w, http.StatusBadRequest, "Invalid reservation", "rooms_id, start_date and end_date are required")
		return
	}
	if res.EndDate.Before(res.StartDate) {
		writeProblem(w, http.StatusBadRequest, "Invalid range", "end_date must not precede start_date")
		return
	}
	res.UserID = u.ID
	if !h.Q.IsRoomAvailable(res.RoomID, res.StartDate, res.EndDate, "") {
		writeProblem(w, http.StatusConflict, "Room unavailable", "the room is already reserved in that range")
		return
	}
	created, err := h.Q.Reservations.Create(r.Context(), res)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Create failed", "backend rejected the reservation")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// orEmpty keeps list responses as [] instead of null.
func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
