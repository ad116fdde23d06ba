package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	httpserver "hostel_manager/internal/adapters/http_server"
	"hostel_manager/internal/adapters/memory"
	"hostel_manager/internal/app"
	"hostel_manager/internal/domain"
)

// newTestMux wires the full graph over the demo seed: u-1 owns hotel h-1
// (rooms r-1, r-2), u-2 rents r-1 for [2026-09-10, 2026-09-14].
func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	seed := memory.DemoSeed()
	nop := zerolog.Nop()

	hotels := app.NewHotels(memory.New("hotels", seed["hotels"]), nop)
	rooms := app.NewRooms(memory.New("rooms", seed["rooms"]), nop)
	reservations := app.NewReservations(memory.New("reservations", seed["reservations"]), nop)
	subscriptions := app.NewSubscriptions(memory.New("subscriptions", seed["subscriptions"]), nop)
	users := app.NewUsers(memory.New("users", seed["users"]), nop)

	session := app.NewSession(users, memory.NewKV(), "hostel:session", nop)
	q := &app.QueryService{
		Hotels:        hotels,
		Rooms:         rooms,
		Reservations:  reservations,
		Subscriptions: subscriptions,
		Users:         users,
		Session:       session,
	}

	if err := app.RefreshAll(context.Background(), hotels, rooms, reservations, subscriptions, users); err != nil {
		t.Fatalf("warm fetch: %v", err)
	}

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	return srv.Mux()
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, mux http.Handler, email, password string) {
	t.Helper()
	rr := do(t, mux, "POST", "/v1/auth/login", `{"email":"`+email+`","password":"`+password+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	mux := newTestMux(t)
	rr := do(t, mux, "POST", "/v1/auth/login", `{"email":"marta@hostel.test","password":"wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestViewsRequireLogin(t *testing.T) {
	mux := newTestMux(t)
	for _, path := range []string{"/v1/me/hotels", "/v1/me/rooms", "/v1/me/reservations", "/v1/owner/reservations"} {
		rr := do(t, mux, "GET", path, "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
	}
}

func TestOwnerViews(t *testing.T) {
	mux := newTestMux(t)
	login(t, mux, "marta@hostel.test", "marta123")

	rr := do(t, mux, "GET", "/v1/me/hotels", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("hotels: %d", rr.Code)
	}
	var hotels []domain.Hotel
	if err := json.Unmarshal(rr.Body.Bytes(), &hotels); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hotels) != 1 || hotels[0].ID != "h-1" {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}

	rr = do(t, mux, "GET", "/v1/owner/reservations", "")
	var res []domain.Reservation
	_ = json.Unmarshal(rr.Body.Bytes(), &res)
	if len(res) != 1 || res[0].ID != "b-1" {
		t.Fatalf("owner must see the booking on their room: %+v", res)
	}
}

func TestOwnerViewEmptyForClient(t *testing.T) {
	mux := newTestMux(t)
	login(t, mux, "diego@hostel.test", "diego123")

	rr := do(t, mux, "GET", "/v1/owner/reservations", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Fatalf("client role must see an empty list, got %s", body)
	}
}

func TestRoomAvailabilityEndpoint(t *testing.T) {
	mux := newTestMux(t)

	check := func(query string, want bool) {
		t.Helper()
		rr := do(t, mux, "GET", "/v1/rooms/r-1/availability?"+query, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rr.Code, rr.Body)
		}
		var out map[string]bool
		_ = json.Unmarshal(rr.Body.Bytes(), &out)
		if out["available"] != want {
			t.Fatalf("%s: available=%v want %v", query, out["available"], want)
		}
	}

	// seed booking is [2026-09-10, 2026-09-14]
	check("start=2026-09-14&end=2026-09-20", false) // boundary touch
	check("start=2026-09-15&end=2026-09-20", true)
	check("start=2026-09-01&end=2026-09-09", true)
	check("start=2026-09-10&end=2026-09-14&exclude=b-1", true)

	rr := do(t, mux, "GET", "/v1/rooms/r-1/availability?start=bogus&end=2026-09-20", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateReservationConflicts(t *testing.T) {
	mux := newTestMux(t)
	login(t, mux, "diego@hostel.test", "diego123")

	rr := do(t, mux, "POST", "/v1/reservations",
		`{"rooms_id":"r-1","start_date":"2026-09-12","end_date":"2026-09-16"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", rr.Code, rr.Body)
	}

	rr = do(t, mux, "POST", "/v1/reservations",
		`{"rooms_id":"r-2","start_date":"2026-09-12","end_date":"2026-09-16"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rr.Code, rr.Body)
	}
	var created domain.Reservation
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	if created.UserID != "u-2" {
		t.Fatalf("renter must be the session user: %+v", created)
	}

	// the new booking now blocks its own range
	rr = do(t, mux, "GET", "/v1/rooms/r-2/availability?start=2026-09-16&end=2026-09-18", "")
	var out map[string]bool
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if out["available"] {
		t.Fatal("created reservation must affect availability")
	}
}

func TestReservationDetails(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, "GET", "/v1/reservations/b-1/details", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var d app.ReservationDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Room == nil || d.Room.ID != "r-1" || d.Hotel == nil || d.Hotel.ID != "h-1" || d.User == nil || d.User.ID != "u-2" {
		t.Fatalf("unexpected details: %+v", d)
	}

	rr = do(t, mux, "GET", "/v1/reservations/nope/details", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
