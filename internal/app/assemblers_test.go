package app_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"hostel_manager/internal/app"
	"hostel_manager/internal/domain"
)

func TestReservationRecordRoundTrip(t *testing.T) {
	start, _ := domain.ParseDate("2024-01-10")
	end, _ := domain.ParseDate("2024-01-15")
	in := domain.Reservation{ID: "b-1", StartDate: start, EndDate: end, UserID: "u-1", RoomID: "r-1"}

	out := app.ReservationFromRecord(app.ReservationToRecord(in))
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestUserRecordRoundTrip(t *testing.T) {
	in := domain.User{ID: "u-9", Name: "Ana", Email: "ana@x.test", Password: "pw", Role: domain.RoleOwner, SubscriptionID: "s-2"}
	out := app.UserFromRecord(app.UserToRecord(in))
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestRoomRecordDefaultsAndFlexibleTypes(t *testing.T) {
	// missing fields default, numeric ids and comma decimals are accepted
	r := app.RoomFromRecord(map[string]any{
		"id":        float64(7),
		"price":     "45,5",
		"hotels_id": "h-1",
	})
	if r.ID != "7" || r.Price != 45.5 || r.HotelID != "h-1" || r.Type != "" {
		t.Fatalf("unexpected room: %+v", r)
	}
}

func TestReservationFromRecordIgnoresNestedObjects(t *testing.T) {
	// an embedded raw user must not leak into the typed entity
	r := app.ReservationFromRecord(map[string]any{
		"id":       "b-2",
		"users_id": "u-1",
		"rooms_id": "r-1",
		"users":    map[string]any{"id": "u-1", "name": "raw"},
	})
	if r.User != nil || r.Room != nil {
		t.Fatal("nested raw objects must resolve to nil links")
	}
	if r.UserID != "u-1" {
		t.Fatalf("foreign key lost: %+v", r)
	}
}

func TestRecordsFromResult_BareArray(t *testing.T) {
	data, _ := json.Marshal([]map[string]any{{"id": "h-1"}, {"id": "h-2"}})
	res := domain.Result{Status: http.StatusOK, Data: data}

	recs := app.RecordsFromResult(res, "hotels", zerolog.Nop())
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
}

func TestRecordsFromResult_KeyedObject(t *testing.T) {
	data, _ := json.Marshal(map[string]any{"reservations": []map[string]any{{"id": "b-1"}}})
	res := domain.Result{Status: http.StatusOK, Data: data}

	recs := app.RecordsFromResult(res, "reservations", zerolog.Nop())
	if len(recs) != 1 || recs[0]["id"] != "b-1" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestRecordsFromResult_NonSuccessYieldsEmpty(t *testing.T) {
	res := domain.Result{Status: http.StatusInternalServerError, Reason: "Internal Server Error"}
	recs := app.RecordsFromResult(res, "hotels", zerolog.Nop())
	if len(recs) != 0 {
		t.Fatalf("expected empty, got %+v", recs)
	}
}
