package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"hostel_manager/internal/domain"
)

/********** record helpers **********/

// recStr returns the string at key or "".
func recStr(rec map[string]any, key string) string {
	if v, ok := rec[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// recID accepts ids as strings or JSON numbers; backends disagree on this.
func recID(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// recFloat parses numbers arriving as float64, int, or numeric strings
// (including a comma decimal separator).
func recFloat(rec map[string]any, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// recDate parses a day at key; unparseable or missing values default to the
// zero Date.
func recDate(rec map[string]any, key string) domain.Date {
	s := recStr(rec, key)
	if s == "" {
		return domain.Date{}
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}
	}
	return d
}

/********** per-entity assemblers **********/

// Raw payloads carry foreign keys only as far as this layer is concerned.
// Nested objects a backend may embed (e.g. a reservation's full user) are
// deliberately ignored; resolved links are attached by the query layer from
// already-validated entities.

func UserFromRecord(rec map[string]any) domain.User {
	return domain.User{
		ID:             recID(rec, "id"),
		Name:           recStr(rec, "name"),
		Email:          recStr(rec, "email"),
		Password:       recStr(rec, "password"),
		Role:           domain.Role(recStr(rec, "type_user")),
		SubscriptionID: recID(rec, "subscription_id"),
	}
}

func UserToRecord(u domain.User) map[string]any {
	rec := map[string]any{
		"name":            u.Name,
		"email":           u.Email,
		"password":        u.Password,
		"type_user":       string(u.Role),
		"subscription_id": u.SubscriptionID,
	}
	if u.ID != "" {
		rec["id"] = u.ID
	}
	return rec
}

func HotelFromRecord(rec map[string]any) domain.Hotel {
	return domain.Hotel{
		ID:      recID(rec, "id"),
		Name:    recStr(rec, "name"),
		Image:   recStr(rec, "imagen"),
		Address: recStr(rec, "address"),
		Phone:   recStr(rec, "phone"),
		OwnerID: recID(rec, "users_id"),
	}
}

func HotelToRecord(h domain.Hotel) map[string]any {
	rec := map[string]any{
		"name":     h.Name,
		"imagen":   h.Image,
		"address":  h.Address,
		"phone":    h.Phone,
		"users_id": h.OwnerID,
	}
	if h.ID != "" {
		rec["id"] = h.ID
	}
	return rec
}

func RoomFromRecord(rec map[string]any) domain.Room {
	return domain.Room{
		ID:      recID(rec, "id"),
		Price:   recFloat(rec, "price"),
		Type:    domain.RoomType(recStr(rec, "type_room")),
		HotelID: recID(rec, "hotels_id"),
	}
}

func RoomToRecord(r domain.Room) map[string]any {
	rec := map[string]any{
		"price":     r.Price,
		"type_room": string(r.Type),
		"hotels_id": r.HotelID,
	}
	if r.ID != "" {
		rec["id"] = r.ID
	}
	return rec
}

func ReservationFromRecord(rec map[string]any) domain.Reservation {
	return domain.Reservation{
		ID:        recID(rec, "id"),
		StartDate: recDate(rec, "start_date"),
		EndDate:   recDate(rec, "end_date"),
		UserID:    recID(rec, "users_id"),
		RoomID:    recID(rec, "rooms_id"),
	}
}

func ReservationToRecord(r domain.Reservation) map[string]any {
	rec := map[string]any{
		"start_date": r.StartDate.String(),
		"end_date":   r.EndDate.String(),
		"users_id":   r.UserID,
		"rooms_id":   r.RoomID,
	}
	if r.ID != "" {
		rec["id"] = r.ID
	}
	return rec
}

func SubscriptionFromRecord(rec map[string]any) domain.Subscription {
	return domain.Subscription{
		ID:     recID(rec, "id"),
		Plan:   domain.PlanType(recStr(rec, "type_plan")),
		UserID: recID(rec, "users_id"),
	}
}

func SubscriptionToRecord(s domain.Subscription) map[string]any {
	rec := map[string]any{
		"type_plan": string(s.Plan),
		"users_id":  s.UserID,
	}
	if s.ID != "" {
		rec["id"] = s.ID
	}
	return rec
}

/********** result extraction **********/

// RecordsFromResult pulls the record list out of a successful result. The
// payload may be a bare array or an object keyed by the collection name
// ({"reservations": [...]}); both forms are accepted. A non-success result
// is reported to the log and yields an empty slice, never an error.
func RecordsFromResult(res domain.Result, name string, log zerolog.Logger) []map[string]any {
	if !res.OK() {
		log.Warn().
			Str("collection", name).
			Int("status", res.Status).
			Str("reason", res.Reason).
			Msg("fetch returned non-success status")
		return nil
	}

	var list []map[string]any
	if err := json.Unmarshal(res.Data, &list); err == nil {
		return list
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(res.Data, &keyed); err != nil {
		log.Warn().Str("collection", name).Msg("payload is neither array nor object")
		return nil
	}
	if raw, ok := keyed[name]; ok {
		if err := json.Unmarshal(raw, &list); err == nil {
			return list
		}
	}
	return nil
}

// RecordFromResult decodes a single-record payload, false when the result
// is non-success or the payload is not an object.
func RecordFromResult(res domain.Result) (map[string]any, bool) {
	if !res.OK() {
		return nil, false
	}
	var rec map[string]any
	if err := json.Unmarshal(res.Data, &rec); err != nil {
		return nil, false
	}
	return rec, true
}
