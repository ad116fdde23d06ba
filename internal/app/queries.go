package app

import (
	"hostel_manager/internal/domain"
)

// The query layer is a set of pure functions over collection snapshots.
// Nothing here reaches into ambient state: callers pass the slices and the
// scoping user explicitly, which keeps every join testable in isolation.
// QueryService below is the thin convenience wrapper for code that holds
// the wired object graph.

// MyHotels returns the hotels owned by userID.
func MyHotels(hotels []domain.Hotel, userID string) []domain.Hotel {
	if userID == "" {
		return nil
	}
	var out []domain.Hotel
	for _, h := range hotels {
		if h.OwnerID == userID {
			out = append(out, h)
		}
	}
	return out
}

// MyHotelsRooms returns the rooms of the hotels owned by userID.
func MyHotelsRooms(hotels []domain.Hotel, rooms []domain.Room, userID string) []domain.Room {
	hotelIDs := make(map[string]struct{})
	for _, h := range MyHotels(hotels, userID) {
		hotelIDs[h.ID] = struct{}{}
	}
	var out []domain.Room
	for _, r := range rooms {
		if _, ok := hotelIDs[r.HotelID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// MyReservations returns the reservations rented by userID.
func MyReservations(reservations []domain.Reservation, userID string) []domain.Reservation {
	if userID == "" {
		return nil
	}
	var out []domain.Reservation
	for _, r := range reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// HotelReservations returns the reservations booked on rooms of the hotels
// owned by userID. The view exists only for the owner role: any other role
// gets an empty result no matter what the collections hold.
func HotelReservations(hotels []domain.Hotel, rooms []domain.Room, reservations []domain.Reservation, userID string, role domain.Role) []domain.Reservation {
	if role != domain.RoleOwner {
		return nil
	}
	roomIDs := make(map[string]struct{})
	for _, r := range MyHotelsRooms(hotels, rooms, userID) {
		roomIDs[r.ID] = struct{}{}
	}
	var out []domain.Reservation
	for _, res := range reservations {
		if _, ok := roomIDs[res.RoomID]; ok {
			out = append(out, res)
		}
	}
	return out
}

// ReservationDetails is a reservation joined to its room, the room's hotel,
// and the renting user. Broken links leave the slot nil.
type ReservationDetails struct {
	Reservation domain.Reservation `json:"reservation"`
	Room        *domain.Room       `json:"room"`
	Hotel       *domain.Hotel      `json:"hotel"`
	User        *domain.User       `json:"user"`
}

// DetailsFor resolves the links of one reservation against the given
// collections. Missing rows are tolerated: each unresolved slot is nil.
func DetailsFor(res domain.Reservation, rooms []domain.Room, hotels []domain.Hotel, users []domain.User) ReservationDetails {
	d := ReservationDetails{Reservation: res}
	for i := range rooms {
		if rooms[i].ID == res.RoomID {
			d.Room = &rooms[i]
			break
		}
	}
	if d.Room != nil {
		for i := range hotels {
			if hotels[i].ID == d.Room.HotelID {
				d.Hotel = &hotels[i]
				break
			}
		}
	}
	for i := range users {
		if users[i].ID == res.UserID {
			d.User = &users[i]
			break
		}
	}
	return d
}

// IsRoomAvailable reports whether roomID has no reservation overlapping
// [start,end]. A reservation whose id equals excludeID is ignored, which
// lets an edit re-check its own dates. Ranges are inclusive on both ends,
// so back-to-back stays on the same day conflict.
func IsRoomAvailable(reservations []domain.Reservation, roomID string, start, end domain.Date, excludeID string) bool {
	for _, r := range reservations {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.RoomID != roomID {
			continue
		}
		if domain.RangesOverlap(start, end, r.StartDate, r.EndDate) {
			return false
		}
	}
	return true
}

// QueryService bundles the collections and the session for callers holding
// the wired graph (HTTP handlers, mainly). Every method recomputes from
// current snapshots; there is no caching beyond that.
type QueryService struct {
	Hotels        *Collection[domain.Hotel]
	Rooms         *Collection[domain.Room]
	Reservations  *Collection[domain.Reservation]
	Subscriptions *Collection[domain.Subscription]
	Users         *Collection[domain.User]
	Session       *Session
}

func (q *QueryService) currentID() (string, domain.Role) {
	u := q.Session.CurrentUser()
	if u == nil {
		return "", ""
	}
	return u.ID, u.Role
}

func (q *QueryService) MyHotels() []domain.Hotel {
	id, _ := q.currentID()
	return MyHotels(q.Hotels.Items(), id)
}

func (q *QueryService) MyRooms() []domain.Room {
	id, _ := q.currentID()
	return MyHotelsRooms(q.Hotels.Items(), q.Rooms.Items(), id)
}

func (q *QueryService) MyReservations() []domain.Reservation {
	id, _ := q.currentID()
	return MyReservations(q.Reservations.Items(), id)
}

func (q *QueryService) HotelReservations() []domain.Reservation {
	id, role := q.currentID()
	return HotelReservations(q.Hotels.Items(), q.Rooms.Items(), q.Reservations.Items(), id, role)
}

func (q *QueryService) ReservationDetails(id string) (ReservationDetails, bool) {
	for _, r := range q.Reservations.Items() {
		if r.ID == id {
			return DetailsFor(r, q.Rooms.Items(), q.Hotels.Items(), q.Users.Items()), true
		}
	}
	return ReservationDetails{}, false
}

func (q *QueryService) IsRoomAvailable(roomID string, start, end domain.Date, excludeID string) bool {
	return IsRoomAvailable(q.Reservations.Items(), roomID, start, end, excludeID)
}
