package app

import (
	"github.com/rs/zerolog"

	"hostel_manager/internal/domain"
)

// Collection names double as the payload key a backend may wrap its list
// responses in.
const (
	HotelsName        = "hotels"
	RoomsName         = "rooms"
	ReservationsName  = "reservations"
	SubscriptionsName = "subscriptions"
	UsersName         = "users"
)

func NewHotels(tr domain.Transport, log zerolog.Logger) *Collection[domain.Hotel] {
	return NewCollection(HotelsName, tr, HotelFromRecord, HotelToRecord, log)
}

func NewRooms(tr domain.Transport, log zerolog.Logger) *Collection[domain.Room] {
	return NewCollection(RoomsName, tr, RoomFromRecord, RoomToRecord, log)
}

func NewReservations(tr domain.Transport, log zerolog.Logger) *Collection[domain.Reservation] {
	return NewCollection(ReservationsName, tr, ReservationFromRecord, ReservationToRecord, log)
}

func NewSubscriptions(tr domain.Transport, log zerolog.Logger) *Collection[domain.Subscription] {
	return NewCollection(SubscriptionsName, tr, SubscriptionFromRecord, SubscriptionToRecord, log)
}

func NewUsers(tr domain.Transport, log zerolog.Logger) *Collection[domain.User] {
	return NewCollection(UsersName, tr, UserFromRecord, UserToRecord, log)
}
