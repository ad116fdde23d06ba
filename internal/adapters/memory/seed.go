package memory

// DemoSeed returns a small consistent dataset for local development: one
// owner with a hotel of two rooms, one client with a reservation, and a
// plan for the owner.
func DemoSeed() map[string][]map[string]any {
	return map[string][]map[string]any{
		"users": {
			{"id": "u-1", "name": "Marta", "email": "marta@hostel.test", "password": "marta123", "type_user": "owner", "subscription_id": "s-1"},
			{"id": "u-2", "name": "Diego", "email": "diego@hostel.test", "password": "diego123", "type_user": "client", "subscription_id": ""},
		},
		"hotels": {
			{"id": "h-1", "name": "Hostal del Sol", "imagen": "sol.jpg", "address": "Av. Arequipa 1234", "phone": "+51 1 555 0101", "users_id": "u-1"},
		},
		"rooms": {
			{"id": "r-1", "price": 35.0, "type_room": "individual", "hotels_id": "h-1"},
			{"id": "r-2", "price": 55.0, "type_room": "doble", "hotels_id": "h-1"},
		},
		"reservations": {
			{"id": "b-1", "start_date": "2026-09-10", "end_date": "2026-09-14", "users_id": "u-2", "rooms_id": "r-1"},
		},
		"subscriptions": {
			{"id": "s-1", "type_plan": "anual", "users_id": "u-1"},
		},
	}
}
