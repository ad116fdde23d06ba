package domain

// Role tags gate which derived views are available to a user.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleClient Role = "client"
)

type RoomType string

const (
	RoomIndividual RoomType = "individual"
	RoomDoble      RoomType = "doble"
)

type PlanType string

const (
	PlanMensual   PlanType = "mensual"
	PlanSemestral PlanType = "semestral"
	PlanAnual     PlanType = "anual"
)

// User is an account record. Password is whatever the upstream backend
// stores; this core only does exact matching on it.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	Role           Role   `json:"type_user"`
	SubscriptionID string `json:"subscription_id"`

	// Subscription is set only by an explicit join; never decoded from a
	// raw payload.
	Subscription *Subscription `json:"-"`
}

func (u User) EntityID() string { return u.ID }

type Hotel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"imagen"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	OwnerID string `json:"users_id"`

	Owner *User `json:"-"`
}

func (h Hotel) EntityID() string { return h.ID }

type Room struct {
	ID      string   `json:"id"`
	Price   float64  `json:"price" validate:"gte=0"`
	Type    RoomType `json:"type_room"`
	HotelID string   `json:"hotels_id"`

	Hotel *Hotel `json:"-"`
}

func (r Room) EntityID() string { return r.ID }

// Reservation holds a room for a user over an inclusive date range.
type Reservation struct {
	ID        string `json:"id"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
	UserID    string `json:"users_id"`
	RoomID    string `json:"rooms_id"`

	User *User `json:"-"`
	Room *Room `json:"-"`
}

func (r Reservation) EntityID() string { return r.ID }

type Subscription struct {
	ID     string   `json:"id"`
	Plan   PlanType `json:"type_plan"`
	UserID string   `json:"users_id"`
}

func (s Subscription) EntityID() string { return s.ID }

// PlanLabel maps a plan value to its display label.
func PlanLabel(p PlanType) string {
	switch p {
	case PlanMensual:
		return "Mensual"
	case PlanSemestral:
		return "Semestral"
	case PlanAnual:
		return "Anual"
	}
	return string(p)
}
