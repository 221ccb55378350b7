package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is the account record the booking API returns on login.
type User struct {
	ID        string `json:"_id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
	Role      string `json:"role"`
}

// Session is the authenticated identity held for one client. Exactly one
// session is active per client; login replaces it wholesale, logout clears it.
type Session struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Token    string `json:"token"`
}

func (s *Session) IsAdmin() bool    { return s.Role == RoleAdmin }
func (s *Session) IsCustomer() bool { return s.Role == RoleCustomer }

// Category is a room type with nightly price and capacity, shared by many rooms.
type Category struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
	Image    string  `json:"image"`
}

// Room references its category weakly; the category must resolve for the room
// to be bookable. Listings come back with the category populated.
type Room struct {
	ID         string    `json:"_id"`
	RoomNumber string    `json:"roomNumber"`
	Floor      int       `json:"floor"`
	IsActive   bool      `json:"isActive"`
	Category   *Category `json:"category,omitempty"`
	CategoryID string    `json:"categoryId,omitempty"`
}

type Reservation struct {
	ID         string    `json:"_id"`
	RoomID     string    `json:"roomId"`
	UserID     string    `json:"userId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	GuestCount int       `json:"guestCount"`
}

// MyReservation is the denormalized row the backend returns for a customer's
// own listing: reservation plus the room and category details needed to render it.
type MyReservation struct {
	ID            string    `json:"_id"`
	RoomID        string    `json:"roomId"`
	RoomNumber    string    `json:"roomNumber"`
	Floor         int       `json:"floor"`
	CategoryName  string    `json:"categoryName"`
	CategoryPrice float64   `json:"categoryPrice"`
	CategoryImage string    `json:"categoryImage"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	GuestCount    int       `json:"guestCount"`
}

// RoomPage is the paginated rooms listing contract.
type RoomPage struct {
	Data  []Room `json:"data"`
	Total int    `json:"total"`
}

type MonthlySummary struct {
	Month int `json:"month"`
	Total int `json:"total"`
}

type CategorySummary struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

// Hotel-wide check-in/check-out times shown alongside a matched room.
const (
	CheckInHour  = "14:00"
	CheckOutHour = "12:00"
)
