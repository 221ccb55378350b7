package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BirthDate       string `json:"birthDate"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginResult is what the gateway hands back to the browser: the identity plus
// the landing route for the user's role.
type LoginResult struct {
	User     *User  `json:"user"`
	Redirect string `json:"redirect"`
}

type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber"`
	Floor      int    `json:"floor"`
	CategoryID string `json:"categoryId"`
}

type UpdateRoomRequest struct {
	RoomNumber *string `json:"roomNumber,omitempty"`
	Floor      *int    `json:"floor,omitempty"`
	CategoryID *string `json:"categoryId,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
}

type RoomStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// CategoryForm carries the multipart fields of the category create/edit
// screens. Image bytes travel separately as a file part.
type CategoryForm struct {
	Name     string
	Price    float64
	Capacity int
}

type CreateReservationRequest struct {
	RoomID     string    `json:"roomId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	GuestCount int       `json:"guestCount"`
	UserID     string    `json:"userId"`
}

// SearchCriteria is the validated input of the availability search.
type SearchCriteria struct {
	CategoryID string    `json:"categoryId"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	People     int       `json:"people"`
}

// Validation

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

func (r *RegisterRequest) Validate() error {
	if len(strings.TrimSpace(r.FullName)) < 2 {
		return fmt.Errorf("full name must be at least 2 characters")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if len(r.Phone) < 10 {
		return fmt.Errorf("phone number is incomplete")
	}
	if _, err := time.Parse("2006-01-02", r.BirthDate); err != nil {
		return fmt.Errorf("invalid birth date")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func (r *CreateRoomRequest) Validate() error {
	if strings.TrimSpace(r.RoomNumber) == "" {
		return fmt.Errorf("room number is required")
	}
	if r.Floor < 0 {
		return fmt.Errorf("invalid floor")
	}
	if r.CategoryID == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}

func (f *CategoryForm) Validate() error {
	if len(strings.TrimSpace(f.Name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if f.Price < 0 {
		return fmt.Errorf("price must be 0 or more")
	}
	if f.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	return nil
}

func (c *SearchCriteria) Validate() error {
	if c.CategoryID == "" {
		return fmt.Errorf("category is required")
	}
	if c.From.IsZero() || c.To.IsZero() {
		return fmt.Errorf("date range is required")
	}
	if !c.From.Before(c.To) {
		return fmt.Errorf("start date must be before end date")
	}
	if c.People < 1 {
		return fmt.Errorf("party size must be at least 1")
	}
	return nil
}

func (r *CreateReservationRequest) Validate() error {
	if r.RoomID == "" {
		return fmt.Errorf("room is required")
	}
	if !r.StartDate.Before(r.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if r.GuestCount < 1 {
		return fmt.Errorf("guest count must be at least 1")
	}
	if r.UserID == "" {
		return fmt.Errorf("user is required")
	}
	return nil
}

// Normalize methods

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (f *CategoryForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
