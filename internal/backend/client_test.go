package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethemkurtt/hotel-gateway/internal/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestLogin(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.Write([]byte(`{"token":"jwt-abc","user":{"_id":"u-1","email":"a@b.com","role":"customer"}}`))
	})
	defer srv.Close()

	token, user, err := c.Login(context.Background(), &domain.LoginRequest{Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "jwt-abc" {
		t.Fatalf("token = %q", token)
	}
	if user == nil || user.ID != "u-1" || user.Role != "customer" {
		t.Fatalf("user = %+v", user)
	}
}

func TestBearerTokenForwarded(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"data":[],"total":0}`))
	})
	defer srv.Close()

	if _, err := c.ListRooms(context.Background(), "tok-123", RoomListParams{Page: 1, Limit: 5}); err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
}

func TestListRoomsQuery(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "10" || q.Get("search") != "204" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"data":[{"_id":"r-1","roomNumber":"204"}],"total":1}`))
	})
	defer srv.Close()

	page, err := c.ListRooms(context.Background(), "tok", RoomListParams{Page: 2, Limit: 10, Search: "204"})
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 || page.Data[0].RoomNumber != "204" {
		t.Fatalf("page = %+v", page)
	}
}

func TestListRoomsOmitsEmptySearch(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["search"]; ok {
			t.Error("search param should be omitted when empty")
		}
		w.Write([]byte(`{"data":[],"total":0}`))
	})
	defer srv.Close()

	if _, err := c.ListRooms(context.Background(), "tok", RoomListParams{Page: 1, Limit: 5}); err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
}

func TestAvailableRoomsSendsRFC3339Range(t *testing.T) {
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reservations/available" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("start") != "2025-07-01T00:00:00Z" || q.Get("end") != "2025-07-04T00:00:00Z" {
			t.Errorf("range = %q..%q", q.Get("start"), q.Get("end"))
		}
		w.Write([]byte(`[{"_id":"r-1","isActive":true,"category":{"_id":"c-1","capacity":4}}]`))
	})
	defer srv.Close()

	rooms, err := c.AvailableRooms(context.Background(), from, to)
	if err != nil {
		t.Fatalf("AvailableRooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Category == nil || rooms[0].Category.Capacity != 4 {
		t.Fatalf("rooms = %+v", rooms)
	}
}

func TestErrorMessageSurfaced(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"room already booked for that range"}`))
	})
	defer srv.Close()

	_, err := c.CreateReservation(context.Background(), "tok", &domain.CreateReservationRequest{
		RoomID:     "r-1",
		StartDate:  time.Now(),
		EndDate:    time.Now().Add(24 * time.Hour),
		GuestCount: 2,
		UserID:     "u-1",
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "room already booked for that range" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestErrorWithoutBody(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	err := c.DeleteRoom(context.Background(), "tok", "r-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "" {
		t.Fatalf("message = %q, want empty", apiErr.Message)
	}
	if !strings.Contains(apiErr.Error(), "unexpected status 500") {
		t.Fatalf("Error() = %q", apiErr.Error())
	}
}

func TestCreateCategoryMultipart(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("name"); got != "Deluxe" {
			t.Errorf("name = %q", got)
		}
		if got := r.FormValue("price"); got != "149.9" {
			t.Errorf("price = %q", got)
		}
		if got := r.FormValue("capacity"); got != "4" {
			t.Errorf("capacity = %q", got)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part: %v", err)
		}
		defer file.Close()
		if header.Filename != "deluxe.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.WriteHeader(http.StatusCreated)
	})
	defer srv.Close()

	form := &domain.CategoryForm{Name: "Deluxe", Price: 149.9, Capacity: 4}
	err := c.CreateCategory(context.Background(), "tok", form, strings.NewReader("jpeg-bytes"), "deluxe.jpg")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
}

func TestUpdateCategoryWithoutImage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/categories/c-1" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("image"); err == nil {
			t.Error("image part should be absent when keeping the stored one")
		}
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	form := &domain.CategoryForm{Name: "Deluxe", Price: 159, Capacity: 4}
	if err := c.UpdateCategory(context.Background(), "tok", "c-1", form, nil, ""); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
}

func TestSetRoomStatus(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/rooms/r-1/status" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			IsActive bool `json:"isActive"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.IsActive {
			t.Error("isActive = true, want false")
		}
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	if err := c.SetRoomStatus(context.Background(), "tok", "r-1", false); err != nil {
		t.Fatalf("SetRoomStatus: %v", err)
	}
}

func TestMonthlySummaryUnwrapsEnvelope(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analytics/monthly-summary" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"month":1,"total":3},{"month":7,"total":12}]}`))
	})
	defer srv.Close()

	rows, err := c.MonthlySummary(context.Background(), "tok")
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if len(rows) != 2 || rows[1].Month != 7 || rows[1].Total != 12 {
		t.Fatalf("rows = %+v", rows)
	}
}
