package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ethemkurtt/hotel-gateway/internal/domain"
)

func adminSession() *domain.Session {
	return &domain.Session{
		UserID:   "adm-1",
		Role:     "admin",
		FullName: "Grace",
		Email:    "grace@example.com",
		Token:    "jwt-a",
	}
}

// withRouteParam injects a chi URL parameter the way the router would.
func withRouteParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListRoomsDefaultsAndClamp(t *testing.T) {
	var gotQuery map[string][]string
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[],"total":0}`))
	})
	defer fx.teardown()

	req := withSession(fx, httptest.NewRequest(http.MethodGet, "/dashboard/rooms", nil), "sid-a", adminSession())
	rec := httptest.NewRecorder()
	fx.h.ListRooms(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotQuery["page"][0] != "1" || gotQuery["limit"][0] != "5" {
		t.Fatalf("defaults = %v", gotQuery)
	}

	// An out-of-range limit falls back to the default.
	req = withSession(fx, httptest.NewRequest(http.MethodGet, "/dashboard/rooms?page=3&limit=500&search=2", nil), "sid-a", adminSession())
	rec = httptest.NewRecorder()
	fx.h.ListRooms(rec, req)

	if gotQuery["page"][0] != "3" || gotQuery["limit"][0] != "5" || gotQuery["search"][0] != "2" {
		t.Fatalf("query = %v", gotQuery)
	}
}

func TestListRoomsRequiresSession(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	})
	defer fx.teardown()

	rec := httptest.NewRecorder()
	fx.h.ListRooms(rec, httptest.NewRequest(http.MethodGet, "/dashboard/rooms", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateRoomValidation(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	})
	defer fx.teardown()

	body := `{"roomNumber":"","floor":1,"categoryId":"cat-1"}`
	req := withSession(fx, httptest.NewRequest(http.MethodPost, "/dashboard/rooms", strings.NewReader(body)), "sid-a", adminSession())
	rec := httptest.NewRecorder()
	fx.h.CreateRoom(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSetRoomStatusForwardsToBackend(t *testing.T) {
	var gotPath string
	var gotBody domain.RoomStatusRequest
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})
	defer fx.teardown()

	req := withSession(fx, httptest.NewRequest(http.MethodPatch, "/dashboard/rooms/r-5/status", strings.NewReader(`{"isActive":false}`)), "sid-a", adminSession())
	req = withRouteParam(req, "id", "r-5")
	rec := httptest.NewRecorder()
	fx.h.SetRoomStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotPath != "PATCH /rooms/r-5/status" {
		t.Fatalf("backend call = %q", gotPath)
	}
	if gotBody.IsActive {
		t.Fatal("isActive = true, want false")
	}
}

func TestAdminDeleteReservationPublishesCancel(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/reservations/res-3" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})
	defer fx.teardown()

	req := withSession(fx, httptest.NewRequest(http.MethodDelete, "/dashboard/reservations/res-3", nil), "sid-a", adminSession())
	req = withRouteParam(req, "id", "res-3")
	rec := httptest.NewRecorder()
	fx.h.AdminDeleteReservation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := fx.bus.published(); len(got) != 1 || got[0] != "reservation.canceled" {
		t.Fatalf("published = %v", got)
	}
}

func TestMonthlyAnalyticsNamesMonths(t *testing.T) {
	fx := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"month":1,"total":3},{"month":7,"total":12},{"month":13,"total":99}]}`))
	})
	defer fx.teardown()

	req := withSession(fx, httptest.NewRequest(http.MethodGet, "/dashboard/analytics/monthly", nil), "sid-a", adminSession())
	rec := httptest.NewRecorder()
	fx.h.MonthlyAnalytics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var points []monthlyPoint
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The out-of-range row is dropped, the rest carry month names.
	if len(points) != 2 || points[0].Name != "January" || points[1].Name != "July" || points[1].Total != 12 {
		t.Fatalf("points = %+v", points)
	}
}
