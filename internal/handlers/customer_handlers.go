package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ethemkurtt/hotel-gateway/internal/domain"
	"github.com/ethemkurtt/hotel-gateway/internal/reservation"
	"github.com/ethemkurtt/hotel-gateway/internal/web/response"
	"github.com/ethemkurtt/hotel-gateway/pkg/events"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
)

type searchRequest struct {
	CategoryID string `json:"categoryId"`
	From       string `json:"from"`
	To         string `json:"to"`
	People     int    `json:"people"`
}

type matchResponse struct {
	State    reservation.State `json:"state"`
	Room     *domain.Room      `json:"room,omitempty"`
	CheckIn  string            `json:"checkIn,omitempty"`
	CheckOut string            `json:"checkOut,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// SearchRooms runs the availability search and assigns one suitable room.
// A no-match outcome is a normal 200; nothing was booked and nothing retries.
func (h *Handlers) SearchRooms(w http.ResponseWriter, r *http.Request) {
	_, sid, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	criteria, err := req.toCriteria()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.flows.Flow(sid).Search(r.Context(), *criteria)
	if err != nil {
		if errors.Is(err, reservation.ErrSuperseded) {
			// A newer search from the same client won; this response is moot.
			response.Conflict(w, "a newer search is in progress")
			return
		}
		writeBackendError(w, err)
		return
	}

	resp := matchResponse{State: result.State}
	switch result.State {
	case reservation.StateMatched:
		resp.Room = result.Room
		resp.CheckIn = domain.CheckInHour
		resp.CheckOut = domain.CheckOutHour
	case reservation.StateNoMatch:
		resp.Message = "No room available."
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

// ConfirmReservation books the matched room for the logged-in customer. A
// backend rejection (the room may have been raced away since the search) is an
// ordinary failure surfaced with the backend's message.
func (h *Handlers) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	sess, sid, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	res, err := h.flows.Flow(sid).Confirm(r.Context(), sess.Token, sess.UserID)
	if err != nil {
		if errors.Is(err, reservation.ErrNotMatched) {
			response.Conflict(w, "no assigned room to confirm; search first")
			return
		}
		writeBackendError(w, err)
		return
	}

	event := events.ReservationConfirmedEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		UserID:        sess.UserID,
		UserEmail:     sess.Email,
		UserName:      sess.FullName,
		StartDate:     res.StartDate,
		EndDate:       res.EndDate,
		GuestCount:    res.GuestCount,
		ConfirmedAt:   time.Now(),
	}
	if err := h.bus.Publish(r.Context(), events.ReservationConfirmed, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish confirmation event", "error", err, "reservation_id", res.ID)
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":     "Reservation confirmed.",
		"reservation": res,
	})
}

func (h *Handlers) MyReservations(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	list, err := h.client.MyReservations(r.Context(), sess.Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, list)
}

// CancelReservation lets a customer remove their own reservation; ownership
// is enforced by the backend.
func (h *Handlers) CancelReservation(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.client.DeleteReservation(r.Context(), sess.Token, id); err != nil {
		writeBackendError(w, err)
		return
	}

	event := events.ReservationCanceledEvent{
		ReservationID: id,
		UserID:        sess.UserID,
		CanceledBy:    domain.RoleCustomer,
		CanceledAt:    time.Now(),
	}
	if err := h.bus.Publish(r.Context(), events.ReservationCanceled, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish cancel event", "error", err, "reservation_id", id)
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Reservation canceled."})
}

func (s *searchRequest) toCriteria() (*domain.SearchCriteria, error) {
	criteria := domain.SearchCriteria{
		CategoryID: s.CategoryID,
		People:     s.People,
	}
	var err error
	if s.From != "" {
		if criteria.From, err = parseDate(s.From); err != nil {
			return nil, errors.New("invalid start date")
		}
	}
	if s.To != "" {
		if criteria.To, err = parseDate(s.To); err != nil {
			return nil, errors.New("invalid end date")
		}
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return &criteria, nil
}

// parseDate accepts full RFC3339 instants or bare dates from the range picker.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
