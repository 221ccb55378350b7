package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ethemkurtt/hotel-gateway/internal/backend"
	"github.com/ethemkurtt/hotel-gateway/internal/domain"
	"github.com/ethemkurtt/hotel-gateway/internal/web/response"
	"github.com/ethemkurtt/hotel-gateway/pkg/events"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
)

// Rooms

func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	params := backend.RoomListParams{Page: 1, Limit: 5}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			params.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			params.Limit = n
		}
	}
	params.Search = r.URL.Query().Get("search")

	page, err := h.client.ListRooms(r.Context(), sess.Token, params)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, page)
}

func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	room, err := h.client.GetRoom(r.Context(), sess.Token, chi.URLParam(r, "id"))
	if err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, room)
}

func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	var req domain.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.client.CreateRoom(r.Context(), sess.Token, &req); err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Room created."})
}

func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	var req domain.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.client.UpdateRoom(r.Context(), sess.Token, chi.URLParam(r, "id"), &req); err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Room updated."})
}

func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	if err := h.client.DeleteRoom(r.Context(), sess.Token, chi.URLParam(r, "id")); err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Room deleted."})
}

func (h *Handlers) SetRoomStatus(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	var req domain.RoomStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.client.SetRoomStatus(r.Context(), sess.Token, chi.URLParam(r, "id"), req.IsActive); err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Status updated."})
}

// Categories

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.client.ListCategories(r.Context())
	if err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, cats)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.client.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, cat)
}

const maxImageUpload = 10 << 20 // 10 MiB

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, "")
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, chi.URLParam(r, "id"))
}

// saveCategory relays the multipart form; image bytes stream through, the
// gateway never stores them.
func (h *Handlers) saveCategory(w http.ResponseWriter, r *http.Request, id string) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	form := domain.CategoryForm{Name: r.FormValue("name")}
	form.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	form.Capacity, _ = strconv.Atoi(r.FormValue("capacity"))
	form.Normalize()
	if err := form.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil && id == "" {
		// Creating a category requires a photo; edits may keep the old one.
		response.BadRequest(w, "an image must be uploaded")
		return
	}

	if id == "" {
		defer file.Close()
		err = h.client.CreateCategory(r.Context(), sess.Token, &form, file, header.Filename)
	} else if file != nil {
		defer file.Close()
		err = h.client.UpdateCategory(r.Context(), sess.Token, id, &form, file, header.Filename)
	} else {
		err = h.client.UpdateCategory(r.Context(), sess.Token, id, &form, nil, "")
	}
	if err != nil {
		writeBackendError(w, err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	response.WriteJSON(w, status, map[string]string{"message": "Category saved."})
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	if err := h.client.DeleteCategory(r.Context(), sess.Token, chi.URLParam(r, "id")); err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted."})
}

// Reservations (admin may remove any)

func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	list, err := h.client.ListReservations(r.Context(), sess.Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, list)
}

func (h *Handlers) AdminDeleteReservation(w http.ResponseWriter, r *http.Request) {
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
		CanceledBy:    domain.RoleAdmin,
		CanceledAt:    time.Now(),
	}
	if err := h.bus.Publish(r.Context(), events.ReservationCanceled, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish cancel event", "error", err, "reservation_id", id)
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Reservation deleted."})
}

// Analytics

type monthlyPoint struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// MonthlyAnalytics maps month numbers onto names so the chart can render the
// backend rows directly.
func (h *Handlers) MonthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	rows, err := h.client.MonthlySummary(r.Context(), sess.Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	points := make([]monthlyPoint, 0, len(rows))
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		points = append(points, monthlyPoint{
			Name:  time.Month(row.Month).String(),
			Total: row.Total,
		})
	}
	response.WriteJSON(w, http.StatusOK, points)
}

func (h *Handlers) CategoryAnalytics(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.currentSession(r)
	if err != nil {
		response.Unauthorized(w, "session expired")
		return
	}

	rows, err := h.client.CategorySummary(r.Context(), sess.Token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rows)
}
