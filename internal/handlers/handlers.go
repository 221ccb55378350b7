package handlers

import (
	"errors"
	"net/http"

	"github.com/ethemkurtt/hotel-gateway/internal/backend"
	"github.com/ethemkurtt/hotel-gateway/internal/domain"
	"github.com/ethemkurtt/hotel-gateway/internal/reservation"
	"github.com/ethemkurtt/hotel-gateway/internal/session"
	"github.com/ethemkurtt/hotel-gateway/internal/web/response"
	"github.com/ethemkurtt/hotel-gateway/pkg/config"
	"github.com/ethemkurtt/hotel-gateway/pkg/events"
)

type Handlers struct {
	client   *backend.Client
	sessions session.Store
	flows    *reservation.Manager
	bus      events.Publisher
	cfg      *config.Config
}

func New(client *backend.Client, sessions session.Store, flows *reservation.Manager, bus events.Publisher, cfg *config.Config) *Handlers {
	return &Handlers{
		client:   client,
		sessions: sessions,
		flows:    flows,
		bus:      bus,
		cfg:      cfg,
	}
}

// sessionID returns the client's session cookie value, or "" when absent.
func (h *Handlers) sessionID(r *http.Request) string {
	c, err := r.Cookie(h.cfg.Auth.SessionName)
	if err != nil {
		return ""
	}
	return c.Value
}

// currentSession resolves the caller's stored session. The route guard has
// already vetted the token; a missing session here means the store expired it.
func (h *Handlers) currentSession(r *http.Request) (*domain.Session, string, error) {
	sid := h.sessionID(r)
	if sid == "" {
		return nil, "", session.ErrNotFound
	}
	s, err := h.sessions.Get(r.Context(), sid)
	if err != nil {
		return nil, "", err
	}
	return s, sid, nil
}

// writeBackendError surfaces a backend failure as a single user-facing
// message: the backend's own message when it sent one, a generic one
// otherwise. Transport failures map to 502.
func writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "The booking service rejected the request."
		}
		response.WriteError(w, apiErr.StatusCode, msg, response.CodeBackendError)
		return
	}
	response.WriteError(w, http.StatusBadGateway, "The booking service is unreachable.", response.CodeBackendError)
}
