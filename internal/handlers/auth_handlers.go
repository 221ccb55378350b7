package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ethemkurtt/hotel-gateway/internal/domain"
	"github.com/ethemkurtt/hotel-gateway/internal/guard"
	"github.com/ethemkurtt/hotel-gateway/internal/web/response"
	"github.com/ethemkurtt/hotel-gateway/pkg/events"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
)

// Login proxies the credentials to the booking API, stores the returned
// identity as the one active session for this client and hands the browser
// its role landing route.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	token, user, err := h.client.Login(r.Context(), &req)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	sid := uuid.NewString()
	sess := &domain.Session{
		UserID:   user.ID,
		Role:     user.Role,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
		Token:    token,
	}
	if err := h.sessions.Login(r.Context(), sid, sess); err != nil {
		logger.ErrorContext(r.Context(), "Failed to store session", "error", err)
		response.InternalError(w, "could not start a session")
		return
	}

	h.setCookie(w, h.cfg.Auth.CookieName, token)
	h.setCookie(w, h.cfg.Auth.SessionName, sid)

	response.WriteJSON(w, http.StatusOK, domain.LoginResult{
		User:     user,
		Redirect: guard.Landing(user.Role),
	})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.client.Register(r.Context(), &req); err != nil {
		writeBackendError(w, err)
		return
	}

	event := events.UserRegisteredEvent{
		Email:        req.Email,
		FullName:     req.FullName,
		RegisteredAt: time.Now(),
	}
	if err := h.bus.Publish(r.Context(), events.UserRegistered, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish registration event", "error", err)
	}

	response.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Registration successful. You can log in now.",
	})
}

// Logout destroys the session and expires both cookies. Logging out an
// already-anonymous client succeeds quietly.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := h.sessionID(r); sid != "" {
		if err := h.sessions.Logout(r.Context(), sid); err != nil {
			logger.WarnContext(r.Context(), "Failed to clear session", "error", err)
		}
		h.flows.Drop(sid)
	}

	h.expireCookie(w, h.cfg.Auth.CookieName)
	h.expireCookie(w, h.cfg.Auth.SessionName)

	response.WriteJSON(w, http.StatusOK, map[string]string{"redirect": guard.HomePath})
}

func (h *Handlers) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.cfg.Auth.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
