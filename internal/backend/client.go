// Package backend is the typed client for the booking API. Every piece of
// business logic (availability, persistence, auth) lives behind these calls;
// the gateway only shapes requests and surfaces responses. Nothing here
// retries: a failed call is terminal for the triggering user action.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/ethemkurtt/hotel-gateway/internal/domain"
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// APIError carries the backend's HTTP status and its {message} body when one
// was provided; handlers surface Message to the user as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: unexpected status %d", e.StatusCode)
}

// Auth

func (c *Client) Login(ctx context.Context, req *domain.LoginRequest) (string, *domain.User, error) {
	var out struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := c.postJSON(ctx, "", "/login", req, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (c *Client) Register(ctx context.Context, req *domain.RegisterRequest) error {
	return c.postJSON(ctx, "", "/register", req, nil)
}

// Categories

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.getJSON(ctx, "", "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	if err := c.getJSON(ctx, "", "/categories/"+url.PathEscape(id), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory uploads the form as multipart; image is required on create.
func (c *Client) CreateCategory(ctx context.Context, token string, form *domain.CategoryForm, image io.Reader, filename string) error {
	return c.sendCategoryForm(ctx, token, http.MethodPost, "/categories", form, image, filename)
}

// UpdateCategory sends multipart as well; a nil image keeps the stored one.
func (c *Client) UpdateCategory(ctx context.Context, token, id string, form *domain.CategoryForm, image io.Reader, filename string) error {
	return c.sendCategoryForm(ctx, token, http.MethodPut, "/categories/"+url.PathEscape(id), form, image, filename)
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, "", nil)
}

func (c *Client) sendCategoryForm(ctx context.Context, token, method, path string, form *domain.CategoryForm, image io.Reader, filename string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("name", form.Name); err != nil {
		return err
	}
	if err := mw.WriteField("price", strconv.FormatFloat(form.Price, 'f', -1, 64)); err != nil {
		return err
	}
	if err := mw.WriteField("capacity", strconv.Itoa(form.Capacity)); err != nil {
		return err
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, image); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	return c.do(ctx, token, method, path, &buf, mw.FormDataContentType(), nil)
}

// Rooms

// RoomListParams encodes the paginated, searchable rooms listing query.
type RoomListParams struct {
	Page   int    `url:"page"`
	Limit  int    `url:"limit"`
	Search string `url:"search,omitempty"`
}

func (c *Client) ListRooms(ctx context.Context, token string, params RoomListParams) (*domain.RoomPage, error) {
	q, err := query.Values(params)
	if err != nil {
		return nil, err
	}
	var page domain.RoomPage
	if err := c.getJSON(ctx, token, "/rooms", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetRoom(ctx context.Context, token, id string) (*domain.Room, error) {
	var room domain.Room
	if err := c.getJSON(ctx, token, "/rooms/"+url.PathEscape(id), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) CreateRoom(ctx context.Context, token string, req *domain.CreateRoomRequest) error {
	return c.postJSON(ctx, token, "/rooms", req, nil)
}

func (c *Client) UpdateRoom(ctx context.Context, token, id string, req *domain.UpdateRoomRequest) error {
	return c.sendJSON(ctx, token, http.MethodPut, "/rooms/"+url.PathEscape(id), req, nil)
}

func (c *Client) DeleteRoom(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/rooms/"+url.PathEscape(id), nil, "", nil)
}

func (c *Client) SetRoomStatus(ctx context.Context, token, id string, isActive bool) error {
	req := domain.RoomStatusRequest{IsActive: isActive}
	return c.sendJSON(ctx, token, http.MethodPatch, "/rooms/"+url.PathEscape(id)+"/status", &req, nil)
}

// Reservations

// AvailabilityParams carries the half-open/closed boundary question to the
// backend untouched: instants go over the wire as RFC3339 and the interval
// comparison stays on the backend's side.
type AvailabilityParams struct {
	Start string `url:"start"`
	End   string `url:"end"`
}

// AvailableRooms returns the rooms with no overlapping reservation in the
// range, across all categories.
func (c *Client) AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	q, err := query.Values(AvailabilityParams{
		Start: start.UTC().Format(time.RFC3339),
		End:   end.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	var rooms []domain.Room
	if err := c.getJSON(ctx, "", "/reservations/available", q, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) CreateReservation(ctx context.Context, token string, req *domain.CreateReservationRequest) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := c.postJSON(ctx, token, "/reservations", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListReservations(ctx context.Context, token string) ([]domain.MyReservation, error) {
	var list []domain.MyReservation
	if err := c.getJSON(ctx, token, "/reservations", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) MyReservations(ctx context.Context, token string) ([]domain.MyReservation, error) {
	var list []domain.MyReservation
	if err := c.getJSON(ctx, token, "/reservations/me", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) DeleteReservation(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/reservations/"+url.PathEscape(id), nil, "", nil)
}

// Analytics

// summaryEnvelope unwraps the backend's {data: [...]} analytics responses.
type summaryEnvelope[T any] struct {
	Data []T `json:"data"`
}

func (c *Client) MonthlySummary(ctx context.Context, token string) ([]domain.MonthlySummary, error) {
	var env summaryEnvelope[domain.MonthlySummary]
	if err := c.getJSON(ctx, token, "/analytics/monthly-summary", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) CategorySummary(ctx context.Context, token string) ([]domain.CategorySummary, error) {
	var env summaryEnvelope[domain.CategorySummary]
	if err := c.getJSON(ctx, token, "/analytics/category-summary", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Plumbing

func (c *Client) getJSON(ctx context.Context, token, path string, q url.Values, dest any) error {
	p := path
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	return c.do(ctx, token, http.MethodGet, p, nil, "", dest)
}

func (c *Client) postJSON(ctx context.Context, token, path string, body, dest any) error {
	return c.sendJSON(ctx, token, http.MethodPost, path, body, dest)
}

func (c *Client) sendJSON(ctx context.Context, token, method, path string, body, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, token, method, path, bytes.NewReader(payload), "application/json", dest)
}

func (c *Client) do(ctx context.Context, token, method, path string, body io.Reader, contentType string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
