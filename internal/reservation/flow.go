// Package reservation implements the room-assignment flow: a customer's
// (category, date range, party size) is turned into a concrete booking in two
// explicit steps, search then confirm. The backend stays the final arbiter of
// availability; this flow never holds a room.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ethemkurtt/hotel-gateway/internal/domain"
)

type State string

const (
	StateIdle       State = "idle"
	StateSearching  State = "searching"
	StateMatched    State = "matched"
	StateNoMatch    State = "no_match"
	StateConfirming State = "confirming"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

// validTransitions is the authoritative state machine definition. A new search
// restarts the flow from any resting state; confirm is only reachable from a
// match (or a failed confirm, for a manual retry). A search whose backend call
// fails returns the flow to rest, hence Searching -> Idle.
var validTransitions = map[State][]State{
	StateIdle:       {StateSearching},
	StateSearching:  {StateMatched, StateNoMatch, StateIdle},
	StateMatched:    {StateConfirming, StateSearching},
	StateNoMatch:    {StateSearching},
	StateConfirming: {StateConfirmed, StateFailed},
	StateConfirmed:  {StateSearching},
	StateFailed:     {StateConfirming, StateSearching},
}

func canTransition(from, to State) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var (
	// ErrSuperseded means a newer search started while this one was in
	// flight; the stale result was discarded (last-request-wins).
	ErrSuperseded = errors.New("search superseded by a newer request")
	// ErrNotMatched means confirm was called without a matched room.
	ErrNotMatched = errors.New("no matched room to confirm")
)

// Booker is the slice of the backend client the flow needs.
type Booker interface {
	AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error)
	CreateReservation(ctx context.Context, token string, req *domain.CreateReservationRequest) (*domain.Reservation, error)
}

// Result is the outcome of one search: State is matched or no_match, Room is
// set only when matched.
type Result struct {
	State State        `json:"state"`
	Room  *domain.Room `json:"room,omitempty"`
}

// Flow holds one client's assignment state between the search and confirm
// requests. The rand source is injected so room selection is deterministic
// under test.
type Flow struct {
	client Booker
	rng    *rand.Rand

	mu       sync.Mutex
	state    State
	matched  *domain.Room
	criteria domain.SearchCriteria
	seq      uint64
}

func NewFlow(client Booker, rng *rand.Rand) *Flow {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Flow{client: client, rng: rng, state: StateIdle}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Search validates the criteria, asks the backend for free rooms in the range
// and assigns one suitable room at random. An empty candidate set is a
// NoMatch outcome, not an error, and triggers no booking request.
func (f *Flow) Search(ctx context.Context, criteria domain.SearchCriteria) (*Result, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	// A new search always supersedes whatever was happening, including a
	// search still in flight; bumping seq makes the older response stale.
	f.mu.Lock()
	f.state = StateSearching
	f.matched = nil
	f.criteria = criteria
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	rooms, err := f.client.AvailableRooms(ctx, criteria.From, criteria.To)
	if err != nil {
		f.settle(seq, StateIdle, nil)
		return nil, err
	}

	candidates := Filter(rooms, criteria)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		return nil, ErrSuperseded
	}

	if len(candidates) == 0 {
		f.state = StateNoMatch
		return &Result{State: StateNoMatch}, nil
	}

	pick := candidates[f.rng.Intn(len(candidates))]
	f.state = StateMatched
	f.matched = &pick
	return &Result{State: StateMatched, Room: &pick}, nil
}

// Filter keeps rooms of the requested category whose category capacity covers
// the party size. Inactive rooms and rooms with an unresolved category are
// never offered.
func Filter(rooms []domain.Room, criteria domain.SearchCriteria) []domain.Room {
	var out []domain.Room
	for _, r := range rooms {
		if !r.IsActive || r.Category == nil {
			continue
		}
		if r.Category.ID != criteria.CategoryID {
			continue
		}
		if r.Category.Capacity < criteria.People {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Confirm submits the reservation for the matched room on the user's behalf.
// A backend rejection (e.g. the room was raced away between search and
// confirm) is an ordinary Failed outcome: the state moves to failed, no local
// reservation record exists, and the backend's message is returned.
func (f *Flow) Confirm(ctx context.Context, token, userID string) (*domain.Reservation, error) {
	f.mu.Lock()
	if f.matched == nil || !canTransition(f.state, StateConfirming) {
		f.mu.Unlock()
		return nil, ErrNotMatched
	}
	f.state = StateConfirming
	room := *f.matched
	criteria := f.criteria
	seq := f.seq
	f.mu.Unlock()

	req := &domain.CreateReservationRequest{
		RoomID:     room.ID,
		StartDate:  criteria.From,
		EndDate:    criteria.To,
		GuestCount: criteria.People,
		UserID:     userID,
	}
	if err := req.Validate(); err != nil {
		f.settle(seq, StateFailed, &room)
		return nil, err
	}

	res, err := f.client.CreateReservation(ctx, token, req)
	if err != nil {
		f.settle(seq, StateFailed, &room)
		return nil, fmt.Errorf("reservation rejected: %w", err)
	}

	// Success clears the matched room; nothing stale can be re-confirmed.
	f.settle(seq, StateConfirmed, nil)
	return res, nil
}

// settle writes a terminal state unless a newer search already took over.
// Every settle goes through the transition table; a move the table does not
// list is dropped rather than forced.
func (f *Flow) settle(seq uint64, state State, matched *domain.Room) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		return
	}
	if !canTransition(f.state, state) {
		return
	}
	f.state = state
	f.matched = matched
}
