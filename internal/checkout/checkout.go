// Package checkout drives order submission through its gates: an identity
// gate, an address gate, then the actual submission of the aggregated cart.
// The status machine keeps one submission in flight at a time and makes the
// address-save re-entry skip the gates it already passed.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/Goga-Rid/pitza/internal/cart"
	"github.com/google/uuid"
)

var (
	// ErrNotAuthenticated aborts checkout before any network call; the
	// caller sends the user to registration with a hint.
	ErrNotAuthenticated = errors.New("no authenticated user")

	// ErrAddressRequired means the flow is waiting for an address before it
	// will submit.
	ErrAddressRequired = errors.New("delivery address required")

	ErrAddressEmpty       = errors.New("address must not be empty")
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	ErrIllegalTransition  = errors.New("illegal transition of checkout status")
)

// Session is the slice of the auth store the gates read, plus the write
// path the address re-entry uses after refetching the user.
type Session interface {
	IsAuthenticated() bool
	User() *backend.User
	SetUser(user *backend.User)
}

// Cart is the slice of the cart store checkout consumes.
type Cart interface {
	Aggregate() cart.Aggregate
	Clear()
}

// API is the slice of the backend client this package needs.
type API interface {
	CreateOrder(ctx context.Context, items []backend.OrderItemRequest) (*backend.Order, error)
	UpdateUser(ctx context.Context, upd backend.UserUpdate) (*backend.User, error)
	CurrentUser(ctx context.Context) (*backend.User, error)
}

type Flow struct {
	mu      sync.Mutex
	status  Status
	lastErr error

	session Session
	cart    Cart
	api     API
}

func NewFlow(session Session, cart Cart, api API) *Flow {
	return &Flow{
		status:  StatusIdle,
		session: session,
		cart:    cart,
		api:     api,
	}
}

func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Err returns the error of the last failed submission, nil otherwise.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// PlaceOrder runs the gates in order and submits. ErrNotAuthenticated and
// ErrAddressRequired report which gate stopped it; neither touches the
// order endpoint.
func (f *Flow) PlaceOrder(ctx context.Context) (*backend.Order, error) {
	f.mu.Lock()
	if f.status == StatusSucceeded {
		// Previous order is done; this is a new attempt.
		f.status = StatusIdle
	}
	f.mu.Unlock()

	if !f.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	user := f.session.User()
	if user == nil || strings.TrimSpace(user.Address) == "" {
		f.mu.Lock()
		if CanTransitionTo(f.status, StatusAddressPrompt) {
			f.status = StatusAddressPrompt
		}
		f.mu.Unlock()
		return nil, ErrAddressRequired
	}

	return f.submit(ctx)
}

// SaveAddress persists the address, waits for the user refetch to observe
// it, then re-runs only the submission step. Legal only while the flow is
// waiting at the address prompt.
func (f *Flow) SaveAddress(ctx context.Context, address string) (*backend.Order, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrAddressEmpty
	}

	f.mu.Lock()
	if f.status != StatusAddressPrompt {
		f.mu.Unlock()
		return nil, ErrIllegalTransition
	}
	f.mu.Unlock()

	if _, err := f.api.UpdateUser(ctx, backend.UserUpdate{Address: address}); err != nil {
		return nil, fmt.Errorf("save address failed: %w", err)
	}

	// Refetch rather than trust the update response, so the session holds
	// what the backend actually persisted before the dependent submission.
	user, err := f.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("refetch user failed: %w", err)
	}
	f.session.SetUser(user)

	return f.submit(ctx)
}

// Retry re-runs submission after a failure, cart contents intact.
func (f *Flow) Retry(ctx context.Context) (*backend.Order, error) {
	f.mu.Lock()
	if f.status != StatusFailed {
		f.mu.Unlock()
		return nil, ErrIllegalTransition
	}
	f.mu.Unlock()

	return f.submit(ctx)
}

// Reset returns the flow to idle, e.g. when the drawer closes or the
// address prompt is dismissed.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = StatusIdle
	f.lastErr = nil
}

func (f *Flow) submit(ctx context.Context) (*backend.Order, error) {
	agg := f.cart.Aggregate()
	if len(agg.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if !CanTransitionTo(f.status, StatusSubmitting) {
		f.mu.Unlock()
		return nil, ErrIllegalTransition
	}
	f.status = StatusSubmitting
	f.mu.Unlock()

	attemptID := uuid.NewString()
	log.Printf("order submission %s: %d lines, total %.2f", attemptID, len(agg.Lines), agg.Total)

	order, err := f.api.CreateOrder(ctx, agg.Items())

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		// Cart stays intact so the user can retry without re-entering data.
		f.status = StatusFailed
		f.lastErr = err
		log.Printf("order submission %s failed: %v", attemptID, err)
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	f.cart.Clear()
	f.status = StatusSucceeded
	f.lastErr = nil
	log.Printf("order submission %s succeeded: order %d", attemptID, order.ID)
	return order, nil
}
