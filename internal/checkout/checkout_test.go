package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/Goga-Rid/pitza/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSession struct {
	m    sync.Mutex
	user *backend.User
}

func (m *mockSession) IsAuthenticated() bool {
	m.m.Lock()
	defer m.m.Unlock()
	return m.user != nil
}

func (m *mockSession) User() *backend.User {
	m.m.Lock()
	defer m.m.Unlock()
	return m.user
}

func (m *mockSession) SetUser(user *backend.User) {
	m.m.Lock()
	defer m.m.Unlock()
	m.user = user
}

type mockCart struct {
	m     sync.Mutex
	lines []cart.Line
}

func (m *mockCart) Aggregate() cart.Aggregate {
	m.m.Lock()
	defer m.m.Unlock()
	agg := cart.Aggregate{Lines: m.lines}
	for _, line := range m.lines {
		agg.Total += line.Product.Price * float64(line.Quantity)
		agg.Count += line.Quantity
	}
	return agg
}

func (m *mockCart) Clear() {
	m.m.Lock()
	defer m.m.Unlock()
	m.lines = nil
}

func (m *mockCart) len() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.lines)
}

type mockAPI struct {
	m            sync.Mutex
	order        *backend.Order
	orderErr     error
	updateErr    error
	currentUser  *backend.User
	currentErr   error
	orderCalls   int
	updateCalls  int
	currentCalls int
	gotItems     []backend.OrderItemRequest
	block        chan struct{} // when set, CreateOrder waits on it
}

func (m *mockAPI) CreateOrder(_ context.Context, items []backend.OrderItemRequest) (*backend.Order, error) {
	m.m.Lock()
	m.orderCalls++
	m.gotItems = items
	block := m.block
	m.m.Unlock()

	if block != nil {
		<-block
	}

	m.m.Lock()
	defer m.m.Unlock()
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	return m.order, nil
}

func (m *mockAPI) UpdateUser(_ context.Context, upd backend.UserUpdate) (*backend.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	u := *m.currentUser
	u.Address = upd.Address
	return &u, nil
}

func (m *mockAPI) CurrentUser(context.Context) (*backend.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.currentCalls++
	if m.currentErr != nil {
		return nil, m.currentErr
	}
	return m.currentUser, nil
}

func (m *mockAPI) orderCallCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.orderCalls
}

var (
	userWithAddress    = &backend.User{ID: 1, Email: "a@b.c", Address: "ул. Пушкина, д. 1"}
	userWithoutAddress = &backend.User{ID: 1, Email: "a@b.c"}
	pizza              = backend.Product{ID: 1, Name: "Маргарита", Price: 499}
)

func filledCart() *mockCart {
	return &mockCart{lines: []cart.Line{{Product: pizza, Quantity: 2}}}
}

func TestPlaceOrder_IdentityGate(t *testing.T) {
	api := &mockAPI{order: &backend.Order{ID: 1}}
	c := filledCart()
	f := NewFlow(&mockSession{}, c, api)

	_, err := f.PlaceOrder(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, api.orderCallCount(), "unauthenticated checkout must never hit the order endpoint")
	assert.Equal(t, 1, c.len(), "cart untouched")
	assert.Equal(t, StatusIdle, f.Status())
}

func TestPlaceOrder_AddressGate(t *testing.T) {
	api := &mockAPI{order: &backend.Order{ID: 1}}
	f := NewFlow(&mockSession{user: userWithoutAddress}, filledCart(), api)

	_, err := f.PlaceOrder(context.Background())
	require.ErrorIs(t, err, ErrAddressRequired)
	assert.Equal(t, 0, api.orderCallCount(), "no order call until the address is saved")
	assert.Equal(t, StatusAddressPrompt, f.Status())
}

func TestPlaceOrder_Success(t *testing.T) {
	api := &mockAPI{order: &backend.Order{ID: 42, Status: backend.OrderStatusPlaced}}
	c := filledCart()
	f := NewFlow(&mockSession{user: userWithAddress}, c, api)

	order, err := f.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, 0, c.len(), "cart cleared on success")
	assert.Equal(t, StatusSucceeded, f.Status())
	assert.NoError(t, f.Err())
	require.Len(t, api.gotItems, 1)
	assert.Equal(t, backend.OrderItemRequest{ProductID: 1, Quantity: 2}, api.gotItems[0])
}

func TestPlaceOrder_FailureKeepsCart(t *testing.T) {
	api := &mockAPI{orderErr: errors.New("backend down")}
	c := filledCart()
	f := NewFlow(&mockSession{user: userWithAddress}, c, api)

	_, err := f.PlaceOrder(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, c.len(), "cart unchanged on failure")
	assert.Equal(t, StatusFailed, f.Status())
	assert.Error(t, f.Err())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	api := &mockAPI{order: &backend.Order{ID: 1}}
	f := NewFlow(&mockSession{user: userWithAddress}, &mockCart{}, api)

	_, err := f.PlaceOrder(context.Background())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, api.orderCallCount())
}

func TestSaveAddress_RefetchesThenResubmits(t *testing.T) {
	session := &mockSession{user: userWithoutAddress}
	api := &mockAPI{
		order:       &backend.Order{ID: 7},
		currentUser: userWithAddress,
	}
	c := filledCart()
	f := NewFlow(session, c, api)

	_, err := f.PlaceOrder(context.Background())
	require.ErrorIs(t, err, ErrAddressRequired)

	order, err := f.SaveAddress(context.Background(), "ул. Пушкина, д. 1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, 1, api.updateCalls)
	assert.Equal(t, 1, api.currentCalls, "user refetched before resubmission")
	assert.Equal(t, userWithAddress.Address, session.User().Address)
	assert.Equal(t, 1, api.orderCallCount(), "submission ran exactly once")
	assert.Equal(t, 0, c.len())
	assert.Equal(t, StatusSucceeded, f.Status())
}

func TestSaveAddress_SkipsGatesOnReentry(t *testing.T) {
	// The refetched user still has no address recorded; the re-entry must
	// run only the submission step, not the address gate again.
	session := &mockSession{user: userWithoutAddress}
	api := &mockAPI{
		order:       &backend.Order{ID: 7},
		currentUser: userWithoutAddress,
	}
	f := NewFlow(session, filledCart(), api)

	_, err := f.PlaceOrder(context.Background())
	require.ErrorIs(t, err, ErrAddressRequired)

	_, err = f.SaveAddress(context.Background(), "ул. Пушкина, д. 1")
	require.NoError(t, err)
	assert.Equal(t, 1, api.orderCallCount())
}

func TestSaveAddress_EmptyAddressRejected(t *testing.T) {
	f := NewFlow(&mockSession{user: userWithoutAddress}, filledCart(), &mockAPI{})

	_, err := f.SaveAddress(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrAddressEmpty)
}

func TestSaveAddress_OnlyFromAddressPrompt(t *testing.T) {
	f := NewFlow(&mockSession{user: userWithAddress}, filledCart(), &mockAPI{})

	_, err := f.SaveAddress(context.Background(), "куда-то")
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestSaveAddress_UpdateFailureStaysAtPrompt(t *testing.T) {
	api := &mockAPI{updateErr: errors.New("boom"), currentUser: userWithAddress}
	f := NewFlow(&mockSession{user: userWithoutAddress}, filledCart(), api)

	_, err := f.PlaceOrder(context.Background())
	require.ErrorIs(t, err, ErrAddressRequired)

	_, err = f.SaveAddress(context.Background(), "адрес")
	require.Error(t, err)
	assert.Equal(t, StatusAddressPrompt, f.Status(), "failed save keeps the prompt open for retry")
	assert.Equal(t, 0, api.orderCallCount())
}

func TestRetry_AfterFailure(t *testing.T) {
	api := &mockAPI{orderErr: errors.New("transient")}
	c := filledCart()
	f := NewFlow(&mockSession{user: userWithAddress}, c, api)

	_, err := f.PlaceOrder(context.Background())
	require.Error(t, err)
	require.Equal(t, StatusFailed, f.Status())

	api.m.Lock()
	api.orderErr = nil
	api.order = &backend.Order{ID: 9}
	api.m.Unlock()

	order, err := f.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)
	assert.Equal(t, 0, c.len())
}

func TestRetry_OnlyFromFailed(t *testing.T) {
	f := NewFlow(&mockSession{user: userWithAddress}, filledCart(), &mockAPI{})

	_, err := f.Retry(context.Background())
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestSubmit_SingleInFlight(t *testing.T) {
	api := &mockAPI{order: &backend.Order{ID: 1}, block: make(chan struct{})}
	f := NewFlow(&mockSession{user: userWithAddress}, filledCart(), api)

	done := make(chan error, 1)
	go func() {
		_, err := f.PlaceOrder(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return f.Status() == StatusSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := f.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight, "duplicate submit while one is pending must be refused")

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.orderCallCount())
}

func TestPlaceOrder_NewAttemptAfterSuccess(t *testing.T) {
	api := &mockAPI{order: &backend.Order{ID: 1}}
	c := filledCart()
	f := NewFlow(&mockSession{user: userWithAddress}, c, api)

	_, err := f.PlaceOrder(context.Background())
	require.NoError(t, err)

	c.m.Lock()
	c.lines = []cart.Line{{Product: pizza, Quantity: 1}}
	c.m.Unlock()

	_, err = f.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, api.orderCallCount())
}

func TestReset_ClearsErrorAndStatus(t *testing.T) {
	api := &mockAPI{orderErr: errors.New("boom")}
	f := NewFlow(&mockSession{user: userWithAddress}, filledCart(), api)

	_, err := f.PlaceOrder(context.Background())
	require.Error(t, err)
	require.Error(t, f.Err())

	f.Reset()
	assert.Equal(t, StatusIdle, f.Status())
	assert.NoError(t, f.Err())
}
