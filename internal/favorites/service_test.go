package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	m           sync.Mutex
	favorites   []backend.Favorite
	nextID      int64
	addErr      error
	removeErr   error
	listErr     error
	addCalls    int
	removeCalls int
}

func (m *mockAPI) Favorites(context.Context) ([]backend.Favorite, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	list := make([]backend.Favorite, len(m.favorites))
	copy(list, m.favorites)
	return list, nil
}

func (m *mockAPI) AddFavorite(_ context.Context, productID int64) (*backend.Favorite, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.addCalls++
	if m.addErr != nil {
		return nil, m.addErr
	}
	m.nextID++
	fav := backend.Favorite{ID: m.nextID, UserID: 1, ProductID: productID}
	m.favorites = append(m.favorites, fav)
	return &fav, nil
}

func (m *mockAPI) RemoveFavorite(_ context.Context, productID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.removeCalls++
	if m.removeErr != nil {
		return m.removeErr
	}
	for i, fav := range m.favorites {
		if fav.ProductID == productID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return errors.New("favorite not found")
}

func TestToggle_On(t *testing.T) {
	api := &mockAPI{}
	s := NewService(api)

	now, err := s.Toggle(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, now)
	assert.True(t, s.IsFavorite(5))
	assert.Equal(t, 1, api.addCalls)
}

func TestToggle_OffRemovesByProductID(t *testing.T) {
	api := &mockAPI{favorites: []backend.Favorite{{ID: 99, UserID: 1, ProductID: 5}}}
	s := NewService(api)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	now, err := s.Toggle(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, now)
	assert.False(t, s.IsFavorite(5))
	assert.Equal(t, 1, api.removeCalls)
}

func TestToggle_IdempotentOverOnOff(t *testing.T) {
	api := &mockAPI{}
	s := NewService(api)

	_, err := s.Toggle(context.Background(), 5)
	require.NoError(t, err)
	_, err = s.Toggle(context.Background(), 5)
	require.NoError(t, err)

	assert.False(t, s.IsFavorite(5), "on then off returns to the original membership")
	assert.Empty(t, api.favorites)
}

func TestToggle_AddFailureRollsBack(t *testing.T) {
	api := &mockAPI{addErr: errors.New("network down")}
	s := NewService(api)

	now, err := s.Toggle(context.Background(), 5)
	require.Error(t, err)
	assert.False(t, now)
	assert.False(t, s.IsFavorite(5), "failed add must revert the optimistic flag")
}

func TestToggle_RemoveFailureRollsBack(t *testing.T) {
	api := &mockAPI{favorites: []backend.Favorite{{ID: 3, UserID: 1, ProductID: 7}}}
	s := NewService(api)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	api.removeErr = errors.New("network down")

	now, err := s.Toggle(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, now)
	assert.True(t, s.IsFavorite(7), "failed remove must restore the optimistic flag")
}

func TestToggle_ReconcilesWithServerList(t *testing.T) {
	api := &mockAPI{favorites: []backend.Favorite{{ID: 1, UserID: 1, ProductID: 2}}}
	s := NewService(api)

	_, err := s.Toggle(context.Background(), 5)
	require.NoError(t, err)

	// The refetch after the mutation picks up favorites added elsewhere too.
	assert.True(t, s.IsFavorite(2))
	assert.True(t, s.IsFavorite(5))
}

func TestRefresh_ReplacesLocalView(t *testing.T) {
	api := &mockAPI{favorites: []backend.Favorite{{ID: 1, UserID: 1, ProductID: 9}}}
	s := NewService(api)

	list, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, s.IsFavorite(9))

	api.m.Lock()
	api.favorites = nil
	api.m.Unlock()

	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsFavorite(9))
}

func TestRefresh_ErrorKeepsLocalView(t *testing.T) {
	api := &mockAPI{favorites: []backend.Favorite{{ID: 1, UserID: 1, ProductID: 9}}}
	s := NewService(api)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	api.m.Lock()
	api.listErr = errors.New("boom")
	api.m.Unlock()

	_, err = s.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, s.IsFavorite(9))
}
