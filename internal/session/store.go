// Package session is the single source of truth for "is a user logged in,
// and who". Views read it, the backend client invalidates it on 401, and
// nothing else writes the token.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/Goga-Rid/pitza/internal/backend"
)

// Tokens persists the bearer token across restarts. *storage.File satisfies it.
type Tokens interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Remove() error
}

// AuthAPI is the slice of the backend client Init needs.
type AuthAPI interface {
	ValidateToken(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (*backend.User, error)
}

type Store struct {
	mu      sync.RWMutex
	user    *backend.User
	loading bool
	tokens  Tokens
	subs    []func()
}

// New starts in the loading state; protected views must not make a render
// decision until Init has cleared it.
func New(tokens Tokens) *Store {
	return &Store{
		loading: true,
		tokens:  tokens,
	}
}

// SetUser sets the identity; authenticated means user is non-nil. It does
// not touch token storage.
func (s *Store) SetUser(user *backend.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
}

func (s *Store) User() *backend.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the persisted bearer token, empty when none is stored.
func (s *Store) Token() string {
	data, err := s.tokens.Read()
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Store) SaveToken(token string) error {
	return s.tokens.Write([]byte(token))
}

// Logout clears the identity and removes the persisted token. It does not
// navigate; callers decide where to send the user.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.tokens.Remove(); err != nil {
		log.Printf("remove token error: %v", err)
	}
	s.notify()
}

// Invalidate is the 401 hook: same effect as Logout, named for its caller.
func (s *Store) Invalidate() {
	s.Logout()
}

// Subscribe registers fn to run after every state change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

// Init resolves the persisted token at startup: validate it, fetch the
// current user, and populate state. Every failure path fails closed to
// "not authenticated" and removes the token; the loading flag clears at the
// end regardless of outcome.
func (s *Store) Init(ctx context.Context, api AuthAPI) {
	defer s.SetLoading(false)

	if s.Token() == "" {
		s.SetUser(nil)
		return
	}

	valid, err := api.ValidateToken(ctx)
	if err != nil || !valid {
		if err != nil {
			log.Printf("token validation error: %v", err)
		}
		s.dropSession()
		return
	}

	user, err := api.CurrentUser(ctx)
	if err != nil {
		log.Printf("fetch current user error: %v", err)
		s.dropSession()
		return
	}
	s.SetUser(user)
}

func (s *Store) dropSession() {
	if err := s.tokens.Remove(); err != nil {
		log.Printf("remove token error: %v", err)
	}
	s.SetUser(nil)
}
