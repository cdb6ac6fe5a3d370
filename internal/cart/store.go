// Package cart holds the product selections for the active session,
// independent of the server until checkout. State survives a restart through
// a pluggable Storage backend but is never synced to the backend.
package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Goga-Rid/pitza/internal/backend"
)

// Storage persists cart lines across restarts.
// Consumers define this interface, not the file or redis implementation.
type Storage interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
	Clear(ctx context.Context) error
}

var ErrNotFound = errors.New("cart not found")

type Store struct {
	mu      sync.RWMutex
	lines   []Line
	storage Storage
	subs    []func()
}

// New loads any persisted cart. A storage failure at load time starts with
// an empty cart rather than failing the whole app.
func New(ctx context.Context, storage Storage) *Store {
	s := &Store{storage: storage}

	lines, err := storage.Load(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("cart load error: %v", err)
	}
	s.lines = lines
	return s
}

// AddItem appends or increments: an existing line for the same product gains
// quantity instead of a duplicate line appearing. qty below 1 counts as 1.
func (s *Store) AddItem(product backend.Product, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{Product: product, Quantity: qty, AddedAt: time.Now()})
	}
	s.mu.Unlock()

	s.persist()
	s.notify()
}

// UpdateQuantity sets an absolute quantity, clamped to 1 from below. A
// product with no line is left alone; removal goes through RemoveItem only.
func (s *Store) UpdateQuantity(productID int64, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = qty
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.persist()
		s.notify()
	}
}

func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.mu.Unlock()

	s.persist()
	s.notify()
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.storage.Clear(ctx); err != nil {
		log.Printf("cart clear error: %v", err)
	}
	s.notify()
}

func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Aggregate merges lines by product id for display and submission. The
// merge-by-id AddItem should keep the list split-free already; aggregation
// keeps totals and line counts correct even if it is not.
func (s *Store) Aggregate() Aggregate {
	return aggregate(s.Lines())
}

// Subscribe registers fn to run after every cart change.
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

// persist writes through to storage; a failed write keeps the in-memory
// cart authoritative for this session.
func (s *Store) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.storage.Save(ctx, s.Lines()); err != nil {
		log.Printf("cart save error: %v", err)
	}
}
