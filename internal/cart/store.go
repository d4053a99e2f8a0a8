package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
)

// Store is the single source of truth for what each visitor intends to buy.
// State lives in memory per session; every successful mutation is mirrored to
// Storage. A storage failure is logged and never rolls back the mutation, and
// corrupt stored data rehydrates as an empty cart. Mutations never return
// errors to the caller.
type Store struct {
	mu      sync.Mutex
	carts   map[string][]domain.CartLine
	loaded  map[string]bool
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{
		carts:   make(map[string][]domain.CartLine),
		loaded:  make(map[string]bool),
		storage: storage,
	}
}

// Add merges the line into the session cart: an existing line with the same
// product id has its quantity incremented, otherwise the line is appended.
func (s *Store) Add(ctx context.Context, sessionID string, line domain.CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	s.dispatch(ctx, sessionID, action{typ: actionAdd, line: line})
}

// Remove drops the line with the given product id. Absence is a no-op.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) {
	s.dispatch(ctx, sessionID, action{typ: actionRemove, productID: productID})
}

// UpdateQuantity sets the line quantity to exactly quantity; a value at or
// below zero removes the line. Absence is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) {
	s.dispatch(ctx, sessionID, action{typ: actionUpdateQuantity, productID: productID, quantity: quantity})
}

// Clear empties the session cart unconditionally and evicts the session from
// memory; the next access rehydrates (to an empty cart) from storage. Without
// eviction the per-session maps would grow for the life of the process.
func (s *Store) Clear(ctx context.Context, sessionID string) {
	s.dispatch(ctx, sessionID, action{typ: actionClear})
}

// Lines returns a copy of the current line collection in insertion order.
func (s *Store) Lines(ctx context.Context, sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.ensureLoaded(ctx, sessionID))
}

// Total recomputes the cart total on every call.
func (s *Store) Total(ctx context.Context, sessionID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartTotal(s.ensureLoaded(ctx, sessionID))
}

func (s *Store) dispatch(ctx context.Context, sessionID string, a action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.ensureLoaded(ctx, sessionID)
	next := reduce(current, a)

	if a.typ == actionClear {
		delete(s.carts, sessionID)
		delete(s.loaded, sessionID)
		s.evict(sessionID)
		return
	}

	s.carts[sessionID] = next
	s.persist(sessionID, next)
}

// ensureLoaded rehydrates the session cart from storage on first access.
// Missing or corrupt data falls back to an empty cart. Callers hold s.mu.
func (s *Store) ensureLoaded(ctx context.Context, sessionID string) []domain.CartLine {
	if s.loaded[sessionID] {
		return s.carts[sessionID]
	}
	s.loaded[sessionID] = true

	lines, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrNotStored) {
			log.Printf("cart rehydration failed for session %s, starting empty: %v", sessionID, err)
		}
		s.carts[sessionID] = []domain.CartLine{}
		return s.carts[sessionID]
	}

	s.carts[sessionID] = lines
	return lines
}

func (s *Store) persist(sessionID string, lines []domain.CartLine) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.storage.Save(ctx, sessionID, lines); err != nil {
		log.Printf("cart persist error for session %s: %v", sessionID, err)
	}
}

func (s *Store) evict(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.storage.Delete(ctx, sessionID); err != nil {
		log.Printf("cart evict error for session %s: %v", sessionID, err)
	}
}
