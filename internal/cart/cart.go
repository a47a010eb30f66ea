package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"atelier/internal/models"
	"atelier/internal/storage"

	"github.com/rs/zerolog"
)

const keyPrefix = "cart.lines:"

// Store holds one visitor's cart lines plus the sidebar open flag.
// Lines are persisted after every mutation; the open flag lives only
// in memory, so a restored cart always starts closed.
type Store struct {
	mu        sync.Mutex
	lines     []models.CartLine
	isOpen    bool
	store     storage.Store
	key       string
	listeners []func([]models.CartLine)
	logger    zerolog.Logger
}

// Open restores a visitor's cart from storage. A missing or corrupt
// record yields an empty cart, not an error.
func Open(ctx context.Context, store storage.Store, sessionID string, logger zerolog.Logger) *Store {
	s := &Store{
		store:  store,
		key:    keyPrefix + sessionID,
		logger: logger,
	}

	data, err := store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn().Err(err).Str("key", s.key).Msg("Cart restore failed, starting empty")
		}
		return s
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn().Err(err).Str("key", s.key).Msg("Corrupt cart record, starting empty")
		return s
	}

	s.lines = lines
	return s
}

// OnChange registers a listener invoked with a snapshot of the lines
// after every applied mutation.
func (s *Store) OnChange(fn func([]models.CartLine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// AddLine appends the line, or merges quantities when a line with the
// same ID already exists. The sidebar opens as a side effect so the
// visitor sees what was added. A non-positive quantity counts as 1.
func (s *Store) AddLine(ctx context.Context, line models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line.Quantity < 1 {
		line.Quantity = 1
	}

	merged := false
	for i := range s.lines {
		if s.lines[i].ID == line.ID {
			s.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, line)
	}

	s.isOpen = true
	return s.commit(ctx)
}

// RemoveLine deletes the line with the given product ID. No-op when absent.
func (s *Store) RemoveLine(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.commit(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets the quantity for the given product ID. A quantity
// of zero or less removes the line. No-op when the ID is absent.
func (s *Store) UpdateQuantity(ctx context.Context, id, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID != id {
			continue
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = quantity
		}
		return s.commit(ctx)
	}
	return nil
}

// Clear empties the cart. The sidebar flag is left as-is.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.commit(ctx)
}

func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = open
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Lines returns a snapshot of the cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// TotalItems is the sum of line quantities, not the line count.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums price times quantity in minor units. Integer all the
// way down; there is no float in cart arithmetic.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, line := range s.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// commit persists the line sequence and notifies listeners.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context) error {
	data, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("Cart persist failed")
		return err
	}

	snapshot := s.snapshot()
	for _, fn := range s.listeners {
		fn(snapshot)
	}
	return nil
}

func (s *Store) snapshot() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}
