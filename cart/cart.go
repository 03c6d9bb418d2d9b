// Package cart holds the in-progress order basket. The basket survives
// reloads through durable storage and is independent of the session except
// for one coupling: logging out empties it, so a basket never leaks to the
// next user of the same profile.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/oldbaker/go-storefront/storage"
)

// Item is a single cart line. Quantity is always >= 1; an item whose
// quantity would drop to zero is removed instead.
type Item struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Listener receives the full item list after every mutation.
type Listener func(items []Item)

// Store is the cart state holder. Construct with New and share the one
// instance; all mutations persist the full list.
type Store struct {
	storage storage.Store

	lock      sync.Mutex
	items     []Item
	listeners map[int]Listener
	nextID    int
}

// New creates a cart store, restoring any persisted basket.
func New(st storage.Store) *Store {
	s := &Store{
		storage:   st,
		listeners: make(map[int]Listener),
	}
	s.load()
	return s
}

// Subscribe registers a listener for cart changes and returns its
// unsubscribe function.
func (s *Store) Subscribe(listener Listener) func() {
	s.lock.Lock()
	defer s.lock.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.listeners, id)
	}
}

// AddItem appends item with quantity 1, or increments the quantity of an
// existing line with the same product id. The item's Quantity field is
// ignored.
func (s *Store) AddItem(item Item) {
	s.lock.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	s.finishMutation()
}

// UpdateQuantity sets the quantity of the line with the given product id.
// A quantity of zero or less removes the line entirely. Unknown ids are
// ignored.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.lock.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.finishMutation()
}

// RemoveItem drops the line with the given product id.
func (s *Store) RemoveItem(productID int64) {
	s.lock.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.finishMutation()
}

// Clear empties the basket. Called directly by users and by the auth
// store's logout cleanup.
func (s *Store) Clear() {
	s.lock.Lock()
	s.items = nil
	s.finishMutation()
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]Item(nil), s.items...)
}

// Total returns the basket total, Σ price*quantity.
func (s *Store) Total() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the number of units in the basket, Σ quantity.
func (s *Store) ItemCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) load() {
	raw, ok := s.storage.Get(storage.ShoppingCartKey)
	if !ok {
		return
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable persisted cart")
		return
	}
	// Drop any persisted line that violates the quantity invariant.
	for _, item := range items {
		if item.Quantity >= 1 {
			s.items = append(s.items, item)
		}
	}
}

// finishMutation persists the basket, then unlocks and fans out the new
// state. Entered with the lock held; listeners run without it so they may
// call back into the store.
func (s *Store) finishMutation() {
	data, err := json.Marshal(s.items)
	if err == nil {
		if err := s.storage.Set(storage.ShoppingCartKey, string(data)); err != nil {
			log.Warn().Err(err).Msg("could not persist cart")
		}
	}

	snapshot := append([]Item(nil), s.items...)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.lock.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}
