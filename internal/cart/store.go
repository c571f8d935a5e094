// Package cart is the shopping cart, persisted to local storage after every
// change.
package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/internal/storage"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

const (
	StorageKey      = "pokemart-cart-v1"
	DefaultItemName = "Carta misteriosa"
	EmptyMessage    = "Tu carrito está vacío por ahora."
)

type Store struct {
	kv          storage.KV
	log         *zap.Logger
	placeholder string

	mu    sync.Mutex
	items []models.CartItem
}

func NewStore(kv storage.KV, logger *zap.Logger, placeholder string) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if placeholder == "" {
		placeholder = catalog.DefaultPlaceholder
	}
	return &Store{kv: kv, log: logger, placeholder: placeholder, items: []models.CartItem{}}
}

// Load replaces the in-memory cart with the stored one. Missing or corrupt
// data leaves an empty cart; corruption is logged as a warning.
func (s *Store) Load(ctx context.Context) {
	items := []models.CartItem{}

	raw, err := s.kv.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		s.log.Warn("cart read failed", zap.Error(err))
	case raw == "":
	default:
		decoded, err := Deserialize(raw)
		if err != nil {
			s.log.Warn("stored cart discarded", zap.Error(err))
		} else {
			items = decoded
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Add puts one unit of card in the cart. A repeat add only bumps quantity.
// unitPrice overrides the card price when positive. Cards with neither id
// nor name are ignored.
func (s *Store) Add(ctx context.Context, card models.NormalizedCard, unitPrice float64) (models.CartItem, bool) {
	id := card.ID
	if id == "" {
		id = card.Name
	}
	if id == "" {
		return models.CartItem{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity++
		item := s.items[i]
		s.persistLocked(ctx)
		return item, true
	}

	name := card.Name
	if name == "" {
		name = DefaultItemName
	}
	setName := card.Set.Name
	if setName == "" {
		setName = catalog.LocalCollection
	}
	price := card.Price
	if unitPrice > 0 {
		price = unitPrice
	}
	image := card.PrimaryImage()
	if image == "" {
		image = s.placeholder
	}

	item := models.CartItem{
		ID:       id,
		Name:     name,
		SetName:  setName,
		Price:    price,
		Image:    image,
		Quantity: 1,
	}
	s.items = append(s.items, item)
	s.persistLocked(ctx)
	return item, true
}

// Remove drops the line; unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persistLocked(ctx)
}

// SetQuantity adjusts a line by delta. Reaching zero removes the line.
func (s *Store) SetQuantity(ctx context.Context, id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	next := s.items[i].Quantity + delta
	if next <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = next
	}
	s.persistLocked(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []models.CartItem{}
	s.persistLocked(ctx)
}

func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.items...)
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the cart; failures are logged and otherwise ignored.
func (s *Store) persistLocked(ctx context.Context) {
	raw, err := Serialize(s.items)
	if err != nil {
		s.log.Warn("cart encode failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		s.log.Warn("cart save failed", zap.Error(err))
	}
}
