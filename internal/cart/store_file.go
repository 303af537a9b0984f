package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"Storefront/internal/catalog"
	"Storefront/internal/snapshot"
)

// FileStore keeps the cart as a single JSON document. Every mutation loads
// the document, changes it in memory and writes it back whole while holding
// mu, so at most one mutation is in flight against the file.
type FileStore struct {
	mu      sync.RWMutex
	doc     *snapshot.File[[]Item]
	catalog catalog.Store
	now     func() time.Time
	metrics *Metrics

	// lastID is guarded by mu.
	lastID int64
}

type Option func(*FileStore)

func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

func WithMetrics(m *Metrics) Option {
	return func(s *FileStore) { s.metrics = m }
}

// Open prepares the cart document at path, creating an empty one if none
// exists. products resolves ids on Add.
func Open(path string, products catalog.Store, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		doc:     snapshot.New[[]Item](path),
		catalog: products,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	ok, err := s.doc.Exists()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		if err := s.doc.Save([]Item{}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	s.observeIDs(items)

	return s, nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.load()
	return err
}

func (s *FileStore) List(ctx context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

func (s *FileStore) Add(ctx context.Context, productID int64, quantity int) ([]Item, error) {
	if productID <= 0 {
		return nil, s.reject(opAdd, ErrProductRequired)
	}
	if quantity < 1 {
		return nil, s.reject(opAdd, ErrBadQuantity)
	}

	// The catalog is immutable, so the lookup does not need the cart lock.
	p, ok, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, s.reject(opAdd, fmt.Errorf("%w: catalog: %v", ErrStorage, err))
	}
	if !ok {
		return nil, s.reject(opAdd, ErrProductNotFound)
	}

	return s.mutate(opAdd, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ProductID != productID {
				continue
			}
			if items[i].Quantity > math.MaxInt-quantity {
				return nil, ErrBadQuantity
			}
			items[i].Quantity += quantity
			return items, nil
		}

		now := s.now().UTC()
		return append(items, Item{
			ID:        s.nextID(now),
			ProductID: productID,
			Product:   p,
			Quantity:  quantity,
			AddedAt:   now,
		}), nil
	})
}

// Update replaces the quantity of an item. Zero removes the item.
func (s *FileStore) Update(ctx context.Context, itemID int64, quantity int) ([]Item, error) {
	if quantity < 0 {
		return nil, s.reject(opUpdate, ErrBadQuantity)
	}

	return s.mutate(opUpdate, func(items []Item) ([]Item, error) {
		i := slices.IndexFunc(items, func(it Item) bool { return it.ID == itemID })
		if i < 0 {
			return nil, ErrItemNotFound
		}
		if quantity == 0 {
			return slices.Delete(items, i, i+1), nil
		}
		items[i].Quantity = quantity
		return items, nil
	})
}

func (s *FileStore) Remove(ctx context.Context, itemID int64) ([]Item, error) {
	return s.mutate(opRemove, func(items []Item) ([]Item, error) {
		i := slices.IndexFunc(items, func(it Item) bool { return it.ID == itemID })
		if i < 0 {
			return nil, ErrItemNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.save([]Item{})
	s.metrics.observe(opClear, err)
	return err
}

func (s *FileStore) mutate(op string, fn func([]Item) ([]Item, error)) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		s.metrics.observe(op, err)
		return nil, err
	}
	s.observeIDs(items)

	items, err = fn(items)
	if err != nil {
		s.metrics.observe(op, err)
		return nil, err
	}

	if err := s.save(items); err != nil {
		s.metrics.observe(op, err)
		return nil, err
	}

	s.metrics.observe(op, nil)
	return items, nil
}

func (s *FileStore) reject(op string, err error) error {
	s.metrics.observe(op, err)
	return err
}

func (s *FileStore) load() ([]Item, error) {
	items, err := s.doc.Load()
	if errors.Is(err, snapshot.ErrMissing) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *FileStore) save(items []Item) error {
	if err := s.doc.Save(items); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// nextID issues ids shaped like millisecond timestamps but strictly
// increasing, so two lines created in the same millisecond never collide.
// Callers hold mu.
func (s *FileStore) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *FileStore) observeIDs(items []Item) {
	for _, it := range items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
}
