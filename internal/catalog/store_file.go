package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"Storefront/internal/snapshot"
)

// FileStore serves the catalog from a JSON document loaded once at Open.
// The loaded set is never mutated, so reads need no lock.
type FileStore struct {
	doc      *snapshot.File[[]Product]
	products []Product
	byID     map[int64]int
}

// Open loads the catalog at path, writing the seed set first when no
// document exists yet. Calling it again on the same path loads what the
// first call wrote.
func Open(path string) (*FileStore, error) {
	doc := snapshot.New[[]Product](path)

	products, err := doc.Load()
	if errors.Is(err, snapshot.ErrMissing) {
		products = SeedProducts()
		if err := doc.Save(products); err != nil {
			return nil, fmt.Errorf("%w: seed: %v", ErrStorage, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	byID, err := index(products)
	if err != nil {
		return nil, err
	}

	return &FileStore{doc: doc, products: products, byID: byID}, nil
}

func index(products []Product) (map[int64]int, error) {
	byID := make(map[int64]int, len(products))
	for i, p := range products {
		switch {
		case p.ID <= 0:
			return nil, fmt.Errorf("%w: product id %d", ErrCorrupt, p.ID)
		case p.Price < 0:
			return nil, fmt.Errorf("%w: product %d price %v", ErrCorrupt, p.ID, p.Price)
		case p.Rating < 0 || p.Rating > 5:
			return nil, fmt.Errorf("%w: product %d rating %v", ErrCorrupt, p.ID, p.Rating)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", ErrCorrupt, p.ID)
		}
		byID[p.ID] = i
	}
	return byID, nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	ok, err := s.doc.Exists()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s missing", ErrStorage, s.doc.Path())
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = clone(p)
	}
	return out, nil
}

func (s *FileStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false, nil
	}
	return clone(s.products[i]), true, nil
}

func clone(p Product) Product {
	p.Features = slices.Clone(p.Features)
	return p
}
