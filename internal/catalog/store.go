package catalog

import (
	"context"
	"errors"
)

var (
	ErrStorage = errors.New("catalog storage failure")
	ErrCorrupt = errors.New("catalog document invalid")
)

type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	InStock     bool     `json:"inStock"`
	Rating      float64  `json:"rating"`
	Features    []string `json:"features"`
}

// Store is read-only: the catalog is seeded once and never edited at runtime.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	Ping(ctx context.Context) error
}
