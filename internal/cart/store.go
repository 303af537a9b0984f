package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Storefront/internal/catalog"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("cart storage failure")

	ErrProductRequired = fmt.Errorf("%w: product id required", ErrInvalidInput)
	ErrBadQuantity     = fmt.Errorf("%w: valid quantity required", ErrInvalidInput)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("cart item %w", ErrNotFound)
)

// Item is one cart line. Product is a copy of the catalog entry taken when
// the line was created and is not refreshed afterwards.
type Item struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Store mutations return the complete cart as persisted after the change.
type Store interface {
	List(ctx context.Context) ([]Item, error)
	Add(ctx context.Context, productID int64, quantity int) ([]Item, error)
	Update(ctx context.Context, itemID int64, quantity int) ([]Item, error)
	Remove(ctx context.Context, itemID int64) ([]Item, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}
