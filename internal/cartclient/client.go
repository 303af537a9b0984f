// Package cartclient mirrors the storefront cart locally. Every successful
// mutation is followed by a full reload of the cart, so the cache is always
// a copy of what the server last persisted.
package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("storefront unavailable")
)

// APIError carries the server's error message for a rejected call.
type APIError struct {
	Status  int
	Message string

	kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: status=%d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

type Client struct {
	BaseURL string
	HTTP    *http.Client

	sf singleflight.Group

	mu    sync.RWMutex
	items []cart.Item
}

// New takes the API root, e.g. "http://localhost:3001/api".
func New(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (catalog.Product, error) {
	var out catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// Refresh replaces the cache with the server's cart. Concurrent callers
// share one request.
func (c *Client) Refresh(ctx context.Context) ([]cart.Item, error) {
	v, err, _ := c.sf.Do("cart", func() (any, error) {
		var items []cart.Item
		if err := c.do(ctx, http.MethodGet, "/cart", nil, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []cart.Item{}
		}

		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneItems(v.([]cart.Item)), nil
}

// Add puts quantity units of a product in the cart; quantity <= 0 lets the
// server apply its default of one.
func (c *Client) Add(ctx context.Context, productID int64, quantity int) error {
	body := map[string]any{"productId": productID}
	if quantity > 0 {
		body["quantity"] = quantity
	}
	return c.mutate(ctx, http.MethodPost, "/cart", body)
}

func (c *Client) Update(ctx context.Context, itemID int64, quantity int) error {
	return c.mutate(ctx, http.MethodPut, itemPath(itemID), map[string]any{"quantity": quantity})
}

func (c *Client) Remove(ctx context.Context, itemID int64) error {
	return c.mutate(ctx, http.MethodDelete, itemPath(itemID), nil)
}

func (c *Client) Clear(ctx context.Context) error {
	return c.mutate(ctx, http.MethodDelete, "/cart", nil)
}

// Items is the cached cart, empty until the first Refresh.
func (c *Client) Items() []cart.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.items)
}

func (c *Client) Count() int {
	return cart.Summarize(c.Items()).Count
}

func (c *Client) Subtotal() decimal.Decimal {
	return cart.Summarize(c.Items()).Subtotal
}

// mutate discards the mutation response body; the server's cart is always
// re-read in full afterwards.
func (c *Client) mutate(ctx context.Context, method, path string, body any) error {
	if err := c.do(ctx, method, path, body, nil); err != nil {
		return err
	}
	_, err := c.Refresh(ctx)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrUnavailable, method, path, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	e := &APIError{Status: resp.StatusCode, Message: body.Error}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		e.kind = ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		e.kind = ErrUnavailable
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		e.kind = ErrInvalidInput
	default:
		e.kind = ErrUnavailable
	}
	return e
}

func itemPath(id int64) string {
	return "/cart/" + strconv.FormatInt(id, 10)
}

func cloneItems(items []cart.Item) []cart.Item {
	out := make([]cart.Item, len(items))
	copy(out, items)
	return out
}
