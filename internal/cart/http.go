package cart

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger

	// WriteLimit wraps the mutating routes when set.
	WriteLimit func(http.Handler) http.Handler
}

type addReq struct {
	ProductID *int64 `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateReq struct {
	Quantity *int `json:"quantity"`
}

type cartResp struct {
	Message string `json:"message"`
	Cart    []Item `json:"cart"`
}

type messageResp struct {
	Message string `json:"message"`
}

// Routes serves the cart; mount it at "/cart".
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)

	r.Group(func(wr chi.Router) {
		if s.WriteLimit != nil {
			wr.Use(s.WriteLimit)
		}
		wr.Post("/", s.add)
		wr.Delete("/", s.clear)
		wr.Put("/{id}", s.update)
		wr.Delete("/{id}", s.remove)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.List(r.Context())
	if err != nil {
		s.logger().Error("list cart failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to read cart", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.ProductID == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Product ID is required", nil)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	items, err := s.Store.Add(r.Context(), *req.ProductID, quantity)
	if err != nil {
		s.writeStoreError(w, r, err, zap.Int64("product_id", *req.ProductID))
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Message: "Item added to cart", Cart: items})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDParam(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Cart item not found", nil)
		return
	}

	var req updateReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "Valid quantity is required", nil)
		return
	}

	items, err := s.Store.Update(r.Context(), itemID, *req.Quantity)
	if err != nil {
		s.writeStoreError(w, r, err, zap.Int64("item_id", itemID))
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Message: "Cart updated", Cart: items})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDParam(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Cart item not found", nil)
		return
	}

	items, err := s.Store.Remove(r.Context(), itemID)
	if err != nil {
		s.writeStoreError(w, r, err, zap.Int64("item_id", itemID))
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Message: "Item removed from cart", Cart: items})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Clear(r.Context()); err != nil {
		s.logger().Error("clear cart failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to clear cart", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, messageResp{Message: "Cart cleared"})
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, fields ...zap.Field) {
	switch {
	case errors.Is(err, ErrProductRequired):
		kit.WriteError(w, r, http.StatusBadRequest, "Product ID is required", nil)
	case errors.Is(err, ErrBadQuantity):
		kit.WriteError(w, r, http.StatusBadRequest, "Valid quantity is required", nil)
	case errors.Is(err, ErrInvalidInput):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", nil)
	case errors.Is(err, ErrItemNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "Cart item not found", nil)
	default:
		s.logger().Error("cart mutation failed", append(fields, zap.Error(err))...)
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to update cart", nil)
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// itemIDParam reports false for ids that cannot name any item.
func itemIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
