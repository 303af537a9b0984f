package cart

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
)

type testEnv struct {
	ts  *httptest.Server
	dir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	products, err := catalog.Open(filepath.Join(dir, "products.json"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	store, err := Open(filepath.Join(dir, "cart.json"), products)
	if err != nil {
		t.Fatalf("open cart: %v", err)
	}

	s := &Server{Store: store, Log: zap.NewNop()}
	r := chi.NewRouter()
	r.Mount("/cart", s.Routes())
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return testEnv{ts: ts, dir: dir}
}

func doRaw(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	if body == nil {
		return doRaw(t, method, url, "")
	}
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return doRaw(t, method, url, string(bytes.TrimSpace(b)))
}

func decodeCart(t *testing.T, raw []byte) cartResp {
	t.Helper()
	var out cartResp
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	return out
}

func TestHTTP_CartScenario(t *testing.T) {
	env := newTestEnv(t)
	base := env.ts.URL

	resp, raw := doJSON(t, http.MethodPost, base+"/cart", map[string]any{"productId": 1, "quantity": 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
	}
	added := decodeCart(t, raw)
	if added.Message != "Item added to cart" {
		t.Fatalf("message=%q", added.Message)
	}
	if len(added.Cart) != 1 || added.Cart[0].Quantity != 2 || added.Cart[0].Product.Price != 299 {
		t.Fatalf("unexpected cart: %+v", added.Cart)
	}
	itemURL := base + "/cart/" + strconv.FormatInt(added.Cart[0].ID, 10)

	resp, raw = doJSON(t, http.MethodPut, itemURL, map[string]any{"quantity": 5})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status=%d body=%s", resp.StatusCode, string(raw))
	}
	updated := decodeCart(t, raw)
	if len(updated.Cart) != 1 || updated.Cart[0].Quantity != 5 {
		t.Fatalf("quantity not replaced: %+v", updated.Cart)
	}

	resp, raw = doJSON(t, http.MethodDelete, itemURL, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status=%d body=%s", resp.StatusCode, string(raw))
	}
	removed := decodeCart(t, raw)
	if removed.Message != "Item removed from cart" || removed.Cart == nil || len(removed.Cart) != 0 {
		t.Fatalf("unexpected remove response: %s", string(raw))
	}

	for range 2 {
		resp, raw = doJSON(t, http.MethodDelete, base+"/cart", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("clear status=%d body=%s", resp.StatusCode, string(raw))
		}
		var msg messageResp
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Message != "Cart cleared" {
			t.Fatalf("unexpected clear response: %s", string(raw))
		}
	}

	resp, raw = doJSON(t, http.MethodGet, base+"/cart", nil)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("list status=%d body=%s", resp.StatusCode, string(raw))
	}
}

func TestHTTP_AddDefaultsQuantityAndMerges(t *testing.T) {
	env := newTestEnv(t)

	doJSON(t, http.MethodPost, env.ts.URL+"/cart", map[string]any{"productId": 3})
	resp, raw := doJSON(t, http.MethodPost, env.ts.URL+"/cart", map[string]any{"productId": 3, "quantity": 4})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}

	got := decodeCart(t, raw)
	if len(got.Cart) != 1 || got.Cart[0].Quantity != 5 {
		t.Fatalf("unexpected cart: %+v", got.Cart)
	}
}

func TestHTTP_ClientErrors(t *testing.T) {
	env := newTestEnv(t)
	base := env.ts.URL

	_, raw := doJSON(t, http.MethodPost, base+"/cart", map[string]any{"productId": 2})
	itemURL := base + "/cart/" + strconv.FormatInt(decodeCart(t, raw).Cart[0].ID, 10)

	tests := []struct {
		name   string
		method string
		url    string
		body   string
		status int
	}{
		{name: "add missing product id", method: http.MethodPost, url: base + "/cart", body: `{"quantity":1}`, status: http.StatusBadRequest},
		{name: "add unknown product", method: http.MethodPost, url: base + "/cart", body: `{"productId":999999}`, status: http.StatusNotFound},
		{name: "add malformed body", method: http.MethodPost, url: base + "/cart", body: `{"productId":`, status: http.StatusBadRequest},
		{name: "add empty body", method: http.MethodPost, url: base + "/cart", body: "", status: http.StatusBadRequest},
		{name: "add trailing data", method: http.MethodPost, url: base + "/cart", body: `{"productId":1}{}`, status: http.StatusBadRequest},
		{name: "add string product id", method: http.MethodPost, url: base + "/cart", body: `{"productId":"1"}`, status: http.StatusBadRequest},
		{name: "add fractional quantity", method: http.MethodPost, url: base + "/cart", body: `{"productId":1,"quantity":1.5}`, status: http.StatusBadRequest},
		{name: "add zero quantity", method: http.MethodPost, url: base + "/cart", body: `{"productId":1,"quantity":0}`, status: http.StatusBadRequest},
		{name: "update missing quantity", method: http.MethodPut, url: itemURL, body: `{}`, status: http.StatusBadRequest},
		{name: "update negative quantity", method: http.MethodPut, url: itemURL, body: `{"quantity":-1}`, status: http.StatusBadRequest},
		{name: "update non-numeric quantity", method: http.MethodPut, url: itemURL, body: `{"quantity":"two"}`, status: http.StatusBadRequest},
		{name: "update unknown item", method: http.MethodPut, url: base + "/cart/1", body: `{"quantity":1}`, status: http.StatusNotFound},
		{name: "update non-numeric item", method: http.MethodPut, url: base + "/cart/abc", body: `{"quantity":1}`, status: http.StatusNotFound},
		{name: "remove unknown item", method: http.MethodDelete, url: base + "/cart/1", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doRaw(t, tt.method, tt.url, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, tt.status, string(raw))
			}

			var e struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(raw, &e); err != nil || e.Error == "" {
				t.Fatalf("missing error body: %s", string(raw))
			}
		})
	}

	resp, raw := doJSON(t, http.MethodGet, base+"/cart", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status=%d", resp.StatusCode)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != 2 || items[0].Quantity != 1 {
		t.Fatalf("rejected calls changed the cart: %+v", items)
	}
}

func TestHTTP_UpdateZeroRemoves(t *testing.T) {
	env := newTestEnv(t)

	_, raw := doJSON(t, http.MethodPost, env.ts.URL+"/cart", map[string]any{"productId": 4, "quantity": 3})
	id := decodeCart(t, raw).Cart[0].ID

	resp, raw := doJSON(t, http.MethodPut, env.ts.URL+"/cart/"+strconv.FormatInt(id, 10), map[string]any{"quantity": 0})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}
	if got := decodeCart(t, raw); len(got.Cart) != 0 {
		t.Fatalf("item not removed: %+v", got.Cart)
	}
}

func TestHTTP_StorageFailure(t *testing.T) {
	env := newTestEnv(t)

	if err := os.RemoveAll(env.dir); err != nil {
		t.Fatalf("remove data dir: %v", err)
	}

	resp, raw := doJSON(t, http.MethodPost, env.ts.URL+"/cart", map[string]any{"productId": 1})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, http.MethodDelete, env.ts.URL+"/cart", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("clear status=%d body=%s", resp.StatusCode, string(raw))
	}
}
