package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/normalize"
	"github.com/hyperjump/erabu/internal/selector"
	"github.com/hyperjump/erabu/internal/source"
	"go.uber.org/zap"
)

type mockReloader struct {
	calls  int
	report *source.Report
	err    error
}

func (m *mockReloader) Reload() (*source.Report, error) {
	m.calls++
	return m.report, m.err
}

func newTestServer(t *testing.T, reloader CatalogReloader) (*Server, *catalog.Store) {
	t.Helper()
	raws := []models.RawProduct{
		{ID: 1, Title: "Aluminum Step Ladder", Handle: "step-ladder", Vendor: "Acme", ProductType: "Ladder",
			Tags: "aluminum, folding", Variants: []models.RawVariant{{Price: "120"}}},
		{ID: 2, Title: "Fiberglass Extension Ladder", Handle: "extension-ladder", Vendor: "ProClimb", ProductType: "Ladder",
			Tags: "fiberglass", Variants: []models.RawVariant{{Price: "250"}}},
		{ID: 3, Title: "Work Platform", Handle: "work-platform", Vendor: "Acme", ProductType: "Platform",
			Tags: "aluminum", Variants: []models.RawVariant{{Price: "180"}}},
	}
	res := normalize.LoadRaw(raws)
	store := catalog.NewStore()
	store.Load(res.Products)
	sel := selector.NewSelector(store, nil, zap.NewNop())
	return NewServer(sel, store, reloader, &config.ServerConfig{Port: 8080}, zap.NewNop()), store
}

func do(t *testing.T, srv *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	return w
}

func TestHandleSelect(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	body, _ := json.Marshal(models.SelectionRequest{Query: "aluminum ladder"})
	w := do(t, srv, http.MethodPost, "/api/v1/select", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var out models.SelectionResult
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Products) == 0 || out.Products[0].ID != 1 {
		t.Errorf("expected product 1 first, got %+v", out.Products)
	}
	if out.Products[0].Reason != "Best match for your query" {
		t.Errorf("reason: got %q", out.Products[0].Reason)
	}
	if out.SearchQuery != "aluminum ladder" {
		t.Errorf("search_query: got %q", out.SearchQuery)
	}
}

func TestHandleSelect_EmptyBodyBrowses(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodPost, "/api/v1/select", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out models.SelectionResult
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.TotalFound != 3 || len(out.Products) != 3 {
		t.Errorf("browse: total=%d products=%d", out.TotalFound, len(out.Products))
	}
}

func TestHandleSelect_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodPost, "/api/v1/select", []byte("{not json"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleSelect_TextFormat(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	body, _ := json.Marshal(models.SelectionRequest{Query: "platform"})
	w := do(t, srv, http.MethodPost, "/api/v1/select?format=text", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "1. Work Platform (Platform) $180.00") {
		t.Errorf("summary: got %q", w.Body.String())
	}
}

func TestHandleProducts(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodGet, "/api/v1/products?ids=3,99,1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Products []models.ProductCard `json:"products"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Products) != 2 || out.Products[0].ID != 3 || out.Products[1].ID != 1 {
		t.Errorf("products: got %+v", out.Products)
	}

	for _, target := range []string{"/api/v1/products", "/api/v1/products?ids=1,abc"} {
		if w := do(t, srv, http.MethodGet, target, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, w.Code)
		}
	}
}

func TestHandleSimilar(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodGet, "/api/v1/products/1/similar?limit=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Products []models.ProductCard `json:"products"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Products) != 1 || out.Products[0].ID == 1 {
		t.Errorf("similar: got %+v", out.Products)
	}

	tests := []string{
		"/api/v1/products/abc/similar",
		"/api/v1/products/1/similar?limit=0",
		"/api/v1/products/1/similar?limit=x",
	}
	for _, target := range tests {
		if w := do(t, srv, http.MethodGet, target, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, w.Code)
		}
	}
}

func TestHandleStats(t *testing.T) {
	srv, store := newTestServer(t, nil)
	w := do(t, srv, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		TotalProducts int    `json:"total_products"`
		Version       string `json:"version"`
		PriceRange    struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"price_range"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.TotalProducts != 3 || out.Version != store.Snapshot().Version {
		t.Errorf("stats: got %+v", out)
	}
	if out.PriceRange.Min != 120 || out.PriceRange.Max != 250 {
		t.Errorf("price range: got %+v", out.PriceRange)
	}
}

func TestHandleReload(t *testing.T) {
	mock := &mockReloader{report: &source.Report{Version: "v2", Loaded: 3}}
	srv, _ := newTestServer(t, mock)
	w := do(t, srv, http.MethodPost, "/api/v1/catalog/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if mock.calls != 1 {
		t.Errorf("reload calls: got %d", mock.calls)
	}
	var out source.Report
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Version != "v2" || out.Loaded != 3 {
		t.Errorf("report: got %+v", out)
	}
}

func TestHandleReload_Errors(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	if w := do(t, srv, http.MethodPost, "/api/v1/catalog/reload", nil); w.Code != http.StatusNotImplemented {
		t.Errorf("status: got %d, want 501", w.Code)
	}

	failing, _ := newTestServer(t, &mockReloader{err: errors.New("boom")})
	if w := do(t, failing, http.MethodPost, "/api/v1/catalog/reload", nil); w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["status"] != "ok" {
		t.Errorf("health: got %v", out)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs(" 1, ,2,3 ")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Errorf("parseIDs: got %v", ids)
	}
	if _, err := parseIDs("1,two"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
