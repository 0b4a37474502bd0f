package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/service"
)

// memStore is a map-backed store for handler tests.
type memStore struct {
	items  map[string]core.Item
	nextID int
}

func newMemStore() *memStore {
	return &memStore{items: map[string]core.Item{}}
}

func (m *memStore) Create(_ context.Context, item core.Item) (*core.Item, error) {
	m.nextID++
	item.ID = "id-" + string(rune('0'+m.nextID))
	m.items[item.ID] = item
	return &item, nil
}

func (m *memStore) Update(_ context.Context, id string, patch core.Patch, updatedAt time.Time) error {
	if item, ok := m.items[id]; ok {
		patch.Apply(&item)
		item.UpdatedAt = updatedAt
		m.items[id] = item
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memStore) GetAll(_ context.Context, filters core.Filters) ([]core.Item, error) {
	all := make([]core.Item, 0, len(m.items))
	for _, item := range m.items {
		all = append(all, item)
	}
	return filters.Apply(all), nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*core.Item, error) {
	if item, ok := m.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := service.New(store, nil)
	srv := NewServer(":0", svc, 6, log.New(log.DefaultConfig()))
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts, store
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func doRequest(t *testing.T, method, url string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func TestHandleCreateItem(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/items", map[string]any{
		"name":     "Salário",
		"amount":   5000,
		"type":     "income",
		"category": "salary",
		"date":     "2024-01-05",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /api/items status = %d, want 201", resp.StatusCode)
	}

	var item core.Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.ID == "" {
		t.Error("created item has empty id")
	}
	if !item.CreatedAt.Equal(item.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v", item.CreatedAt, item.UpdatedAt)
	}
}

func TestHandleCreateItem_ValidationError(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/items", map[string]any{
		"name":     "",
		"amount":   -5,
		"type":     "income",
		"category": "salary",
		"date":     "2024-01-05",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("POST /api/items status = %d, want 422", resp.StatusCode)
	}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body.Fields["name"]; !ok {
		t.Errorf("response fields = %v, want name violation", body.Fields)
	}
	if _, ok := body.Fields["amount"]; !ok {
		t.Errorf("response fields = %v, want amount violation", body.Fields)
	}
}

func TestHandleCreateItem_BadDate(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/items", map[string]any{
		"name":     "x",
		"amount":   1,
		"type":     "expense",
		"category": "food",
		"date":     "not-a-date",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("POST /api/items status = %d, want 422", resp.StatusCode)
	}
}

func TestHandleListItems_Filters(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, payload := range []map[string]any{
		{"name": "Salário", "amount": 5000, "type": "income", "category": "salary", "date": "2024-01-05"},
		{"name": "Aluguel", "amount": 1500, "type": "expense", "category": "housing", "date": "2024-01-10"},
	} {
		resp := postJSON(t, ts.URL+"/api/items", payload)
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/items?type=income")
	if err != nil {
		t.Fatalf("GET /api/items: %v", err)
	}
	defer resp.Body.Close()

	var items []core.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Salário" {
		t.Errorf("GET ?type=income = %+v, want just Salário", items)
	}

	resp2, err := http.Get(ts.URL + "/api/items?search=alu")
	if err != nil {
		t.Fatalf("GET /api/items: %v", err)
	}
	defer resp2.Body.Close()

	var searched []core.Item
	if err := json.NewDecoder(resp2.Body).Decode(&searched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(searched) != 1 || searched[0].Name != "Aluguel" {
		t.Errorf("GET ?search=alu = %+v, want just Aluguel", searched)
	}
}

func TestHandleGetItem_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/items/missing")
	if err != nil {
		t.Fatalf("GET /api/items/missing: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET absent item status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleUpdateAndDeleteItem(t *testing.T) {
	ts, store := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/items", map[string]any{
		"name": "Mercado", "amount": 400, "type": "expense", "category": "food", "date": "2024-02-01",
	})
	var item core.Item
	_ = json.NewDecoder(resp.Body).Decode(&item)
	resp.Body.Close()

	up := doRequest(t, http.MethodPut, ts.URL+"/api/items/"+item.ID, []byte(`{"amount": 450}`))
	up.Body.Close()
	if up.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT status = %d, want 204", up.StatusCode)
	}
	if store.items[item.ID].Amount != 450 {
		t.Errorf("amount after update = %v, want 450", store.items[item.ID].Amount)
	}

	del := doRequest(t, http.MethodDelete, ts.URL+"/api/items/"+item.ID, nil)
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", del.StatusCode)
	}

	get, err := http.Get(ts.URL + "/api/items/" + item.ID)
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", get.StatusCode)
	}
}

func TestHandleUpdateItem_InvalidPatch(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPut, ts.URL+"/api/items/some-id", []byte(`{"amount": -1}`))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("PUT invalid patch status = %d, want 422", resp.StatusCode)
	}
}

func TestHandleStats(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/items", map[string]any{
		"name": "Salário", "amount": 5000, "type": "income", "category": "salary",
		"date": time.Now().Format("2006-01-02"),
	})
	resp.Body.Close()

	statsResp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET /api/stats: %v", err)
	}
	defer statsResp.Body.Close()

	var stats core.Stats
	if err := json.NewDecoder(statsResp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalIncome != 5000 {
		t.Errorf("stats totalIncome = %v, want 5000", stats.TotalIncome)
	}
	if len(stats.Monthly) != 6 {
		t.Errorf("stats monthly length = %d, want 6", len(stats.Monthly))
	}
}

func TestHandleExportCSV(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/items", map[string]any{
		"name": "Salário", "amount": 5000, "type": "income", "category": "salary", "date": "2024-01-05",
	})
	resp.Body.Close()

	csvResp, err := http.Get(ts.URL + "/api/export.csv")
	if err != nil {
		t.Fatalf("GET /api/export.csv: %v", err)
	}
	defer csvResp.Body.Close()

	if ct := csvResp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("export content type = %q, want text/csv", ct)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(csvResp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("CSV export missing UTF-8 BOM")
	}
	if !strings.Contains(buf.String(), "Salário") {
		t.Error("CSV export missing item record")
	}
}

func TestHandleHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", resp.StatusCode)
	}
}
