package items

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/user/todo-api-go/apperror"
	"github.com/user/todo-api-go/auth"
)

type stubItemService struct {
	listResp   []Item
	listErr    error
	createResp *Item
	createErr  error
	updateResp *Item
	updateErr  error
	toggleResp *Item
	toggleErr  error
	deleteErr  error

	gotOwnerID int64
	gotItemID  int64
	called     bool
}

func (s *stubItemService) List(ctx context.Context, ownerID int64) ([]Item, error) {
	s.called, s.gotOwnerID = true, ownerID
	return s.listResp, s.listErr
}

func (s *stubItemService) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*Item, error) {
	s.called, s.gotOwnerID = true, ownerID
	return s.createResp, s.createErr
}

func (s *stubItemService) Update(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*Item, error) {
	s.called, s.gotOwnerID, s.gotItemID = true, ownerID, itemID
	return s.updateResp, s.updateErr
}

func (s *stubItemService) Toggle(ctx context.Context, ownerID, itemID int64) (*Item, error) {
	s.called, s.gotOwnerID, s.gotItemID = true, ownerID, itemID
	return s.toggleResp, s.toggleErr
}

func (s *stubItemService) Delete(ctx context.Context, ownerID, itemID int64) error {
	s.called, s.gotOwnerID, s.gotItemID = true, ownerID, itemID
	return s.deleteErr
}

// testRouter mounts the handlers behind middleware that injects fixed
// claims, standing in for the bearer-token authorizer.
func testRouter(service Service, userID int64) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims := &auth.Claims{UserID: userID, Username: "alice"}
			next.ServeHTTP(w, req.WithContext(auth.NewContextWithClaims(req.Context(), claims)))
		})
	})
	NewHandlers(service).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleListReturnsOwnerItems(t *testing.T) {
	stub := &stubItemService{
		listResp: []Item{
			{ID: 1, OwnerID: 42, Text: "buy milk", CreatedAt: time.Now()},
			{ID: 2, OwnerID: 42, Text: "walk dog", Completed: true, CreatedAt: time.Now()},
		},
	}
	rec := doRequest(t, testRouter(stub, 42), http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if stub.gotOwnerID != 42 {
		t.Fatalf("service received owner %d, want 42", stub.gotOwnerID)
	}
	var list []Item
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 2 || list[0].Text != "buy milk" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestHandleListWithoutClaims(t *testing.T) {
	stub := &stubItemService{}
	r := chi.NewRouter()
	NewHandlers(stub).RegisterRoutes(r)

	rec := doRequest(t, r, http.MethodGet, "/", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if stub.called {
		t.Fatal("service was called without claims in context")
	}
}

func TestHandleCreateSuccess(t *testing.T) {
	stub := &stubItemService{
		createResp: &Item{ID: 9, OwnerID: 42, Text: "buy milk", CreatedAt: time.Now()},
	}
	body := bytes.NewBufferString(`{"text":"buy milk"}`)
	rec := doRequest(t, testRouter(stub, 42), http.MethodPost, "/", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var item Item
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if item.ID != 9 || item.Completed {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestHandleCreateMissingText(t *testing.T) {
	stub := &stubItemService{
		createErr: apperror.NewValidationError("Text is required", nil),
	}
	body := bytes.NewBufferString(`{}`)
	rec := doRequest(t, testRouter(stub, 42), http.MethodPost, "/", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp apperror.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Text is required" {
		t.Fatalf("message = %q, want %q", resp.Message, "Text is required")
	}
}

func TestHandleUpdateNotFound(t *testing.T) {
	stub := &stubItemService{
		updateErr: apperror.NewNotFoundError("Todo not found", nil),
	}
	body := bytes.NewBufferString(`{"text":"new text"}`)
	rec := doRequest(t, testRouter(stub, 42), http.MethodPut, "/5", body)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if stub.gotItemID != 5 {
		t.Fatalf("service received item id %d, want 5", stub.gotItemID)
	}
}

func TestHandleUpdateNonNumericID(t *testing.T) {
	stub := &stubItemService{}
	body := bytes.NewBufferString(`{"text":"new text"}`)
	rec := doRequest(t, testRouter(stub, 42), http.MethodPut, "/not-a-number", body)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if stub.called {
		t.Fatal("service was called for a non-numeric id")
	}
}

func TestHandleToggleSuccess(t *testing.T) {
	stub := &stubItemService{
		toggleResp: &Item{ID: 5, OwnerID: 42, Text: "buy milk", Completed: true, CreatedAt: time.Now()},
	}
	rec := doRequest(t, testRouter(stub, 42), http.MethodPatch, "/5/toggle", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var item Item
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !item.Completed {
		t.Fatalf("expected completed item, got %+v", item)
	}
	if stub.gotOwnerID != 42 || stub.gotItemID != 5 {
		t.Fatalf("service received owner %d item %d, want 42 and 5", stub.gotOwnerID, stub.gotItemID)
	}
}

func TestHandleDeleteSuccess(t *testing.T) {
	stub := &stubItemService{}
	rec := doRequest(t, testRouter(stub, 42), http.MethodDelete, "/5", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp DeleteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Todo deleted" {
		t.Fatalf("message = %q, want %q", resp.Message, "Todo deleted")
	}
}

func TestHandleDeleteForeignItem(t *testing.T) {
	stub := &stubItemService{
		deleteErr: apperror.NewNotFoundError("Todo not found", nil),
	}
	rec := doRequest(t, testRouter(stub, 7), http.MethodDelete, "/5", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	var resp apperror.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Todo not found" {
		t.Fatalf("message = %q, want %q", resp.Message, "Todo not found")
	}
}
