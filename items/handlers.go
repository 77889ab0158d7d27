package items

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/todo-api-go/apperror"
	"github.com/user/todo-api-go/auth"
)

// Service is the surface of ItemService the HTTP handlers depend on.
// Declared as an interface so handler tests can substitute a stub.
type Service interface {
	List(ctx context.Context, ownerID int64) ([]Item, error)
	Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*Item, error)
	Toggle(ctx context.Context, ownerID, itemID int64) (*Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
}

// Handlers wraps the item service to provide HTTP handlers.
type Handlers struct {
	service Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the item routes on the given router. The caller is
// expected to have applied the bearer-token middleware already.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList())
	r.Post("/", h.HandleCreate())
	r.Put("/{id}", h.HandleUpdate())
	r.Patch("/{id}/toggle", h.HandleToggle())
	r.Delete("/{id}", h.HandleDelete())
}

// HandleList godoc
// @Summary List items
// @Description Returns all to-do items owned by the authenticated user.
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} items.Item "Items owned by the caller"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /items [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token provided", nil))
			return
		}

		list, err := h.service.List(r.Context(), claims.UserID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// HandleCreate godoc
// @Summary Create item
// @Description Creates a new, uncompleted to-do item for the authenticated user.
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createBody body items.CreateItemRequest true "Item text"
// @Success 201 {object} items.Item "Created item"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Missing text"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /items [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token provided", nil))
			return
		}

		var req CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("Text is required", nil))
			return
		}
		defer r.Body.Close()

		item, err := h.service.Create(r.Context(), claims.UserID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, item)
	}
}

// HandleUpdate godoc
// @Summary Update item
// @Description Replaces the item's text. Omitting text leaves it unchanged.
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param updateBody body items.UpdateItemRequest true "Fields to update"
// @Success 200 {object} items.Item "Updated item"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /items/{id} [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token provided", nil))
			return
		}

		itemID, err := itemIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		item, err := h.service.Update(r.Context(), claims.UserID, itemID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, item)
	}
}

// HandleToggle godoc
// @Summary Toggle item completion
// @Description Flips the item's completed flag.
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} items.Item "Updated item"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /items/{id}/toggle [patch]
func (h *Handlers) HandleToggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token provided", nil))
			return
		}

		itemID, err := itemIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		item, err := h.service.Toggle(r.Context(), claims.UserID, itemID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, item)
	}
}

// HandleDelete godoc
// @Summary Delete item
// @Description Deletes the item and confirms.
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} items.DeleteResponse "Deletion confirmed"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /items/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("No token provided", nil))
			return
		}

		itemID, err := itemIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), claims.UserID, itemID); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, DeleteResponse{Message: "Todo deleted"})
	}
}

// itemIDParam parses the {id} path parameter. A non-numeric id cannot match
// any stored item, so it answers with the same not-found error as a missing
// one rather than revealing anything about the id space.
func itemIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperror.NewNotFoundError("Todo not found", nil)
	}
	return id, nil
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
