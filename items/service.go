package items

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/todo-api-go/apperror"
)

// ItemService provides item CRUD scoped to an owner. The mutating
// operations (update, toggle, delete) run as single conditional statements
// so the ownership check and the mutation are one atomic store operation;
// there is no read-then-write gap for concurrent requests to race through.
type ItemService struct {
	dbPool *pgxpool.Pool
}

// NewItemService creates a new ItemService.
func NewItemService(dbPool *pgxpool.Pool) *ItemService {
	return &ItemService{dbPool: dbPool}
}

// notFound is the error for an item that is absent or belongs to another
// owner. The two cases are deliberately indistinguishable so responses leak
// no existence or ownership information.
func notFound() *apperror.AppError {
	return apperror.NewNotFoundError("Todo not found", nil)
}

// List returns all items owned by the caller.
func (s *ItemService) List(ctx context.Context, ownerID int64) ([]Item, error) {
	query := `SELECT id, owner_id, text, completed, created_at
	          FROM todo_items
	          WHERE owner_id = $1
	          ORDER BY id`
	rows, err := s.dbPool.Query(ctx, query, ownerID)
	if err != nil {
		log.Printf("Error fetching todos for user %d: %v", ownerID, err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Text, &it.Completed, &it.CreatedAt); err != nil {
			log.Printf("Error scanning todo row for user %d: %v", ownerID, err)
			return nil, apperror.NewDatabaseError("Server error", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating todo rows for user %d: %v", ownerID, err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	return items, nil
}

// Create persists a new, uncompleted item for the caller. Text is required;
// validation fails before any store access.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*Item, error) {
	if req.Text == "" {
		return nil, apperror.NewValidationError("Text is required", nil)
	}

	item := &Item{OwnerID: ownerID, Text: req.Text}
	query := `INSERT INTO todo_items (owner_id, text)
	          VALUES ($1, $2)
	          RETURNING id, completed, created_at`
	err := s.dbPool.QueryRow(ctx, query, ownerID, req.Text).Scan(&item.ID, &item.Completed, &item.CreatedAt)
	if err != nil {
		log.Printf("Error creating todo for user %d: %v", ownerID, err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	return item, nil
}

// Update replaces the item's text when the request provides one; an absent
// text leaves it unchanged. The predicate scopes by id and owner in the
// same statement.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*Item, error) {
	var item Item
	query := `UPDATE todo_items
	          SET text = COALESCE($3, text)
	          WHERE id = $1 AND owner_id = $2
	          RETURNING id, owner_id, text, completed, created_at`
	err := s.dbPool.QueryRow(ctx, query, itemID, ownerID, req.Text).Scan(
		&item.ID, &item.OwnerID, &item.Text, &item.Completed, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound()
		}
		log.Printf("Error updating todo %d for user %d: %v", itemID, ownerID, err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	return &item, nil
}

// Toggle flips the item's completion flag.
func (s *ItemService) Toggle(ctx context.Context, ownerID, itemID int64) (*Item, error) {
	var item Item
	query := `UPDATE todo_items
	          SET completed = NOT completed
	          WHERE id = $1 AND owner_id = $2
	          RETURNING id, owner_id, text, completed, created_at`
	err := s.dbPool.QueryRow(ctx, query, itemID, ownerID).Scan(
		&item.ID, &item.OwnerID, &item.Text, &item.Completed, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound()
		}
		log.Printf("Error toggling todo %d for user %d: %v", itemID, ownerID, err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	return &item, nil
}

// Delete removes the item, again locating and removing in one statement
// scoped by id and owner.
func (s *ItemService) Delete(ctx context.Context, ownerID, itemID int64) error {
	var deletedID int64
	query := `DELETE FROM todo_items
	          WHERE id = $1 AND owner_id = $2
	          RETURNING id`
	err := s.dbPool.QueryRow(ctx, query, itemID, ownerID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound()
		}
		log.Printf("Error deleting todo %d for user %d: %v", itemID, ownerID, err)
		return apperror.NewDatabaseError("Server error", err)
	}

	return nil
}
