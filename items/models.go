// Package items implements ownership-scoped CRUD over to-do items.
// Every operation takes the owner's identity from the verified token claims
// attached to the request context, never from client-supplied input, and
// every query is restricted to rows whose owner matches that identity.
package items

import "time"

// Item represents a to-do item belonging to a single user.
type Item struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
