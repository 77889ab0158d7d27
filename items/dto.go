package items

// CreateItemRequest is the payload for creating an item.
type CreateItemRequest struct {
	Text string `json:"text" example:"buy milk"`
}

// UpdateItemRequest is the payload for updating an item. Text is a pointer
// so an absent field leaves the stored text unchanged.
type UpdateItemRequest struct {
	Text *string `json:"text,omitempty" example:"buy oat milk"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string `json:"message" example:"Todo deleted"`
}
