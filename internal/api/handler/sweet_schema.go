package handler

import "time"

// messageResponse is the standard envelope for confirmations and errors.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

// createSweetRequest requires presence only; range checks live in the
// service so out-of-range values get their own messages.
type createSweetRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price"    validate:"required"`
	Quantity *int     `json:"quantity"`
	Image    string   `json:"image"    validate:"required"`
}

type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
	Image    *string  `json:"image"`
}

type stockRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// --- Response types ---

// sweetResponse is the external representation of a catalog entry. The
// persisted quantityInStock field is exposed as "quantity".
type sweetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// stockResponse confirms a purchase or restock together with the updated sweet.
type stockResponse struct {
	Message string        `json:"message"`
	Sweet   sweetResponse `json:"sweet"`
}
