package domain

import (
	"errors"
	"time"
)

var ErrSweetNotFound = errors.New("sweet not found")
var ErrSweetExists = errors.New("sweet already exists")
var ErrInsufficientStock = errors.New("insufficient stock")
var ErrForbidden = errors.New("access forbidden")

// ValidationError reports malformed or out-of-range input. The message is
// surfaced verbatim to the client with a 400 status.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given client-facing message.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// Sweet is the catalog aggregate. QuantityInStock is the only mutable
// counter; it must never go negative.
type Sweet struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Category        string    `json:"category" bson:"category"`
	Price           float64   `json:"price" bson:"price"`
	QuantityInStock int       `json:"quantityInStock" bson:"quantityInStock"`
	Image           string    `json:"image" bson:"image"`
	CreatedAt       time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updatedAt"`
}
