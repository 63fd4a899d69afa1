package handler

import (
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createSweetRequest) ports.CreateSweetInput {
	input := ports.CreateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Image:    req.Image,
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}
	return input
}

func toUpdateInput(req updateSweetRequest) ports.UpdateSweetInput {
	return ports.UpdateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    req.Image,
	}
}

// --- Service result → HTTP response ---

func toSweetResponse(r *ports.SweetResult) sweetResponse {
	return sweetResponse{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Price:     r.Price,
		Quantity:  r.Quantity,
		Image:     r.Image,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toSweetResponses(results []ports.SweetResult) []sweetResponse {
	out := make([]sweetResponse, 0, len(results))
	for i := range results {
		out = append(out, toSweetResponse(&results[i]))
	}
	return out
}
