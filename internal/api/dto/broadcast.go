package dto

import (
	"context"
	"time"

	"github.com/digiserve/digiserve/internal/domain/broadcast"
	"github.com/digiserve/digiserve/internal/types"
)

// CreateBroadcastRequest represents a request to create a broadcast
type CreateBroadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ToBroadcast converts the request to a broadcast
func (r *CreateBroadcastRequest) ToBroadcast(ctx context.Context) *broadcast.Broadcast {
	return &broadcast.Broadcast{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BROADCAST),
		Title:     r.Title,
		Message:   r.Message,
		IsActive:  true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// UpdateBroadcastRequest represents a request to update a broadcast
type UpdateBroadcastRequest struct {
	Title    *string `json:"title,omitempty"`
	Message  *string `json:"message,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// BroadcastResponse represents a broadcast response
type BroadcastResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListBroadcastsResponse represents a paginated list of broadcasts
type ListBroadcastsResponse struct {
	Items      []*BroadcastResponse     `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// NewBroadcastResponse creates a new broadcast response from a broadcast
func NewBroadcastResponse(b *broadcast.Broadcast) *BroadcastResponse {
	return &BroadcastResponse{
		ID:        b.ID,
		Title:     b.Title,
		Message:   b.Message,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
