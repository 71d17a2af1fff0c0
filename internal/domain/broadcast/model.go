package broadcast

import (
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// Broadcast is an administrator announcement shown to customers
type Broadcast struct {
	// Unique identifier for this broadcast
	ID string `json:"id"`
	// Short headline
	Title string `json:"title"`
	// Body of the announcement
	Message string `json:"message"`
	// Whether the announcement is currently shown
	IsActive bool `json:"is_active"`

	types.BaseModel
}

// Validate validates the broadcast
func (b *Broadcast) Validate() error {
	if b.Title == "" {
		return ierr.NewError("invalid title").
			WithHint("Title is required").
			Mark(ierr.ErrValidation)
	}
	if b.Message == "" {
		return ierr.NewError("invalid message").
			WithHint("Message is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the broadcast
func (b *Broadcast) TableName() string {
	return "broadcasts"
}
