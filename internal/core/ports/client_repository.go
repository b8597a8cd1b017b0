package ports

import (
	"context"

	"github.com/clientbook/payments-api/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Insert(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// List returns clients matching the search term ordered by (name, id).
	// An empty search returns every client. Matching is a case-insensitive
	// substring test against name, phone, and email.
	List(ctx context.Context, search string) ([]*domain.Client, error)
	// Update replaces the mutable fields of an existing client and returns
	// the updated document, or domain.ErrClientNotFound.
	Update(ctx context.Context, id string, c *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
