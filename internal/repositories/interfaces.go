package repositories

import (
	"context"

	"github.com/chrisdamba/custgen/internal/models"
)

// CustomerRepository stores generated batches keyed by run id.
type CustomerRepository interface {
	EnsureSchema(ctx context.Context) error
	BulkCreate(ctx context.Context, runID string, customers []models.Customer) error
}
