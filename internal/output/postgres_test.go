package output

import (
	"context"
	"errors"
	"testing"

	"github.com/chrisdamba/custgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomerRepository struct {
	schemaErr error
	createErr error
	runs      map[string][]models.Customer
	creates   int
}

func (f *fakeCustomerRepository) EnsureSchema(ctx context.Context) error {
	return f.schemaErr
}

func (f *fakeCustomerRepository) BulkCreate(ctx context.Context, runID string, customers []models.Customer) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if f.runs == nil {
		f.runs = make(map[string][]models.Customer)
	}
	f.runs[runID] = append(f.runs[runID], customers...)
	return nil
}

func TestPostgresOutputCopiesBatchOnClose(t *testing.T) {
	repo := &fakeCustomerRepository{}
	out, err := NewPostgresOutputWithRepository(context.Background(), repo, "run-1")
	require.NoError(t, err)

	customers := []models.Customer{
		{ID: 1, Class: 0, ArrivalTime: 5, ServiceTime: 2},
		{ID: 2, Class: 1, ArrivalTime: 7, ServiceTime: 1},
	}
	for _, c := range customers {
		require.NoError(t, out.WriteCustomer(c))
	}
	assert.Zero(t, repo.creates)

	require.NoError(t, out.Close())
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, customers, repo.runs["run-1"])
}

func TestPostgresOutputEmptyBatch(t *testing.T) {
	repo := &fakeCustomerRepository{}
	out, err := NewPostgresOutputWithRepository(context.Background(), repo, "run-1")
	require.NoError(t, err)

	require.NoError(t, out.Close())
	assert.Zero(t, repo.creates)
}

func TestPostgresOutputErrors(t *testing.T) {
	_, err := NewPostgresOutputWithRepository(context.Background(), &fakeCustomerRepository{schemaErr: errors.New("permission denied")}, "run-1")
	assert.ErrorContains(t, err, "permission denied")

	copyErr := errors.New("connection reset")
	out, err := NewPostgresOutputWithRepository(context.Background(), &fakeCustomerRepository{createErr: copyErr}, "run-1")
	require.NoError(t, err)
	require.NoError(t, out.WriteCustomer(models.Customer{ID: 1}))
	assert.ErrorIs(t, out.Close(), copyErr)
}
