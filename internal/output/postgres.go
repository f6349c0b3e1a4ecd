package output

import (
	"context"
	"fmt"

	"github.com/chrisdamba/custgen/internal/models"
	"github.com/chrisdamba/custgen/internal/repositories"
	"github.com/chrisdamba/custgen/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOutput collects the batch and copies it into the customers table on Close.
type PostgresOutput struct {
	ctx       context.Context
	repo      repositories.CustomerRepository
	runID     string
	customers []models.Customer
	release   func()
}

func NewPostgresOutput(ctx context.Context, connString, runID string) (*PostgresOutput, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	out, err := NewPostgresOutputWithRepository(ctx, postgres.NewCustomerRepository(pool), runID)
	if err != nil {
		pool.Close()
		return nil, err
	}
	out.release = pool.Close
	return out, nil
}

func NewPostgresOutputWithRepository(ctx context.Context, repo repositories.CustomerRepository, runID string) (*PostgresOutput, error) {
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to create customers table: %w", err)
	}
	return &PostgresOutput{ctx: ctx, repo: repo, runID: runID}, nil
}

func (p *PostgresOutput) WriteCustomer(customer models.Customer) error {
	p.customers = append(p.customers, customer)
	return nil
}

func (p *PostgresOutput) Close() error {
	if p.release != nil {
		defer p.release()
	}
	if len(p.customers) == 0 {
		return nil
	}
	if err := p.repo.BulkCreate(p.ctx, p.runID, p.customers); err != nil {
		return fmt.Errorf("failed to copy %d customers into postgres: %w", len(p.customers), err)
	}
	p.customers = nil
	return nil
}
