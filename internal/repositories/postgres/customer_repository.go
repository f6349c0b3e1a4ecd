package postgres

import (
	"context"

	"github.com/chrisdamba/custgen/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var customerColumns = []string{"run_id", "id", "class", "arrival_time", "service_time"}

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS customers (
            run_id       TEXT        NOT NULL,
            id           INTEGER     NOT NULL,
            class        INTEGER     NOT NULL,
            arrival_time INTEGER     NOT NULL,
            service_time INTEGER     NOT NULL,
            created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
            PRIMARY KEY (run_id, id)
        )
    `
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *CustomerRepository) BulkCreate(ctx context.Context, runID string, customers []models.Customer) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"customers"},
		customerColumns,
		customerRows(runID, customers),
	)
	return err
}

func customerRows(runID string, customers []models.Customer) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(customers), func(i int) ([]interface{}, error) {
		return []interface{}{
			runID,
			customers[i].ID,
			customers[i].Class,
			customers[i].ArrivalTime,
			customers[i].ServiceTime,
		}, nil
	})
}

func (r *CustomerRepository) GetByRunID(ctx context.Context, runID string) ([]models.Customer, error) {
	query := `
        SELECT id, class, arrival_time, service_time
        FROM customers
        WHERE run_id = $1
        ORDER BY id
    `
	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Class,
			&customer.ArrivalTime,
			&customer.ServiceTime,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) DeleteRun(ctx context.Context, runID string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE run_id = $1", runID)
	return err
}
