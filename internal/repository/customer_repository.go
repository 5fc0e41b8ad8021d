package repository

import (
	"context"
	"database/sql"

	"sdrdemo/internal/model"
	sqlrepo "sdrdemo/pkg/repository"
)

// CustomerRepositoryInterface is what the HTTP layer depends on.
type CustomerRepositoryInterface interface {
	sqlrepo.Repository[model.Customer, int64]
	FindByNameLike(ctx context.Context, pattern string) ([]*model.Customer, error)
	Ping(ctx context.Context) error
}

// CustomerRepository adds the customer queries to the generic CRUD repository.
type CustomerRepository struct {
	sqlrepo.Repository[model.Customer, int64]
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{
		Repository: sqlrepo.NewEntityRepository[model.Customer, int64](db),
		DB:         db,
	}
}

// FindByNameLike returns the customers whose name matches pattern under SQL
// LIKE: % matches any run of characters, _ exactly one, and \ escapes
// either. The pattern is not wrapped, so "Jo" only matches "Jo". Case
// sensitivity follows the column collation. Rows with a NULL name never
// match. Results are ordered by customer id.
func (r *CustomerRepository) FindByNameLike(ctx context.Context, pattern string) ([]*model.Customer, error) {
	return r.FindWhere(ctx, "name LIKE ?", nil, pattern)
}

func (r *CustomerRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
