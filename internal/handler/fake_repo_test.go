package handler_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"sdrdemo/internal/model"
	sqlrepo "sdrdemo/pkg/repository"
)

// fakeCustomerRepo is an in-memory CustomerRepositoryInterface.
type fakeCustomerRepo struct {
	mu        sync.Mutex
	rows      map[int64]model.Customer
	nextID    int64
	saveErr   error
	pingErr   error
	lastPage  sqlrepo.PageRequest
	lastQuery string
}

func newFakeCustomerRepo(names ...string) *fakeCustomerRepo {
	r := &fakeCustomerRepo{rows: map[int64]model.Customer{}}
	for _, n := range names {
		c := model.Customer{}
		c.SetName(n)
		_ = r.Save(context.Background(), &c)
	}
	return r
}

func (r *fakeCustomerRepo) sorted() []*model.Customer {
	out := make([]*model.Customer, 0, len(r.rows))
	for _, c := range r.rows {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

func (r *fakeCustomerRepo) FindAll(ctx context.Context, s sqlrepo.Sort) ([]*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *fakeCustomerRepo) FindAllByID(ctx context.Context, ids []int64) ([]*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Customer{}
	for _, id := range ids {
		if c, ok := r.rows[id]; ok {
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, sqlrepo.ErrNotFound)
	}
	return &c, nil
}

func (r *fakeCustomerRepo) FindWhere(ctx context.Context, clause string, s sqlrepo.Sort, args ...any) ([]*model.Customer, error) {
	return nil, errors.New("not supported")
}

func (r *fakeCustomerRepo) Save(ctx context.Context, c *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if c.CustomerID == 0 {
		r.nextID++
		c.AssignID(r.nextID)
	} else if _, ok := r.rows[c.CustomerID]; !ok {
		return fmt.Errorf("customer %d: %w", c.CustomerID, sqlrepo.ErrNotFound)
	}
	r.rows[c.CustomerID] = *c
	return nil
}

func (r *fakeCustomerRepo) SaveAll(ctx context.Context, cs []*model.Customer) error {
	for _, c := range cs {
		if err := r.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCustomerRepo) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("customer %d: %w", id, sqlrepo.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeCustomerRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

func (r *fakeCustomerRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = map[int64]model.Customer{}
	return nil
}

func (r *fakeCustomerRepo) DeleteEntities(ctx context.Context, cs []*model.Customer) error {
	ids := make([]int64, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.CustomerID)
	}
	return r.DeleteByIDs(ctx, ids)
}

func (r *fakeCustomerRepo) DeleteEntity(ctx context.Context, c *model.Customer) error {
	return r.DeleteEntities(ctx, []*model.Customer{c})
}

func (r *fakeCustomerRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), nil
}

func (r *fakeCustomerRepo) FindAllPaginated(ctx context.Context, page sqlrepo.PageRequest) (*sqlrepo.Page[model.Customer], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPage = page
	if !page.Valid() {
		return nil, fmt.Errorf("%w: page %d size %d", sqlrepo.ErrInvalidPage, page.Page, page.Size)
	}
	for _, o := range page.Sort {
		if _, ok := model.CustomerSchema().ColumnFor(o.Property); !ok {
			return nil, fmt.Errorf("%w: %q", sqlrepo.ErrInvalidSort, o.Property)
		}
	}

	all := r.sorted()
	start := min(page.Offset(), len(all))
	end := min(start+page.Size, len(all))
	return &sqlrepo.Page[model.Customer]{
		Content:       all[start:end],
		Number:        page.Page,
		Size:          page.Size,
		TotalElements: len(all),
		TotalPages:    (len(all) + page.Size - 1) / page.Size,
	}, nil
}

// FindByNameLike emulates SQL LIKE, case-insensitively as under MySQL's
// default collation.
func (r *fakeCustomerRepo) FindByNameLike(ctx context.Context, pattern string) ([]*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = pattern

	var b strings.Builder
	b.WriteString("(?is)^")
	for _, ch := range pattern {
		switch ch {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString("$")
	re := regexp.MustCompile(b.String())

	out := []*model.Customer{}
	for _, c := range r.sorted() {
		if c.Name != nil && re.MatchString(*c.Name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Ping(ctx context.Context) error {
	return r.pingErr
}
