package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

func NewEntityRepository[E Entity[ID], ID comparable](db *sql.DB) Repository[E, ID] {
	return NewEntityRepositoryx[E, ID](sqlx.NewDb(db, "mysql"))
}

func NewEntityRepositoryx[E Entity[ID], ID comparable](db *sqlx.DB) Repository[E, ID] {
	var emptyEntity E
	return &entityRepository[E, ID]{
		DB:     db,
		schema: emptyEntity.GetSchema(),
	}
}

type entityRepository[E Entity[ID], ID comparable] struct {
	DB     *sqlx.DB
	schema Schema
}

func (r *entityRepository[E, ID]) selectColumns() string {
	names := make([]string, 0, len(r.schema.Columns)+1)
	names = append(names, r.schema.ID.Name)
	for _, c := range r.schema.Columns {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// orderBy renders sort as an ORDER BY clause. The id column is always the
// last key so that equal sort values keep a stable order across pages.
func (r *entityRepository[E, ID]) orderBy(sort Sort) (string, error) {
	keys := make([]string, 0, len(sort)+1)
	idSorted := false
	for _, o := range sort {
		column, ok := r.schema.ColumnFor(o.Property)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidSort, o.Property)
		}
		dir := Direction(strings.ToUpper(string(o.Direction)))
		switch dir {
		case "":
			dir = Asc
		case Asc, Desc:
		default:
			return "", fmt.Errorf("%w: direction %q", ErrInvalidSort, o.Direction)
		}
		if column == r.schema.ID.Name {
			idSorted = true
		}
		keys = append(keys, column+" "+string(dir))
	}
	if !idSorted {
		keys = append(keys, r.schema.ID.Name+" "+string(Asc))
	}
	return " ORDER BY " + strings.Join(keys, ", "), nil
}

func (r *entityRepository[E, ID]) FindAll(ctx context.Context, sort Sort) ([]*E, error) {
	return r.FindWhere(ctx, "", sort)
}

// FindWhere selects the entities matching clause, a SQL boolean expression
// with ? placeholders bound to args. An empty clause selects every row.
func (r *entityRepository[E, ID]) FindWhere(ctx context.Context, clause string, sort Sort, args ...any) ([]*E, error) {
	order, err := r.orderBy(sort)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", r.selectColumns(), r.schema.Table)
	if clause != "" {
		query += " WHERE " + clause
	}
	query += order

	entities := []*E{}
	if err := r.DB.SelectContext(ctx, &entities, r.DB.Rebind(query), args...); err != nil {
		return nil, storageError("select", r.schema.Table, err)
	}
	return entities, nil
}

func (r *entityRepository[E, ID]) FindByID(ctx context.Context, id ID) (*E, error) {
	var entity E
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", r.selectColumns(), r.schema.Table, r.schema.ID.Name)
	err := r.DB.GetContext(ctx, &entity, r.DB.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %v: %w", r.schema.Table, id, ErrNotFound)
	}
	if err != nil {
		return nil, storageError("select", r.schema.Table, err)
	}
	return &entity, nil
}

func (r *entityRepository[E, ID]) FindAllByID(ctx context.Context, ids []ID) ([]*E, error) {
	if len(ids) == 0 {
		return []*E{}, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf("%s IN (?)", r.schema.ID.Name), ids)
	if err != nil {
		return nil, storageError("select", r.schema.Table, err)
	}
	return r.FindWhere(ctx, query, nil, args...)
}

// Save inserts entity when its id is the zero value and updates the stored
// row otherwise. Inserted entities implementing GeneratedID receive the id
// assigned by the store.
func (r *entityRepository[E, ID]) Save(ctx context.Context, entity *E) error {
	return r.save(ctx, r.DB, entity)
}

func (r *entityRepository[E, ID]) SaveAll(ctx context.Context, entities []*E) error {
	if len(entities) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("begin", r.schema.Table, err)
	}
	defer tx.Rollback()

	for _, entity := range entities {
		if err := r.save(ctx, tx, entity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit", r.schema.Table, err)
	}
	return nil
}

func (r *entityRepository[E, ID]) save(ctx context.Context, ext sqlx.ExtContext, entity *E) error {
	var zero ID
	if (*entity).GetID() == zero {
		return r.insert(ctx, ext, entity)
	}
	return r.update(ctx, ext, entity)
}

func (r *entityRepository[E, ID]) columnValues(entity *E) ([]string, []any) {
	values := (*entity).ToMap()
	columns := make([]string, 0, len(r.schema.Columns))
	args := make([]any, 0, len(r.schema.Columns))
	for _, c := range r.schema.Columns {
		columns = append(columns, c.Name)
		args = append(args, values[c.Name])
	}
	return columns, args
}

func (r *entityRepository[E, ID]) insert(ctx context.Context, ext sqlx.ExtContext, entity *E) error {
	columns, args := r.columnValues(entity)
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.schema.Table, strings.Join(columns, ","), placeholders)

	result, err := ext.ExecContext(ctx, ext.Rebind(query), args...)
	if err != nil {
		return storageError("insert", r.schema.Table, err)
	}

	if generated, ok := any(entity).(GeneratedID); ok {
		lastInsertID, err := result.LastInsertId()
		if err != nil {
			return storageError("insert", r.schema.Table, err)
		}
		generated.AssignID(lastInsertID)
	}
	return nil
}

func (r *entityRepository[E, ID]) update(ctx context.Context, ext sqlx.ExtContext, entity *E) error {
	columns, args := r.columnValues(entity)
	assignments := make([]string, len(columns))
	for i, c := range columns {
		assignments[i] = c + " = ?"
	}
	id := (*entity).GetID()
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", r.schema.Table, strings.Join(assignments, ", "), r.schema.ID.Name)

	result, err := ext.ExecContext(ctx, ext.Rebind(query), args...)
	if err != nil {
		return storageError("update", r.schema.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("update", r.schema.Table, err)
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the values did not change, so
	// tell "unchanged" apart from "missing".
	exists, err := r.exists(ctx, ext, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s %v: %w", r.schema.Table, id, ErrNotFound)
	}
	return nil
}

func (r *entityRepository[E, ID]) DeleteByID(ctx context.Context, id ID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", r.schema.Table, r.schema.ID.Name)
	result, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), id)
	if err != nil {
		return storageError("delete", r.schema.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("delete", r.schema.Table, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %v: %w", r.schema.Table, id, ErrNotFound)
	}
	return nil
}

func (r *entityRepository[E, ID]) DeleteByIDs(ctx context.Context, ids []ID) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE %s IN (?)", r.schema.Table, r.schema.ID.Name), ids)
	if err != nil {
		return storageError("delete", r.schema.Table, err)
	}
	if _, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...); err != nil {
		return storageError("delete", r.schema.Table, err)
	}
	return nil
}

func (r *entityRepository[E, ID]) DeleteAll(ctx context.Context) error {
	query := fmt.Sprintf("DELETE FROM %s", r.schema.Table)
	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return storageError("delete", r.schema.Table, err)
	}
	return nil
}

func (r *entityRepository[E, ID]) DeleteEntities(ctx context.Context, entities []*E) error {
	ids := make([]ID, 0, len(entities))
	for _, entity := range entities {
		ids = append(ids, (*entity).GetID())
	}
	return r.DeleteByIDs(ctx, ids)
}

func (r *entityRepository[E, ID]) DeleteEntity(ctx context.Context, entity *E) error {
	return r.DeleteEntities(ctx, []*E{entity})
}

func (r *entityRepository[E, ID]) ExistsByID(ctx context.Context, id ID) (bool, error) {
	return r.exists(ctx, r.DB, id)
}

func (r *entityRepository[E, ID]) exists(ctx context.Context, q sqlx.QueryerContext, id ID) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", r.schema.Table, r.schema.ID.Name)
	if err := sqlx.GetContext(ctx, q, &count, r.DB.Rebind(query), id); err != nil {
		return false, storageError("select", r.schema.Table, err)
	}
	return count > 0, nil
}

func (r *entityRepository[E, ID]) Count(ctx context.Context) (int, error) {
	var totalCount int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.schema.Table)
	if err := r.DB.GetContext(ctx, &totalCount, query); err != nil {
		return 0, storageError("count", r.schema.Table, err)
	}
	return totalCount, nil
}

func (r *entityRepository[E, ID]) FindAllPaginated(ctx context.Context, page PageRequest) (*Page[E], error) {
	if !page.Valid() {
		return nil, fmt.Errorf("%w: page %d size %d", ErrInvalidPage, page.Page, page.Size)
	}
	order, err := r.orderBy(page.Sort)
	if err != nil {
		return nil, err
	}

	entities := []*E{}
	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT ? OFFSET ?", r.selectColumns(), r.schema.Table, order)
	if err := r.DB.SelectContext(ctx, &entities, r.DB.Rebind(query), page.Size, page.Offset()); err != nil {
		return nil, storageError("select", r.schema.Table, err)
	}

	totalCount, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Page[E]{
		Content:       entities,
		Number:        page.Page,
		Size:          page.Size,
		TotalElements: totalCount,
		TotalPages:    (totalCount + page.Size - 1) / page.Size,
	}, nil
}
