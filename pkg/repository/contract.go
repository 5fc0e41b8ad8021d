package repository

import (
	"context"
	"math"
)

// Column binds an entity property to its table column.
type Column struct {
	Property string
	Name     string
}

// Schema is the table mapping of an entity. Columns excludes the id column.
type Schema struct {
	Table   string
	ID      Column
	Columns []Column
}

// ColumnFor resolves a property name (or a column name) to its column.
func (s Schema) ColumnFor(property string) (string, bool) {
	if property == s.ID.Property || property == s.ID.Name {
		return s.ID.Name, true
	}
	for _, c := range s.Columns {
		if property == c.Property || property == c.Name {
			return c.Name, true
		}
	}
	return "", false
}

type Entity[ID comparable] interface {
	GetID() ID
	GetSchema() Schema
	// ToMap returns the non-id column values keyed by column name.
	ToMap() map[string]any
}

// GeneratedID is implemented by entities whose id is assigned by the store on insert.
type GeneratedID interface {
	AssignID(id int64)
}

type Repository[E Entity[ID], ID comparable] interface {
	FindAll(ctx context.Context, sort Sort) ([]*E, error)
	FindAllByID(ctx context.Context, ids []ID) ([]*E, error)
	FindByID(ctx context.Context, id ID) (*E, error)
	FindWhere(ctx context.Context, clause string, sort Sort, args ...any) ([]*E, error)
	Save(ctx context.Context, entity *E) error
	SaveAll(ctx context.Context, entities []*E) error
	DeleteByID(ctx context.Context, id ID) error
	DeleteByIDs(ctx context.Context, ids []ID) error
	DeleteAll(ctx context.Context) error
	DeleteEntities(ctx context.Context, entities []*E) error
	DeleteEntity(ctx context.Context, entity *E) error
	ExistsByID(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int, error)
	FindAllPaginated(ctx context.Context, page PageRequest) (*Page[E], error)
}

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type Order struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

type Sort []Order

// PageRequest selects a zero-based page of Size records.
type PageRequest struct {
	Page int  `json:"page" validate:"min=0"`
	Size int  `json:"size" validate:"min=1,max=1000"`
	Sort Sort `json:"sort,omitempty"`
}

// Valid reports whether p selects a page whose offset fits in an int.
func (p PageRequest) Valid() bool {
	return p.Page >= 0 && p.Size >= 1 && p.Page <= math.MaxInt/p.Size
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

type Page[E any] struct {
	Content       []*E `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
}

func (p *Page[E]) HasNext() bool {
	return p.Number < p.TotalPages-1
}

func (p *Page[E]) HasPrevious() bool {
	return p.Number > 0
}
