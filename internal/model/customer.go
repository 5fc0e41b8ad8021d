package model

import "sdrdemo/pkg/repository"

// Customer is a row of the customer table. CustomerID is assigned by the
// database on insert; the text fields are nullable.
type Customer struct {
	CustomerID    int64   `db:"customer_id" json:"customerId"`
	Name          *string `db:"name" json:"name"`
	Email         *string `db:"email" json:"email"`
	FavoriteColor *string `db:"favorite_color" json:"favoriteColor"`
}

var customerSchema = repository.Schema{
	Table: "customer",
	ID:    repository.Column{Property: "customerId", Name: "customer_id"},
	Columns: []repository.Column{
		{Property: "name", Name: "name"},
		{Property: "email", Name: "email"},
		{Property: "favoriteColor", Name: "favorite_color"},
	},
}

func CustomerSchema() repository.Schema {
	return customerSchema
}

func (c Customer) GetID() int64 {
	return c.CustomerID
}

func (c Customer) GetSchema() repository.Schema {
	return customerSchema
}

func (c Customer) ToMap() map[string]any {
	return map[string]any{
		"name":           c.Name,
		"email":          c.Email,
		"favorite_color": c.FavoriteColor,
	}
}

func (c *Customer) AssignID(id int64) {
	c.CustomerID = id
}

func (c Customer) GetName() string          { return deref(c.Name) }
func (c Customer) GetEmail() string         { return deref(c.Email) }
func (c Customer) GetFavoriteColor() string { return deref(c.FavoriteColor) }

func (c *Customer) SetName(name string)                   { c.Name = &name }
func (c *Customer) SetEmail(email string)                 { c.Email = &email }
func (c *Customer) SetFavoriteColor(favoriteColor string) { c.FavoriteColor = &favoriteColor }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
