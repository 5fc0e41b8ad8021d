package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlrepo "sdrdemo/pkg/repository"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   sqlrepo.Sort
	}{
		{"empty", nil, nil},
		{"property only", []string{"name"}, sqlrepo.Sort{{Property: "name", Direction: sqlrepo.Asc}}},
		{"descending", []string{"name,desc"}, sqlrepo.Sort{{Property: "name", Direction: sqlrepo.Desc}}},
		{"shared direction", []string{"name,email,DESC"}, sqlrepo.Sort{
			{Property: "name", Direction: sqlrepo.Desc},
			{Property: "email", Direction: sqlrepo.Desc},
		}},
		{"repeated", []string{"favoriteColor", "name,desc"}, sqlrepo.Sort{
			{Property: "favoriteColor", Direction: sqlrepo.Asc},
			{Property: "name", Direction: sqlrepo.Desc},
		}},
		{"blank parts", []string{" , name ,"}, sqlrepo.Sort{{Property: "name", Direction: sqlrepo.Asc}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSort(tt.values))
		})
	}
}

func TestPageRequestDefaults(t *testing.T) {
	h := NewCustomerHandler(nil, "/sdrdemo/rest")

	req, err := h.pageRequest(httptest.NewRequest("GET", "/sdrdemo/rest/customer", nil))
	require.NoError(t, err)
	assert.Equal(t, 0, req.Page)
	assert.Equal(t, defaultPageSize, req.Size)
	assert.Empty(t, req.Sort)

	req, err = h.pageRequest(httptest.NewRequest("GET", "/sdrdemo/rest/customer?page=3&size=1000", nil))
	require.NoError(t, err)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 1000, req.Size)
}

func TestURLBuilder(t *testing.T) {
	r := httptest.NewRequest("GET", "/sdrdemo/rest/customer", nil)
	r.Host = "api.local:8080"
	r.Header.Set("X-Forwarded-Proto", "https")

	urls := newURLBuilder(r, "/sdrdemo/rest/")
	assert.Equal(t, "https://api.local:8080/sdrdemo/rest/customer", urls.collection())
	assert.Equal(t, "https://api.local:8080/sdrdemo/rest/customer/7", urls.item(7))
	assert.Equal(t, "https://api.local:8080/sdrdemo/rest/customer?page=1&size=5&sort=name%2Cdesc", urls.page(1, 5, []string{"name,desc"}))
}
