package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sdrdemo/internal/model"
	sqlrepo "sdrdemo/pkg/repository"
)

const (
	customerCollection = "customer"
	defaultPageSize    = 20
)

type link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type links map[string]link

type customerResource struct {
	model.Customer
	Links links `json:"_links"`
}

type customerList struct {
	Customers []customerResource `json:"customer"`
}

type pageMetadata struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

type collectionResource struct {
	Embedded customerList `json:"_embedded"`
	Links    links        `json:"_links"`
	Page     pageMetadata `json:"page"`
}

type searchResultResource struct {
	Embedded customerList `json:"_embedded"`
	Links    links        `json:"_links"`
}

type searchIndexResource struct {
	Links links `json:"_links"`
}

// urlBuilder renders absolute links for the customer resource.
type urlBuilder struct {
	root string
}

func newURLBuilder(r *http.Request, basePath string) urlBuilder {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return urlBuilder{root: fmt.Sprintf("%s://%s%s/%s", scheme, r.Host, strings.TrimSuffix(basePath, "/"), customerCollection)}
}

func (u urlBuilder) collection() string {
	return u.root
}

func (u urlBuilder) item(id int64) string {
	return u.root + "/" + strconv.FormatInt(id, 10)
}

func (u urlBuilder) search() string {
	return u.root + "/search"
}

func (u urlBuilder) page(number, size int, sort []string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(number))
	q.Set("size", strconv.Itoa(size))
	for _, s := range sort {
		q.Add("sort", s)
	}
	return u.root + "?" + q.Encode()
}

func (u urlBuilder) resource(c *model.Customer) customerResource {
	self := u.item(c.CustomerID)
	return customerResource{
		Customer: *c,
		Links: links{
			"self":             {Href: self},
			customerCollection: {Href: self},
		},
	}
}

func (u urlBuilder) resources(customers []*model.Customer) []customerResource {
	out := make([]customerResource, 0, len(customers))
	for _, c := range customers {
		out = append(out, u.resource(c))
	}
	return out
}

func (u urlBuilder) collectionResource(page *sqlrepo.Page[model.Customer], sort []string) collectionResource {
	l := links{
		"self":   {Href: u.page(page.Number, page.Size, sort)},
		"search": {Href: u.search()},
	}
	if page.HasNext() {
		l["next"] = link{Href: u.page(page.Number+1, page.Size, sort)}
	}
	if page.HasPrevious() {
		l["prev"] = link{Href: u.page(page.Number-1, page.Size, sort)}
	}
	return collectionResource{
		Embedded: customerList{Customers: u.resources(page.Content)},
		Links:    l,
		Page: pageMetadata{
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			Number:        page.Number,
		},
	}
}
