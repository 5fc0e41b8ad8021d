// Package handler exposes the customer repository as a hypermedia REST
// resource.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"sdrdemo/internal/errs"
	"sdrdemo/internal/model"
	"sdrdemo/internal/repository"
	"sdrdemo/internal/sqlerr"
)

// CustomerHandler serves the customer collection, item and search resources.
type CustomerHandler struct {
	Repo     repository.CustomerRepositoryInterface
	BasePath string
	validate *validator.Validate
}

func NewCustomerHandler(repo repository.CustomerRepositoryInterface, basePath string) *CustomerHandler {
	return &CustomerHandler{
		Repo:     repo,
		BasePath: basePath,
		validate: validator.New(),
	}
}

// customerPayload is the writable part of a customer. Any customerId in the
// body is ignored; the path decides which record is written.
type customerPayload struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	FavoriteColor *string `json:"favoriteColor"`
}

func (p customerPayload) apply(c *model.Customer) {
	c.Name = p.Name
	c.Email = p.Email
	c.FavoriteColor = p.FavoriteColor
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/hal+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders err as an errs.HTTPError body. Server-side failures are
// logged with their cause, which is never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := sqlerr.HandleError(err, customerCollection)

	var httpErr *errs.HTTPError
	if !errors.As(mapped, &httpErr) {
		httpErr = errs.NewInternalServerError()
	}

	logger := zerolog.Ctx(r.Context())
	if httpErr.Status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", httpErr.Status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", httpErr.Status).Msg("request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr)
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewBadRequestError("request body is empty", nil, nil)
		}
		return errs.NewBadRequestError("invalid request body: "+err.Error(), nil, nil)
	}
	return nil
}

// List serves GET /customer?page=&size=&sort=.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.Repo.FindAllPaginated(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	urls := newURLBuilder(r, h.BasePath)
	writeJSON(w, http.StatusOK, urls.collectionResource(page, r.URL.Query()["sort"]))
}

// Create serves POST /customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body customerPayload
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	customer := &model.Customer{}
	body.apply(customer)
	if err := h.Repo.Save(r.Context(), customer); err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("customer_id", customer.CustomerID).Msg("customer created")

	urls := newURLBuilder(r, h.BasePath)
	w.Header().Set("Location", urls.item(customer.CustomerID))
	writeJSON(w, http.StatusCreated, urls.resource(customer))
}

// Get serves GET /customer/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newURLBuilder(r, h.BasePath).resource(customer))
}

// Replace serves PUT /customer/{id}. Fields absent from the body become null.
func (h *CustomerHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body customerPayload
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	customer := &model.Customer{CustomerID: id}
	body.apply(customer)
	if err := h.Repo.Save(r.Context(), customer); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newURLBuilder(r, h.BasePath).resource(customer))
}

// Patch serves PATCH /customer/{id}. Only the fields present in the body
// change; an explicit null clears a field.
func (h *CustomerHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body map[string]json.RawMessage
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fields := map[string]**string{
		"name":          &customer.Name,
		"email":         &customer.Email,
		"favoriteColor": &customer.FavoriteColor,
	}
	for key, raw := range body {
		dst, ok := fields[key]
		if !ok {
			continue
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			writeError(w, r, errs.NewBadRequestError(fmt.Sprintf("%s must be a string or null", key), nil,
				[]errs.FieldError{{Field: key, Error: "must be a string or null"}}))
			return
		}
		*dst = v
	}

	if err := h.Repo.Save(r.Context(), customer); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newURLBuilder(r, h.BasePath).resource(customer))
}

// Delete serves DELETE /customer/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Repo.DeleteByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("customer_id", id).Msg("customer deleted")
	w.WriteHeader(http.StatusNoContent)
}

// SearchIndex serves GET /customer/search, listing the exported queries.
func (h *CustomerHandler) SearchIndex(w http.ResponseWriter, r *http.Request) {
	urls := newURLBuilder(r, h.BasePath)
	writeJSON(w, http.StatusOK, searchIndexResource{Links: links{
		"findByNameLike": {Href: urls.search() + "/findByNameLike{?name}", Templated: true},
		"self":           {Href: urls.search()},
	}})
}

// FindByNameLike serves GET /customer/search/findByNameLike?name=pattern.
func (h *CustomerHandler) FindByNameLike(w http.ResponseWriter, r *http.Request) {
	values, ok := r.URL.Query()["name"]
	if !ok {
		writeError(w, r, errs.NewBadRequestError("name is required", nil,
			[]errs.FieldError{{Field: "name", Error: "is required"}}))
		return
	}

	customers, err := h.Repo.FindByNameLike(r.Context(), values[0])
	if err != nil {
		writeError(w, r, err)
		return
	}

	urls := newURLBuilder(r, h.BasePath)
	writeJSON(w, http.StatusOK, searchResultResource{
		Embedded: customerList{Customers: urls.resources(customers)},
		Links:    links{"self": {Href: urls.search() + "/findByNameLike?" + r.URL.RawQuery}},
	})
}
