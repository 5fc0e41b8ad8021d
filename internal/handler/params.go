package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"sdrdemo/internal/errs"
	sqlrepo "sdrdemo/pkg/repository"
)

// parseSort reads sort parameters of the form "prop[,prop...][,asc|desc]".
// Each parameter may be repeated; order is significant.
func parseSort(values []string) sqlrepo.Sort {
	var sort sqlrepo.Sort
	for _, v := range values {
		parts := strings.Split(v, ",")
		dir := sqlrepo.Asc
		if last := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1])); last == string(sqlrepo.Asc) || last == string(sqlrepo.Desc) {
			dir = sqlrepo.Direction(last)
			parts = parts[:len(parts)-1]
		}
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				sort = append(sort, sqlrepo.Order{Property: p, Direction: dir})
			}
		}
	}
	return sort
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewBadRequestError(fmt.Sprintf("%s must be an integer", name), nil,
			[]errs.FieldError{{Field: name, Error: "must be an integer"}})
	}
	return n, nil
}

func (h *CustomerHandler) pageRequest(r *http.Request) (sqlrepo.PageRequest, error) {
	page, err := intParam(r, "page", 0)
	if err != nil {
		return sqlrepo.PageRequest{}, err
	}
	size, err := intParam(r, "size", defaultPageSize)
	if err != nil {
		return sqlrepo.PageRequest{}, err
	}

	req := sqlrepo.PageRequest{Page: page, Size: size, Sort: parseSort(r.URL.Query()["sort"])}
	if err := h.validate.Struct(req); err != nil {
		return sqlrepo.PageRequest{}, validationError(err)
	}
	if !req.Valid() {
		return sqlrepo.PageRequest{}, errs.NewBadRequestError("Validation failed", nil,
			[]errs.FieldError{{Field: "page", Error: "is too large for the page size"}})
	}
	return req, nil
}

func validationError(err error) *errs.HTTPError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs.NewBadRequestError("Validation failed: "+err.Error(), nil, nil)
	}

	fields := make([]errs.FieldError, 0, len(ve))
	for _, fe := range ve {
		var msg string
		switch fe.Tag() {
		case "min":
			msg = "must be at least " + fe.Param()
		case "max":
			msg = "must be at most " + fe.Param()
		default:
			msg = "is invalid"
		}
		fields = append(fields, errs.FieldError{Field: strings.ToLower(fe.Field()), Error: msg})
	}
	return errs.NewBadRequestError("Validation failed", nil, fields)
}

func customerID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errs.NewBadRequestError(fmt.Sprintf("invalid customer id %q", raw), nil, nil)
	}
	return id, nil
}
