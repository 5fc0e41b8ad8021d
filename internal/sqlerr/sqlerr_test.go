package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdrdemo/internal/errs"
	sqlrepo "sdrdemo/pkg/repository"
)

func asHTTP(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorNotFound(t *testing.T) {
	err := fmt.Errorf("customer 4: %w", sqlrepo.ErrNotFound)
	httpErr := asHTTP(t, HandleError(err, "customer"))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Customer not found", httpErr.Message)
}

func TestHandleErrorInvalidSort(t *testing.T) {
	err := fmt.Errorf("%w: %q", sqlrepo.ErrInvalidSort, "password")
	httpErr := asHTTP(t, HandleError(err, "customer"))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestHandleErrorDuplicate(t *testing.T) {
	err := &sqlrepo.StorageError{
		Op:    "insert",
		Table: "customer",
		Err:   &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'customer.email'"},
	}
	httpErr := asHTTP(t, HandleError(err, "customer"))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "CUSTOMER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A customer with this email already exists", httpErr.Message)
}

func TestHandleErrorDataTooLong(t *testing.T) {
	err := &sqlrepo.StorageError{
		Op:    "update",
		Table: "customer",
		Err:   &mysql.MySQLError{Number: 1406, Message: "Data too long for column 'favorite_color' at row 1"},
	}
	httpErr := asHTTP(t, HandleError(err, "customer"))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "CUSTOMER_VALUE_TOO_LONG", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "favorite_color", httpErr.Errors[0].Field)
	assert.Equal(t, "The Favorite Color is too long", httpErr.Message)
}

func TestHandleErrorOther(t *testing.T) {
	httpErr := asHTTP(t, HandleError(errors.New("connection refused"), "customer"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	err := &sqlrepo.StorageError{Op: "select", Table: "customer", Err: &mysql.MySQLError{Number: 1146, Message: "Table 'customer' doesn't exist"}}
	httpErr = asHTTP(t, HandleError(err, "customer"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewBadRequestError("nope", nil, nil)
	assert.Same(t, original, HandleError(original, "customer"))
}

func TestErrCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1048, Message: "Column 'name' cannot be null"})
	assert.Equal(t, NotNullViolation, ErrCode(wrapped))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "name", columnName("Column 'name' cannot be null"))
	assert.Equal(t, "email", columnName("Duplicate entry 'x' for key 'customer.email'"))
	assert.Equal(t, "id", columnName("Duplicate entry '1' for key 'customer.PRIMARY'"))
	assert.Equal(t, "", columnName("something else"))
}
