// Package sqlerr converts repository and MySQL driver errors into
// errs.HTTPError values.
package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sdrdemo/internal/errs"
	sqlrepo "sdrdemo/pkg/repository"
)

type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	DataTooLong         Code = "data_too_long"
	ForeignKeyViolation Code = "foreign_key_violation"
	CheckViolation      Code = "check_violation"
)

// MapCode classifies a MySQL server error number.
func MapCode(number uint16) Code {
	switch number {
	case 1062, 1586:
		return UniqueViolation
	case 1048, 1364:
		return NotNullViolation
	case 1406:
		return DataTooLong
	case 1216, 1217, 1451, 1452:
		return ForeignKeyViolation
	case 3819:
		return CheckViolation
	default:
		return Other
	}
}

// ErrCode reports the Code of the first *mysql.MySQLError in err's chain.
func ErrCode(err error) Code {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return MapCode(myErr.Number)
	}
	return Other
}

var (
	columnPattern = regexp.MustCompile(`[Cc]olumn '([^']+)'`)
	keyPattern    = regexp.MustCompile(`for key '(?:[^'.]+\.)?([^']+)'`)
)

// columnName extracts the offending column from a MySQL error message.
func columnName(message string) string {
	if m := columnPattern.FindStringSubmatch(message); len(m) > 1 {
		return m[1]
	}
	if m := keyPattern.FindStringSubmatch(message); len(m) > 1 {
		if m[1] == "PRIMARY" {
			return "id"
		}
		return strings.TrimSuffix(strings.TrimPrefix(m[1], "uk_"), "_UNIQUE")
	}
	return ""
}

// generateErrorCode builds codes like CUSTOMER_ALREADY_EXISTS.
func generateErrorCode(tableName string, code Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}
	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch code {
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED_FIELD_MISSING"
	case DataTooLong:
		action = "VALUE_TOO_LONG"
	case ForeignKeyViolation:
		action = "INVALID_REFERENCE"
	case CheckViolation:
		action = "INVALID_VALUE"
	}
	return fmt.Sprintf("%s_%s", domain, action)
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func entityName(tableName string) string {
	if tableName == "" {
		return "Record"
	}
	return humanizeText(strings.TrimSuffix(tableName, "s"))
}

// HandleError maps err to the *errs.HTTPError returned to the client.
// resource names the entity in not-found messages.
func HandleError(err error, resource string) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, sqlrepo.ErrNotFound):
		return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName(resource)), nil)
	case errors.Is(err, sqlrepo.ErrInvalidSort), errors.Is(err, sqlrepo.ErrInvalidPage):
		return errs.NewBadRequestError(err.Error(), nil, nil)
	}

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return errs.NewInternalServerError()
	}

	table := resource
	var storageErr *sqlrepo.StorageError
	if errors.As(err, &storageErr) {
		table = storageErr.Table
	}

	code := MapCode(myErr.Number)
	errorCode := generateErrorCode(table, code)
	column := columnName(myErr.Message)
	field := humanizeText(column)
	if field == "" {
		field = "value"
	}

	switch code {
	case UniqueViolation:
		return errs.NewConflictError(fmt.Sprintf("A %s with this %s already exists", strings.ToLower(entityName(table)), strings.ToLower(field)), &errorCode)
	case NotNullViolation:
		return errs.NewBadRequestError(fmt.Sprintf("The %s is required", field), &errorCode,
			[]errs.FieldError{{Field: column, Error: "is required"}})
	case DataTooLong:
		return errs.NewBadRequestError(fmt.Sprintf("The %s is too long", field), &errorCode,
			[]errs.FieldError{{Field: column, Error: "is too long"}})
	case ForeignKeyViolation:
		return errs.NewBadRequestError(fmt.Sprintf("The referenced %s does not exist", strings.ToLower(field)), &errorCode, nil)
	case CheckViolation:
		return errs.NewBadRequestError("One or more values do not meet required conditions", &errorCode, nil)
	default:
		return errs.NewInternalServerError()
	}
}
