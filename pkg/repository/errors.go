package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidSort = errors.New("invalid sort property")
	ErrInvalidPage = errors.New("invalid page request")
)

// StorageError reports a failure of the underlying store during Op.
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Table: table, Err: err}
}
