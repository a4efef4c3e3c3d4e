// Package repository contains the data access layer for the catalog. Each
// resource gets its own repo over a shared *sql.DB; this file defines the
// sentinel errors and helpers reused across them so handlers can map
// failures onto HTTP statuses without inspecting driver errors themselves.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup misses or a mutation affects zero
// rows. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert collides with an existing
// natural key. Handlers translate this into HTTP 409.
var ErrDuplicate = errors.New("already exists")

// ErrConflict is returned when a delete cannot proceed because dependent
// rows still reference the target, such as deleting a theme that still
// has sets or child themes. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmptyUpdate is returned when a partial update carries no settable
// fields after the natural key is excluded. Handlers translate this into
// HTTP 400; the statement never reaches the store.
var ErrEmptyUpdate = errors.New("empty update")

// ErrBadReference is returned when a write names a foreign key that does
// not exist (e.g. a set pointing at an unknown theme). Handlers translate
// this into HTTP 400.
var ErrBadReference = errors.New("referenced row does not exist")

// Meta carries store-assigned metadata about a mutation, echoed back to
// clients in the response envelope.
type Meta struct {
	Changes   int64 `json:"changes"`
	LastRowID int64 `json:"last_row_id"`
}

// isDuplicate reports whether err is a unique-constraint violation from
// either supported driver.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isBadReference reports whether err is a foreign-key violation from
// either supported driver.
func isBadReference(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1452
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
