// Package store provides CRUD primitives over the SQLite tables. Stores
// return (nil, nil) for absent rows on GetByID and report rows affected
// from Update/Delete so handlers can keep 404 decisions to themselves.
package store

import (
	"errors"
	"strings"

	sqlite "modernc.org/sqlite"
)

// ErrConstraint is returned when SQLite rejects a write for a constraint
// violation, e.g. a folder_id referencing a nonexistent folder. Handlers
// map it to a client error without leaking the SQLite message.
var ErrConstraint = errors.New("constraint violation")

const sqliteConstraint = 19 // SQLITE_CONSTRAINT primary result code

func isConstraint(err error) bool {
	var serr *sqlite.Error
	// Extended codes (FK, NOT NULL, ...) share the primary code's low byte.
	return errors.As(err, &serr) && serr.Code()&0xff == sqliteConstraint
}

// buildSet renders a SET clause from the supplied fields, walking cols in
// canonical order so the generated SQL is deterministic. Fields not in
// cols are ignored.
func buildSet(fields map[string]any, cols []string) (string, []any) {
	var assigns []string
	var args []any
	for _, col := range cols {
		if v, ok := fields[col]; ok {
			assigns = append(assigns, col+" = ?")
			args = append(args, v)
		}
	}
	return strings.Join(assigns, ", "), args
}
