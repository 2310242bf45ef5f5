package dbx

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraintCode reports the (possibly extended) result code of a SQLite
// constraint failure.
func constraintCode(err error) (int, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return 0, false
	}
	if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return 0, false
	}
	return se.Code(), true
}

// IsConstraintViolation reports whether err is any SQLite constraint failure.
func IsConstraintViolation(err error) bool {
	_, ok := constraintCode(err)
	return ok
}

// IsCheckViolation reports whether err is a failed CHECK constraint.
func IsCheckViolation(err error) bool {
	code, ok := constraintCode(err)
	if !ok {
		return false
	}
	return code == sqlite3.SQLITE_CONSTRAINT_CHECK || strings.Contains(err.Error(), "CHECK constraint failed")
}

// IsUniqueViolation reports whether err is a failed PRIMARY KEY or UNIQUE
// constraint.
func IsUniqueViolation(err error) bool {
	code, ok := constraintCode(err)
	if !ok {
		return false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
