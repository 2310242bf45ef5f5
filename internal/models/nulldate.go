package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// NullDate scans a nullable YYYY-MM-DD column.
type NullDate struct {
	Date  Date
	Valid bool
}

func (n *NullDate) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		n.Date, n.Valid = Date{}, false
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		n.Date, n.Valid = DateOf(v), true
		return nil
	default:
		return fmt.Errorf("unsupported date column type %T", src)
	}
	d, err := ParseDate(s)
	if err != nil {
		return err
	}
	n.Date, n.Valid = d, true
	return nil
}

// Ptr returns the date, or nil when the column was NULL.
func (n NullDate) Ptr() *Date {
	if !n.Valid {
		return nil
	}
	d := n.Date
	return &d
}

// DateValue is the storage form of an optional date.
func DateValue(d *Date) driver.Value {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.String()
}
