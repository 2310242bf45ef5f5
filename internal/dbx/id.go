package dbx

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/lockbox/internal/common"
)

// ParseID converts a string-formatted row id back to its integer key.
// Anything that is not a positive integer cannot name a row and is reported
// as common.ErrNotFound.
func ParseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: id %q", common.ErrNotFound, id)
	}
	return n, nil
}

// FormatID renders an integer row id in its string form.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
