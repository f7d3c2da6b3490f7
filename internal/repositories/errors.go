package repositories

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// IsUniqueViolation reports whether err is a uniqueness-constraint conflict.
// The classification is structural: gorm's translated sentinel for the pgx
// driver, or the raw unique_violation SQLSTATE when a pq connection is in
// play. Callers use this to keep the "skip duplicate" channel separate from
// every other failure, which must abort.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}
