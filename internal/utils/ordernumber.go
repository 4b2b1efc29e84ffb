package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds the human-readable booking reference, e.g.
// ORD-20240115093000-R12P7. The timestamp plus renter/place pair keeps
// numbers distinguishable; true uniqueness is enforced by the database index.
func GenerateOrderNumber(now time.Time, renterID, placeID int64) string {
	return fmt.Sprintf("ORD-%s-R%dP%d", now.UTC().Format("20060102150405"), renterID, placeID)
}

// DisambiguateOrderNumber appends a random suffix after a uniqueness conflict,
// so a retry within the same second cannot collide again.
func DisambiguateOrderNumber(number string) string {
	return fmt.Sprintf("%s-%s", number, uuid.NewString()[:8])
}
