package services

import (
	"fmt"
	"time"
)

// FormatWorkOrderNumber builds the human-readable work order number
// from the year of assignment and the work order's database ID, which
// guarantees uniqueness. Example: WO-2026-00042.
func FormatWorkOrderNumber(assignedAt time.Time, id uint) string {
	return fmt.Sprintf("WO-%d-%05d", assignedAt.Year(), id)
}
