package model

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsSnapshot holds the activity of one calendar day. Date is midnight
// of that day in the location the snapshot was computed in.
type AnalyticsSnapshot struct {
	ID                uuid.UUID
	Date              time.Time
	TasksCompleted    int
	TasksCreated      int
	HoursWorked       float64
	ProductivityScore float64
}
