package domain

import "time"

// Event is a calendar entry: a training session, race or social run.
// GpxURL references the route file in the blob store when present.
type Event struct {
	ID             int64
	Title          string
	Date           time.Time
	Time           *string
	Description    *string
	Location       *string
	Type           *string
	Cost           *string
	Classification *string
	GpxURL         *string
	CreatedAt      time.Time
}
