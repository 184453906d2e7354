package domain

import "time"

// Record is a single dated row of a history file. Both sales and weather
// histories store their rows through this interface so the updater does not
// care which provider produced them.
type Record interface {
	// Date returns the calendar day the record belongs to. A zero time
	// marks a malformed record that must be skipped, not appended.
	Date() time.Time

	// Row returns the record encoded as one CSV row, in header order.
	Row() []string
}
