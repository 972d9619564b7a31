package domain

import "time"

type EventStatus string

const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

func (s EventStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Event is a vendor-submitted cultural event. An event always resolves to
// exactly one Category and one vending User; deleting either cascades.
type Event struct {
	ID          int64
	Title       string
	Description string
	City        string
	EventDate   time.Time
	ImageURL    string
	Status      EventStatus
	Category    Category
	VendorID    string
}
