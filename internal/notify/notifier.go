package notify

import "context"

// Event names the state transition a message reports.
type Event string

const (
	EventRequestCreated      Event = "request_created"
	EventAdminNewRequest     Event = "admin_new_request"
	EventRequestApproved     Event = "request_approved"
	EventRequestRejected     Event = "request_rejected"
	EventAdminBooked         Event = "admin_booked"
	EventCancelledByCustomer Event = "cancelled_by_customer"
	EventCancelledByAdmin    Event = "cancelled_by_admin"
	EventCancelledBySystem   Event = "cancelled_by_system"
	EventSlotAvailable       Event = "slot_available"
	EventReminder            Event = "reminder"
)

type Message struct {
	Event Event
	To    string
	Data  map[string]string
}

// Notifier delivers customer/admin messages. The scheduling engine treats
// delivery as fire-and-forget: a Send failure is logged by the caller and
// never rolls back the transition that produced it.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
