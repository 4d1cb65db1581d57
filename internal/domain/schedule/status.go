package schedule

// Status is the appointment request lifecycle state. Transitions:
//
//	pending  -> approved | rejected | cancelled
//	approved -> approved (re-approve with new duration) | done | cancelled
//
// done, rejected and cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDone      Status = "done"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusDone, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Actor identifies who drove a cancellation.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
	ActorSystem   Actor = "system"
)

// CancelLeadMinutes is the minimum notice a customer must give when
// cancelling an approved request. Admin and system cancellations carry
// no lead requirement.
const CancelLeadMinutes = 60

func ValidActor(a Actor) bool {
	switch a {
	case ActorCustomer, ActorAdmin, ActorSystem:
		return true
	}
	return false
}

func CanApprove(current Status) error {
	if current != StatusPending && current != StatusApproved {
		return Policy("invalid_state", "only pending or approved requests can be approved")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return Policy("invalid_state", "only pending requests can be rejected")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusApproved {
		return Policy("invalid_state", "only approved requests can be completed")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusApproved {
		return Policy("invalid_state", "only pending or approved requests can be cancelled")
	}
	return nil
}
