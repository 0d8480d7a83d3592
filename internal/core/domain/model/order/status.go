package order

import (
	"fmt"
	"strings"

	"servicedesk/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	searching ──> awaiting_acceptance ──┬──> assigned ──> worker_en_route ──> in_progress ──> ... ──> completed
//	    ^                │              │        ^
//	    └────reject──────┘              └──> pending_org_assignment (organization sub-assigns a worker)
//
// completed, cancelled_by_client, cancelled_by_worker, cancelled_by_admin and
// unresolved are terminal.
type Status int

const (
	Unknown Status = iota
	Searching
	AwaitingAcceptance
	PendingOrgAssignment
	Assigned
	WorkerEnRoute
	InProgress
	AwaitingPickupAtShop
	AtShop
	ReadyForDelivery
	EnRouteDelivery
	AwaitingPayment
	Completed
	CancelledByClient
	CancelledByWorker
	CancelledByAdmin
	Unresolved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "unknown",
		Searching:            "searching",
		AwaitingAcceptance:   "awaiting_acceptance",
		PendingOrgAssignment: "pending_org_assignment",
		Assigned:             "assigned",
		WorkerEnRoute:        "worker_en_route",
		InProgress:           "in_progress",
		AwaitingPickupAtShop: "awaiting_pickup_at_shop",
		AtShop:               "at_shop",
		ReadyForDelivery:     "ready_for_delivery",
		EnRouteDelivery:      "en_route_delivery",
		AwaitingPayment:      "awaiting_payment",
		Completed:            "completed",
		CancelledByClient:    "cancelled_by_client",
		CancelledByWorker:    "cancelled_by_worker",
		CancelledByAdmin:     "cancelled_by_admin",
		Unresolved:           "unresolved",
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, 0, int(Unresolved))
	for s := Searching; s <= Unresolved; s++ {
		out = append(out, s)
	}
	return out
}

// ParseStatus parses the wire name of a status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

func (s Status) Validate() error {
	if s < Searching || s > Unresolved {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition leaves s.
func (s Status) IsTerminal() bool {
	switch s {
	case Completed, CancelledByClient, CancelledByWorker, CancelledByAdmin, Unresolved:
		return true
	default:
		return false
	}
}

// IsOperational reports whether the assigned parties may drive the order from s:
// assigned through awaiting_payment.
func (s Status) IsOperational() bool {
	return s >= Assigned && s <= AwaitingPayment
}

// IsOperationalTarget reports whether assigned parties may move an order to s.
func (s Status) IsOperationalTarget() bool {
	switch s {
	case WorkerEnRoute, InProgress, AwaitingPickupAtShop, AtShop, ReadyForDelivery,
		EnRouteDelivery, AwaitingPayment, Completed, CancelledByWorker, Unresolved:
		return true
	default:
		return false
	}
}

// IsClientCancellable reports whether the client may still cancel from s.
// Once work is in progress the client no longer can.
func (s Status) IsClientCancellable() bool {
	switch s {
	case Searching, AwaitingAcceptance, PendingOrgAssignment, Assigned, WorkerEnRoute:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
