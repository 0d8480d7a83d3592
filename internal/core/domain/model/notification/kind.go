package notification

import (
	"fmt"
	"slices"
	"strings"

	"servicedesk/internal/pkg/errs"
)

// Kind classifies a notification. Clients use it to decide how to render
// and where to link.
type Kind string

const (
	KindOrderCreated                Kind = "order_created"
	KindProposalReceived            Kind = "proposal_received"
	KindOrderAssigned               Kind = "order_assigned"
	KindOrderAssignedToOrganization Kind = "order_assigned_to_organization"
	KindOrganizationAssigned        Kind = "organization_assigned"
	KindWorkerAssigned              Kind = "worker_assigned"
	KindProposalRejected            Kind = "proposal_rejected"
	KindNoCandidates                Kind = "no_candidates"
	KindStatusChanged               Kind = "status_changed"
	KindOrderCancelled              Kind = "order_cancelled"
	KindOrderRated                  Kind = "order_rated"
	KindOrderDeleted                Kind = "order_deleted"
	KindOrderReactivated            Kind = "order_reactivated"
)

func AllKinds() []Kind {
	return []Kind{
		KindOrderCreated,
		KindProposalReceived,
		KindOrderAssigned,
		KindOrderAssignedToOrganization,
		KindOrganizationAssigned,
		KindWorkerAssigned,
		KindProposalRejected,
		KindNoCandidates,
		KindStatusChanged,
		KindOrderCancelled,
		KindOrderRated,
		KindOrderDeleted,
		KindOrderReactivated,
	}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	if !slices.Contains(AllKinds(), k) {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a notification kind", string(k)))
	}
	return nil
}

func (k Kind) String() string {
	return string(k)
}
