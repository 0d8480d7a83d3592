package order

import (
	"errors"
	"fmt"
	"time"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNotSearching is returned by Propose when the order is inactive or
	// no longer looking for a candidate. Callers treat it as a no-op.
	ErrOrderNotSearching = errs.NewConflictError("order is not searching")

	// ErrOrderIsInactive is returned when a privileged actor mutates a
	// soft-deleted order.
	ErrOrderIsInactive = errs.NewConflictError("order is inactive")
)

// Order is the aggregate root of a service request. It owns the parties, the
// proposal state and the rejecters of the request and enforces every
// role-gated transition of its lifecycle.
//
// Order follows these invariants:
//   - The client never changes
//   - At most one of proposed worker and proposed organization is set, and only
//     while the order awaits acceptance
//   - Rejecters only grow and are never proposed again
//   - A rejected transition leaves the aggregate untouched
type Order struct {
	id                     kernel.ID
	clientID               kernel.ID
	workerID               *kernel.ID
	organizationID         *kernel.ID
	proposedWorkerID       *kernel.ID
	proposedOrganizationID *kernel.ID
	rejecters              Rejecters
	status                 Status
	active                 bool
	details                Details
	technicianNotes        string
	scheduledVisitAt       *time.Time
	estimatedResolutionAt  *time.Time
	rating                 *Rating
	version                int64
	createdAt              time.Time
	updatedAt              time.Time
	events                 []Event
	guard                  guard.ConstructorGuard
}

// NewOrder creates an active order in the searching state. Only clients may
// create orders; the id is allocated by the store beforehand.
func NewOrder(id kernel.ID, client account.Actor, details Details) (*Order, error) {
	if err := client.Validate(); err != nil {
		return nil, err
	}
	if client.Role() != account.RoleClient {
		return nil, errs.NewForbiddenError("create order")
	}

	now := time.Now().UTC()
	o := &Order{
		status:    Searching,
		active:    true,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(client.ID()),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	o.record(EventCreated, &client)
	return o, nil
}

// Snapshot is the persisted form of an order, used to restore it.
type Snapshot struct {
	ID                     kernel.ID
	ClientID               kernel.ID
	WorkerID               *kernel.ID
	OrganizationID         *kernel.ID
	ProposedWorkerID       *kernel.ID
	ProposedOrganizationID *kernel.ID
	Rejecters              Rejecters
	Status                 Status
	Active                 bool
	Details                Details
	TechnicianNotes        string
	ScheduledVisitAt       *time.Time
	EstimatedResolutionAt  *time.Time
	Rating                 *Rating
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// RestoreOrder rebuilds an order from persistence and checks its invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		workerID:               copyID(s.WorkerID),
		organizationID:         copyID(s.OrganizationID),
		proposedWorkerID:       copyID(s.ProposedWorkerID),
		proposedOrganizationID: copyID(s.ProposedOrganizationID),
		rejecters:              s.Rejecters,
		active:                 s.Active,
		technicianNotes:        s.TechnicianNotes,
		scheduledVisitAt:       s.ScheduledVisitAt,
		estimatedResolutionAt:  s.EstimatedResolutionAt,
		version:                s.Version,
		createdAt:              s.CreatedAt,
		updatedAt:              s.UpdatedAt,
		guard:                  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setClientID(s.ClientID),
		o.setStatus(s.Status),
		o.setDetails(s.Details),
		o.setRating(s.Rating),
	); err != nil {
		return nil, err
	}

	if err := o.checkProposalInvariant(); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) ClientID() kernel.ID {
	return o.clientID
}

func (o *Order) WorkerID() *kernel.ID {
	return copyID(o.workerID)
}

func (o *Order) OrganizationID() *kernel.ID {
	return copyID(o.organizationID)
}

func (o *Order) ProposedWorkerID() *kernel.ID {
	return copyID(o.proposedWorkerID)
}

func (o *Order) ProposedOrganizationID() *kernel.ID {
	return copyID(o.proposedOrganizationID)
}

func (o *Order) Rejecters() Rejecters {
	return o.rejecters
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) IsActive() bool {
	return o.active
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) TechnicianNotes() string {
	return o.technicianNotes
}

func (o *Order) ScheduledVisitAt() *time.Time {
	return o.scheduledVisitAt
}

func (o *Order) EstimatedResolutionAt() *time.Time {
	return o.estimatedResolutionAt
}

func (o *Order) Rating() *Rating {
	return o.rating
}

func (o *Order) Version() int64 {
	return o.version
}

// MarkPersisted records the version the store holds after a successful write.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsEligible reports whether candidate may be proposed this order: an active
// independent worker or organization admin covering the order's zone that has
// not declined it before.
func (o *Order) IsEligible(candidate *account.Account) bool {
	return candidate != nil &&
		candidate.IsActive() &&
		candidate.IsProposable() &&
		candidate.CoversZone(o.details.Zone()) &&
		!o.rejecters.Contains(candidate.ID())
}

// IsSearching reports whether the order is active and waiting for a proposal.
func (o *Order) IsSearching() bool {
	return o.active && o.status == Searching
}

// Propose designates candidate as the party expected to accept the order.
// It returns ErrOrderNotSearching when there is nothing to propose.
func (o *Order) Propose(candidate *account.Account) error {
	if !o.IsSearching() {
		return ErrOrderNotSearching
	}
	if err := candidate.Validate(); err != nil {
		return err
	}
	if !o.IsEligible(candidate) {
		return errs.NewValueIsInvalidErrorWithCause(
			"candidate",
			fmt.Errorf("account %s is not eligible for order %s", candidate.ID(), o.id),
		)
	}

	id := candidate.ID()
	switch candidate.Role() {
	case account.RoleWorker:
		o.proposedWorkerID = &id
	case account.RoleOrganizationAdmin:
		o.proposedOrganizationID = &id
	case account.RoleClient, account.RolePlatformAdmin, account.RoleUnknown:
		return errs.NewValueIsInvalidErrorWithCause("candidate", fmt.Errorf("%s cannot be proposed", candidate.Role()))
	}

	o.status = AwaitingAcceptance
	o.touch()
	o.record(EventProposed, nil)
	return nil
}

// Accept assigns the order to the proposed party. A worker becomes the
// assigned worker; an organization becomes the assigned organization and
// still has to sub-assign one of its workers.
func (o *Order) Accept(actor account.Actor) error {
	if err := o.checkProposalResponse(actor, "accept proposal"); err != nil {
		return err
	}

	id := actor.ID()
	switch actor.Role() {
	case account.RoleWorker:
		o.workerID = &id
		o.status = Assigned
	case account.RoleOrganizationAdmin:
		o.organizationID = &id
		o.status = PendingOrgAssignment
	case account.RoleClient, account.RolePlatformAdmin, account.RoleUnknown:
		return errs.NewForbiddenError("accept proposal")
	}

	o.clearProposals()
	o.touch()
	o.record(EventAccepted, &actor)
	return nil
}

// Reject records the proposed party as a rejecter and puts the order back to
// searching.
func (o *Order) Reject(actor account.Actor) error {
	if err := o.checkProposalResponse(actor, "reject proposal"); err != nil {
		return err
	}

	o.rejecters = o.rejecters.With(actor.ID())
	o.clearProposals()
	o.status = Searching
	o.touch()
	o.record(EventRejected, &actor)
	return nil
}

// AssignOrganization lets a platform admin hand the order to an organization.
func (o *Order) AssignOrganization(actor account.Actor, organization *account.Account) error {
	if err := o.ensureMutable(actor); err != nil {
		return err
	}
	if actor.Role() != account.RolePlatformAdmin {
		return errs.NewForbiddenError("assign organization")
	}

	var next Status
	switch o.status {
	case Searching, PendingOrgAssignment:
		next = PendingOrgAssignment
	default:
		return errs.NewConflictErrorWithCause(
			"state",
			fmt.Errorf("cannot assign an organization to an order in %s", o.status),
		)
	}

	if err := organization.Validate(); err != nil {
		return err
	}
	if organization.Role() != account.RoleOrganizationAdmin || !organization.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"organizationId",
			fmt.Errorf("account %s is not an active organization", organization.ID()),
		)
	}

	id := organization.ID()
	o.organizationID = &id
	o.status = next
	o.touch()
	o.record(EventOrganizationAssigned, &actor)
	return nil
}

// AssignWorker lets the order's organization pick one of its own workers.
// Reassignment is allowed while the order is still assigned.
func (o *Order) AssignWorker(actor account.Actor, worker *account.Account) error {
	if err := o.ensureMutable(actor); err != nil {
		return err
	}
	if actor.Role() != account.RoleOrganizationAdmin || !actor.Is(o.organizationID) {
		return errs.NewForbiddenError("assign worker")
	}

	switch o.status {
	case PendingOrgAssignment, Assigned:
	default:
		return errs.NewConflictErrorWithCause(
			"state",
			fmt.Errorf("cannot assign a worker to an order in %s", o.status),
		)
	}

	if err := worker.Validate(); err != nil {
		return err
	}
	if worker.Role() != account.RoleWorker || !worker.IsActive() || !kernel.SameID(worker.SupervisorID(), actor.ID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"workerId",
			fmt.Errorf("account %s is not an active worker of organization %s", worker.ID(), actor.ID()),
		)
	}

	id := worker.ID()
	o.workerID = &id
	o.status = Assigned
	o.touch()
	o.record(EventWorkerAssigned, &actor)
	return nil
}

// SetStatus moves an assigned order through its operational states.
func (o *Order) SetStatus(actor account.Actor, target Status) error {
	if err := o.checkOperator(actor, "change state"); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if !target.IsOperationalTarget() {
		return errs.NewForbiddenErrorWithCause(
			"change state",
			fmt.Errorf("%s is not a state an assigned party can set", target),
		)
	}

	o.status = target
	o.touch()
	o.record(EventStatusChanged, &actor)
	return nil
}

// UpdateWorkNotes applies the non-nil fields of notes.
func (o *Order) UpdateWorkNotes(actor account.Actor, notes WorkNotes) error {
	if err := o.checkOperator(actor, "update work notes"); err != nil {
		return err
	}
	if notes.IsEmpty() {
		return errs.NewValueIsRequiredError("work notes")
	}

	if notes.TechnicianNotes != nil {
		o.technicianNotes = *notes.TechnicianNotes
	}
	if notes.ScheduledVisitAt != nil {
		t := notes.ScheduledVisitAt.UTC()
		o.scheduledVisitAt = &t
	}
	if notes.EstimatedResolutionAt != nil {
		t := notes.EstimatedResolutionAt.UTC()
		o.estimatedResolutionAt = &t
	}

	o.touch()
	o.record(EventWorkNotesUpdated, &actor)
	return nil
}

// Cancel lets the owning client withdraw the order before work starts.
func (o *Order) Cancel(actor account.Actor) error {
	if err := o.ensureMutable(actor); err != nil {
		return err
	}
	if actor.Role() != account.RoleClient || actor.ID() != o.clientID {
		return errs.NewForbiddenError("cancel order")
	}
	if !o.status.IsClientCancellable() {
		return errs.NewConflictErrorWithCause("state", fmt.Errorf("cannot cancel an order in %s", o.status))
	}

	o.status = CancelledByClient
	o.clearProposals()
	o.touch()
	o.record(EventCancelled, &actor)
	return nil
}

// Rate stores the owning client's rating of a completed order.
func (o *Order) Rate(actor account.Actor, rating Rating) error {
	if err := o.ensureMutable(actor); err != nil {
		return err
	}
	if actor.Role() != account.RoleClient || actor.ID() != o.clientID {
		return errs.NewForbiddenError("rate order")
	}
	if o.status != Completed {
		return errs.NewConflictErrorWithCause("state", fmt.Errorf("cannot rate an order in %s", o.status))
	}
	if err := o.setRating(&rating); err != nil {
		return err
	}

	o.touch()
	o.record(EventRated, &actor)
	return nil
}

// SoftDelete deactivates the order. Organization admins may only delete
// orders of their own organization, and a repeated delete by that
// organization is a conflict rather than a missing order.
func (o *Order) SoftDelete(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !o.active && actor.Role() == account.RoleOrganizationAdmin && actor.Is(o.organizationID) {
		return ErrOrderIsInactive
	}
	if err := o.ensureMutable(actor); err != nil {
		return err
	}

	switch actor.Role() {
	case account.RolePlatformAdmin:
	case account.RoleOrganizationAdmin:
		if !actor.Is(o.organizationID) {
			return errs.NewForbiddenError("delete order")
		}
	case account.RoleClient, account.RoleWorker, account.RoleUnknown:
		return errs.NewForbiddenError("delete order")
	}

	o.active = false
	o.status = CancelledByAdmin
	o.clearProposals()
	o.touch()
	o.record(EventDeleted, &actor)
	return nil
}

// Reactivate restores a soft-deleted order to searching. Assignments and
// proposals are cleared; rejecters are kept.
func (o *Order) Reactivate(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != account.RolePlatformAdmin {
		if !o.active {
			return errs.NewObjectNotFoundError("order", o.id)
		}
		return errs.NewForbiddenError("reactivate order")
	}
	if o.active {
		return errs.NewConflictError("order is already active")
	}

	o.active = true
	o.status = Searching
	o.workerID = nil
	o.organizationID = nil
	o.clearProposals()
	o.touch()
	o.record(EventReactivated, &actor)
	return nil
}

// CanView reports whether actor may read the order. It admits exactly the
// orders the actor's listing shows. Inactive orders do not exist for anyone
// but platform admins.
func (o *Order) CanView(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !o.active && !actor.Role().IsPrivileged() {
		return errs.NewObjectNotFoundError("order", o.id)
	}

	switch actor.Role() {
	case account.RolePlatformAdmin:
		return nil
	case account.RoleClient:
		if actor.ID() == o.clientID {
			return nil
		}
	case account.RoleWorker:
		// open orders are listed to every worker
		if o.status == Searching || actor.Is(o.workerID) || actor.Is(o.proposedWorkerID) {
			return nil
		}
	case account.RoleOrganizationAdmin:
		if actor.Is(o.organizationID) || actor.Is(o.proposedOrganizationID) {
			return nil
		}
	case account.RoleUnknown:
	}

	return errs.NewForbiddenError("view order")
}

// ensureMutable hides inactive orders from non-privileged actors and rejects
// mutations of inactive orders for privileged ones.
func (o *Order) ensureMutable(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if o.active {
		return nil
	}
	if !actor.Role().IsPrivileged() {
		return errs.NewObjectNotFoundError("order", o.id)
	}
	return ErrOrderIsInactive
}

func (o *Order) checkProposalResponse(actor account.Actor, action string) error {
	if err := o.ensureMutable(actor); err != nil {
		return err
	}

	switch actor.Role() {
	case account.RoleWorker, account.RoleOrganizationAdmin:
	case account.RoleClient, account.RolePlatformAdmin, account.RoleUnknown:
		return errs.NewForbiddenError(action)
	}

	if o.status != AwaitingAcceptance {
		return errs.NewConflictErrorWithCause("state", fmt.Errorf("order is %s, not awaiting acceptance", o.status))
	}
	if !o.isProposedTo(actor) {
		return errs.NewForbiddenError(action)
	}
	return nil
}

func (o *Order) isProposedTo(actor account.Actor) bool {
	switch actor.Role() {
	case account.RoleWorker:
		return actor.Is(o.proposedWorkerID)
	case account.RoleOrganizationAdmin:
		return actor.Is(o.proposedOrganizationID)
	case account.RoleClient, account.RolePlatformAdmin, account.RoleUnknown:
		return false
	}
	return false
}

func (o *Order) checkOperator(actor account.Actor, action string) error {
	if err := o.ensureMutable(actor); err != nil {
		return err
	}

	allowed := false
	switch actor.Role() {
	case account.RoleWorker:
		allowed = actor.Is(o.workerID)
	case account.RoleOrganizationAdmin:
		allowed = actor.Is(o.organizationID)
	case account.RolePlatformAdmin:
		allowed = true
	case account.RoleClient, account.RoleUnknown:
	}
	if !allowed {
		return errs.NewForbiddenError(action)
	}

	if !o.status.IsOperational() {
		return errs.NewConflictErrorWithCause("state", fmt.Errorf("cannot %s of an order in %s", action, o.status))
	}
	return nil
}

func (o *Order) checkProposalInvariant() error {
	if o.proposedWorkerID != nil && o.proposedOrganizationID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"proposal",
			fmt.Errorf("order %s is proposed to a worker and an organization", o.id),
		)
	}
	proposed := o.proposedWorkerID != nil || o.proposedOrganizationID != nil
	if proposed != (o.status == AwaitingAcceptance) {
		return errs.NewValueIsInvalidErrorWithCause(
			"proposal",
			fmt.Errorf("order %s in %s has inconsistent proposal", o.id, o.status),
		)
	}
	return nil
}

func (o *Order) clearProposals() {
	o.proposedWorkerID = nil
	o.proposedOrganizationID = nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("clientId", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setRating(rating *Rating) error {
	if rating == nil {
		return nil
	}
	if err := rating.Validate(); err != nil {
		return err
	}
	r := *rating
	o.rating = &r
	return nil
}
