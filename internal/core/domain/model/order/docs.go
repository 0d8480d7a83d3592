// Package order provides the Order aggregate of the service desk: a request for
// service work that is proposed to one candidate at a time, accepted or rejected,
// and then driven through its operational states by the assigned parties.
//
// The package includes:
//   - Order: the aggregate root owning parties, proposal state, rejecters and lifecycle
//   - Status: the closed set of lifecycle states and the state gates built on them
//   - Rejecters: the append-only set of accounts excluded from future proposals
//   - Details, Address, Rating, WorkNotes: descriptive value objects
//   - Event: facts recorded by mutations, published after the transaction commits
//
// Key business rules:
//   - Only the proposed party may accept or reject a proposal
//   - A rejecter is never proposed again for the same order
//   - Proposed worker and proposed organization are mutually exclusive and only set
//     while the order awaits acceptance
//   - Every role-gated transition is checked before anything is mutated
//   - An inactive order accepts no mutation other than reactivation
package order
