// Package services provides domain services of the service desk that work
// across aggregates.
//
// The package includes:
//   - OrderDispatcher: selects the candidate an order is proposed to
//   - Announcements: turns recorded order events into addressed notification messages
//   - OrderVisibility: the role-scoped filter applied when listing orders
package services
