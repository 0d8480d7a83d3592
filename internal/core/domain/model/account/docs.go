// Package account holds the account projection consumed by the order engine.
//
// Accounts are owned by an external identity system; this package only models
// what assignment needs: role, activity, coverage zones and the supervising
// organization of a worker. Role is a closed enumeration.
package account
