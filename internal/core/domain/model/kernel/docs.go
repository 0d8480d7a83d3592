// Package kernel provides the value objects shared by the domain model.
//
// The package includes:
//   - ID: integer identifier of orders and accounts
//   - Zone: normalized coverage zone tag used by the candidate matcher
//   - GeoPoint: optional coordinate of a service address
//   - Page: offset/limit pagination window with service defaults
//
// Value objects embed guard.ConstructorGuard so that zero values built
// without their constructor fail validation.
package kernel
