// Package services provides domain services that check rules spanning several
// aggregates of the shipping system, rules that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - TenantBoundaryValidator: verifies that the carrier, truck and lot used to
//     ship a load belong to the same tenant as the release
//
// Domain services are pure: they receive already loaded entities and never
// touch storage.
package services
