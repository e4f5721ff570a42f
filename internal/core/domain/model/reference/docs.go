// Package reference holds the reference data the shipment core reads but never
// writes: tenants, products, lots, carriers, trucks and customers. These records
// are maintained by upstream collaborators; the core only looks them up by id
// and copies display values into document snapshots.
//
// Tenant ownership is optional on every record while data is being migrated
// into the multi-tenant model; a nil TenantID means "not yet assigned".
package reference
