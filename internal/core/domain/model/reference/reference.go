package reference

import (
	"strings"

	"shipments/internal/core/domain/model/kernel"
)

// Tenant is the isolation boundary. BOLPrefix is the first segment of every
// document number issued for the tenant.
type Tenant struct {
	ID        kernel.UUID
	Code      string
	Name      string
	BOLPrefix string
}

// NumberPrefix returns the configured prefix, falling back to the tenant code.
func (t Tenant) NumberPrefix() string {
	if p := strings.TrimSpace(t.BOLPrefix); p != "" {
		return strings.ToUpper(p)
	}
	return strings.ToUpper(t.Code)
}

type Product struct {
	ID       kernel.UUID
	TenantID *kernel.UUID
	Name     string
}

// Lot is a chemistry-tagged batch of a product.
type Lot struct {
	ID        kernel.UUID
	TenantID  *kernel.UUID
	ProductID *kernel.UUID
	Code      string
	Chemistry map[string]string
}

type Carrier struct {
	ID       kernel.UUID
	TenantID *kernel.UUID
	Name     string
}

// Truck belongs to exactly one carrier and has no tenant of its own.
type Truck struct {
	ID          kernel.UUID
	CarrierID   kernel.UUID
	TruckNumber string
	TrailerNo   string
}

type Customer struct {
	ID       kernel.UUID
	TenantID *kernel.UUID
	Name     string
}

// Address is a ship-to location as printed on a document.
type Address struct {
	Name       string
	Street     string
	City       string
	State      string
	PostalCode string
}

// IsZero reports whether no part of the address is filled in.
func (a Address) IsZero() bool {
	return a == Address{}
}
