// Package kernel holds the value objects shared by every aggregate of the
// shipment core:
//   - UUID: entity identifier that rejects the nil value
//   - Quantity: positive two-digit decimal amount of shipped material
//   - Actor: explicit authenticated identity and tenant context of a request
package kernel
