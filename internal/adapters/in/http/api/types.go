// Package api holds the HTTP contract of the service: the OpenAPI document,
// its request and response bodies and the echo route bindings.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for LoadStatus.
const (
	LoadStatusPENDING   LoadStatus = "PENDING"
	LoadStatusSHIPPED   LoadStatus = "SHIPPED"
	LoadStatusCANCELLED LoadStatus = "CANCELLED"
)

// Defines values for ReleaseStatus.
const (
	ReleaseStatusOPEN     ReleaseStatus = "OPEN"
	ReleaseStatusCOMPLETE ReleaseStatus = "COMPLETE"
)

// Address defines model for Address.
type Address struct {
	City       *string `json:"city,omitempty"`
	Name       *string `json:"name,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	State      *string `json:"state,omitempty"`
	Street     *string `json:"street,omitempty"`
}

// BOL defines model for BOL.
type BOL struct {
	DocumentKey      *string             `json:"documentKey,omitempty"`
	DocumentRendered bool                `json:"documentRendered"`
	Id               openapi_types.UUID  `json:"id"`
	IssuedAt         time.Time           `json:"issuedAt"`
	IssuedBy         string              `json:"issuedBy"`
	LoadId           *openapi_types.UUID `json:"loadId,omitempty"`
	Number           string              `json:"number"`
	Quantity         string              `json:"quantity"`
	ReleaseId        openapi_types.UUID  `json:"releaseId"`
	Snapshot         *Snapshot           `json:"snapshot,omitempty"`
	TenantId         *openapi_types.UUID `json:"tenantId,omitempty"`
	VoidReason       *string             `json:"voidReason,omitempty"`
	Voided           bool                `json:"voided"`
	VoidedAt         *time.Time          `json:"voidedAt,omitempty"`
	VoidedBy         *string             `json:"voidedBy,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FulfillmentRequest defines model for FulfillmentRequest.
type FulfillmentRequest struct {
	CarrierId openapi_types.UUID  `json:"carrierId"`
	Quantity  string              `json:"quantity"`
	TruckId   *openapi_types.UUID `json:"truckId,omitempty"`
}

// Load defines model for Load.
type Load struct {
	ActualQuantity  *string             `json:"actualQuantity,omitempty"`
	BolId           *openapi_types.UUID `json:"bolId,omitempty"`
	BolNumber       *string             `json:"bolNumber,omitempty"`
	Id              openapi_types.UUID  `json:"id"`
	PlannedQuantity string              `json:"plannedQuantity"`
	ReleaseId       openapi_types.UUID  `json:"releaseId"`
	Sequence        int                 `json:"sequence"`
	Status          LoadStatus          `json:"status"`
}

// LoadStatus defines model for Load.Status.
type LoadStatus string

// Release defines model for Release.
type Release struct {
	Id              openapi_types.UUID  `json:"id"`
	Loads           []Load              `json:"loads"`
	Number          string              `json:"number"`
	ShippedQuantity string              `json:"shippedQuantity"`
	Status          ReleaseStatus       `json:"status"`
	TenantId        *openapi_types.UUID `json:"tenantId,omitempty"`
	TotalQuantity   string              `json:"totalQuantity"`
}

// ReleaseStatus defines model for Release.Status.
type ReleaseStatus string

// Snapshot defines model for Snapshot.
type Snapshot struct {
	CarrierName         *string            `json:"carrierName,omitempty"`
	Chemistry           *map[string]string `json:"chemistry,omitempty"`
	CustomerName        *string            `json:"customerName,omitempty"`
	IssuedAt            *time.Time         `json:"issuedAt,omitempty"`
	IssuedBy            *string            `json:"issuedBy,omitempty"`
	LoadSequence        *int               `json:"loadSequence,omitempty"`
	LotCode             *string            `json:"lotCode,omitempty"`
	Number              *string            `json:"number,omitempty"`
	ProductName         *string            `json:"productName,omitempty"`
	Quantity            *string            `json:"quantity,omitempty"`
	ReleaseNumber       *string            `json:"releaseNumber,omitempty"`
	ShipTo              *Address           `json:"shipTo,omitempty"`
	SpecialInstructions *string            `json:"specialInstructions,omitempty"`
	TenantName          *string            `json:"tenantName,omitempty"`
	TrailerNumber       *string            `json:"trailerNumber,omitempty"`
	TruckNumber         *string            `json:"truckNumber,omitempty"`
}

// VoidRequest defines model for VoidRequest.
type VoidRequest struct {
	Reason string `json:"reason"`
}

// LoadId defines model for LoadId.
type LoadId = openapi_types.UUID

// BolId defines model for BolId.
type BolId = openapi_types.UUID

// FulfillLoadJSONRequestBody defines body for FulfillLoad for application/json ContentType.
type FulfillLoadJSONRequestBody = FulfillmentRequest

// VoidBOLJSONRequestBody defines body for VoidBOL for application/json ContentType.
type VoidBOLJSONRequestBody = VoidRequest
