package bol

import (
	"maps"
	"time"

	"shipments/internal/core/domain/model/reference"
)

// Snapshot is everything a rendered document shows, copied from the release,
// its lot and the reference data at the moment of issuance. Renderers consume
// only this type; later edits to the source records never reach it.
type Snapshot struct {
	Number              string            `json:"number"`
	IssuedAt            time.Time         `json:"issuedAt"`
	IssuedBy            string            `json:"issuedBy"`
	Quantity            string            `json:"quantity"`
	ReleaseNumber       string            `json:"releaseNumber"`
	LoadSequence        int               `json:"loadSequence"`
	TenantName          string            `json:"tenantName,omitempty"`
	CustomerName        string            `json:"customerName"`
	ProductName         string            `json:"productName,omitempty"`
	CarrierName         string            `json:"carrierName"`
	TruckNumber         string            `json:"truckNumber,omitempty"`
	TrailerNumber       string            `json:"trailerNumber,omitempty"`
	ShipTo              reference.Address `json:"shipTo"`
	LotCode             string            `json:"lotCode,omitempty"`
	Chemistry           map[string]string `json:"chemistry,omitempty"`
	SpecialInstructions string            `json:"specialInstructions,omitempty"`
}

func (s Snapshot) clone() Snapshot {
	s.Chemistry = maps.Clone(s.Chemistry)
	return s
}
