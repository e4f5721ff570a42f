package http

import (
	"shipments/internal/adapters/in/http/api"
	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
)

func bolFromAggregate(doc *bol.BOL) api.BOL {
	resp := api.BOL{
		Id:               doc.ID().Bytes(),
		Number:           doc.Number().String(),
		TenantId:         kernel.BytesPtr(doc.TenantID()),
		ReleaseId:        doc.ReleaseID().Bytes(),
		LoadId:           kernel.BytesPtr(doc.LoadID()),
		Quantity:         doc.Quantity().String(),
		IssuedBy:         doc.IssuedBy(),
		IssuedAt:         doc.IssuedAt(),
		Voided:           doc.IsVoided(),
		DocumentKey:      optional(doc.DocumentKey()),
		DocumentRendered: doc.DocumentRendered(),
		Snapshot:         snapshotFromDomain(doc.Snapshot()),
	}
	if v := doc.VoidInfo(); v != nil {
		voidedAt := v.VoidedAt
		resp.VoidReason = optional(v.Reason)
		resp.VoidedBy = optional(v.VoidedBy)
		resp.VoidedAt = &voidedAt
	}
	return resp
}

func loadFromResponse(load queries.LoadStatusResponse) api.Load {
	resp := api.Load{
		Id:              load.ID.Bytes(),
		ReleaseId:       load.ReleaseID.Bytes(),
		Sequence:        load.Sequence,
		PlannedQuantity: load.PlannedQuantity.String(),
		Status:          api.LoadStatus(load.Status),
		BolId:           kernel.BytesPtr(load.BOLID),
		BolNumber:       optional(load.BOLNumber),
	}
	if load.ActualQuantity != nil {
		actual := load.ActualQuantity.String()
		resp.ActualQuantity = &actual
	}
	return resp
}

func snapshotFromDomain(s bol.Snapshot) *api.Snapshot {
	issuedAt := s.IssuedAt
	sequence := s.LoadSequence
	resp := &api.Snapshot{
		Number:              optional(s.Number),
		IssuedAt:            &issuedAt,
		IssuedBy:            optional(s.IssuedBy),
		Quantity:            optional(s.Quantity),
		ReleaseNumber:       optional(s.ReleaseNumber),
		LoadSequence:        &sequence,
		TenantName:          optional(s.TenantName),
		CustomerName:        optional(s.CustomerName),
		ProductName:         optional(s.ProductName),
		CarrierName:         optional(s.CarrierName),
		TruckNumber:         optional(s.TruckNumber),
		TrailerNumber:       optional(s.TrailerNumber),
		LotCode:             optional(s.LotCode),
		SpecialInstructions: optional(s.SpecialInstructions),
	}
	if !s.ShipTo.IsZero() {
		resp.ShipTo = &api.Address{
			Name:       optional(s.ShipTo.Name),
			Street:     optional(s.ShipTo.Street),
			City:       optional(s.ShipTo.City),
			State:      optional(s.ShipTo.State),
			PostalCode: optional(s.ShipTo.PostalCode),
		}
	}
	if len(s.Chemistry) > 0 {
		chemistry := s.Chemistry
		resp.Chemistry = &chemistry
	}
	return resp
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
