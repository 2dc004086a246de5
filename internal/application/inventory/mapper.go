package inventory

import (
	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

func toLedgerEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:          e.ID,
		Seq:         e.Seq,
		ProductID:   e.ProductID,
		WarehouseID: e.WarehouseID,
		Change:      e.Change,
		Balance:     e.Balance,
		SourceType:  e.SourceType,
		SourceID:    e.SourceID,
		CreatedAt:   e.CreatedAt,
	}
}

func toLedgerEntryResponses(entries []*entity.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return out
}

// ToDocumentResponse convierte un documento a su DTO; la contraparte se expone según el tipo.
func ToDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	out := &dto.DocumentResponse{
		ID:          d.ID,
		Kind:        string(d.Kind),
		Status:      string(d.Status),
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		ValidatedAt: d.ValidatedAt,
	}
	switch d.Kind {
	case entity.DocumentKindReceipt:
		out.Supplier = d.Partner
		out.WarehouseID = d.WarehouseID
	case entity.DocumentKindDelivery:
		out.Customer = d.Partner
		out.WarehouseID = d.WarehouseID
	case entity.DocumentKindTransfer:
		out.FromWarehouseID = d.WarehouseID
		out.ToWarehouseID = d.ToWarehouseID
	}
	if len(d.Lines) > 0 {
		out.Lines = make([]dto.DocumentLineResponse, 0, len(d.Lines))
		for _, l := range d.Lines {
			out.Lines = append(out.Lines, dto.DocumentLineResponse{
				ID:        l.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Position:  l.Position,
			})
		}
	}
	return out
}

// ToValidationResponse documento validado más los asientos que generó.
func ToValidationResponse(r *ValidationResult) *dto.ValidationResponse {
	return &dto.ValidationResponse{
		Document: *ToDocumentResponse(r.Document),
		Entries:  toLedgerEntryResponses(r.Entries),
	}
}
