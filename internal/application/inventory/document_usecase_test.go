package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/domain/entity"
)

func TestCreateReceipt(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")

	doc, err := f.docs.CreateReceipt(f.ctx, "u1", dto.CreateReceiptRequest{Supplier: "Proveedor", WarehouseID: w, Lines: lines(a, 3)})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, string(entity.DocumentKindReceipt), doc.Kind)
	assert.Equal(t, string(entity.StatusDraft), doc.Status)
	assert.Equal(t, "Proveedor", doc.Supplier)
	assert.Equal(t, "u1", doc.CreatedBy)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, 1, doc.Lines[0].Position)
	assert.True(t, mustStock(t, f, a, w).IsZero())
}

func TestCreateDocument_Rejections(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")

	_, err := f.docs.CreateReceipt(f.ctx, "u1", dto.CreateReceiptRequest{Supplier: "P", WarehouseID: "no-existe", Lines: lines(a, 1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.CreateDelivery(f.ctx, "u1", dto.CreateDeliveryRequest{Customer: "C", WarehouseID: w, Lines: lines("no-existe", 1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.CreateDelivery(f.ctx, "u1", dto.CreateDeliveryRequest{Customer: "C", WarehouseID: w, Lines: lines(a, 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.docs.CreateTransfer(f.ctx, "u1", dto.CreateTransferRequest{FromWarehouseID: w, ToWarehouseID: w, Lines: lines(a, 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.docs.List(f.ctx, entity.DocumentKindDelivery, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestDocumentQuantity_RejectsMoreThanFourDecimals(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	fine := decimal.RequireFromString("1.00005")

	_, err := f.docs.CreateReceipt(f.ctx, "u1", dto.CreateReceiptRequest{
		Supplier: "P", WarehouseID: w,
		Lines: []dto.DocumentLineRequest{{ProductID: a, Quantity: fine}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	doc, err := f.docs.CreateReceipt(f.ctx, "u1", dto.CreateReceiptRequest{Supplier: "P", WarehouseID: w, Lines: lines(a, 1)})
	require.NoError(t, err)

	_, err = f.docs.AddLine(f.ctx, entity.DocumentKindReceipt, doc.ID, dto.DocumentLineRequest{ProductID: a, Quantity: fine})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.docs.UpdateLine(f.ctx, entity.DocumentKindReceipt, doc.ID, doc.Lines[0].ID, dto.UpdateDocumentLineRequest{Quantity: fine})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.docs.UpdateLine(f.ctx, entity.DocumentKindReceipt, doc.ID, doc.Lines[0].ID,
		dto.UpdateDocumentLineRequest{Quantity: decimal.RequireFromString("1.2500")})
	require.NoError(t, err)
	assert.True(t, out.Lines[0].Quantity.Equal(decimal.RequireFromString("1.25")))
}

func TestDocumentLines_EditOnlyInDraft(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	b := mustProduct(t, f, "B", 0)
	w := mustWarehouse(t, f, "W")

	doc, err := f.docs.CreateReceipt(f.ctx, "u1", dto.CreateReceiptRequest{Supplier: "Proveedor", WarehouseID: w, Lines: lines(a, 1)})
	require.NoError(t, err)

	doc, err = f.docs.AddLine(f.ctx, entity.DocumentKindReceipt, doc.ID, dto.DocumentLineRequest{ProductID: b, Quantity: dec(2)})
	require.NoError(t, err)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, 2, doc.Lines[1].Position)

	lineID := doc.Lines[0].ID
	doc, err = f.docs.UpdateLine(f.ctx, entity.DocumentKindReceipt, doc.ID, lineID, dto.UpdateDocumentLineRequest{Quantity: dec(9)})
	require.NoError(t, err)
	assert.True(t, doc.Lines[0].Quantity.Equal(dec(9)))

	_, err = f.docs.UpdateLine(f.ctx, entity.DocumentKindReceipt, doc.ID, lineID, dto.UpdateDocumentLineRequest{Quantity: dec(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.docs.UpdateLine(f.ctx, entity.DocumentKindReceipt, doc.ID, "no-existe", dto.UpdateDocumentLineRequest{Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.docs.DeleteLine(f.ctx, entity.DocumentKindReceipt, doc.ID, doc.Lines[1].ID))

	_, err = f.workflow.Validate(f.ctx, entity.DocumentKindReceipt, doc.ID)
	require.NoError(t, err)
	assert.True(t, mustStock(t, f, a, w).Equal(dec(9)))
	assert.True(t, mustStock(t, f, b, w).IsZero())

	_, err = f.docs.AddLine(f.ctx, entity.DocumentKindReceipt, doc.ID, dto.DocumentLineRequest{ProductID: b, Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.docs.UpdateLine(f.ctx, entity.DocumentKindReceipt, doc.ID, lineID, dto.UpdateDocumentLineRequest{Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, f.docs.DeleteLine(f.ctx, entity.DocumentKindReceipt, doc.ID, lineID), domain.ErrInvalidTransition)
	assert.ErrorIs(t, f.docs.Delete(f.ctx, entity.DocumentKindReceipt, doc.ID), domain.ErrInvalidTransition)
}

func TestDocumentList_FiltersByKindAndStatus(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	mustReceive(t, f, a, w, 1)
	_, err := f.docs.CreateReceipt(f.ctx, "u1", dto.CreateReceiptRequest{Supplier: "Proveedor", WarehouseID: w, Lines: lines(a, 1)})
	require.NoError(t, err)
	_, err = f.docs.CreateDelivery(f.ctx, "u1", dto.CreateDeliveryRequest{Customer: "Cliente", WarehouseID: w, Lines: lines(a, 1)})
	require.NoError(t, err)

	all, err := f.docs.List(f.ctx, entity.DocumentKindReceipt, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	done, err := f.docs.List(f.ctx, entity.DocumentKindReceipt, "done", 0, 0)
	require.NoError(t, err)
	require.Len(t, done.Items, 1)
	assert.Equal(t, "done", done.Items[0].Status)

	_, err = f.docs.List(f.ctx, entity.DocumentKindTransfer, "cancelled", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentDelete(t *testing.T) {
	f := newFixture()
	a := mustProduct(t, f, "A", 0)
	w := mustWarehouse(t, f, "W")
	doc, err := f.docs.CreateDelivery(f.ctx, "u1", dto.CreateDeliveryRequest{Customer: "Cliente", WarehouseID: w, Lines: lines(a, 1)})
	require.NoError(t, err)

	assert.ErrorIs(t, f.docs.Delete(f.ctx, entity.DocumentKindReceipt, doc.ID), domain.ErrNotFound)
	require.NoError(t, f.docs.Delete(f.ctx, entity.DocumentKindDelivery, doc.ID))

	_, err = f.docs.Get(f.ctx, entity.DocumentKindDelivery, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
