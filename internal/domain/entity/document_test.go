package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDocumentKind_Statuses(t *testing.T) {
	assert.True(t, DocumentKindReceipt.Allows(StatusWaiting))
	assert.False(t, DocumentKindReceipt.Allows(StatusReady))
	assert.True(t, DocumentKindDelivery.Allows(StatusReady))
	assert.False(t, DocumentKindTransfer.Allows(StatusCancelled))
	assert.False(t, DocumentKind("invoice").Valid())

	st := DocumentKindTransfer.Statuses()
	assert.Equal(t, []DocumentStatus{StatusDraft, StatusWaiting, StatusDone}, st)
	st[0] = StatusCancelled
	assert.Equal(t, StatusDraft, DocumentKindTransfer.Statuses()[0])
}

func TestDocument_Line(t *testing.T) {
	d := &Document{Status: StatusDraft, Lines: []DocumentLine{{ID: "l1"}, {ID: "l2"}}}
	assert.True(t, d.IsDraft())

	l, ok := d.Line("l2")
	assert.True(t, ok)
	assert.Equal(t, "l2", l.ID)

	_, ok = d.Line("l3")
	assert.False(t, ok)
}

func TestStockKey_Less(t *testing.T) {
	a := StockKey{ProductID: "a", WarehouseID: "z"}
	b := StockKey{ProductID: "b", WarehouseID: "a"}
	c := StockKey{ProductID: "b", WarehouseID: "b"}
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(a))
	assert.True(t, IsValidSourceType(SourceTransferIn))
	assert.False(t, IsValidSourceType("Sale"))
}

func TestFitsQuantityScale(t *testing.T) {
	for in, want := range map[string]bool{
		"1":         true,
		"1.0001":    true,
		"1.5000000": true,
		"1.00005":   false,
		"0.00001":   false,
	} {
		assert.Equal(t, want, FitsQuantityScale(decimal.RequireFromString(in)), in)
	}
}
