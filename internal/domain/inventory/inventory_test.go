package inventory

import (
	"testing"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackedProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct(ProductDetails{SKU: "sku-1", Name: "Widget", TrackInventory: true, ReorderLevel: 5})
	require.NoError(t, err)
	p.ID = 7
	p.CurrentStock = stock
	return p
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(ProductDetails{SKU: " ab-1 ", Name: "Widget", CostPrice: decimal.RequireFromString("2.505")})
	require.NoError(t, err)
	assert.Equal(t, "AB-1", p.SKU)
	assert.Equal(t, ProductTypeGoods, p.Type)
	assert.True(t, p.IsActive)
	assert.Equal(t, "2.51", p.CostPrice.StringFixed(2))

	_, err = NewProduct(ProductDetails{Name: "x"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewProduct(ProductDetails{SKU: "x"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewProduct(ProductDetails{SKU: "x", Name: "y", Type: "food"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewProduct(ProductDetails{SKU: "x", Name: "y", SellingPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProduct_IsLowStock(t *testing.T) {
	p := newTrackedProduct(t, 5)
	assert.True(t, p.IsLowStock())
	p.CurrentStock = 6
	assert.False(t, p.IsLowStock())
	p.CurrentStock = 0
	p.TrackInventory = false
	assert.False(t, p.IsLowStock())
}

func TestProduct_ApplyMovement(t *testing.T) {
	t.Run("in adds stock", func(t *testing.T) {
		p := newTrackedProduct(t, 10)
		m, err := p.ApplyMovement(MovementRequest{MovementType: MovementTypeIn, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 15, p.CurrentStock)
		assert.Equal(t, 10, m.QuantityBefore)
		assert.Equal(t, 15, m.QuantityAfter)
		assert.Equal(t, uint(7), m.ProductID)
		assert.True(t, m.IsConsistent())
	})

	t.Run("out subtracts stock", func(t *testing.T) {
		p := newTrackedProduct(t, 10)
		m, err := p.ApplyMovement(MovementRequest{MovementType: MovementTypeOut, Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, 6, p.CurrentStock)
		assert.Equal(t, 4, m.Quantity)
		assert.True(t, m.IsConsistent())
	})

	t.Run("out below zero fails", func(t *testing.T) {
		p := newTrackedProduct(t, 3)
		_, err := p.ApplyMovement(MovementRequest{MovementType: MovementTypeOut, Quantity: 4})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 3, p.CurrentStock)
	})

	t.Run("adjustment records signed difference", func(t *testing.T) {
		p := newTrackedProduct(t, 10)
		m, err := p.ApplyMovement(MovementRequest{MovementType: MovementTypeAdjustment, Quantity: 7, Reason: "count"})
		require.NoError(t, err)
		assert.Equal(t, 7, p.CurrentStock)
		assert.Equal(t, -3, m.Quantity)
		assert.True(t, m.IsConsistent())
	})

	t.Run("adjustment requires reason", func(t *testing.T) {
		p := newTrackedProduct(t, 10)
		_, err := p.ApplyMovement(MovementRequest{MovementType: MovementTypeAdjustment, Quantity: 7})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects non-positive quantities and unknown types", func(t *testing.T) {
		p := newTrackedProduct(t, 10)
		_, err := p.ApplyMovement(MovementRequest{MovementType: MovementTypeIn, Quantity: 0})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		_, err = p.ApplyMovement(MovementRequest{MovementType: "transfer", Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("untracked products reject movements", func(t *testing.T) {
		p := newTrackedProduct(t, 10)
		p.TrackInventory = false
		_, err := p.ApplyMovement(MovementRequest{MovementType: MovementTypeIn, Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestNewWarehouseAndCategory(t *testing.T) {
	w, err := NewWarehouse("Main", " wh-01 ", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "WH-01", w.Code)

	_, err = NewWarehouse("", "X", "", "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	c, err := NewCategory("Tools", "", nil)
	require.NoError(t, err)
	assert.True(t, c.IsRoot())

	_, err = NewCategory("  ", "", nil)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
