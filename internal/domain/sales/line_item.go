package sales

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one product line on a quote or an order
type LineItem struct {
	ID              uint
	ProductID       uint
	Description     string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
	LineTotal       decimal.Decimal
}

// NewLineItem validates the line and computes its total
func NewLineItem(productID uint, description string, quantity int, unitPrice, discountPercent, taxRate decimal.Decimal) (LineItem, error) {
	if productID == 0 {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "Line item product is required")
	}
	if quantity <= 0 {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "Line item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "Line item unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "Line item discount must be between 0 and 100")
	}
	if taxRate.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_INPUT", "Line item tax rate cannot be negative")
	}
	item := LineItem{
		ProductID:       productID,
		Description:     strings.TrimSpace(description),
		Quantity:        quantity,
		UnitPrice:       unitPrice.Round(2),
		DiscountPercent: discountPercent.Round(2),
		TaxRate:         taxRate.Round(2),
	}
	item.LineTotal = item.net().Add(item.tax()).Round(2)
	return item, nil
}

// net is quantity x price after the line discount, before tax
func (l LineItem) net() decimal.Decimal {
	gross := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
	return gross.Mul(hundred.Sub(l.DiscountPercent)).Div(hundred)
}

func (l LineItem) tax() decimal.Decimal {
	return l.net().Mul(l.TaxRate).Div(hundred)
}

// Totals are the monetary columns shared by quotes and orders
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// TotalsFromItems derives subtotal and tax from the line items. The header
// discount is subtracted from the sum of line totals.
func TotalsFromItems(items []LineItem, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.net())
		tax = tax.Add(it.tax())
	}
	subtotal = subtotal.Round(2)
	tax = tax.Round(2)
	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount.Round(2),
		TotalAmount:    subtotal.Add(tax).Sub(discount).Round(2),
	}
}

// resolveTotals picks item-derived totals when items exist, otherwise the
// caller-supplied ones with a zero total derived from the parts.
func resolveTotals(items []LineItem, given Totals) (Totals, error) {
	if given.Subtotal.IsNegative() || given.TaxAmount.IsNegative() || given.DiscountAmount.IsNegative() || given.TotalAmount.IsNegative() {
		return Totals{}, shared.NewDomainError("INVALID_INPUT", "Amounts cannot be negative")
	}
	var t Totals
	if len(items) > 0 {
		t = TotalsFromItems(items, given.DiscountAmount)
	} else {
		t = Totals{
			Subtotal:       given.Subtotal.Round(2),
			TaxAmount:      given.TaxAmount.Round(2),
			DiscountAmount: given.DiscountAmount.Round(2),
			TotalAmount:    given.TotalAmount.Round(2),
		}
		if t.TotalAmount.IsZero() {
			t.TotalAmount = t.Subtotal.Add(t.TaxAmount).Sub(t.DiscountAmount)
		}
	}
	if t.TotalAmount.IsNegative() {
		return Totals{}, shared.NewDomainError("INVALID_INPUT", "Discount exceeds amount")
	}
	return t, nil
}
