package booking

import (
	"eventify/models"
)

// Calculator prices a variant selection.
//
// A variant's MaxQty is advisory by default: quantities above it are priced like any
// other. With EnforceMaxQty set, such a selection is rejected with a *QuantityError.
type Calculator struct {
	EnforceMaxQty bool
}

// ComputeTotal prices selection against variants. Variants are visited in order; each
// one with a positive quantity contributes price × quantity and one line item. A zero
// subtotal is a valid result.
func ComputeTotal(variants []models.Variant, selection map[string]int) models.Quote {
	q := models.Quote{LineItems: []models.LineItem{}}
	for _, v := range variants {
		qty := clampQuantity(selection[v.ID])
		if qty == 0 {
			continue
		}
		q.LineItems = append(q.LineItems, models.LineItem{Variant: v.ID, Quantity: qty})
		q.Subtotal += v.PriceValue() * float64(qty)
	}
	return q
}

// Quote prices selection, enforcing MaxQty when configured.
func (c Calculator) Quote(variants []models.Variant, selection map[string]int) (models.Quote, error) {
	if c.EnforceMaxQty {
		for _, v := range variants {
			qty := clampQuantity(selection[v.ID])
			if v.MaxQty != nil && qty > *v.MaxQty {
				return models.Quote{}, &QuantityError{Variant: v.ID, Quantity: qty, Max: *v.MaxQty}
			}
		}
	}
	return ComputeTotal(variants, selection), nil
}

// CheckPolicy returns ErrNothingSelected unless the quote has a positive subtotal.
func CheckPolicy(q models.Quote) error {
	if q.Subtotal <= 0 {
		return ErrNothingSelected
	}
	return nil
}

// NormalizeSelection is the input layer of a booking form: negative quantities become
// zero, checkbox variants are limited to 0 or 1, and ids that match no variant are dropped.
func NormalizeSelection(variants []models.Variant, raw map[string]int) map[string]int {
	out := make(map[string]int, len(raw))
	for _, v := range variants {
		qty, ok := raw[v.ID]
		if !ok {
			continue
		}
		qty = clampQuantity(qty)
		if v.IsCheckbox && qty > 1 {
			qty = 1
		}
		out[v.ID] = qty
	}
	return out
}

// DefaultSelection is the selection a booking form starts from: checkbox variants
// marked DefaultChecked are selected, everything else is zero.
func DefaultSelection(variants []models.Variant) map[string]int {
	out := make(map[string]int, len(variants))
	for _, v := range variants {
		if v.IsCheckbox && v.DefaultChecked {
			out[v.ID] = 1
		} else {
			out[v.ID] = 0
		}
	}
	return out
}

func clampQuantity(qty int) int {
	if qty < 0 {
		return 0
	}
	return qty
}
