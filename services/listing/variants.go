package listing

import (
	"eventify/models"
)

// VariantPatch is a partial variant update. Nil fields are left untouched.
type VariantPatch struct {
	Name           *string  `json:"name"`
	Unit           *string  `json:"unit"`
	Price          *float64 `json:"price"`
	IsCheckbox     *bool    `json:"isCheckbox"`
	MinQty         *int     `json:"minQty"`
	MaxQty         *int     `json:"maxQty"`
	ClearMaxQty    bool     `json:"clearMaxQty"`
	DefaultChecked *bool    `json:"defaultChecked"`
}

// AddVariant appends a variant with editor defaults and returns its index.
func AddVariant(d *models.ServiceDraft) int {
	d.Variants = append(d.Variants, models.NewVariant())
	return len(d.Variants) - 1
}

// UpdateVariant applies patch to the variant at index.
//
// Switching a variant to checkbox mode forces unit "item" and a quantity of exactly one.
// Switching it back clears the max quantity so that the vendor enters it again.
func UpdateVariant(d *models.ServiceDraft, index int, patch VariantPatch) error {
	if index < 0 || index >= len(d.Variants) {
		return indexError("variant", index, len(d.Variants))
	}
	v := d.Variants[index]
	wasCheckbox := v.IsCheckbox

	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Unit != nil {
		v.Unit = *patch.Unit
	}
	if patch.Price != nil {
		v.Price = models.Float(*patch.Price)
	}
	if patch.MinQty != nil {
		v.MinQty = models.Int(*patch.MinQty)
	}
	if patch.ClearMaxQty {
		v.MaxQty = nil
	}
	if patch.MaxQty != nil {
		v.MaxQty = models.Int(*patch.MaxQty)
	}
	if patch.DefaultChecked != nil {
		v.DefaultChecked = *patch.DefaultChecked
	}

	if patch.IsCheckbox != nil {
		v.IsCheckbox = *patch.IsCheckbox
		switch {
		case v.IsCheckbox:
			v.Unit = models.CheckboxUnit
			v.MinQty = models.Int(1)
			v.MaxQty = models.Int(1)
		case wasCheckbox:
			v.MaxQty = nil
			v.DefaultChecked = false
		}
	}

	d.Variants[index] = v
	return nil
}

// RemoveVariant deletes the variant at index. Later variants shift down by one.
func RemoveVariant(d *models.ServiceDraft, index int) error {
	if index < 0 || index >= len(d.Variants) {
		return indexError("variant", index, len(d.Variants))
	}
	d.Variants = append(d.Variants[:index], d.Variants[index+1:]...)
	return nil
}
