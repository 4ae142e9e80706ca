package models

// CheckboxUnit is the only unit a checkbox variant may carry.
const CheckboxUnit = "item"

// Variant is one purchasable line of a service: either a fixed-inclusion toggle
// (checkbox) or a per-unit option priced by quantity.
type Variant struct {
	ID             string   `bson:"id" json:"id,omitempty"`
	Name           string   `bson:"name" json:"name"`
	Unit           string   `bson:"unit" json:"unit"`
	Price          *float64 `bson:"price" json:"price"`
	IsCheckbox     bool     `bson:"isCheckbox" json:"isCheckbox"`
	MinQty         *int     `bson:"minQty" json:"minQty"`
	MaxQty         *int     `bson:"maxQty,omitempty" json:"maxQty,omitempty"`
	DefaultChecked bool     `bson:"defaultChecked" json:"defaultChecked"`
}

// PriceValue returns the variant price, treating an undefined price as zero.
func (v Variant) PriceValue() float64 {
	if v.Price == nil {
		return 0
	}
	return *v.Price
}

// NewVariant returns a quantity variant with editor defaults.
func NewVariant() Variant {
	return Variant{
		Unit:   CheckboxUnit,
		Price:  Float(0),
		MinQty: Int(1),
	}
}

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i.
func Int(i int) *int { return &i }
