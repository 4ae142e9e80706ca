package listing

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"eventify/models"
)

const (
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgCategoryRequired    = "Category is required"
	MsgSubCategoryRequired = "Sub category is required"
	MsgLocationRequired    = "Location is required"
	MsgVariantsRequired    = "At least one variant is required"
	MsgImagesRequired      = "At least one image is required"
)

// ValidationErrors maps draft fields to messages. Details holds the messages of missing
// dynamic fields keyed by field key. An empty value means the draft is valid.
type ValidationErrors struct {
	Fields  map[string]string
	Details map[string]string
}

// Valid reports whether no rule failed.
func (e ValidationErrors) Valid() bool {
	return len(e.Fields) == 0 && len(e.Details) == 0
}

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e.Fields)+len(e.Details))
	for k, msg := range e.Fields {
		parts = append(parts, k+": "+msg)
	}
	for k, msg := range e.Details {
		parts = append(parts, "details."+k+": "+msg)
	}
	sort.Strings(parts)
	return "invalid draft: " + strings.Join(parts, "; ")
}

// MarshalJSON renders the flat field errors with the detail errors nested under "details".
func (e ValidationErrors) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+1)
	for k, msg := range e.Fields {
		out[k] = msg
	}
	if len(e.Details) > 0 {
		out["details"] = e.Details
	}
	return json.Marshal(out)
}

func (e *ValidationErrors) set(key, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[key]; !exists {
		e.Fields[key] = msg
	}
}

// Validate checks a draft before submission. fields are the dynamic fields of the
// draft's category. Validation never fails with an error; problems are reported in
// the returned map.
func Validate(d *models.ServiceDraft, fields []models.DynamicField, isEditMode bool) ValidationErrors {
	var errs ValidationErrors

	required := []struct {
		key, value, msg string
	}{
		{"title", d.Title, MsgTitleRequired},
		{"description", d.Description, MsgDescriptionRequired},
		{"category", d.Category, MsgCategoryRequired},
		{"subCategory", d.SubCategory, MsgSubCategoryRequired},
		{"location", d.Location, MsgLocationRequired},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.set(r.key, r.msg)
		}
	}

	if len(d.Variants) == 0 {
		errs.set("variants", MsgVariantsRequired)
	} else if msg := firstVariantError(d.Variants); msg != "" {
		errs.set("variants", msg)
	}

	for _, f := range fields {
		if !f.Required || !f.IsInput() {
			continue
		}
		if v, ok := d.Details[f.Key]; !ok || !v.Truthy() {
			if errs.Details == nil {
				errs.Details = map[string]string{}
			}
			errs.Details[f.Key] = requiredFieldMessage(f)
		}
	}

	if isEditMode {
		if len(d.VisibleImages()) == 0 && len(d.PendingNewFiles) == 0 {
			errs.set("images", MsgImagesRequired)
		}
	} else if len(d.PendingNewFiles) == 0 {
		errs.set("images", MsgImagesRequired)
	}

	return errs
}

// firstVariantError returns the message of the first invalid variant, scanning in order.
func firstVariantError(variants []models.Variant) string {
	for i, v := range variants {
		if msg := variantError(v); msg != "" {
			return fmt.Sprintf("Variant %d: %s", i+1, msg)
		}
	}
	return ""
}

func variantError(v models.Variant) string {
	if strings.TrimSpace(v.Name) == "" {
		return "name is required"
	}
	if v.Price == nil || math.IsNaN(*v.Price) || math.IsInf(*v.Price, 0) || *v.Price < 0 {
		return "price must be a non-negative number"
	}
	if v.IsCheckbox {
		if v.MaxQty == nil || *v.MaxQty != 1 {
			return "checkbox variants must have a max quantity of 1"
		}
		return ""
	}
	if strings.TrimSpace(v.Unit) == "" {
		return "unit is required"
	}
	if v.MinQty == nil || *v.MinQty < 1 {
		return "min quantity must be at least 1"
	}
	if v.MaxQty != nil && *v.MaxQty < *v.MinQty {
		return "max quantity must be greater than or equal to min quantity"
	}
	return ""
}

func requiredFieldMessage(f models.DynamicField) string {
	label := f.Label
	if label == "" {
		label = f.Key
	}
	return label + " is required"
}
