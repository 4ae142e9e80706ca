package catalog

import (
	"eventify/models"
)

// Schema is the set of sub categories and dynamic fields that a category declares.
type Schema struct {
	SubCategories []string              `json:"subCategories"`
	Fields        []models.DynamicField `json:"fields"`
}

// InputFields returns the fields that carry a value, skipping section markers.
func (s Schema) InputFields() []models.DynamicField {
	out := make([]models.DynamicField, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.IsInput() {
			out = append(out, f)
		}
	}
	return out
}

// HasSubCategory reports whether sub is one of the declared sub categories.
func (s Schema) HasSubCategory(sub string) bool {
	for _, sc := range s.SubCategories {
		if sc == sub {
			return true
		}
	}
	return false
}

// Catalog is an immutable, ordered view of the category configuration.
type Catalog struct {
	order []string
	byID  map[string]models.CategoryConfig
}

// New builds a catalog. Later entries with a duplicate id replace earlier ones.
func New(categories []models.CategoryConfig) *Catalog {
	c := &Catalog{byID: make(map[string]models.CategoryConfig, len(categories))}
	for _, cat := range categories {
		if _, seen := c.byID[cat.ID]; !seen {
			c.order = append(c.order, cat.ID)
		}
		c.byID[cat.ID] = cat
	}
	return c
}

// Resolve returns the schema for categoryID. An unknown id yields an empty schema.
func (c *Catalog) Resolve(categoryID string) Schema {
	if c == nil {
		return Schema{SubCategories: []string{}, Fields: []models.DynamicField{}}
	}
	cat, ok := c.byID[categoryID]
	if !ok {
		return Schema{SubCategories: []string{}, Fields: []models.DynamicField{}}
	}
	subs := make([]string, len(cat.SubCategories))
	copy(subs, cat.SubCategories)
	fields := make([]models.DynamicField, len(cat.Fields))
	copy(fields, cat.Fields)
	return Schema{SubCategories: subs, Fields: fields}
}

// Categories returns the categories in declaration order.
func (c *Catalog) Categories() []models.CategoryConfig {
	if c == nil {
		return nil
	}
	out := make([]models.CategoryConfig, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Has reports whether the catalog declares categoryID.
func (c *Catalog) Has(categoryID string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byID[categoryID]
	return ok
}
