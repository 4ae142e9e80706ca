package models

// FieldType is the declared runtime type of a dynamic category field.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	// FieldTypeSection groups inputs visually; it never carries a value.
	FieldTypeSection FieldType = "section"
)

// DynamicField is a category specific input that is not part of the fixed listing schema.
type DynamicField struct {
	Key      string    `bson:"key" json:"key" yaml:"key"`
	Label    string    `bson:"label" json:"label" yaml:"label"`
	Type     FieldType `bson:"type" json:"type" yaml:"type"`
	Required bool      `bson:"required" json:"required" yaml:"required"`
}

// IsInput reports whether the field accepts a value.
func (f DynamicField) IsInput() bool {
	return f.Type != FieldTypeSection
}

// CategoryConfig declares the sub categories and extra fields of one category.
type CategoryConfig struct {
	ID            string         `bson:"id" json:"id" yaml:"id"`
	Name          string         `bson:"name" json:"name" yaml:"name"`
	SubCategories []string       `bson:"subCategories" json:"subCategories" yaml:"subCategories"`
	Fields        []DynamicField `bson:"fields" json:"fields" yaml:"fields"`
}
