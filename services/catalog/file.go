package catalog

import (
	"fmt"
	"os"

	"eventify/models"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Categories []models.CategoryConfig `yaml:"categories"`
}

// LoadFile reads a YAML catalog of the form `categories: [...]`.
func LoadFile(path string) ([]models.CategoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) ([]models.CategoryConfig, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog.Parse: invalid catalog: %w", err)
	}
	for i, cat := range f.Categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("catalog.Parse: category %d has no id", i)
		}
		for _, field := range cat.Fields {
			switch field.Type {
			case models.FieldTypeText, models.FieldTypeNumber, models.FieldTypeBoolean, models.FieldTypeSection:
			default:
				return nil, fmt.Errorf("catalog.Parse: category %s field %s has unknown type %q", cat.ID, field.Key, field.Type)
			}
		}
	}
	return f.Categories, nil
}
