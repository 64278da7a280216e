package entry

import (
	"fmt"
	"strings"
)

// Category classifies what kind of event an entry records.
type Category string

const (
	// CategoryEat is food.
	CategoryEat Category = "eat"
	// CategoryDrink is anything drunk.
	CategoryDrink Category = "drink"
	// CategoryMeds is a medication or supplement.
	CategoryMeds Category = "meds"
	// CategoryOther is a free-form event such as exercise or rest.
	CategoryOther Category = "other"
	// CategorySymptom is a symptom and always carries a severity.
	CategorySymptom Category = "symptom"
)

// CategoryInfo is the display metadata for a category.
type CategoryInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Categories maps every category to its display metadata.
var Categories = map[Category]CategoryInfo{
	CategoryEat:     {Label: "Eat", Color: "#ea580c"},
	CategoryDrink:   {Label: "Drink", Color: "#2563eb"},
	CategoryMeds:    {Label: "Meds", Color: "#7c3aed"},
	CategoryOther:   {Label: "Other", Color: "#4b5563"},
	CategorySymptom: {Label: "Symptom", Color: "#e11d48"},
}

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryEat,
		CategoryDrink,
		CategoryMeds,
		CategoryOther,
		CategorySymptom,
	}
}

// SimpleCategories returns the categories that do not take a severity.
func SimpleCategories() []Category {
	return []Category{
		CategoryEat,
		CategoryDrink,
		CategoryMeds,
		CategoryOther,
	}
}

// ParseCategory converts a string to a Category or returns ErrValidation for unknown values.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, raw)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := Categories[c]
	return ok
}

// IsSymptom reports whether c is CategorySymptom.
func (c Category) IsSymptom() bool {
	return c == CategorySymptom
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	if info, ok := Categories[c]; ok {
		return info.Label
	}
	return string(c)
}

// Color returns the hex display color of the category.
func (c Category) Color() string {
	if info, ok := Categories[c]; ok {
		return info.Color
	}
	return Categories[CategoryOther].Color
}

func (c Category) String() string {
	return string(c)
}
