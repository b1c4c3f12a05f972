package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllCategories is the filter code that matches every product.
const AllCategories = "all"

// Category represents a product category.
// Code is the raw label carried by products, Name is its display form.
type Category struct {
	Code string
	Name string
}

// NewCategory builds a category from a product label.
func NewCategory(code string) Category {
	return Category{
		Code: code,
		Name: cases.Title(language.English).String(code),
	}
}
