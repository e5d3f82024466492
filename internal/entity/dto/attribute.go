package dto

// ProductTypeRequest creates a product type.
type ProductTypeRequest struct {
	Name string `json:"name" binding:"required,max=128"`
	Slug string `json:"slug" binding:"omitempty,max=160,slug"`
}

// ProductTypeUpdateRequest updates a product type.
type ProductTypeUpdateRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=128"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,max=160,slug"`
}

// AttributeRequest creates an attribute of a product type.
type AttributeRequest struct {
	Name       string   `json:"name" binding:"required,max=128"`
	Slug       string   `json:"slug" binding:"omitempty,max=160,slug"`
	Kind       string   `json:"kind" binding:"required,oneof=text number select boolean"`
	Options    []string `json:"options"`
	Unit       string   `json:"unit" binding:"max=32"`
	IsRequired bool     `json:"is_required"`
	SortOrder  int      `json:"sort_order"`
}

// AttributeUpdateRequest updates an attribute.
type AttributeUpdateRequest struct {
	Name       *string   `json:"name,omitempty" binding:"omitempty,min=1,max=128"`
	Slug       *string   `json:"slug,omitempty" binding:"omitempty,max=160,slug"`
	Kind       *string   `json:"kind,omitempty" binding:"omitempty,oneof=text number select boolean"`
	Options    *[]string `json:"options,omitempty"`
	Unit       *string   `json:"unit,omitempty" binding:"omitempty,max=32"`
	IsRequired *bool     `json:"is_required,omitempty"`
	SortOrder  *int      `json:"sort_order,omitempty"`
}
