package dto

import (
	"time"

	"pharmahub/internal/models"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
	Description string `json:"description"`
}

func (r CategoryRequest) ToModel(id uint) *models.ProductCategory {
	return &models.ProductCategory{ID: id, Name: r.Name, Slug: r.Slug, Description: r.Description}
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func FromCategory(c models.ProductCategory) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
}

func FromCategories(categories []models.ProductCategory) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromCategory(c))
	}
	return out
}

type ProductRequest struct {
	CategoryID           *uint   `json:"categoryId"`
	Name                 string  `json:"name" validate:"required,max=150"`
	Slug                 string  `json:"slug" validate:"omitempty,max=180"`
	Description          string  `json:"description"`
	Price                float64 `json:"price" validate:"gte=0"`
	Stock                int     `json:"stock" validate:"gte=0"`
	RequiresPrescription bool    `json:"requiresPrescription"`
	IsActive             *bool   `json:"isActive"`
}

// ToModel builds the product to store. Products are active unless isActive is false.
func (r ProductRequest) ToModel(id uint) *models.Product {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Product{
		ID:                   id,
		CategoryID:           r.CategoryID,
		Name:                 r.Name,
		Slug:                 r.Slug,
		Description:          r.Description,
		Price:                r.Price,
		Stock:                r.Stock,
		RequiresPrescription: r.RequiresPrescription,
		IsActive:             active,
	}
}

type ProductDetailRequest struct {
	Manufacturer string `json:"manufacturer" validate:"max=150"`
	Composition  string `json:"composition"`
	Dosage       string `json:"dosage"`
	Indications  string `json:"indications"`
	SideEffects  string `json:"sideEffects"`
	Storage      string `json:"storage"`
}

func (r ProductDetailRequest) ToModel() *models.ProductDetail {
	return &models.ProductDetail{
		Manufacturer: r.Manufacturer,
		Composition:  r.Composition,
		Dosage:       r.Dosage,
		Indications:  r.Indications,
		SideEffects:  r.SideEffects,
		Storage:      r.Storage,
	}
}

type ProductDetailResponse struct {
	Manufacturer string `json:"manufacturer"`
	Composition  string `json:"composition"`
	Dosage       string `json:"dosage"`
	Indications  string `json:"indications"`
	SideEffects  string `json:"sideEffects"`
	Storage      string `json:"storage"`
}

type ProductResponse struct {
	ID                   uint                   `json:"id"`
	CategoryID           *uint                  `json:"categoryId"`
	Category             *CategoryResponse      `json:"category,omitempty"`
	Name                 string                 `json:"name"`
	Slug                 string                 `json:"slug"`
	Description          string                 `json:"description"`
	Price                float64                `json:"price"`
	Stock                int                    `json:"stock"`
	SoldCount            int                    `json:"soldCount"`
	ImageURL             string                 `json:"imageUrl"`
	RequiresPrescription bool                   `json:"requiresPrescription"`
	IsActive             bool                   `json:"isActive"`
	Detail               *ProductDetailResponse `json:"detail,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

func FromProduct(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:                   p.ID,
		CategoryID:           p.CategoryID,
		Name:                 p.Name,
		Slug:                 p.Slug,
		Description:          p.Description,
		Price:                p.Price,
		Stock:                p.Stock,
		SoldCount:            p.SoldCount,
		ImageURL:             p.ImageURL,
		RequiresPrescription: p.RequiresPrescription,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if p.Category != nil {
		c := FromCategory(*p.Category)
		resp.Category = &c
	}
	if p.Detail != nil {
		resp.Detail = &ProductDetailResponse{
			Manufacturer: p.Detail.Manufacturer,
			Composition:  p.Detail.Composition,
			Dosage:       p.Detail.Dosage,
			Indications:  p.Detail.Indications,
			SideEffects:  p.Detail.SideEffects,
			Storage:      p.Detail.Storage,
		}
	}
	return resp
}

func FromProducts(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
