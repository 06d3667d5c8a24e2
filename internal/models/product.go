package models

import "time"

// ProductCategory groups products in the catalog, e.g. "Vitamin & Suplemen".
type ProductCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(120);not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product represents a product in the store.
type Product struct {
	ID                   uint             `json:"id" gorm:"primaryKey"`
	CategoryID           *uint            `json:"category_id" gorm:"index"`
	Category             *ProductCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Name                 string           `json:"name" gorm:"type:varchar(150);not null"`
	Slug                 string           `json:"slug" gorm:"uniqueIndex;type:varchar(180);not null"`
	Description          string           `json:"description" gorm:"type:text"`
	Price                float64          `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock                int              `json:"stock" gorm:"not null;default:0"`
	SoldCount            int              `json:"sold_count" gorm:"not null;default:0"`
	ImageURL             string           `json:"image_url" gorm:"type:varchar(255)"`
	RequiresPrescription bool             `json:"requires_prescription" gorm:"not null;default:false"`
	IsActive             bool             `json:"is_active" gorm:"not null"`
	Detail               *ProductDetail   `json:"detail,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// ProductDetail holds the pharmaceutical information shown on a product page.
type ProductDetail struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"product_id" gorm:"uniqueIndex;not null"`
	Manufacturer string    `json:"manufacturer" gorm:"type:varchar(150)"`
	Composition  string    `json:"composition" gorm:"type:text"`
	Dosage       string    `json:"dosage" gorm:"type:text"`
	Indications  string    `json:"indications" gorm:"type:text"`
	SideEffects  string    `json:"side_effects" gorm:"type:text"`
	Storage      string    `json:"storage" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	CategorySlug string
	Search       string
	ActiveOnly   bool
}
