package database

import (
	"context"
	"fmt"

	"pharmahub/internal/models"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedProduct struct {
	product models.Product
	detail  models.ProductDetail
}

// Seed inserts demo categories, products and an admin account. Rows are matched by slug
// or email, so running it twice does not duplicate data.
func Seed(ctx context.Context, db *gorm.DB, adminPassword string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := []models.ProductCategory{
			{Name: "Obat Bebas", Slug: "obat-bebas", Description: "Obat yang dapat dibeli tanpa resep dokter"},
			{Name: "Vitamin & Suplemen", Slug: "vitamin-suplemen", Description: "Vitamin, mineral dan suplemen harian"},
			{Name: "Obat Keras", Slug: "obat-keras", Description: "Obat yang memerlukan resep dokter"},
		}
		categoryIDs := make(map[string]uint, len(categories))
		for i := range categories {
			c := categories[i]
			if err := tx.Where(models.ProductCategory{Slug: c.Slug}).FirstOrCreate(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
			}
			categoryIDs[c.Slug] = c.ID
		}

		products := seedProducts(categoryIDs)
		for _, sp := range products {
			p := sp.product
			if err := tx.Where(models.Product{Slug: p.Slug}).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.Slug, err)
			}
			d := sp.detail
			d.ProductID = p.ID
			if err := tx.Where(models.ProductDetail{ProductID: p.ID}).FirstOrCreate(&d).Error; err != nil {
				return fmt.Errorf("failed to seed detail for %s: %w", p.Slug, err)
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := models.User{Name: "Administrator", Email: "admin@pharmahub.local", Password: string(hash), Role: models.RoleAdmin}
		if err := tx.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}

		log.WithField("products", len(products)).Info("Seed data ensured")
		return nil
	})
}

func seedProducts(categoryIDs map[string]uint) []seedProduct {
	cat := func(slug string) *uint {
		id := categoryIDs[slug]
		return &id
	}
	return []seedProduct{
		{
			product: models.Product{CategoryID: cat("obat-bebas"), Name: "Paracetamol 500 mg", Slug: "paracetamol-500-mg", Description: "Pereda demam dan nyeri, strip isi 10 tablet", Price: 5000, Stock: 200, IsActive: true},
			detail:  models.ProductDetail{Manufacturer: "Kimia Farma", Composition: "Paracetamol 500 mg", Dosage: "Dewasa 1-2 tablet, 3-4 kali sehari", Indications: "Demam, sakit kepala, nyeri ringan", Storage: "Simpan di bawah 30°C"},
		},
		{
			product: models.Product{CategoryID: cat("obat-bebas"), Name: "Obat Batuk Hitam 100 ml", Slug: "obat-batuk-hitam-100-ml", Description: "Sirup pereda batuk berdahak", Price: 12000, Stock: 80, IsActive: true},
			detail:  models.ProductDetail{Manufacturer: "Konimex", Composition: "Succus liquiritiae, Ammonium chloride", Dosage: "Dewasa 3 kali sehari 1 sendok makan", Indications: "Batuk berdahak"},
		},
		{
			product: models.Product{CategoryID: cat("vitamin-suplemen"), Name: "Vitamin C 1000 mg", Slug: "vitamin-c-1000-mg", Description: "Suplemen daya tahan tubuh, botol isi 30 tablet", Price: 8000, Stock: 150, IsActive: true},
			detail:  models.ProductDetail{Manufacturer: "Sido Muncul", Composition: "Asam askorbat 1000 mg", Dosage: "1 tablet sehari sesudah makan", SideEffects: "Gangguan pencernaan pada dosis tinggi"},
		},
		{
			product: models.Product{CategoryID: cat("obat-keras"), Name: "Amoxicillin 500 mg", Slug: "amoxicillin-500-mg", Description: "Antibiotik, hanya dengan resep dokter", Price: 15000, Stock: 60, RequiresPrescription: true, IsActive: true},
			detail:  models.ProductDetail{Manufacturer: "Indofarma", Composition: "Amoxicillin trihydrate 500 mg", Dosage: "Sesuai petunjuk dokter", SideEffects: "Mual, diare, reaksi alergi"},
		},
	}
}
