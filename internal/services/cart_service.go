package services

import (
	"context"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/models"
	"pharmahub/internal/repositories"
)

// CartService manages the per-user shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns the user's cart lines with their products.
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// AddItem adds quantity of a product, merging with an existing line.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.ValidationFields("Validation failed", map[string]string{"quantity": "quantity must be greater than zero"})
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.Get(ctx, userID, productID)
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return s.cartRepo.Delete(ctx, userID, productID)
	}
	return s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	return s.cartRepo.Delete(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.cartRepo.Clear(ctx, userID)
}
