package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// CartLine pairs a cart item with its dish for price resolution.
type CartLine struct {
	Item models.CartItem
	Dish models.Dish
}

func (s *CartService) AddToCart(ctx context.Context, userID, dishID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive integer: %w", ErrValidation)
	}
	if _, err := s.Repo.GetDish(ctx, dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dish %d: %w", dishID, ErrNotFound)
		}
		return nil, err
	}

	item := models.CartItem{UserID: userID, DishID: dishID, Quantity: uint(quantity)}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart decrements the (user, dish) line, deleting it entirely when
// the held quantity does not exceed the requested one.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, dishID uint, quantity int) (bool, *models.CartItem, error) {
	if quantity <= 0 {
		return false, nil, fmt.Errorf("quantity must be a positive integer: %w", ErrValidation)
	}
	if _, err := s.Repo.GetDish(ctx, dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, fmt.Errorf("dish %d: %w", dishID, ErrNotFound)
		}
		return false, nil, err
	}

	deleted, item, err := s.Repo.RemoveFromCart(ctx, userID, dishID, uint(quantity))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, fmt.Errorf("dish %d: %w", dishID, ErrNotInCart)
	}
	return deleted, item, err
}

// ViewCart returns the user's cart lines joined with dish data and the cart
// total. An empty cart yields an empty slice and a zero total.
func (s *CartService) ViewCart(ctx context.Context, userID uint) ([]CartLine, float64, error) {
	items, err := s.Repo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]CartLine, 0, len(items))
	var total float64
	for _, item := range items {
		dish, err := s.Repo.GetDish(ctx, item.DishID)
		if err != nil {
			return nil, 0, err
		}
		lines = append(lines, CartLine{Item: item, Dish: *dish})
		total += dish.Price * float64(item.Quantity)
	}
	return lines, total, nil
}
