package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/repo"
)

type CheckoutService struct {
	Repo *repo.GormRepo
}

// Checkout converts the user's cart into an immutable order in one
// transaction: debit the balance, create the order and its positions,
// delete the cart lines. Any failure rolls the whole thing back.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	var order *models.Order

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		items, err := tx.GetCartItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("user %d: %w", userID, ErrEmptyCart)
		}

		var total float64
		for _, item := range items {
			dish, err := tx.GetDish(ctx, item.DishID)
			if err != nil {
				return err
			}
			total += dish.Price * float64(item.Quantity)
		}

		ok, err := tx.DebitBalance(ctx, userID, total)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("user %d: total %.2f: %w", userID, total, ErrInsufficientBalance)
		}

		order = &models.Order{
			UserID:    userID,
			Price:     total,
			CreatedAt: time.Now().Unix(),
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		for _, item := range items {
			position := models.Position{
				OrderID:  order.ID,
				DishID:   item.DishID,
				Quantity: item.Quantity,
			}
			if err := tx.CreatePosition(ctx, &position); err != nil {
				return err
			}
			order.Positions = append(order.Positions, position)
		}

		// The cart was snapshotted before the debit took the user row
		// lock. If a concurrent checkout consumed any of the lines in
		// between, the delete count disagrees with the snapshot and the
		// whole transaction rolls back.
		deleted, err := tx.DeleteCart(ctx, userID)
		if err != nil {
			return err
		}
		if deleted != int64(len(items)) {
			return fmt.Errorf("cart changed during checkout: %w", ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
