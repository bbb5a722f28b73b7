package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/models"
)

func (r *GormRepo) GetCartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart merges quantity into an existing (user, dish) line or creates one.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND dish_id = ?", item.UserID, item.DishID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND dish_id = ?", item.UserID, item.DishID).First(item).Error
		}
		return tx.Create(item).Error
	})
}

// RemoveFromCart decrements the line or deletes it when the held quantity
// does not exceed the requested one. Returns the line's last known state.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, dishID uint, quantity uint) (bool, *models.CartItem, error) {
	var item models.CartItem
	deleted := false

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND dish_id = ?", userID, dishID).First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > quantity {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - ?", quantity)).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ? AND dish_id = ?", userID, dishID).First(&item).Error
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	}); err != nil {
		return false, nil, err
	}
	return deleted, &item, nil
}

// DeleteCart removes the user's cart lines and reports how many rows went.
func (r *GormRepo) DeleteCart(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
