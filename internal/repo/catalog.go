package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/models"
)

func (r *GormRepo) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := r.DB.WithContext(ctx).Preload("Dishes").Order("id ASC").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *GormRepo) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	return r.DB.WithContext(ctx).Create(restaurant).Error
}

// DeleteRestaurant removes the restaurant together with its dishes and
// everything hanging off them, mirroring the cascade in the schema.
func (r *GormRepo) DeleteRestaurant(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dishIDs []uint
		if err := tx.Model(&models.Dish{}).Where("restaurant_id = ?", id).Pluck("id", &dishIDs).Error; err != nil {
			return err
		}
		if len(dishIDs) > 0 {
			if err := tx.Where("dish_id IN ?", dishIDs).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("dish_id IN ?", dishIDs).Delete(&models.Position{}).Error; err != nil {
				return err
			}
			if err := tx.Where("restaurant_id = ?", id).Delete(&models.Dish{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Restaurant{}, id).Error
	})
}

func (r *GormRepo) GetDish(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.DB.WithContext(ctx).First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *GormRepo) CreateDish(ctx context.Context, dish *models.Dish) error {
	return r.DB.WithContext(ctx).Create(dish).Error
}

func (r *GormRepo) SaveDish(ctx context.Context, dish *models.Dish) error {
	return r.DB.WithContext(ctx).Save(dish).Error
}

func (r *GormRepo) DeleteDish(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_id = ?", id).Delete(&models.Position{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Dish{}, id).Error
	})
}
