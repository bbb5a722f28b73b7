package repo

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) CreatePosition(ctx context.Context, position *models.Position) error {
	return r.DB.WithContext(ctx).Create(position).Error
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Positions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) CountOrders(ctx context.Context, userID uint) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DebitBalance subtracts total from the user's balance, guarded so the
// balance cannot go negative. The guarded UPDATE takes the user row lock;
// a concurrent same-user checkout blocks here and re-evaluates the guard
// after the first commits. A fractional total is debited rounded up, so
// the debit never undershoots the recorded order price; the guard passing
// on an integer balance implies the rounded-up amount is still covered.
// Returns false when the guard rejected the debit.
func (r *GormRepo) DebitBalance(ctx context.Context, userID uint, total float64) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, total).
		Update("balance", gorm.Expr("balance - ?", int64(math.Ceil(total))))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
