package service

import (
	"context"

	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/repo"
)

const DefaultOrderLimit = 10

type OrderService struct {
	Repo *repo.GormRepo
}

type OrderPosition struct {
	ID       uint
	Name     string
	Price    float64
	Quantity uint
}

type OrderView struct {
	Order     models.Order
	Positions []OrderPosition
}

type OrderListing struct {
	// TotalCount counts every order the user ever placed, TotalSum sums
	// only the returned page. The asymmetry is part of the contract.
	TotalCount int64
	TotalSum   float64
	Orders     []OrderView
}

// ListOrders returns the user's most recent orders, newest first, with
// position dish data resolved through the current dish records.
func (s *OrderService) ListOrders(ctx context.Context, userID uint, limit int) (*OrderListing, error) {
	if limit <= 0 {
		limit = DefaultOrderLimit
	}

	orders, err := s.Repo.ListOrders(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	totalCount, err := s.Repo.CountOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing := OrderListing{TotalCount: totalCount, Orders: make([]OrderView, 0, len(orders))}
	for _, order := range orders {
		view := OrderView{Order: order, Positions: make([]OrderPosition, 0, len(order.Positions))}
		for _, position := range order.Positions {
			dish, err := s.Repo.GetDish(ctx, position.DishID)
			if err != nil {
				return nil, err
			}
			view.Positions = append(view.Positions, OrderPosition{
				ID:       position.ID,
				Name:     dish.Name,
				Price:    dish.Price,
				Quantity: position.Quantity,
			})
		}
		listing.TotalSum += order.Price
		listing.Orders = append(listing.Orders, view)
	}
	return &listing, nil
}
