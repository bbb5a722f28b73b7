package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

// MenuFilter narrows the restaurant listing by dish predicates. Zero values
// mean the predicate is not applied.
type MenuFilter struct {
	DishName     string
	RestaurantID uint
}

// ListRestaurants returns restaurants with their full dish lists. With a
// filter, a restaurant is kept only when at least one of its dishes matches
// every supplied predicate; the kept restaurant still carries all dishes.
func (s *CatalogService) ListRestaurants(ctx context.Context, filter MenuFilter) ([]models.Restaurant, error) {
	restaurants, err := s.Repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	if filter.DishName == "" && filter.RestaurantID == 0 {
		return restaurants, nil
	}

	name := strings.ToLower(filter.DishName)
	filtered := make([]models.Restaurant, 0, len(restaurants))
	for _, restaurant := range restaurants {
		for _, dish := range restaurant.Dishes {
			if name != "" && !strings.Contains(strings.ToLower(dish.Name), name) {
				continue
			}
			if filter.RestaurantID != 0 && dish.RestaurantID != filter.RestaurantID {
				continue
			}
			filtered = append(filtered, restaurant)
			break
		}
	}
	return filtered, nil
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, name string) (*models.Restaurant, error) {
	if name == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	restaurant := models.Restaurant{Name: name}
	if err := s.Repo.CreateRestaurant(ctx, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *CatalogService) DeleteRestaurant(ctx context.Context, id uint) error {
	return s.Repo.DeleteRestaurant(ctx, id)
}

func (s *CatalogService) CreateDish(ctx context.Context, restaurantID uint, name string, price float64) (*models.Dish, error) {
	if name == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}
	if restaurantID == 0 {
		return nil, fmt.Errorf("restaurant_id required: %w", ErrValidation)
	}
	dish := models.Dish{Name: name, Price: price, RestaurantID: restaurantID}
	if err := s.Repo.CreateDish(ctx, &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (s *CatalogService) UpdateDish(ctx context.Context, id uint, name string, price float64) (*models.Dish, error) {
	if name == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}
	dish, err := s.Repo.GetDish(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dish %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	dish.Name = name
	dish.Price = price
	if err := s.Repo.SaveDish(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *CatalogService) DeleteDish(ctx context.Context, id uint) error {
	return s.Repo.DeleteDish(ctx, id)
}
