package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/config"
	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return repo.New(db)
}

func seedUser(t *testing.T, r *repo.GormRepo, balance int64) *models.User {
	t.Helper()

	user := models.User{Username: "testuser", PasswordHash: "x", Role: "user", Balance: balance}
	require.NoError(t, r.DB.Create(&user).Error)
	return &user
}

func seedCatalog(t *testing.T, r *repo.GormRepo) (*models.Restaurant, *models.Dish, *models.Dish) {
	t.Helper()

	restaurant := models.Restaurant{Name: "Test Restaurant"}
	require.NoError(t, r.DB.Create(&restaurant).Error)

	dish1 := models.Dish{Name: "Dish 1", Price: 10.0, RestaurantID: restaurant.ID}
	dish2 := models.Dish{Name: "Dish 2", Price: 15.0, RestaurantID: restaurant.ID}
	require.NoError(t, r.DB.Create(&dish1).Error)
	require.NoError(t, r.DB.Create(&dish2).Error)

	return &restaurant, &dish1, &dish2
}
