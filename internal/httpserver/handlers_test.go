package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/transport"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	env.register("testuser", "")

	rec := env.doJSON(http.MethodPost, "/api/login", "", transport.LoginRequest{
		Username: "testuser",
		Password: "testpassword",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	rec = env.doJSON(http.MethodPost, "/api/login", "", transport.LoginRequest{
		Username: "testuser",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// A new user starts with the default balance.
	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "testuser").First(&user).Error)
	require.EqualValues(t, 10000, user.Balance)
}

func TestMenuRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog()

	rec := env.doJSON(http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMenu(t *testing.T) {
	env := newTestEnv(t)
	restaurant, _, _ := env.seedCatalog()
	token := env.register("testuser", "")

	rec := env.doJSON(http.MethodGet, "/api/menu", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.RestaurantResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.Equal(t, restaurant.ID, resp[0].ID)
	require.Len(t, resp[0].Dishes, 2)

	// Dish-name filter with a trailing slash, the way the original paths
	// were written.
	rec = env.doJSON(http.MethodGet, "/api/menu/?name=dish+1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)

	rec = env.doJSON(http.MethodGet, "/api/menu?name=pizza", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp)
}

func TestAddToCartEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, dish1, _ := env.seedCatalog()
	token := env.register("testuser", "")

	rec := env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.AddToCartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, dish1.ID, resp.Dish)
	require.Equal(t, uint(2), resp.Quantity)

	// Adding again merges into the same line.
	rec = env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var merged transport.AddToCartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merged))
	require.Equal(t, resp.ID, merged.ID)
	require.Equal(t, uint(5), merged.Quantity)

	rec = env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: 999, Quantity: 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Dish with this ID does not exist.")

	rec = env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveFromCartEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, dish1, _ := env.seedCatalog()
	token := env.register("testuser", "")

	rec := env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/cart/remove", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.RemoveFromCartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.ID)
	require.NotNil(t, resp.Dish)
	require.Equal(t, uint(2), resp.Quantity)

	// Removing at least the held quantity deletes the line.
	rec = env.doJSON(http.MethodPost, "/api/cart/remove", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 5})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = transport.RemoveFromCartResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Nil(t, resp.ID)
	require.Nil(t, resp.Dish)
	require.Equal(t, uint(0), resp.Quantity)

	rec = env.doJSON(http.MethodPost, "/api/cart/remove", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "This dish is not in your cart.")
}

func TestGetCartEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, dish1, dish2 := env.seedCatalog()
	token := env.register("testuser", "")

	rec := env.doJSON(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var empty transport.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	require.Equal(t, 0.0, empty.TotalPrice)
	require.Empty(t, empty.Positions)

	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 2})
	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish2.ID, Quantity: 1})

	rec = env.doJSON(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 35.0, resp.TotalPrice)
	require.Len(t, resp.Positions, 2)
	// Cart position price is the line total.
	require.Equal(t, "Dish 1", resp.Positions[0].Name)
	require.Equal(t, 20.0, resp.Positions[0].Price)
}

func TestCheckoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, dish1, dish2 := env.seedCatalog()
	token := env.register("testuser", "")

	rec := env.doJSON(http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Your cart is empty.")

	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 2})
	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish2.ID, Quantity: 1})

	rec = env.doJSON(http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Checkout successful")

	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "testuser").First(&user).Error)
	require.EqualValues(t, 10000-35, user.Balance)

	// The cart is gone, so an immediate second checkout is rejected.
	rec = env.doJSON(http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Your cart is empty.")
}

func TestCheckoutInsufficientBalanceEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, dish1, _ := env.seedCatalog()
	token := env.register("testuser", "")

	require.NoError(t, env.DB.Model(&models.User{}).Where("username = ?", "testuser").Update("balance", 5).Error)

	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 1})

	rec := env.doJSON(http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Insufficient balance to complete the purchase.")

	// Nothing was mutated.
	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "testuser").First(&user).Error)
	require.EqualValues(t, 5, user.Balance)

	var cartCount, orderCount int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&cartCount).Error)
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.EqualValues(t, 1, cartCount)
	require.EqualValues(t, 0, orderCount)
}

func TestListOrdersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, dish1, dish2 := env.seedCatalog()
	token := env.register("testuser", "")

	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish1.ID, Quantity: 2})
	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish2.ID, Quantity: 1})
	rec := env.doJSON(http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env.doJSON(http.MethodPost, "/api/cart/add", token, transport.CartMutationRequest{DishID: dish2.ID, Quantity: 1})
	rec = env.doJSON(http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 2, resp.TotalCount)
	require.Equal(t, 50.0, resp.TotalSum)
	require.Len(t, resp.LastOrders, 2)

	// Newest order first.
	require.Equal(t, 15.0, resp.LastOrders[0].Price)
	require.Equal(t, 35.0, resp.LastOrders[1].Price)
	require.NotZero(t, resp.LastOrders[0].Time)

	// Order position price is the unit dish price.
	require.Len(t, resp.LastOrders[1].Positions, 2)
	require.Equal(t, "Dish 1", resp.LastOrders[1].Positions[0].Name)
	require.Equal(t, 10.0, resp.LastOrders[1].Positions[0].Price)
	require.Equal(t, uint(2), resp.LastOrders[1].Positions[0].Quantity)
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.register("admin", "admin")
	userToken := env.register("testuser", "")

	rec := env.doJSON(http.MethodPost, "/api/admin/restaurants", userToken, transport.CreateRestaurantRequest{Name: "Nope"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/admin/restaurants", adminToken, transport.CreateRestaurantRequest{Name: "Pizzeria"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var restaurant models.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restaurant))
	require.NotZero(t, restaurant.ID)

	rec = env.doJSON(http.MethodPost, "/api/admin/dishes", adminToken, transport.DishRequest{
		Name: "Margherita", Price: 8.5, RestaurantID: restaurant.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var dish models.Dish
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dish))

	rec = env.doJSON(http.MethodPatch, "/api/admin/dishes/1", adminToken, transport.DishRequest{
		Name: "Margherita", Price: 9.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dish))
	require.Equal(t, 9.0, dish.Price)

	rec = env.doJSON(http.MethodDelete, "/api/admin/dishes/1", adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(http.MethodDelete, "/api/admin/restaurants/1", adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Restaurant{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
