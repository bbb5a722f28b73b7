package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovchar/food_ordering/internal/config"
	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/repo"
	"github.com/ovchar/food_ordering/internal/service"
	"github.com/ovchar/food_ordering/internal/transport"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	r := repo.New(db)
	secret := []byte("test-secret")

	deps := &Deps{
		DB:          db,
		JWTSecret:   secret,
		AuthHandler: &AuthHandler{Svc: &service.AuthService{Repo: r, JWTSecret: secret}},
		MenuHandler: &MenuHandler{Svc: &service.CatalogService{Repo: r}},
		CartHandler: &CartHandler{
			Cart:     &service.CartService{Repo: r},
			Checkout: &service.CheckoutService{Repo: r},
		},
		OrderHandler: &OrderHandler{Svc: &service.OrderService{Repo: r}},
		AdminHandler: &AdminHandler{Svc: &service.CatalogService{Repo: r}, Index: "dishes"},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	Register(e, deps)

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(username, role string) string {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/register", "", transport.RegisterRequest{
		Username: username,
		Password: "testpassword",
		Role:     role,
	})
	require.Equal(env.T, http.StatusCreated, rec.Code)

	var resp transport.TokenResponse
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) seedCatalog() (*models.Restaurant, *models.Dish, *models.Dish) {
	env.T.Helper()

	restaurant := models.Restaurant{Name: "Test Restaurant"}
	require.NoError(env.T, env.DB.Create(&restaurant).Error)

	dish1 := models.Dish{Name: "Dish 1", Price: 10.0, RestaurantID: restaurant.ID}
	dish2 := models.Dish{Name: "Dish 2", Price: 15.0, RestaurantID: restaurant.ID}
	require.NoError(env.T, env.DB.Create(&dish1).Error)
	require.NoError(env.T, env.DB.Create(&dish2).Error)

	return &restaurant, &dish1, &dish2
}
