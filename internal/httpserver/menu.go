package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ovchar/food_ordering/internal/logging"
	"github.com/ovchar/food_ordering/internal/service"
	"github.com/ovchar/food_ordering/internal/transport"
)

type MenuHandler struct {
	Svc *service.CatalogService
}

func (h *MenuHandler) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.list")

	if _, err := GetID(c); err != nil {
		return err
	}

	filter := service.MenuFilter{DishName: c.QueryParam("name")}
	if raw := c.QueryParam("restaurant_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			l.Warn("menu_error", "status", 400, "restaurant_id", raw)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant_id")
		}
		filter.RestaurantID = uint(id)
	}

	restaurants, err := h.Svc.ListRestaurants(ctx, filter)
	if err != nil {
		l.Error("menu_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	resp := make([]transport.RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		r := transport.RestaurantResponse{
			ID:     restaurant.ID,
			Name:   restaurant.Name,
			Dishes: make([]transport.DishResponse, 0, len(restaurant.Dishes)),
		}
		for _, dish := range restaurant.Dishes {
			r.Dishes = append(r.Dishes, transport.DishResponse{ID: dish.ID, Name: dish.Name, Price: dish.Price})
		}
		resp = append(resp, r)
	}
	return c.JSON(http.StatusOK, resp)
}
