package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/ovchar/food_ordering/internal/logging"
	"github.com/ovchar/food_ordering/internal/models"
	"github.com/ovchar/food_ordering/internal/mykafka"
	"github.com/ovchar/food_ordering/internal/service"
	"github.com/ovchar/food_ordering/internal/service/search"
	"github.com/ovchar/food_ordering/internal/transport"
)

// AdminHandler manages the catalog. Dish writes are mirrored into the
// search index and published as events, neither of which is allowed to fail
// the request.
type AdminHandler struct {
	Svc      *service.CatalogService
	ES       *elasticsearch.Client
	Index    string
	Producer *mykafka.Producer
}

func (h *AdminHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "catalog_events", c.Path(), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AdminHandler) indexDish(c echo.Context, dish *models.Dish) {
	if h.ES == nil {
		return
	}
	if err := search.IndexDish(c.Request().Context(), h.ES, h.Index, dish); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "error", err, "dish_id", dish.ID)
	}
}

func (h *AdminHandler) CreateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_restaurant")

	var req transport.CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_restaurant_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	restaurant, err := h.Svc.CreateRestaurant(ctx, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_restaurant_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "name required")
		}
		l.Error("create_restaurant_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{"type": "restaurant_created", "restaurantID": restaurant.ID, "name": restaurant.Name})
	return c.JSON(http.StatusCreated, restaurant)
}

func (h *AdminHandler) DeleteRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_restaurant")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteRestaurant(ctx, uint(id)); err != nil {
		l.Error("delete_restaurant_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{"type": "restaurant_deleted", "restaurantID": id})
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) CreateDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_dish")

	var req transport.DishRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_dish_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	dish, err := h.Svc.CreateDish(ctx, req.RestaurantID, req.Name, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_dish_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_dish_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.indexDish(c, dish)
	h.publish(c, map[string]any{"type": "dish_created", "dishID": dish.ID, "name": dish.Name})
	return c.JSON(http.StatusCreated, dish)
}

func (h *AdminHandler) PatchDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_dish")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.DishRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_dish_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	dish, err := h.Svc.UpdateDish(ctx, uint(id), req.Name, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("patch_dish_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "dish not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_dish_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("patch_dish_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.indexDish(c, dish)
	h.publish(c, map[string]any{"type": "dish_updated", "dishID": dish.ID, "name": dish.Name})
	return c.JSON(http.StatusOK, dish)
}

func (h *AdminHandler) DeleteDish(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_dish")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteDish(ctx, uint(id)); err != nil {
		l.Error("delete_dish_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if h.ES != nil {
		if err := search.DeleteDish(ctx, h.ES, h.Index, uint(id)); err != nil {
			l.Error("es delete error", "error", err, "dish_id", id)
		}
	}
	h.publish(c, map[string]any{"type": "dish_deleted", "dishID": id})
	return c.NoContent(http.StatusNoContent)
}
