package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ovchar/food_ordering/internal/logging"
	"github.com/ovchar/food_ordering/internal/mykafka"
	"github.com/ovchar/food_ordering/internal/service"
	"github.com/ovchar/food_ordering/internal/transport"
)

type CartHandler struct {
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", c.Path(), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.CartMutationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Cart.AddToCart(ctx, userID, req.DishID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Dish with this ID does not exist.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Quantity must be a positive integer.")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, map[string]any{
		"type":     "cart_item_added",
		"userID":   userID,
		"dishID":   item.DishID,
		"quantity": item.Quantity,
	})

	return c.JSON(http.StatusOK, transport.AddToCartResponse{
		ID:       item.ID,
		User:     item.UserID,
		Dish:     item.DishID,
		Quantity: item.Quantity,
	})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.CartMutationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	deleted, item, err := h.Cart.RemoveFromCart(ctx, userID, req.DishID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("remove_from_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Dish with this ID does not exist.")
		case errors.Is(err, service.ErrNotInCart):
			l.Warn("remove_from_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "This dish is not in your cart.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("remove_from_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Quantity must be a positive integer.")
		default:
			l.Error("remove_from_cart_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	resp := transport.RemoveFromCartResponse{User: userID}
	if !deleted {
		resp.ID = &item.ID
		resp.Dish = &item.DishID
		resp.Quantity = item.Quantity
	}

	h.publish(c, map[string]any{
		"type":    "cart_item_removed",
		"userID":  userID,
		"dishID":  req.DishID,
		"deleted": deleted,
	})

	return c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.view")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	lines, total, err := h.Cart.ViewCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	resp := transport.CartResponse{
		TotalPrice: total,
		Positions:  make([]transport.CartPositionResponse, 0, len(lines)),
	}
	for _, line := range lines {
		resp.Positions = append(resp.Positions, transport.CartPositionResponse{
			ID:       line.Item.ID,
			Name:     line.Dish.Name,
			Quantity: line.Item.Quantity,
			Price:    line.Dish.Price * float64(line.Item.Quantity),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) CheckoutCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	order, err := h.Checkout.Checkout(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			l.Warn("checkout_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Your cart is empty.")
		case errors.Is(err, service.ErrInsufficientBalance):
			l.Warn("checkout_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Insufficient balance to complete the purchase.")
		case errors.Is(err, service.ErrConflict):
			l.Warn("checkout_error", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "Cart changed during checkout, please retry.")
		default:
			l.Error("checkout_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(c, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"price":   order.Price,
	})

	l.Info("checkout_success", "order_id", order.ID, "price", order.Price)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Checkout successful"})
}
