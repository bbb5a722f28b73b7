package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ovchar/food_ordering/internal/logging"
	"github.com/ovchar/food_ordering/internal/service"
	"github.com/ovchar/food_ordering/internal/transport"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	listing, err := h.Svc.ListOrders(ctx, userID, service.DefaultOrderLimit)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	resp := transport.OrderListResponse{
		TotalCount: listing.TotalCount,
		TotalSum:   listing.TotalSum,
		LastOrders: make([]transport.OrderResponse, 0, len(listing.Orders)),
	}
	for _, view := range listing.Orders {
		order := transport.OrderResponse{
			ID:        view.Order.ID,
			Price:     view.Order.Price,
			Time:      view.Order.CreatedAt,
			Positions: make([]transport.OrderPositionResponse, 0, len(view.Positions)),
		}
		for _, position := range view.Positions {
			order.Positions = append(order.Positions, transport.OrderPositionResponse{
				ID:       position.ID,
				Name:     position.Name,
				Price:    position.Price,
				Quantity: position.Quantity,
			})
		}
		resp.LastOrders = append(resp.LastOrders, order)
	}
	return c.JSON(http.StatusOK, resp)
}
