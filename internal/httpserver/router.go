package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	DB            *gorm.DB
	JWTSecret     []byte
	AuthHandler   *AuthHandler
	MenuHandler   *MenuHandler
	CartHandler   *CartHandler
	OrderHandler  *OrderHandler
	AdminHandler  *AdminHandler
	SearchHandler *SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)

	authed := api.Group("", Auth(d.JWTSecret))

	authed.GET("/menu", d.MenuHandler.GetMenu)

	cart := authed.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.POST("/remove", d.CartHandler.RemoveFromCart)
	cart.POST("/checkout", d.CartHandler.CheckoutCart)

	authed.GET("/orders", d.OrderHandler.ListOrders)

	if d.SearchHandler != nil {
		authed.GET("/search", d.SearchHandler.Search)
	}

	admin := authed.Group("/admin", AdminOnly)
	admin.POST("/restaurants", d.AdminHandler.CreateRestaurant)
	admin.DELETE("/restaurants/:id", d.AdminHandler.DeleteRestaurant)
	admin.POST("/dishes", d.AdminHandler.CreateDish)
	admin.PATCH("/dishes/:id", d.AdminHandler.PatchDish)
	admin.DELETE("/dishes/:id", d.AdminHandler.DeleteDish)
}
