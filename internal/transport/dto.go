package transport

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type DishResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type RestaurantResponse struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Dishes []DishResponse `json:"dishes"`
}

type CartMutationRequest struct {
	DishID   uint `json:"dish_id"`
	Quantity int  `json:"quantity"`
}

type AddToCartResponse struct {
	ID       uint `json:"id"`
	User     uint `json:"user"`
	Dish     uint `json:"dish"`
	Quantity uint `json:"quantity"`
}

// RemoveFromCartResponse reports the line's remaining state; id and dish are
// null and quantity zero when the line was deleted.
type RemoveFromCartResponse struct {
	ID       *uint `json:"id"`
	User     uint  `json:"user"`
	Dish     *uint `json:"dish"`
	Quantity uint  `json:"quantity"`
}

// CartPositionResponse's price is the line total, dish price times quantity.
type CartPositionResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity uint    `json:"quantity"`
	Price    float64 `json:"price"`
}

type CartResponse struct {
	TotalPrice float64                `json:"total_price"`
	Positions  []CartPositionResponse `json:"positions"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// OrderPositionResponse's price is the unit dish price, unlike the cart view.
type OrderPositionResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
}

type OrderResponse struct {
	ID        uint                    `json:"id"`
	Price     float64                 `json:"price"`
	Time      int64                   `json:"time"`
	Positions []OrderPositionResponse `json:"positions"`
}

type OrderListResponse struct {
	TotalCount int64           `json:"total_count"`
	TotalSum   float64         `json:"total_sum"`
	LastOrders []OrderResponse `json:"last_orders"`
}

type CreateRestaurantRequest struct {
	Name string `json:"name"`
}

type DishRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	RestaurantID uint    `json:"restaurant_id"`
}

type SearchResponse struct {
	Total  int64          `json:"total"`
	Dishes []DishResponse `json:"dishes"`
}
