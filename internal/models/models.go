package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
	Balance      int64  `gorm:"not null;default:10000"   json:"balance"`
}

type Restaurant struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name   string `gorm:"not null"                    json:"name"`
	Dishes []Dish `gorm:"constraint:OnDelete:CASCADE" json:"dishes"`
}

type Dish struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string  `gorm:"not null"                  json:"name"`
	Price        float64 `gorm:"not null;check:price >= 0" json:"price"`
	RestaurantID uint    `gorm:"index;not null"            json:"restaurant_id"`
}

type CartItem struct {
	ID       uint `gorm:"primaryKey"                         json:"id"`
	UserID   uint `gorm:"uniqueIndex:idx_user_dish;not null" json:"user_id"`
	DishID   uint `gorm:"uniqueIndex:idx_user_dish;not null" json:"dish_id"`
	Quantity uint `gorm:"default:1;check:quantity>0"         json:"quantity"`
}

type Order struct {
	ID        uint       `gorm:"primaryKey"                  json:"id"`
	UserID    uint       `gorm:"index;not null"              json:"user_id"`
	Price     float64    `gorm:"not null"                    json:"price"`
	CreatedAt int64      `gorm:"not null"                    json:"created_at"`
	Positions []Position `gorm:"constraint:OnDelete:CASCADE" json:"positions"`
}

// Position is written once at checkout and never updated afterwards.
// Dish name/price are resolved through the dish reference at read time.
type Position struct {
	ID       uint `gorm:"primaryKey"     json:"id"`
	OrderID  uint `gorm:"index;not null" json:"order_id"`
	DishID   uint `gorm:"not null"       json:"dish_id"`
	Quantity uint `gorm:"not null"       json:"quantity"`
}
