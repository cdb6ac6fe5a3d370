package backend

// User is the backend identity record. Address may be empty until the user
// saves one; checkout requires it.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
	Role      string `json:"role"`
}

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Available   bool    `json:"available"`
	CreatedAt   string  `json:"created_at"`
}

type Favorite struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
}

// OrderStatus values are owned by the backend; the client only displays them.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Оформлен"
	OrderStatusPreparing      OrderStatus = "Готовим"
	OrderStatusOutForDelivery OrderStatus = "В доставке"
	OrderStatusDelivered      OrderStatus = "Доставлен"
)

type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	Address   string      `json:"address"`
	CreatedAt string      `json:"created_at"`
}

type OrderItem struct {
	ID               int64   `json:"id"`
	OrderID          int64   `json:"order_id"`
	ProductVariantID int64   `json:"product_variant_id"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
}

// OrderSummary is one row of the order-history listing.
type OrderSummary struct {
	Order     Order `json:"order"`
	ItemCount int   `json:"item_count"`
}

type OrderDetails struct {
	Order      Order       `json:"order"`
	OrderItems []OrderItem `json:"order_items"`
}

type Review struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate carries a partial profile update; zero fields are omitted.
type UserUpdate struct {
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}

// OrderItemRequest is one aggregated cart line submitted at checkout.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
