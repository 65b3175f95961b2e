package api

// Request and response bodies of the coffee backend, field names as the
// OpenAPI schema spells them.

// AuthenticationRequest is the body of POST /auth/token.
type AuthenticationRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticationResponse is the unwrapped result of POST /auth/token.
type AuthenticationResponse struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
	ExpiresIn     int64  `json:"expiresIn"`
}

// UserCreationRequest is the body of POST /users, shared by public
// registration and the admin user screen.
type UserCreationRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UserUpdateRequest is the body of PUT /users/{id}. Username is fixed
// after creation, so it is absent here.
type UserUpdateRequest struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// ProductCreationRequest is the body of POST /menus.
type ProductCreationRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice"`
	CategoryID  string  `json:"categoryId"`
}

// ProductUpdateRequest is the body of PUT /menus/{id}; same shape as creation.
type ProductUpdateRequest = ProductCreationRequest

// CategoryCreationRequest is the body of POST /categories.
type CategoryCreationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryUpdateRequest is the body of PUT /categories/{id}.
type CategoryUpdateRequest = CategoryCreationRequest

// OrderItemRequest references one menu item within an order.
type OrderItemRequest struct {
	MenuID   string `json:"menuId"`
	OptionID string `json:"optionId,omitempty"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders: a snapshot of the cart
// tagged with the acting user's id. Built once at submit time, never reused.
type CreateOrderRequest struct {
	UserID string             `json:"userId"`
	Items  []OrderItemRequest `json:"items"`
}
