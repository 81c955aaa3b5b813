package domain

import (
	"time"
)

// Cart represents one user's shopping cart in the storefront.
type Cart struct {
	// ID is the unique identifier for the cart.
	ID int `json:"id"`
	// UserID is the identifier of the user who owns the cart.
	UserID int `json:"user_id"`
	// Date is the timestamp when the cart was created.
	Date time.Time `json:"date"`
	// Products contains the selected products and quantities.
	Products []CartItem `json:"products"`
}

// CartItem represents a single product line within a cart.
type CartItem struct {
	// ProductID is the storefront identifier of the product.
	ProductID int `json:"product_id"`
	// Quantity is the number of units selected. Always a positive integer.
	Quantity int `json:"quantity"`
}

// User represents a storefront user account.
type User struct {
	// FirstName is the user's first name.
	FirstName string `json:"first_name"`
	// LastName is the user's last name.
	LastName string `json:"last_name"`
	// Email is the user's contact email address.
	Email string `json:"email"`
}

// FullName returns the user's display name as "FirstName LastName".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Product represents a storefront product listing.
type Product struct {
	// Title is the product's display name.
	Title string `json:"title"`
	// Price is the product's unit price as a decimal currency amount.
	Price float64 `json:"price"`
}
