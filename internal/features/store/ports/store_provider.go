package ports

import "order-sync/internal/features/store/domain"

// StoreProvider defines the interface for reading storefront data.
// This is a Secondary Port (Driven Port).
type StoreProvider interface {
	// ListCarts retrieves all carts from the storefront.
	ListCarts() ([]domain.Cart, error)
	// GetUser retrieves a single user by its storefront identifier.
	GetUser(userID int) (*domain.User, error)
	// GetProduct retrieves a single product by its storefront identifier.
	GetProduct(productID int) (*domain.Product, error)
}
