package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"order-sync/internal/core/config"
	"order-sync/internal/core/httpclient"
	"order-sync/internal/core/logger"
	"order-sync/internal/features/store/domain"

	"go.uber.org/zap"
)

// FakeStoreAdapter implements the StoreProvider interface using the FakeStore REST API.
type FakeStoreAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the storefront connection details.
	config config.StoreConfig
}

// NewFakeStoreAdapter creates a new instance of FakeStoreAdapter.
func NewFakeStoreAdapter(cfg config.StoreConfig) *FakeStoreAdapter {
	return &FakeStoreAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// ListCarts fetches every cart from the storefront and maps them to domain entities.
func (a *FakeStoreAdapter) ListCarts() ([]domain.Cart, error) {
	var fsCarts []fsCart
	if err := a.get("/carts", &fsCarts); err != nil {
		return nil, err
	}

	carts := make([]domain.Cart, 0, len(fsCarts))
	for _, c := range fsCarts {
		carts = append(carts, mapCart(c))
	}
	return carts, nil
}

// GetUser fetches a user from the storefront and maps it to the domain entity.
func (a *FakeStoreAdapter) GetUser(userID int) (*domain.User, error) {
	var fsUser fsUser
	if err := a.get(fmt.Sprintf("/users/%d", userID), &fsUser); err != nil {
		return nil, err
	}

	return &domain.User{
		FirstName: fsUser.Name.Firstname,
		LastName:  fsUser.Name.Lastname,
		Email:     fsUser.Email,
	}, nil
}

// GetProduct fetches a product from the storefront and maps it to the domain entity.
func (a *FakeStoreAdapter) GetProduct(productID int) (*domain.Product, error) {
	var fsProduct fsProduct
	if err := a.get(fmt.Sprintf("/products/%d", productID), &fsProduct); err != nil {
		return nil, err
	}

	return &domain.Product{
		Title: fsProduct.Title,
		Price: fsProduct.Price,
	}, nil
}

// HealthCheck verifies that the storefront API is reachable.
func (a *FakeStoreAdapter) HealthCheck() error {
	var fsProduct fsProduct
	if err := a.get("/products/1", &fsProduct); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// get executes a GET request against the storefront API and decodes the JSON body.
func (a *FakeStoreAdapter) get(endpoint string, out interface{}) error {
	url := a.config.URL + endpoint

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	logger.Get().Debug("Called storefront API", zap.String("endpoint", endpoint))
	return nil
}

// mapCart converts a raw FakeStore cart response into a domain Cart entity.
func mapCart(c fsCart) domain.Cart {
	products := make([]domain.CartItem, 0, len(c.Products))
	for _, p := range c.Products {
		products = append(products, domain.CartItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		})
	}

	return domain.Cart{
		ID:       c.ID,
		UserID:   c.UserID,
		Date:     time.Time(c.Date),
		Products: products,
	}
}

// internal structs for mapping

// fsCart represents the JSON structure of a cart from the FakeStore API.
type fsCart struct {
	// ID is the unique cart ID.
	ID int `json:"id"`
	// UserID is the owner's user ID.
	UserID int `json:"userId"`
	// Date is the timestamp when the cart was created.
	Date fsTime `json:"date"`
	// Products contains the product lines of the cart.
	Products []fsCartProduct `json:"products"`
}

// fsCartProduct represents a product line inside a FakeStore cart.
type fsCartProduct struct {
	// ProductID is the storefront product ID.
	ProductID int `json:"productId"`
	// Quantity is the number of units.
	Quantity int `json:"quantity"`
}

// fsUser represents the JSON structure of a user from the FakeStore API.
type fsUser struct {
	// Email is the user's email address.
	Email string `json:"email"`
	// Name holds the user's first and last name.
	Name fsUserName `json:"name"`
}

// fsUserName holds the nested name object of a FakeStore user.
type fsUserName struct {
	// Firstname is the user's first name.
	Firstname string `json:"firstname"`
	// Lastname is the user's last name.
	Lastname string `json:"lastname"`
}

// fsProduct represents the JSON structure of a product from the FakeStore API.
type fsProduct struct {
	// Title is the product's display name.
	Title string `json:"title"`
	// Price is the product's unit price.
	Price float64 `json:"price"`
}

// fsTime is a custom helper struct to handle FakeStore's date format.
type fsTime time.Time

// UnmarshalJSON parses the ISO8601 date format used by FakeStore.
func (t *fsTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = fsTime(time.Time{})
		return nil
	}
	// FakeStore returns "2020-03-02T00:00:00.000Z"
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05", s)
	}
	if err != nil {
		logger.Get().Warn("Failed to parse date", zap.String("date", s), zap.Error(err))
		return nil
	}
	*t = fsTime(parsed)
	return nil
}
