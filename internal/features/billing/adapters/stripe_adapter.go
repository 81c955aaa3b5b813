package adapter

import (
	"fmt"
	"time"

	"order-sync/internal/core/config"
	"order-sync/internal/core/httpclient"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeAdapter implements the BillingProvider interface using the official Stripe SDK.
// The SDK owns transport, authentication and retry behaviour.
type StripeAdapter struct {
	// client is the Stripe API client scoped to one secret key.
	client *client.API
}

// NewStripeAdapter creates a new instance of StripeAdapter.
// cfg.APIURL may point the adapter at a non-default backend, which is how
// tests run it against a local server.
func NewStripeAdapter(cfg config.StripeConfig) *StripeAdapter {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:    httpclient.NewClient(30 * time.Second),
		LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripe.String(cfg.APIURL)
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &StripeAdapter{client: api}
}

// CreateCustomer creates a Stripe customer with the given name and email.
func (a *StripeAdapter) CreateCustomer(name, email string) (string, error) {
	cus, err := a.client.Customers.New(&stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}
	return cus.ID, nil
}

// CreateProduct creates a Stripe product with the given name.
func (a *StripeAdapter) CreateProduct(name string) (string, error) {
	prod, err := a.client.Products.New(&stripe.ProductParams{
		Name: stripe.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return prod.ID, nil
}

// CreatePrice creates a Stripe price in minor units linked to a product.
func (a *StripeAdapter) CreatePrice(currency string, unitAmount int64, productID string) (string, error) {
	price, err := a.client.Prices.New(&stripe.PriceParams{
		Currency:   stripe.String(currency),
		UnitAmount: stripe.Int64(unitAmount),
		Product:    stripe.String(productID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create price: %w", err)
	}
	return price.ID, nil
}

// CreateInvoiceItem creates a pending Stripe invoice item for a customer.
func (a *StripeAdapter) CreateInvoiceItem(customerID, priceID string, quantity int64) (string, error) {
	item, err := a.client.InvoiceItems.New(&stripe.InvoiceItemParams{
		Customer: stripe.String(customerID),
		Price:    stripe.String(priceID),
		Quantity: stripe.Int64(quantity),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create invoice item: %w", err)
	}
	return item.ID, nil
}

// CreateDraftInvoice creates a Stripe draft invoice with auto-finalization disabled.
func (a *StripeAdapter) CreateDraftInvoice(customerID string) (string, error) {
	inv, err := a.client.Invoices.New(&stripe.InvoiceParams{
		Customer:    stripe.String(customerID),
		AutoAdvance: stripe.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create draft invoice: %w", err)
	}
	return inv.ID, nil
}

// AddInvoiceLines attaches the given invoice items as lines on a draft invoice,
// preserving their order.
func (a *StripeAdapter) AddInvoiceLines(invoiceID string, invoiceItemIDs []string) error {
	lines := make([]*stripe.InvoiceAddLinesLineParams, 0, len(invoiceItemIDs))
	for _, itemID := range invoiceItemIDs {
		lines = append(lines, &stripe.InvoiceAddLinesLineParams{
			InvoiceItem: stripe.String(itemID),
		})
	}

	_, err := a.client.Invoices.AddLines(invoiceID, &stripe.InvoiceAddLinesParams{
		Lines: lines,
	})
	if err != nil {
		return fmt.Errorf("failed to add invoice lines: %w", err)
	}
	return nil
}

// FinalizeInvoice finalizes a Stripe draft invoice.
func (a *StripeAdapter) FinalizeInvoice(invoiceID string) error {
	_, err := a.client.Invoices.FinalizeInvoice(invoiceID, &stripe.InvoiceFinalizeInvoiceParams{})
	if err != nil {
		return fmt.Errorf("failed to finalize invoice: %w", err)
	}
	return nil
}
