package service

import (
	"errors"
	"fmt"
	"math"

	"order-sync/internal/core/logger"
	billingports "order-sync/internal/features/billing/ports"
	"order-sync/internal/features/store/domain"
	storeports "order-sync/internal/features/store/ports"

	"go.uber.org/zap"
)

// ErrMissingMapping is returned when a cart references an id that no earlier
// stage produced a billing-side mapping for. This only happens if the
// storefront data mutates between fetch and use.
var ErrMissingMapping = errors.New("missing billing mapping")

// ProductRef holds the billing-side identifiers created for one storefront product.
type ProductRef struct {
	// ProductID is the billing product id.
	ProductID string
	// PriceID is the billing price id linked to the product.
	PriceID string
}

// OrderProcessor synchronizes storefront carts into the billing system. It runs
// a strictly sequential seven-stage pipeline and keeps all correlation state
// in-memory for the duration of one run. Running it twice on the same cart data
// creates duplicate billing resources: there is no idempotency, retry, or
// rollback of already-created resources on failure.
type OrderProcessor struct {
	// store reads carts, users and products from the storefront.
	store storeports.StoreProvider
	// billing creates customers, products, prices and invoices on the billing side.
	billing billingports.BillingProvider
	// currency is the fixed currency used for every created price.
	currency string
}

// NewOrderProcessor creates a new instance of OrderProcessor.
func NewOrderProcessor(store storeports.StoreProvider, billing billingports.BillingProvider, currency string) *OrderProcessor {
	return &OrderProcessor{
		store:    store,
		billing:  billing,
		currency: currency,
	}
}

// Run executes the pipeline to completion. The first error aborts the
// remaining stages and is returned wrapped with the failing stage's name.
func (p *OrderProcessor) Run() error {
	l := logger.Get()
	l.Info("Starting to process orders")

	carts, err := p.store.ListCarts()
	if err != nil {
		return fmt.Errorf("fetch carts: %w", err)
	}
	l.Info("Fetched carts from storefront", zap.Int("carts", len(carts)))

	userIDs := distinctUserIDs(carts)

	customers, err := p.createCustomers(userIDs)
	if err != nil {
		return fmt.Errorf("create customers: %w", err)
	}
	l.Info("Created billing customers", zap.Int("customers", len(customers)))

	products, err := p.createProducts(distinctProductIDs(carts))
	if err != nil {
		return fmt.Errorf("create products: %w", err)
	}
	l.Info("Created billing products and prices", zap.Int("products", len(products)))

	invoiceItems, err := p.createInvoiceItems(carts, customers, products)
	if err != nil {
		return fmt.Errorf("create invoice items: %w", err)
	}
	l.Info("Created invoice items", zap.Int("users", len(invoiceItems)))

	invoices, err := p.createDraftInvoices(userIDs, customers)
	if err != nil {
		return fmt.Errorf("create draft invoices: %w", err)
	}
	l.Info("Created draft invoices", zap.Int("invoices", len(invoices)))

	if err := p.addInvoiceLines(userIDs, customers, invoices, invoiceItems); err != nil {
		return fmt.Errorf("add invoice lines: %w", err)
	}
	l.Info("Added invoice lines")

	if err := p.finalizeInvoices(userIDs, customers, invoices); err != nil {
		return fmt.Errorf("finalize invoices: %w", err)
	}
	l.Info("All orders have been processed successfully")

	return nil
}

// createCustomers fetches each distinct user and creates one billing customer
// per user, in discovery order. One storefront call and one billing call per
// distinct user, not per cart.
func (p *OrderProcessor) createCustomers(userIDs []int) (map[int]string, error) {
	customers := make(map[int]string, len(userIDs))

	for _, userID := range userIDs {
		user, err := p.store.GetUser(userID)
		if err != nil {
			return nil, err
		}

		customerID, err := p.billing.CreateCustomer(user.FullName(), user.Email)
		if err != nil {
			return nil, err
		}

		logger.Get().Info("Created billing customer", zap.String("customer_id", redact(customerID)))
		customers[userID] = customerID
	}

	return customers, nil
}

// createProducts fetches each distinct product and creates one billing product
// plus one price per product, in discovery order. The price's unit amount is
// the minor-unit integer value of the storefront price.
func (p *OrderProcessor) createProducts(productIDs []int) (map[int]ProductRef, error) {
	products := make(map[int]ProductRef, len(productIDs))

	for _, productID := range productIDs {
		product, err := p.store.GetProduct(productID)
		if err != nil {
			return nil, err
		}

		billingProductID, err := p.billing.CreateProduct(product.Title)
		if err != nil {
			return nil, err
		}
		logger.Get().Info("Created billing product", zap.String("product_id", redact(billingProductID)))

		priceID, err := p.billing.CreatePrice(p.currency, minorUnits(product.Price), billingProductID)
		if err != nil {
			return nil, err
		}
		logger.Get().Info("Created billing price", zap.String("price_id", redact(priceID)))

		products[productID] = ProductRef{
			ProductID: billingProductID,
			PriceID:   priceID,
		}
	}

	return products, nil
}

// createInvoiceItems creates one billing invoice item per cart line, walking
// carts and their lines in original order. Item ids accumulate per user and are
// never deduplicated, even if the same product repeats for the same user.
func (p *OrderProcessor) createInvoiceItems(carts []domain.Cart, customers map[int]string, products map[int]ProductRef) (map[int][]string, error) {
	invoiceItems := make(map[int][]string, len(customers))

	for _, cart := range carts {
		customerID, ok := customers[cart.UserID]
		if !ok {
			return nil, fmt.Errorf("%w: no customer for user %d", ErrMissingMapping, cart.UserID)
		}

		for _, item := range cart.Products {
			ref, ok := products[item.ProductID]
			if !ok {
				return nil, fmt.Errorf("%w: no price for product %d", ErrMissingMapping, item.ProductID)
			}

			itemID, err := p.billing.CreateInvoiceItem(customerID, ref.PriceID, int64(item.Quantity))
			if err != nil {
				return nil, err
			}

			logger.Get().Info("Created invoice item", zap.String("invoice_item_id", redact(itemID)))
			invoiceItems[cart.UserID] = append(invoiceItems[cart.UserID], itemID)
		}
	}

	return invoiceItems, nil
}

// createDraftInvoices creates one draft invoice per billing customer, in user
// discovery order, with auto-finalization disabled.
func (p *OrderProcessor) createDraftInvoices(userIDs []int, customers map[int]string) (map[string]string, error) {
	invoices := make(map[string]string, len(customers))

	for _, userID := range userIDs {
		customerID := customers[userID]

		invoiceID, err := p.billing.CreateDraftInvoice(customerID)
		if err != nil {
			return nil, err
		}

		logger.Get().Info("Created draft invoice", zap.String("invoice_id", redact(invoiceID)))
		invoices[customerID] = invoiceID
	}

	return invoices, nil
}

// addInvoiceLines attaches each user's accumulated invoice items, in creation
// order, to that user's draft invoice.
func (p *OrderProcessor) addInvoiceLines(userIDs []int, customers map[int]string, invoices map[string]string, invoiceItems map[int][]string) error {
	for _, userID := range userIDs {
		customerID := customers[userID]

		invoiceID, ok := invoices[customerID]
		if !ok {
			return fmt.Errorf("%w: no invoice for customer %s", ErrMissingMapping, redact(customerID))
		}

		if err := p.billing.AddInvoiceLines(invoiceID, invoiceItems[userID]); err != nil {
			return err
		}

		logger.Get().Info("Added lines to draft invoice", zap.String("invoice_id", redact(invoiceID)))
	}

	return nil
}

// finalizeInvoices finalizes every draft invoice exactly once, in user
// discovery order.
func (p *OrderProcessor) finalizeInvoices(userIDs []int, customers map[int]string, invoices map[string]string) error {
	for _, userID := range userIDs {
		invoiceID := invoices[customers[userID]]

		if err := p.billing.FinalizeInvoice(invoiceID); err != nil {
			return err
		}

		logger.Get().Info("Finalized invoice", zap.String("invoice_id", redact(invoiceID)))
	}

	return nil
}

// distinctUserIDs returns the distinct user ids across carts, in order of first
// appearance.
func distinctUserIDs(carts []domain.Cart) []int {
	seen := make(map[int]bool, len(carts))
	ids := make([]int, 0, len(carts))

	for _, cart := range carts {
		if !seen[cart.UserID] {
			seen[cart.UserID] = true
			ids = append(ids, cart.UserID)
		}
	}

	return ids
}

// distinctProductIDs returns the distinct product ids across all cart lines, in
// order of first appearance.
func distinctProductIDs(carts []domain.Cart) []int {
	seen := make(map[int]bool)
	ids := make([]int, 0)

	for _, cart := range carts {
		for _, item := range cart.Products {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	return ids
}

// minorUnits converts a decimal currency amount to its minor-unit integer value.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// redact exposes only the last three characters of a billing resource id.
func redact(id string) string {
	if len(id) <= 3 {
		return "..." + id
	}
	return "..." + id[len(id)-3:]
}
