package ports

// BillingProvider defines the interface for creating billing-side resources.
// This is a Secondary Port (Driven Port). Every call is a single blocking
// round-trip to the billing API; failures propagate to the caller.
type BillingProvider interface {
	// CreateCustomer creates a billing customer and returns its id.
	CreateCustomer(name, email string) (string, error)
	// CreateProduct creates a billing product and returns its id.
	CreateProduct(name string) (string, error)
	// CreatePrice creates a price in minor units linked to a billing product
	// and returns its id.
	CreatePrice(currency string, unitAmount int64, productID string) (string, error)
	// CreateInvoiceItem creates a pending invoice item for a customer and
	// returns its id.
	CreateInvoiceItem(customerID, priceID string, quantity int64) (string, error)
	// CreateDraftInvoice creates a draft invoice (auto-finalization disabled)
	// for a customer and returns its id.
	CreateDraftInvoice(customerID string) (string, error)
	// AddInvoiceLines attaches the given invoice items as lines on a draft invoice.
	AddInvoiceLines(invoiceID string, invoiceItemIDs []string) error
	// FinalizeInvoice finalizes a draft invoice.
	FinalizeInvoice(invoiceID string) error
}
