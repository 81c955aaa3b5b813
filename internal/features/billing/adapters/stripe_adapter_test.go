package adapter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"order-sync/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter returns a StripeAdapter pointed at the given test server.
func newTestAdapter(serverURL string) *StripeAdapter {
	return NewStripeAdapter(config.StripeConfig{
		SecretKey: "sk_test_adapter",
		APIURL:    serverURL,
	})
}

// TestStripeAdapter_CreateCustomer_Success verifies the customer creation call.
func TestStripeAdapter_CreateCustomer_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/customers", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_adapter", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "John Doe", r.Form.Get("name"))
		assert.Equal(t, "john.doe@example.com", r.Form.Get("email"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "cus_test123"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	id, err := adapter.CreateCustomer("John Doe", "john.doe@example.com")

	require.NoError(t, err)
	assert.Equal(t, "cus_test123", id)
}

// TestStripeAdapter_CreateProduct_Success verifies the product creation call.
func TestStripeAdapter_CreateProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Backpack", r.Form.Get("name"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "prod_test123"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	id, err := adapter.CreateProduct("Backpack")

	require.NoError(t, err)
	assert.Equal(t, "prod_test123", id)
}

// TestStripeAdapter_CreatePrice_Success verifies the price creation call with minor units.
func TestStripeAdapter_CreatePrice_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/prices", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "usd", r.Form.Get("currency"))
		assert.Equal(t, "10995", r.Form.Get("unit_amount"))
		assert.Equal(t, "prod_test123", r.Form.Get("product"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "price_test123"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	id, err := adapter.CreatePrice("usd", 10995, "prod_test123")

	require.NoError(t, err)
	assert.Equal(t, "price_test123", id)
}

// TestStripeAdapter_CreateInvoiceItem_Success verifies the invoice item creation call.
func TestStripeAdapter_CreateInvoiceItem_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/invoiceitems", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "cus_test123", r.Form.Get("customer"))
		assert.Equal(t, "price_test123", r.Form.Get("price"))
		assert.Equal(t, "4", r.Form.Get("quantity"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "ii_test123"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	id, err := adapter.CreateInvoiceItem("cus_test123", "price_test123", 4)

	require.NoError(t, err)
	assert.Equal(t, "ii_test123", id)
}

// TestStripeAdapter_CreateDraftInvoice_Success verifies auto-finalization is disabled.
func TestStripeAdapter_CreateDraftInvoice_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/invoices", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "cus_test123", r.Form.Get("customer"))
		assert.Equal(t, "false", r.Form.Get("auto_advance"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "in_test123"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	id, err := adapter.CreateDraftInvoice("cus_test123")

	require.NoError(t, err)
	assert.Equal(t, "in_test123", id)
}

// TestStripeAdapter_AddInvoiceLines_Success verifies items are attached in order.
func TestStripeAdapter_AddInvoiceLines_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/invoices/in_test123/add_lines", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ii_a", r.Form.Get("lines[0][invoice_item]"))
		assert.Equal(t, "ii_b", r.Form.Get("lines[1][invoice_item]"))
		assert.Equal(t, "ii_c", r.Form.Get("lines[2][invoice_item]"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "in_test123"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	err := adapter.AddInvoiceLines("in_test123", []string{"ii_a", "ii_b", "ii_c"})

	require.NoError(t, err)
}

// TestStripeAdapter_FinalizeInvoice_Success verifies the finalize call.
func TestStripeAdapter_FinalizeInvoice_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/invoices/in_test123/finalize", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "in_test123", "status": "open"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	err := adapter.FinalizeInvoice("in_test123")

	require.NoError(t, err)
}

// TestStripeAdapter_GatewayError verifies API rejections propagate to the caller.
func TestStripeAdapter_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No such customer: cus_missing"}}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	id, err := adapter.CreateDraftInvoice("cus_missing")

	assert.Empty(t, id)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to create draft invoice"))
}
