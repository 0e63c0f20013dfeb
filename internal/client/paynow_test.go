package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techstore-api/internal/config"
	"techstore-api/internal/storefront"
)

const testIntegrationKey = "e7f1c2aa-31bc-4fde-9c49-test"

func newPaynowForTest(baseURL string) *paynowClientImpl {
	return NewPaynowClient(&config.Paynow{
		BaseApiURL:     baseURL,
		IntegrationID:  "12345",
		IntegrationKey: testIntegrationKey,
	}).(*paynowClientImpl)
}

// signedStatusBody builds a status message the way the gateway would,
// hashing the values in wire order with the shared integration key.
func signedStatusBody(c *paynowClientImpl, reference, paynowRef, amount, status string) string {
	fields := []field{
		{"reference", reference},
		{"paynowreference", paynowRef},
		{"amount", amount},
		{"status", status},
		{"pollurl", "https://paynow.test/poll/1"},
	}
	fields = append(fields, field{"hash", c.hash(fields)})

	body := ""
	for i, f := range fields {
		if i > 0 {
			body += "&"
		}
		body += f.key + "=" + url.QueryEscape(f.value)
	}
	return body
}

func TestPaynowClient_ParseStatus(t *testing.T) {
	c := newPaynowForTest("https://paynow.test")

	body := signedStatusBody(c, "order-1", "PN-1", "105.00", "Paid")
	status, err := c.ParseStatus(body)
	require.NoError(t, err)

	assert.Equal(t, "order-1", status.Reference)
	assert.Equal(t, "PN-1", status.PaynowRef)
	assert.Equal(t, "105.00", status.Amount)
	assert.True(t, status.IsPaid())
}

func TestPaynowClient_ParseStatus_RejectsTampering(t *testing.T) {
	c := newPaynowForTest("https://paynow.test")

	// a signed body with a swapped amount must fail the hash check
	body := signedStatusBody(c, "order-1", "PN-1", "105.00", "Paid")
	tampered := strings.Replace(body, "amount=105.00", "amount=1.00", 1)
	_, err := c.ParseStatus(tampered)
	assert.ErrorIs(t, err, storefront.ErrPaymentVerificationFailed)

	// a body hashed under another merchant's key must fail too
	other := newPaynowForTest("https://paynow.test")
	other.integrationKey = "different-key"
	_, err = c.ParseStatus(signedStatusBody(other, "order-1", "PN-1", "105.00", "Paid"))
	assert.ErrorIs(t, err, storefront.ErrPaymentVerificationFailed)

	_, err = c.ParseStatus("reference=order-1&status=Paid")
	assert.ErrorIs(t, err, storefront.ErrPaymentVerificationFailed)
}

func TestPaynowClient_InitiateTransaction(t *testing.T) {
	var gotForm url.Values
	var client *paynowClientImpl

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		fields := []field{
			{"status", "Ok"},
			{"browserurl", "https://paynow.test/pay/1"},
			{"pollurl", "https://paynow.test/poll/1"},
		}
		fields = append(fields, field{"hash", client.hash(fields)})
		body := ""
		for i, f := range fields {
			if i > 0 {
				body += "&"
			}
			body += f.key + "=" + url.QueryEscape(f.value)
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	client = newPaynowForTest(srv.URL)

	result, err := client.InitiateTransaction(context.Background(),
		"order-1", 10500, "jo@example.com",
		"http://localhost/order/order-1", "http://localhost/api/payments/paynow/ipn")
	require.NoError(t, err)

	assert.Equal(t, "https://paynow.test/pay/1", result.BrowserURL)
	assert.Equal(t, "https://paynow.test/poll/1", result.PollURL)

	assert.Equal(t, "12345", gotForm.Get("id"))
	assert.Equal(t, "order-1", gotForm.Get("reference"))
	assert.Equal(t, "105.00", gotForm.Get("amount"))
	assert.NotEmpty(t, gotForm.Get("hash"))
}

func TestPaynowClient_InitiateTransaction_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "status=Error&error=Invalid+integration+id")
	}))
	defer srv.Close()

	client := newPaynowForTest(srv.URL)
	_, err := client.InitiateTransaction(context.Background(),
		"order-1", 10500, "jo@example.com", "http://localhost", "http://localhost/ipn")
	assert.ErrorIs(t, err, storefront.ErrUpstreamUnavailable)
}

func TestAmountToCents(t *testing.T) {
	cents, err := AmountToCents("105.00")
	require.NoError(t, err)
	assert.Equal(t, int64(10500), cents)

	cents, err = AmountToCents("0.99")
	require.NoError(t, err)
	assert.Equal(t, int64(99), cents)

	_, err = AmountToCents("not-a-number")
	assert.Error(t, err)
}
