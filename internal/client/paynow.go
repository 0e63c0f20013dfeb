package client

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"techstore-api/internal/config"
	"techstore-api/internal/model"
	"techstore-api/internal/storefront"
)

// PaynowClient speaks the Paynow merchant API: an initiate-transaction
// form POST that returns a browser redirect link plus a poll URL, and a
// status lookup against that poll URL. Every message carries a SHA512
// hash over the field values plus the integration key.
type PaynowClient interface {
	InitiateTransaction(ctx context.Context, reference string, amount int64, email, returnURL, resultURL string) (*model.PaynowInitResult, error)
	PollStatus(ctx context.Context, pollURL string) (*model.PaynowStatus, error)
	ParseStatus(body string) (*model.PaynowStatus, error)
}

type paynowClientImpl struct {
	httpClient     *http.Client
	baseApiURL     string
	integrationID  string
	integrationKey string
}

func NewPaynowClient(paynowCfg *config.Paynow) PaynowClient {
	return &paynowClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:     paynowCfg.BaseApiURL,
		integrationID:  paynowCfg.IntegrationID,
		integrationKey: paynowCfg.IntegrationKey,
	}
}

// field keeps the wire order; Paynow hashes values in the order they
// appear in the message.
type field struct {
	key   string
	value string
}

func (c *paynowClientImpl) InitiateTransaction(ctx context.Context, reference string, amount int64, email, returnURL, resultURL string) (*model.PaynowInitResult, error) {
	fields := []field{
		{"id", c.integrationID},
		{"reference", reference},
		{"amount", centsToValue(amount)},
		{"additionalinfo", ""},
		{"returnurl", returnURL},
		{"resulturl", resultURL},
		{"authemail", email},
		{"status", "Message"},
	}
	fields = append(fields, field{"hash", c.hash(fields)})

	form := url.Values{}
	for _, f := range fields {
		form.Set(f.key, f.value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/interface/initiatetransaction",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paynow initiate: %w: %v", storefront.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read paynow response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paynow initiate error %d: %s: %w", resp.StatusCode, string(body), storefront.ErrUpstreamUnavailable)
	}

	parsed, err := parseFields(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse paynow response: %w", err)
	}

	result := &model.PaynowInitResult{
		Status:     valueOf(parsed, "status"),
		BrowserURL: valueOf(parsed, "browserurl"),
		PollURL:    valueOf(parsed, "pollurl"),
		Error:      valueOf(parsed, "error"),
	}

	if !strings.EqualFold(result.Status, "Ok") {
		return nil, fmt.Errorf("paynow rejected transaction: %s: %w", result.Error, storefront.ErrUpstreamUnavailable)
	}
	if err := c.verifyHash(parsed); err != nil {
		return nil, fmt.Errorf("initiate response: %w", err)
	}

	return result, nil
}

func (c *paynowClientImpl) PollStatus(ctx context.Context, pollURL string) (*model.PaynowStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pollURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paynow poll: %w: %v", storefront.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read poll response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paynow poll error %d: %s: %w", resp.StatusCode, string(body), storefront.ErrUpstreamUnavailable)
	}

	return c.ParseStatus(string(body))
}

// ParseStatus decodes a status message (poll response or IPN body) and
// verifies its hash before anything in it is trusted.
func (c *paynowClientImpl) ParseStatus(body string) (*model.PaynowStatus, error) {
	parsed, err := parseFields(body)
	if err != nil {
		return nil, fmt.Errorf("parse status message: %w", err)
	}

	if err := c.verifyHash(parsed); err != nil {
		return nil, err
	}

	return &model.PaynowStatus{
		Reference: valueOf(parsed, "reference"),
		PaynowRef: valueOf(parsed, "paynowreference"),
		Amount:    valueOf(parsed, "amount"),
		Status:    valueOf(parsed, "status"),
		PollURL:   valueOf(parsed, "pollurl"),
		Hash:      valueOf(parsed, "hash"),
	}, nil
}

// hash concatenates field values in wire order, appends the integration
// key, and returns the uppercase SHA512 hex digest.
func (c *paynowClientImpl) hash(fields []field) string {
	var b strings.Builder
	for _, f := range fields {
		if f.key == "hash" {
			continue
		}
		b.WriteString(f.value)
	}
	b.WriteString(c.integrationKey)

	sum := sha512.Sum512([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func (c *paynowClientImpl) verifyHash(fields []field) error {
	received := valueOf(fields, "hash")
	if received == "" {
		return fmt.Errorf("missing hash: %w", storefront.ErrPaymentVerificationFailed)
	}
	if !strings.EqualFold(received, c.hash(fields)) {
		return fmt.Errorf("hash mismatch: %w", storefront.ErrPaymentVerificationFailed)
	}
	return nil
}

// parseFields decodes an application/x-www-form-urlencoded body while
// preserving field order, which url.Values would lose.
func parseFields(body string) ([]field, error) {
	var fields []field
	for _, pair := range strings.Split(strings.TrimSpace(body), "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return nil, fmt.Errorf("unescape key %q: %w", key, err)
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("unescape value for %q: %w", decodedKey, err)
		}
		fields = append(fields, field{key: strings.ToLower(decodedKey), value: decodedValue})
	}
	return fields, nil
}

func valueOf(fields []field, key string) string {
	for _, f := range fields {
		if f.key == key {
			return f.value
		}
	}
	return ""
}

// AmountToCents converts a Paynow decimal amount string to cents.
func AmountToCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return d.Mul(decimal.NewFromInt(100)).IntPart(), nil
}
