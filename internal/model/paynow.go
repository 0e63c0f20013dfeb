package model

// Paynow wire types. Paynow speaks URL-encoded forms, not JSON; these are
// the decoded shapes of the initiate response and the status/IPN payload.

type PaynowInitResult struct {
	Status     string
	BrowserURL string
	PollURL    string
	Error      string
}

type PaynowStatus struct {
	Reference string // our order id, echoed back
	PaynowRef string
	Amount    string // decimal string, e.g. "105.00"
	Status    string // Paid, Awaiting Delivery, Cancelled, ...
	PollURL   string
	Hash      string
}

// Paid statuses per the Paynow API. "Awaiting Delivery" means funds are
// held but the transaction is confirmed.
func (s *PaynowStatus) IsPaid() bool {
	return s.Status == "Paid" || s.Status == "Awaiting Delivery"
}
