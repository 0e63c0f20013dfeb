package model

// PayPal REST API payload shapes (v2 checkout).

type PaypalLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type PaypalAmount struct {
	Currency string `json:"currency_code"`
	Value    string `json:"value"`
}

type PaypalCapture struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Final  bool         `json:"final_capture"`
	Amount PaypalAmount `json:"amount"`
}

type PaypalPayments struct {
	Captures []PaypalCapture `json:"captures"`
}

type PaypalPurchaseUnit struct {
	ReferenceID string         `json:"reference_id"`
	Amount      PaypalAmount   `json:"amount"`
	Payments    PaypalPayments `json:"payments"`
}

type PaypalOrderResult struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	Links         []PaypalLink         `json:"links"`
	PurchaseUnits []PaypalPurchaseUnit `json:"purchase_units"`
}
