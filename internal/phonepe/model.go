package phonepe

import "encoding/json"

const (
	payPath = "/pg/v1/pay"

	// CodePaymentSuccess is the terminal success code in a status response.
	// Every other code, including PAYMENT_PENDING, means the caller has to
	// poll again.
	CodePaymentSuccess = "PAYMENT_SUCCESS"

	redirectMode = "REDIRECT"

	// Placeholder used when the buyer did not supply a mobile number; the
	// pay-page flow requires the field to be present.
	defaultMobileNumber = "9999999999"
)

// PayPageParams is what the order flow supplies to initiate a hosted
// pay-page payment. Amount is in the gateway's minor currency unit (paise).
type PayPageParams struct {
	TransactionID string
	UserID        string
	Amount        int64
	MobileNumber  string
}

// payRequest is the request body signed and sent to the pay endpoint. Field
// order is part of the checksum input and must not change.
type payRequest struct {
	MerchantID            string            `json:"merchantId"`
	MerchantTransactionID string            `json:"merchantTransactionId"`
	MerchantUserID        string            `json:"merchantUserId"`
	Amount                int64             `json:"amount"`
	RedirectURL           string            `json:"redirectUrl"`
	RedirectMode          string            `json:"redirectMode"`
	MobileNumber          string            `json:"mobileNumber"`
	PaymentInstrument     paymentInstrument `json:"paymentInstrument"`
}

type paymentInstrument struct {
	Type string `json:"type"`
}

type payResponse struct {
	Data struct {
		InstrumentResponse struct {
			RedirectInfo struct {
				URL string `json:"url"`
			} `json:"redirectInfo"`
		} `json:"instrumentResponse"`
	} `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// StatusResult is the outcome of a status poll. Raw preserves the full
// gateway payload so callers can hand it back to the frontend untouched.
type StatusResult struct {
	Code string
	Raw  json.RawMessage
}

func (s *StatusResult) Succeeded() bool {
	return s.Code == CodePaymentSuccess
}
