package phonepe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Gagan41/ecom/internal/config"
	"github.com/Gagan41/ecom/internal/logger"
	"go.uber.org/zap"
)

// Gateway is the surface the order flows depend on; Client is the real
// PhonePe implementation.
type Gateway interface {
	CreatePayPage(ctx context.Context, params PayPageParams) (string, error)
	TransactionStatus(ctx context.Context, transactionID string) (*StatusResult, error)
}

type Client struct {
	cfg        config.PhonePeConfig
	httpClient *http.Client
}

func NewClient(cfg config.PhonePeConfig) *Client {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		logger.L().Warn("PhonePe client credentials are empty")
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreatePayPage signs and submits a pay-page request and returns the URL the
// buyer must be redirected to.
func (c *Client) CreatePayPage(ctx context.Context, params PayPageParams) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("transaction_id", params.TransactionID),
		zap.String("merchant_user_id", params.UserID),
		zap.Int64("amount", params.Amount),
	)

	mobile := params.MobileNumber
	if mobile == "" {
		mobile = defaultMobileNumber
	}

	payload := payRequest{
		MerchantID:            c.cfg.MerchantID,
		MerchantTransactionID: params.TransactionID,
		MerchantUserID:        params.UserID,
		Amount:                params.Amount,
		RedirectURL:           c.cfg.AppBEURL + "/order-summary",
		RedirectMode:          redirectMode,
		MobileNumber:          mobile,
		PaymentInstrument:     paymentInstrument{Type: "PAY_PAGE"},
	}

	xVerify, base64Payload, err := GenerateXVerify(payload, payPath, c.cfg.SaltKey, c.cfg.SaltIndex)
	if err != nil {
		return "", err
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	reqBody, err := json.Marshal(map[string]string{"request": base64Payload})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.CheckoutHostURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", xVerify)
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+token)

	log.Info("initiating pay-page payment")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("phonepe pay request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read phonepe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("phonepe pay endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", &GatewayError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var pr payResponse
	if err := json.Unmarshal(bodyBytes, &pr); err != nil {
		return "", &GatewayError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	redirectURL := pr.Data.InstrumentResponse.RedirectInfo.URL
	if redirectURL == "" {
		log.Error("phonepe pay response missing redirect url", zap.ByteString("response", bodyBytes))
		return "", &GatewayError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	log.Info("pay-page payment initiated")
	return redirectURL, nil
}

// TransactionStatus polls the gateway for a transaction. An empty JSON object
// is signed against the status path since the GET carries no body.
func (c *Client) TransactionStatus(ctx context.Context, transactionID string) (*StatusResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("transaction_id", transactionID))

	apiPath := fmt.Sprintf("/pg/v1/status/%s/%s", c.cfg.MerchantID, transactionID)

	xVerify, _, err := GenerateXVerify(struct{}{}, apiPath, c.cfg.SaltKey, c.cfg.SaltIndex)
	if err != nil {
		return nil, err
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.StatusHostURL+apiPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", xVerify)
	req.Header.Set("X-MERCHANT-ID", c.cfg.MerchantID)
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("phonepe status request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read phonepe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("phonepe status endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var sr struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(bodyBytes, &sr); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	log.Info("transaction status fetched", zap.String("code", sr.Code))

	return &StatusResult{
		Code: sr.Code,
		Raw:  json.RawMessage(bodyBytes),
	}, nil
}
